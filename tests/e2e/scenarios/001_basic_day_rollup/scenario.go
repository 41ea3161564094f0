package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalEvents  = 64000 // Total number of unique visit events to generate
	ipsPerDay    = 250   // Distinct visitor IPs per day
	eventsPerDay = totalEvents / 4
)

var (
	days       = []string{"2025-12-25", "2025-12-26", "2025-12-27", "2025-12-28"}
	paths      = []string{"/", "/about", "/careers", "/contact"}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"",
		"curl/7.88.1",
	}
)

// ### End - fixed configs

type visitEvent struct {
	Timestamp      string  `json:"timestamp"`
	IP             string  `json:"ip"`
	Path           string  `json:"path"`
	Browser        string  `json:"browser"`
	GenerationTime float64 `json:"generation_time"`
}

type batchToSend struct {
	batchIndex int
	jsonData   []byte
	isOriginal bool
}

type countItem struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type groupItem struct {
	Date  string `json:"date"`
	Group string `json:"group"`
	Count int64  `json:"count"`
}

// main runs the e2e scenario: 001_basic_day_rollup
//
// This scenario sends 64,000 visit events for one service across multiple batches,
// with duplicate batches to test idempotency handling, then checks the per-day rollups
// through the query endpoints.
//
// What it tests:
//   - Event batch ingestion via POST /services/{service}/events
//   - Idempotency key handling for duplicate batch detection
//   - Partitioned stream consumption and concurrent rollup into the same day aggregate
//   - Visit counts, unique visitors and path rankings via the query endpoints
//
// Expected results:
//   - Duplicate batches return 409 Conflict status (idempotency working)
//   - Four days (2025-12-25 .. 2025-12-28) with 16,000 visits each
//   - 250 unique visitors per day
//   - 4,000 visits per path per day
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the visit analytics API server
	service := "e2e-blog"              // Service the events are posted to
	itemsPerBatch := 20                // Number of events per batch. Original batches = totalEvents / itemsPerBatch
	parallel := 4                      // Number of concurrent batch requests to send
	totalDuplicates := 2000            // Total number of duplicate batches to send across all batches
	settleTimeout := 30 * time.Second  // How long to wait for the rollup to reach the expected totals

	if totalEvents%itemsPerBatch != 0 {
		fmt.Fprintf(os.Stderr, "ERROR: TOTAL_EVENTS (%d) must be divisible by ITEMS_PER_BATCH (%d)\n", totalEvents, itemsPerBatch)
		os.Exit(1)
	}

	batchCount := totalEvents / itemsPerBatch

	fmt.Println("Starting e2e scenario: 001_basic_day_rollup")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("SERVICE: %s\n", service)
	fmt.Printf("ITEMS_PER_BATCH: %d\n", itemsPerBatch)
	fmt.Printf("BATCH_COUNT: %d\n", batchCount)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TOTAL_DUPLICATES: %d\n", totalDuplicates)
	fmt.Println()

	events := generateAllEvents()
	fmt.Printf("Generated %d events\n", len(events))

	// Generate all batches (original + duplicates) and sort by batchIndex
	batchesToSend := make([]batchToSend, 0, batchCount+totalDuplicates)
	for batchIndex := 1; batchIndex <= batchCount; batchIndex++ {
		start := (batchIndex - 1) * itemsPerBatch
		jsonData, err := json.Marshal(events[start : start+itemsPerBatch])
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to generate JSON for batch %d: %v\n", batchIndex, err)
			os.Exit(1)
		}
		batchesToSend = append(batchesToSend, batchToSend{batchIndex: batchIndex, jsonData: jsonData, isOriginal: true})
	}
	for i := 0; i < totalDuplicates; i++ {
		original := batchesToSend[i%batchCount]
		batchesToSend = append(batchesToSend, batchToSend{batchIndex: original.batchIndex, jsonData: original.jsonData})
	}
	sort.SliceStable(batchesToSend, func(i, j int) bool {
		return batchesToSend[i].batchIndex < batchesToSend[j].batchIndex
	})

	// Create worker pool for parallel batch sending
	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var failed int64
	var conflictedRequest int64 // 409 status code
	var acceptedRequest int64   // 202 status code

	for _, batch := range batchesToSend {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(b batchToSend) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			statusCode, err := sendBatch(baseURL, service, b)
			if err != nil {
				atomic.AddInt64(&failed, 1)
				fmt.Fprintf(os.Stderr, "ERROR: Batch %d failed: %v\n", b.batchIndex, err)
				return
			}
			switch statusCode {
			case http.StatusAccepted:
				atomic.AddInt64(&acceptedRequest, 1)
			case http.StatusConflict:
				atomic.AddInt64(&conflictedRequest, 1)
			}
		}(batch)
	}
	wg.Wait()

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d batch sends failed\n", failed)
		os.Exit(1)
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Accepted request: %d\n", acceptedRequest)
	fmt.Printf("Conflicted request: %d\n", conflictedRequest)
	if acceptedRequest != int64(batchCount) || conflictedRequest != int64(totalDuplicates) {
		fmt.Fprintf(os.Stderr, "ERROR: expected %d accepted and %d conflicted requests\n", batchCount, totalDuplicates)
		os.Exit(1)
	}

	// The rollup is asynchronous: poll until the visits settle.
	deadline := time.Now().Add(settleTimeout)
	var visits []countItem
	for {
		if err := getJSON(fmt.Sprintf("%s/services/%s/count", baseURL, service), &visits); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: count query failed: %v\n", err)
			os.Exit(1)
		}
		if totalCount(visits) == totalEvents || time.Now().After(deadline) {
			break
		}
		time.Sleep(200 * time.Millisecond)
	}

	var unique []countItem
	var groups []groupItem
	if err := getJSON(fmt.Sprintf("%s/services/%s/count?field=ip", baseURL, service), &unique); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: unique query failed: %v\n", err)
		os.Exit(1)
	}
	if err := getJSON(fmt.Sprintf("%s/services/%s/groupby?field=path", baseURL, service), &groups); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: groupby query failed: %v\n", err)
		os.Exit(1)
	}

	var problems []string
	problems = append(problems, checkCounts("visits", visits, eventsPerDay)...)
	problems = append(problems, checkCounts("unique", unique, ipsPerDay)...)
	if len(groups) != len(days)*len(paths) {
		problems = append(problems, fmt.Sprintf("groupby: expected %d rows, got %d", len(days)*len(paths), len(groups)))
	}
	for _, g := range groups {
		if g.Count != eventsPerDay/int64(len(paths)) {
			problems = append(problems, fmt.Sprintf("groupby %s %s: expected %d, got %d", g.Date, g.Group, eventsPerDay/len(paths), g.Count))
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "MISMATCH: %s\n", p)
		}
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

// generateAllEvents spreads events evenly over days, paths, user agents and visitor IPs.
func generateAllEvents() []visitEvent {
	events := make([]visitEvent, 0, totalEvents)
	for i := 0; i < totalEvents; i++ {
		day := days[i%len(days)]
		n := i / len(days)
		seconds := n % 86400
		events = append(events, visitEvent{
			Timestamp:      fmt.Sprintf("%sT%02d:%02d:%02dZ", day, seconds/3600, (seconds/60)%60, seconds%60),
			IP:             fmt.Sprintf("10.0.%d.%d", (n%ipsPerDay)/100, (n%ipsPerDay)%100),
			Path:           paths[n%len(paths)],
			Browser:        userAgents[(n/len(paths))%len(userAgents)],
			GenerationTime: float64(n%100) / 1000,
		})
	}
	return events
}

func totalCount(items []countItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Count
	}
	return total
}

func checkCounts(name string, items []countItem, expected int64) []string {
	var problems []string
	if len(items) != len(days) {
		problems = append(problems, fmt.Sprintf("%s: expected %d days, got %d", name, len(days), len(items)))
	}
	for i, item := range items {
		if i < len(days) && item.Date != days[i] {
			problems = append(problems, fmt.Sprintf("%s: expected day %s at %d, got %s", name, days[i], i, item.Date))
		}
		if item.Count != expected {
			problems = append(problems, fmt.Sprintf("%s %s: expected %d, got %d", name, item.Date, expected, item.Count))
		}
	}
	return problems
}

func sendBatch(baseURL, service string, batch batchToSend) (int, error) {
	// Same key for all duplicates of this batch
	idempotencyKey := fmt.Sprintf("batch-%06d", batch.batchIndex)

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/services/%s/events", baseURL, service), bytes.NewReader(batch.jsonData))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("idempotency-key", idempotencyKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	// 409 Conflict is expected for duplicates
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusConflict {
		return resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}

func getJSON(url string, out any) error {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
