package aggregators

import (
	"container/heap"
	"sort"

	"visit-analytics/internal/models"
)

// TopKCounter keeps exact per-key counts. Ranking happens only when read.
// It is not safe for concurrent use.
type TopKCounter struct {
	counts map[string]int64
	total  int64
}

func NewTopKCounter() *TopKCounter {
	return &TopKCounter{counts: make(map[string]int64)}
}

func (c *TopKCounter) Add(key string) {
	c.counts[key]++
	c.total++
}

// Count returns the count of key.
func (c *TopKCounter) Count(key string) int64 {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *TopKCounter) Len() int {
	return len(c.counts)
}

// Total returns the sum of all counts.
func (c *TopKCounter) Total() int64 {
	return c.total
}

// TopN returns the n highest counts, ordered by count desc then key asc.
func (c *TopKCounter) TopN(n int) []models.GroupCount {
	if n <= 0 {
		return []models.GroupCount{}
	}
	if n >= len(c.counts) {
		return c.All()
	}

	h := make(groupCountHeap, 0, n)
	for key, count := range c.counts {
		item := models.GroupCount{Group: key, Count: count}
		if h.Len() < n {
			heap.Push(&h, item)
			continue
		}
		if rankedBefore(item, h[0]) {
			h[0] = item
			heap.Fix(&h, 0)
		}
	}

	out := make([]models.GroupCount, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(models.GroupCount)
	}
	return out
}

// All returns every key ordered by count desc then key asc.
func (c *TopKCounter) All() []models.GroupCount {
	out := make([]models.GroupCount, 0, len(c.counts))
	for key, count := range c.counts {
		out = append(out, models.GroupCount{Group: key, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return rankedBefore(out[i], out[j])
	})
	return out
}

func rankedBefore(a, b models.GroupCount) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Group < b.Group
}

// groupCountHeap is a min-heap on rank: the root is the lowest ranked entry.
type groupCountHeap []models.GroupCount

func (h groupCountHeap) Len() int           { return len(h) }
func (h groupCountHeap) Less(i, j int) bool { return rankedBefore(h[j], h[i]) }
func (h groupCountHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *groupCountHeap) Push(x any) {
	*h = append(*h, x.(models.GroupCount))
}

func (h *groupCountHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
