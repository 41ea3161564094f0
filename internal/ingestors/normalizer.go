package ingestors

import (
	"fmt"
	"math"
	"net/netip"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"visit-analytics/internal/models"

	"github.com/mileusna/useragent"
)

const (
	maxPathLen    = 2048
	maxBrowserLen = 1024
)

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"02/Jan/2006:15:04:05 -0700", // nginx $time_local
}

// Normalizer turns a posted event into the fixed shape the rollups consume.
// Only an unusable timestamp rejects an event; blank categorical values become
// models.UnknownGroup so group totals always add up to the visit count.
//
//go:generate mockgen -source=normalizer.go -destination=./mocks/normalizer_mock.go -package=mocks
type Normalizer interface {
	Normalize(service string, raw *models.RawEvent) (*models.Event, error)
}

type normalizer struct{}

func NewNormalizer() Normalizer {
	return &normalizer{}
}

func (n *normalizer) Normalize(service string, raw *models.RawEvent) (*models.Event, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: event is null", ErrMalformedEvent)
	}

	ts, err := parseTimestamp(raw.Timestamp)
	if err != nil {
		return nil, err
	}

	browser, platform := parseBrowser(raw.Browser)

	return &models.Event{
		Service:        service,
		Timestamp:      ts,
		IP:             canonicalIP(raw.IP),
		Path:           orUnknown(truncate(strings.TrimSpace(raw.Path), maxPathLen)),
		Browser:        browser,
		Platform:       platform,
		GenerationTime: parseGenerationTime(raw.GenerationTime),
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: missing timestamp", ErrMalformedEvent)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", ErrMalformedEvent, s)
}

func canonicalIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.UnknownGroup
	}
	if addr, err := netip.ParseAddr(s); err == nil {
		return addr.Unmap().String()
	}
	return s
}

// parseBrowser accepts either a full user-agent string or a bare browser name.
func parseBrowser(s string) (browser string, platform string) {
	s = truncate(strings.TrimSpace(s), maxBrowserLen)
	if s == "" {
		return models.UnknownGroup, models.UnknownGroup
	}

	ua := useragent.Parse(s)
	browser = s
	if ua.Name != "" {
		browser = ua.Name
	}
	return browser, orUnknown(ua.OS)
}

// parseGenerationTime returns nil for anything that is not a finite, non-negative number.
func parseGenerationTime(v any) *float64 {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	return &f
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.UnknownGroup
	}
	return s
}
