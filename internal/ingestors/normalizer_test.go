package ingestors

import (
	"strings"
	"testing"
	"time"

	"visit-analytics/internal/models"

	"github.com/mileusna/useragent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	chromeWindowsUA  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	firefoxWindowsUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0"
)

func TestNormalize_Timestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "rfc3339",
			input:    "2025-12-28T18:03:15Z",
			expected: time.Date(2025, 12, 28, 18, 3, 15, 0, time.UTC),
		},
		{
			name:     "rfc3339 with offset",
			input:    "2025-12-28T22:00:00-05:00",
			expected: time.Date(2025, 12, 29, 3, 0, 0, 0, time.UTC),
		},
		{
			name:     "milliseconds",
			input:    "2025-12-28T18:03:15.250Z",
			expected: time.Date(2025, 12, 28, 18, 3, 15, 250000000, time.UTC),
		},
		{
			name:     "sql datetime",
			input:    "2025-12-28 18:03:15",
			expected: time.Date(2025, 12, 28, 18, 3, 15, 0, time.UTC),
		},
		{
			name:     "nginx time_local",
			input:    "28/Dec/2025:18:03:15 +0100",
			expected: time.Date(2025, 12, 28, 17, 3, 15, 0, time.UTC),
		},
	}

	n := NewNormalizer()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			event, err := n.Normalize("blog", &models.RawEvent{Timestamp: tt.input})
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(event.Timestamp), "got %s", event.Timestamp)
			assert.Equal(t, time.UTC, event.Timestamp.Location())
		})
	}
}

func TestNormalize_RejectsBadTimestamp(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	for _, ts := range []string{"", "   ", "yesterday", "2025-13-01T00:00:00Z", "1735400000"} {
		_, err := n.Normalize("blog", &models.RawEvent{Timestamp: ts, IP: "10.0.0.1"})
		assert.ErrorIs(t, err, ErrMalformedEvent, "timestamp %q", ts)
	}

	_, err := n.Normalize("blog", nil)
	assert.ErrorIs(t, err, ErrMalformedEvent)
}

func TestNormalize_BlankFieldsBecomeUnknown(t *testing.T) {
	t.Parallel()

	event, err := NewNormalizer().Normalize("blog", &models.RawEvent{
		Timestamp: "2025-12-28T18:03:15Z",
		IP:        " ",
		Path:      "",
		Browser:   "\t",
	})
	require.NoError(t, err)

	assert.Equal(t, "blog", event.Service)
	assert.Equal(t, models.UnknownGroup, event.IP)
	assert.Equal(t, models.UnknownGroup, event.Path)
	assert.Equal(t, models.UnknownGroup, event.Browser)
	assert.Equal(t, models.UnknownGroup, event.Platform)
	assert.Nil(t, event.GenerationTime)
}

func TestNormalize_IP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "10.0.0.1", expected: "10.0.0.1"},
		{input: " 10.0.0.1 ", expected: "10.0.0.1"},
		{input: "::ffff:10.0.0.1", expected: "10.0.0.1"},
		{input: "2001:DB8::0001", expected: "2001:db8::1"},
		{input: "not-an-ip", expected: "not-an-ip"},
	}

	n := NewNormalizer()
	for _, tt := range tests {
		event, err := n.Normalize("blog", &models.RawEvent{Timestamp: "2025-12-28T18:03:15Z", IP: tt.input})
		require.NoError(t, err)
		assert.Equal(t, tt.expected, event.IP, "ip %q", tt.input)
	}
}

func TestNormalize_Browser(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()

	event, err := n.Normalize("blog", &models.RawEvent{Timestamp: "2025-12-28T18:03:15Z", Browser: chromeWindowsUA})
	require.NoError(t, err)
	assert.Equal(t, useragent.Chrome, event.Browser)
	assert.Equal(t, useragent.Windows, event.Platform)

	event, err = n.Normalize("blog", &models.RawEvent{Timestamp: "2025-12-28T18:03:15Z", Browser: firefoxWindowsUA})
	require.NoError(t, err)
	assert.Equal(t, useragent.Firefox, event.Browser)
	assert.Equal(t, useragent.Windows, event.Platform)

	event, err = n.Normalize("blog", &models.RawEvent{Timestamp: "2025-12-28T18:03:15Z", Browser: "MyCustomAgent"})
	require.NoError(t, err)
	assert.Equal(t, "MyCustomAgent", event.Browser)
	assert.Equal(t, models.UnknownGroup, event.Platform)
}

func TestNormalize_Truncation(t *testing.T) {
	t.Parallel()

	event, err := NewNormalizer().Normalize("blog", &models.RawEvent{
		Timestamp: "2025-12-28T18:03:15Z",
		Path:      "/" + strings.Repeat("é", maxPathLen+10),
	})
	require.NoError(t, err)
	assert.Equal(t, maxPathLen, len([]rune(event.Path)))

	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "abc", truncate("abc", 3))
}

func TestParseGenerationTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		expected *float64
	}{
		{name: "number", input: 0.042, expected: ptr(0.042)},
		{name: "zero", input: float64(0), expected: ptr(0)},
		{name: "numeric string", input: " 1.5 ", expected: ptr(1.5)},
		{name: "null", input: nil},
		{name: "negative", input: -1.0},
		{name: "nan string", input: "NaN"},
		{name: "inf string", input: "+Inf"},
		{name: "text", input: "fast"},
		{name: "bool", input: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseGenerationTime(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expected, *got, 1e-12)
		})
	}
}

func ptr(f float64) *float64 {
	return &f
}
