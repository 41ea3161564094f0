package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	dayLayout        = "2006-01-02"
	dayCompactLayout = "20060102"
)

// Day is a UTC calendar date formatted as "2006-01-02".
// The string form sorts lexically in chronological order, so Day values
// can be compared and used as sorted map keys directly.
type Day string

// DayOf returns the UTC calendar date of t.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format(dayLayout))
}

// ParseDay parses a "2006-01-02" date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		panic(fmt.Sprintf("invalid Day: %q", d))
	}
	return t
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

func (d Day) Before(other Day) bool {
	return d < other
}

// FormatCompact returns the date as "20060102", used in storage keys.
func (d Day) FormatCompact() string {
	return d.Time().Format(dayCompactLayout)
}

func (d Day) String() string {
	return string(d)
}

// DateRange is an inclusive range of days. A zero Start or Stop leaves that side open.
type DateRange struct {
	Start Day
	Stop  Day
}

// NewDateRange parses optional start and stop dates. Empty strings leave the side open.
func NewDateRange(start, stop string) (DateRange, error) {
	var r DateRange
	if strings.TrimSpace(start) != "" {
		d, err := ParseDay(start)
		if err != nil {
			return DateRange{}, err
		}
		r.Start = d
	}
	if strings.TrimSpace(stop) != "" {
		d, err := ParseDay(stop)
		if err != nil {
			return DateRange{}, err
		}
		r.Stop = d
	}
	if r.Start != "" && r.Stop != "" && r.Stop.Before(r.Start) {
		return DateRange{}, fmt.Errorf("stop %s is before start %s", r.Stop, r.Start)
	}
	return r, nil
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d Day) bool {
	if r.Start != "" && d.Before(r.Start) {
		return false
	}
	if r.Stop != "" && r.Stop.Before(d) {
		return false
	}
	return true
}
