package models

import "time"

// UnknownGroup is the group used for a blank categorical value.
const UnknownGroup = "unknown"

// RawEvent is one visit as posted by a log shipper. GenerationTime may be a number,
// a numeric string or null.
type RawEvent struct {
	Timestamp      string `json:"timestamp"`
	IP             string `json:"ip"`
	Path           string `json:"path"`
	Browser        string `json:"browser"`
	GenerationTime any    `json:"generation_time"`
}

// Event is a normalized visit. GenerationTime is nil when the measurement was absent.
type Event struct {
	Service        string
	Timestamp      time.Time
	IP             string
	Path           string
	Browser        string
	Platform       string
	GenerationTime *float64
}

// Day returns the UTC calendar date the event belongs to.
func (e *Event) Day() Day {
	return DayOf(e.Timestamp)
}

// Group returns the categorical value of the event for a dimension.
func (e *Event) Group(dim Dimension) string {
	switch dim {
	case DimensionPath:
		return e.Path
	case DimensionBrowser:
		return e.Browser
	case DimensionPlatform:
		return e.Platform
	default:
		return UnknownGroup
	}
}
