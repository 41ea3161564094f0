package models

// CountPoint is the visit count and unique visitor count of one day.
type CountPoint struct {
	Date   Day   `json:"date"`
	Visits int64 `json:"visits"`
	Unique int64 `json:"unique"`
}

// AveragePoint is the running average of a measurement for one day.
// Avg is nil when the day has no measurement.
type AveragePoint struct {
	Date  Day      `json:"date"`
	Avg   *float64 `json:"avg"`
	Sum   float64  `json:"sum"`
	Count int64    `json:"count"`
}

// GroupPoint is the count of one group value on one day.
type GroupPoint struct {
	Date  Day    `json:"date"`
	Group string `json:"group"`
	Count int64  `json:"count"`
}

// GroupCount is a ranked group value.
type GroupCount struct {
	Group string `json:"group"`
	Count int64  `json:"count"`
}

// DaySummary is a point-in-time copy of a day aggregate. Groups holds every
// group count per dimension name, ordered by count desc then group.
type DaySummary struct {
	Service      string                  `json:"service"`
	Date         Day                     `json:"date"`
	Visits       int64                   `json:"visits"`
	Unique       int64                   `json:"unique"`
	UniqueExact  bool                    `json:"uniqueExact"`
	AverageSum   float64                 `json:"averageSum"`
	AverageCount int64                   `json:"averageCount"`
	Average      *float64                `json:"average"`
	Groups       map[string][]GroupCount `json:"groups"`
	Frozen       bool                    `json:"frozen"`
}

// OverviewPoint is the per-day entry of the dashboard overview.
type OverviewPoint struct {
	Visits int64 `json:"visits"`
	Unique int64 `json:"unique"`
}

// Series wraps a result list the way the dashboard template reads it.
type Series[T any] struct {
	Elements []T `json:"elements"`
}

// Dashboard is the payload the dashboard template consumes.
type Dashboard struct {
	Overview  map[Day]OverviewPoint `json:"overview"`
	Time      Series[AveragePoint]  `json:"time"`
	Paths     Series[GroupPoint]    `json:"paths"`
	Browsers  Series[GroupPoint]    `json:"browsers"`
	Platforms Series[GroupPoint]    `json:"platforms"`
}

// NewEmptyDashboard returns a dashboard whose collections are empty rather than nil,
// so it encodes as {} and [] instead of null.
func NewEmptyDashboard() *Dashboard {
	return &Dashboard{
		Overview:  map[Day]OverviewPoint{},
		Time:      Series[AveragePoint]{Elements: []AveragePoint{}},
		Paths:     Series[GroupPoint]{Elements: []GroupPoint{}},
		Browsers:  Series[GroupPoint]{Elements: []GroupPoint{}},
		Platforms: Series[GroupPoint]{Elements: []GroupPoint{}},
	}
}
