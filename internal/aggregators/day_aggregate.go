package aggregators

import (
	"sync"

	"visit-analytics/internal/models"
)

// DayAggregate holds every rollup of one service for one calendar day.
// All sub-aggregates are updated and read under a single mutex, so a reader
// never observes an event that is only partially applied.
type DayAggregate struct {
	mu sync.Mutex

	service string
	date    models.Day

	visits  int64
	unique  Cardinality
	average RunningAverage
	groups  [models.DimensionCount]*TopKCounter
	frozen  bool
}

func newDayAggregate(service string, date models.Day, unique Cardinality) *DayAggregate {
	agg := &DayAggregate{
		service: service,
		date:    date,
		unique:  unique,
	}
	for i := range agg.groups {
		agg.groups[i] = NewTopKCounter()
	}
	return agg
}

func (a *DayAggregate) Date() models.Day {
	return a.date
}

func (a *DayAggregate) Service() string {
	return a.service
}

// Apply adds the event to every sub-aggregate. It returns false, leaving the
// aggregate untouched, when the day is frozen.
func (a *DayAggregate) Apply(event *models.Event) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.frozen {
		return false
	}

	a.visits++
	a.unique.Add(event.IP)
	a.average.Add(event.GenerationTime)
	for dim := range a.groups {
		a.groups[dim].Add(event.Group(models.Dimension(dim)))
	}
	return true
}

// Counts returns the visit count and the unique visitor count.
func (a *DayAggregate) Counts() (visits int64, unique int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visits, a.unique.Count()
}

// Average returns the average, sum and number of measurements.
func (a *DayAggregate) Average() (avg *float64, sum float64, count int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.average.Average(), a.average.Sum(), a.average.Count()
}

// Groups returns the n top groups of a dimension, or every group when n <= 0.
func (a *DayAggregate) Groups(dim models.Dimension, n int) []models.GroupCount {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n <= 0 {
		return a.groups[dim].All()
	}
	return a.groups[dim].TopN(n)
}

// Summary returns a consistent copy of the whole aggregate.
func (a *DayAggregate) Summary() *models.DaySummary {
	a.mu.Lock()
	defer a.mu.Unlock()

	summary := &models.DaySummary{
		Service:      a.service,
		Date:         a.date,
		Visits:       a.visits,
		Unique:       a.unique.Count(),
		UniqueExact:  a.unique.Exact(),
		AverageSum:   a.average.Sum(),
		AverageCount: a.average.Count(),
		Average:      a.average.Average(),
		Groups:       make(map[string][]models.GroupCount, len(a.groups)),
		Frozen:       a.frozen,
	}
	for dim, counter := range a.groups {
		summary.Groups[models.Dimension(dim).String()] = counter.All()
	}
	return summary
}

// Freeze makes the aggregate read-only and compacts the visitor set to its count.
// It returns false when the aggregate was already frozen.
func (a *DayAggregate) Freeze() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.frozen {
		return false
	}
	a.frozen = true
	a.unique = freezeCardinality(a.unique)
	return true
}

func (a *DayAggregate) Frozen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frozen
}
