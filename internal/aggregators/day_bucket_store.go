package aggregators

import (
	"sort"
	"sync"

	"visit-analytics/internal/models"
)

// DayBucketStore maps each day of one service to its DayAggregate.
// The lock guards the map only; aggregates carry their own lock.
type DayBucketStore struct {
	mu      sync.RWMutex
	service string
	buckets map[models.Day]*DayAggregate

	newCardinality CardinalityFactory
}

func NewDayBucketStore(service string, newCardinality CardinalityFactory) *DayBucketStore {
	return &DayBucketStore{
		service:        service,
		buckets:        make(map[models.Day]*DayAggregate),
		newCardinality: newCardinality,
	}
}

func (s *DayBucketStore) Service() string {
	return s.service
}

func (s *DayBucketStore) Get(day models.Day) (*DayAggregate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agg, ok := s.buckets[day]
	return agg, ok
}

// GetOrCreate returns the aggregate of day, creating it when missing.
// Concurrent callers for the same day always receive the same aggregate.
func (s *DayBucketStore) GetOrCreate(day models.Day) (agg *DayAggregate, created bool) {
	s.mu.RLock()
	agg, ok := s.buckets[day]
	s.mu.RUnlock()
	if ok {
		return agg, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// double check after acquiring write lock
	if agg, ok := s.buckets[day]; ok {
		return agg, false
	}
	agg = newDayAggregate(s.service, day, s.newCardinality())
	s.buckets[day] = agg
	return agg, true
}

// Range returns the aggregates inside r in ascending date order.
func (s *DayBucketStore) Range(r models.DateRange) []*DayAggregate {
	s.mu.RLock()
	out := make([]*DayAggregate, 0, len(s.buckets))
	for day, agg := range s.buckets {
		if r.Contains(day) {
			out = append(out, agg)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date().Before(out[j].Date())
	})
	return out
}

// Before returns the aggregates dated strictly before cutoff in ascending date order.
func (s *DayBucketStore) Before(cutoff models.Day) []*DayAggregate {
	return s.Range(models.DateRange{Stop: cutoff.AddDays(-1)})
}

// Remove drops the given days. The bucket map is replaced as a whole under the
// write lock, so readers see either the old or the new set.
func (s *DayBucketStore) Remove(days []models.Day) int {
	if len(days) == 0 {
		return 0
	}
	drop := make(map[models.Day]struct{}, len(days))
	for _, day := range days {
		drop[day] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make(map[models.Day]*DayAggregate, len(s.buckets))
	for day, agg := range s.buckets {
		if _, ok := drop[day]; !ok {
			kept[day] = agg
		}
	}
	removed := len(s.buckets) - len(kept)
	s.buckets = kept
	return removed
}

// Days returns the stored days in ascending order.
func (s *DayBucketStore) Days() []models.Day {
	s.mu.RLock()
	days := make([]models.Day, 0, len(s.buckets))
	for day := range s.buckets {
		days = append(days, day)
	}
	s.mu.RUnlock()

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func (s *DayBucketStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buckets)
}
