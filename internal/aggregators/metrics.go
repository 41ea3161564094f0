package aggregators

import (
	"visit-analytics/internal/shared/metrics"
)

// metricDayAggregateCreatedTotal counts day aggregates created by the rollup coordinator.
// It is incremented once per (service, day), on the first event of that day.
var (
	metricDayAggregateCreatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "day_aggregate_created_total",
		},
		[]string{metrics.FieldService},
	)

	metricRetainedDays = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "retained_days",
		},
		[]string{metrics.FieldService},
	)

	metricEventsRolledUpTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "events_rolled_up_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricDaysEvictedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRetention,
			Name:      "days_evicted_total",
		},
		[]string{"policy", metrics.FieldErrorCode},
	)

	metricDaysArchivedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRetention,
			Name:      "days_archived_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
