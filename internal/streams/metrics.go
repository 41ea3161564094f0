package streams

import (
	"visit-analytics/internal/shared/metrics"
)

const streamVisitEvent = "visit_event"

var (
	metricEventProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "events_published_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)

	metricEventConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "events_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)

	// Buffered events per partition after each receive. A partition stuck near the buffer
	// size means one hot service/day is throttling its producers.
	metricPartitionBacklog = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "partition_backlog",
		},
		[]string{"stream_id", "partition"},
	)
)
