package streams

import (
	"context"

	"visit-analytics/internal/events"
	"visit-analytics/internal/models"
	"visit-analytics/internal/shared/metrics"
)

const codePublishCancelled = "STR_1000"

// EventProducer publishes normalized events to the partitioned queue.
//
// Partition strategy:
//
//	partitionKey = "<service>/<day>"
//
// Every event of one day aggregate is routed to the same partition, and each partition is
// drained by a single worker, so events published by one producer reach their aggregate in
// publish order. Different days and services spread across partitions and roll up in parallel.
//
//go:generate mockgen -source=event_producer.go -destination=./mocks/event_producer_mock.go -package=mocks
type EventProducer interface {
	// Produce publishes events in order. It stops at the first event that cannot be
	// published because ctx is done; events before it stay published.
	Produce(ctx context.Context, batchID string, evts []*models.Event) error
}

type eventProducer struct {
	queue *PartitionedQueue[events.VisitEvent]
}

func NewEventProducer(queue *PartitionedQueue[events.VisitEvent]) EventProducer {
	return &eventProducer{
		queue: queue,
	}
}

func (producer *eventProducer) Produce(ctx context.Context, batchID string, evts []*models.Event) error {
	for _, e := range evts {
		visit := events.NewVisitEvent(batchID, e)
		if err := producer.queue.Publish(ctx, visit.PartitionKey(), visit); err != nil {
			metricEventProducedTotal.WithLabelValues(streamVisitEvent, codePublishCancelled).Inc()
			return err
		}
		metricEventProducedTotal.WithLabelValues(streamVisitEvent, metrics.ValueNoError).Inc()
	}
	return nil
}
