package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"

	"visit-analytics/internal/aggregators"
	"visit-analytics/internal/events"
	"visit-analytics/internal/shared/loggers"
	"visit-analytics/internal/shared/metrics"
	"visit-analytics/internal/shared/svcerrors"
	"visit-analytics/internal/shared/ulid"
)

//go:generate mockgen -source=event_consumer.go -destination=./mocks/event_consumer_mock.go -package=mocks
type EventConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type eventConsumer struct {
	queue       *PartitionedQueue[events.VisitEvent]
	coordinator aggregators.RollupCoordinator

	wg       sync.WaitGroup
	stopOnce sync.Once

	logger loggers.Logger
}

func NewEventConsumer(queue *PartitionedQueue[events.VisitEvent], coordinator aggregators.RollupCoordinator, logger loggers.Logger) EventConsumer {
	return &eventConsumer{
		queue:       queue,
		coordinator: coordinator,
		logger:      logger,
	}
}

// Start spawns 1 worker goroutine per partition.
// Each partition is a single-writer lane for the day aggregates routed to it by the producer.
func (consumer *eventConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		partitionIndex := partitionIndex
		ch := consumer.queue.Partition(partitionIndex)
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()
			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

// Stop closes the queue and waits until the workers drained it.
// Call it only after every producer has stopped publishing.
func (consumer *eventConsumer) Stop() {
	consumer.stopOnce.Do(consumer.queue.Close)
	consumer.wg.Wait()
}

func (consumer *eventConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.VisitEvent) {
	partition := strconv.Itoa(partitionIndex)
	workerLogger := consumer.logger.With().
		Str(loggers.FieldPartitionId, partition).
		Logger()
	backlog := metricPartitionBacklog.WithLabelValues(streamVisitEvent, partition)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				backlog.Set(0)
				return
			}
			backlog.Set(float64(consumer.queue.Backlog(partitionIndex)))
			consumer.handle(workerLogger.WithContext(ctx), event)
		}
	}
}

// handle recovers a panic so that one bad event cannot stop the partition worker.
func (consumer *eventConsumer) handle(ctx context.Context, event events.VisitEvent) {
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("consumer panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricEventConsumedTotal.WithLabelValues(streamVisitEvent, svcErr.Code).Inc()
		}
	}()

	ctx = loggers.Ctx(ctx).With().
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Str(loggers.FieldBatchID, event.BatchID).
		Str(loggers.FieldService, event.Service).
		Logger().WithContext(ctx)

	svcErr := consumer.coordinator.Ingest(ctx, event.Event())
	if svcErr != nil {
		loggers.Ctx(ctx).Debug().
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg(svcErr.Message)
		metricEventConsumedTotal.WithLabelValues(streamVisitEvent, svcErr.Code).Inc()
		return
	}
	metricEventConsumedTotal.WithLabelValues(streamVisitEvent, metrics.ValueNoError).Inc()
}
