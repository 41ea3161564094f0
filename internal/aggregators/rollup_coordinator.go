package aggregators

import (
	"context"
	"time"

	"visit-analytics/internal/models"
	"visit-analytics/internal/shared/loggers"
	"visit-analytics/internal/shared/metrics"
	"visit-analytics/internal/shared/svcerrors"
)

// RollupCoordinator routes normalized events to the day aggregate of their service and date.
//
//go:generate mockgen -source=rollup_coordinator.go -destination=./mocks/rollup_coordinator_mock.go -package=mocks
type RollupCoordinator interface {
	// Ingest applies event to its day aggregate, creating the aggregate on the first event of the day.
	// A rejected event leaves every aggregate untouched.
	Ingest(ctx context.Context, event *models.Event) *svcerrors.ServiceError
}

type rollupCoordinator struct {
	registry  ServiceRegistry
	retention RetentionWindow
	now       func() time.Time
}

func NewRollupCoordinator(registry ServiceRegistry, retention RetentionWindow) RollupCoordinator {
	return &rollupCoordinator{
		registry:  registry,
		retention: retention,
		now:       time.Now,
	}
}

func (c *rollupCoordinator) Ingest(ctx context.Context, event *models.Event) *svcerrors.ServiceError {
	svcErr := c.ingest(ctx, event)
	if svcErr != nil {
		metricEventsRolledUpTotal.WithLabelValues(svcErr.Code).Inc()
		return svcErr
	}
	metricEventsRolledUpTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}

func (c *rollupCoordinator) ingest(ctx context.Context, event *models.Event) *svcerrors.ServiceError {
	day := event.Day()
	if cutoff, ok := c.retention.Cutoff(c.now()); ok && day.Before(cutoff) {
		return errOutsideRetention(day, cutoff)
	}

	store, err := c.registry.GetOrCreateStore(event.Service)
	if err != nil {
		return errInternalRegistryClosed()
	}

	agg, created := store.GetOrCreate(day)
	if created {
		loggers.Ctx(ctx).Debug().
			Str(loggers.FieldService, event.Service).
			Str(loggers.FieldDate, day.String()).
			Msg("created day aggregate")
		metricDayAggregateCreatedTotal.WithLabelValues(event.Service).Inc()
		metricRetainedDays.WithLabelValues(event.Service).Inc()
	}

	if !agg.Apply(event) {
		return errDayFrozen(event.Service, day)
	}
	return nil
}
