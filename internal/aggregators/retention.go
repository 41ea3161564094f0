package aggregators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"visit-analytics/internal/models"
	"visit-analytics/internal/shared/loggers"
	"visit-analytics/internal/shared/metrics"
)

const (
	RetentionPolicyPurge  = "purge"
	RetentionPolicyFreeze = "freeze"
)

// RetentionWindow is the number of days kept open, today included. Zero keeps every day.
type RetentionWindow struct {
	Days int
}

// Cutoff returns the oldest retained day at now. It returns false when every day is retained.
func (w RetentionWindow) Cutoff(now time.Time) (models.Day, bool) {
	if w.Days <= 0 {
		return "", false
	}
	return models.DayOf(now).AddDays(-w.Days + 1), true
}

// EvictionHook receives the summary of a day before it leaves the open set.
//
//go:generate mockgen -source=retention.go -destination=./mocks/retention_mock.go -package=mocks
type EvictionHook interface {
	Archive(ctx context.Context, summary *models.DaySummary) error
}

// SweepResult reports what one sweep changed.
type SweepResult struct {
	Frozen   int
	Purged   int
	Archived int
}

// RetentionSweeper moves days that fell out of the retention window to their final state.
type RetentionSweeper interface {
	// Sweep freezes or purges every day older than the window at now.
	// A day whose archive fails is kept and retried on the next sweep.
	Sweep(ctx context.Context, now time.Time) (*SweepResult, error)
}

type retentionSweeper struct {
	registry     ServiceRegistry
	window       RetentionWindow
	policy       string
	evictionHook EvictionHook
}

// NewRetentionSweeper creates a sweeper. evictionHook may be nil to disable archiving.
func NewRetentionSweeper(registry ServiceRegistry, window RetentionWindow, policy string, evictionHook EvictionHook) (RetentionSweeper, error) {
	switch policy {
	case RetentionPolicyPurge, RetentionPolicyFreeze:
	default:
		return nil, fmt.Errorf("unsupported retention policy: %q", policy)
	}
	return &retentionSweeper{
		registry:     registry,
		window:       window,
		policy:       policy,
		evictionHook: evictionHook,
	}, nil
}

func (s *retentionSweeper) Sweep(ctx context.Context, now time.Time) (*SweepResult, error) {
	result := &SweepResult{}
	cutoff, ok := s.window.Cutoff(now)
	if !ok {
		return result, nil
	}

	var errs []error
	for _, store := range s.registry.Stores() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		var err error
		if s.policy == RetentionPolicyFreeze {
			err = s.freeze(ctx, store, cutoff, result)
		} else {
			err = s.purge(ctx, store, cutoff, result)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	if result.Frozen > 0 || result.Purged > 0 {
		loggers.Ctx(ctx).Info().
			Str("cutoff", cutoff.String()).
			Int("frozen", result.Frozen).
			Int("purged", result.Purged).
			Int("archived", result.Archived).
			Msg("retention sweep completed")
	}
	return result, errors.Join(errs...)
}

func (s *retentionSweeper) freeze(ctx context.Context, store *DayBucketStore, cutoff models.Day, result *SweepResult) error {
	var errs []error
	for _, agg := range store.Before(cutoff) {
		if agg.Frozen() {
			continue
		}
		summary := agg.Summary()
		summary.Frozen = true
		if err := s.archive(ctx, summary); err != nil {
			errs = append(errs, err)
			continue
		}
		if agg.Freeze() {
			result.Frozen++
			metricDaysEvictedTotal.WithLabelValues(s.policy, metrics.ValueNoError).Inc()
		}
		if s.evictionHook != nil {
			result.Archived++
		}
	}
	return errors.Join(errs...)
}

func (s *retentionSweeper) purge(ctx context.Context, store *DayBucketStore, cutoff models.Day, result *SweepResult) error {
	var errs []error
	victims := make([]models.Day, 0)
	for _, agg := range store.Before(cutoff) {
		if err := s.archive(ctx, agg.Summary()); err != nil {
			errs = append(errs, err)
			continue
		}
		if s.evictionHook != nil {
			result.Archived++
		}
		victims = append(victims, agg.Date())
	}

	removed := store.Remove(victims)
	result.Purged += removed
	metricRetainedDays.WithLabelValues(store.Service()).Set(float64(store.Len()))
	metricDaysEvictedTotal.WithLabelValues(s.policy, metrics.ValueNoError).Add(float64(removed))
	return errors.Join(errs...)
}

func (s *retentionSweeper) archive(ctx context.Context, summary *models.DaySummary) error {
	if s.evictionHook == nil {
		return nil
	}
	if err := s.evictionHook.Archive(ctx, summary); err != nil {
		svcErr := errInternalArchiveFailed(err)
		metricDaysArchivedTotal.WithLabelValues(svcErr.Code).Inc()
		metricDaysEvictedTotal.WithLabelValues(s.policy, svcErr.Code).Inc()
		loggers.Ctx(ctx).Error().Err(err).
			Str(loggers.FieldService, summary.Service).
			Str(loggers.FieldDate, summary.Date.String()).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("failed to archive day, keeping it for the next sweep")
		return svcErr
	}
	metricDaysArchivedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}
