package aggregators_test

import (
	"context"
	"testing"
	"time"

	"visit-analytics/internal/aggregators"
	aggregatormocks "visit-analytics/internal/aggregators/mocks"
	"visit-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// seedDays ingests one event per day for 2025-12-20 .. 2025-12-28.
func seedDays(t *testing.T, registry aggregators.ServiceRegistry) {
	t.Helper()
	coordinator := aggregators.NewRollupCoordinator(registry, aggregators.RetentionWindow{})
	for d := 20; d <= 28; d++ {
		ingest(t, coordinator, "blog", time.Date(2025, 12, d, 12, 0, 0, 0, time.UTC), "1.1.1.1")
	}
}

var sweepNow = time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)

func TestRetentionSweeper_Purge(t *testing.T) {
	t.Parallel()

	registry := aggregators.NewServiceRegistry(aggregators.NewExactCardinality, nil)
	seedDays(t, registry)

	sweeper, err := aggregators.NewRetentionSweeper(registry, aggregators.RetentionWindow{Days: 3},
		aggregators.RetentionPolicyPurge, nil)
	require.NoError(t, err)

	result, err := sweeper.Sweep(context.Background(), sweepNow)
	require.NoError(t, err)
	assert.Equal(t, &aggregators.SweepResult{Purged: 6}, result)

	store, _ := registry.Store("blog")
	assert.Equal(t, []models.Day{"2025-12-26", "2025-12-27", "2025-12-28"}, store.Days())

	// a second sweep has nothing left to do
	result, err = sweeper.Sweep(context.Background(), sweepNow)
	require.NoError(t, err)
	assert.Equal(t, &aggregators.SweepResult{}, result)
}

func TestRetentionSweeper_PurgeArchivesFirst(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := aggregators.NewServiceRegistry(aggregators.NewExactCardinality, nil)
	seedDays(t, registry)

	hook := aggregatormocks.NewMockEvictionHook(ctrl)
	sweeper, err := aggregators.NewRetentionSweeper(registry, aggregators.RetentionWindow{Days: 7},
		aggregators.RetentionPolicyPurge, hook)
	require.NoError(t, err)

	var archivedDays []models.Day
	hook.EXPECT().Archive(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, summary *models.DaySummary) error {
			assert.Equal(t, "blog", summary.Service)
			assert.Equal(t, int64(1), summary.Visits)
			archivedDays = append(archivedDays, summary.Date)
			return nil
		}).Times(2)

	result, err := sweeper.Sweep(context.Background(), sweepNow)
	require.NoError(t, err)
	assert.Equal(t, &aggregators.SweepResult{Purged: 2, Archived: 2}, result)
	assert.Equal(t, []models.Day{"2025-12-20", "2025-12-21"}, archivedDays)
}

func TestRetentionSweeper_ArchiveFailureKeepsDay(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := aggregators.NewServiceRegistry(aggregators.NewExactCardinality, nil)
	seedDays(t, registry)

	hook := aggregatormocks.NewMockEvictionHook(ctrl)
	sweeper, err := aggregators.NewRetentionSweeper(registry, aggregators.RetentionWindow{Days: 8},
		aggregators.RetentionPolicyPurge, hook)
	require.NoError(t, err)

	hook.EXPECT().Archive(gomock.Any(), gomock.Any()).Return(assert.AnError)

	result, err := sweeper.Sweep(context.Background(), sweepNow)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, &aggregators.SweepResult{}, result)

	store, _ := registry.Store("blog")
	_, ok := store.Get("2025-12-20")
	assert.True(t, ok, "day must stay until it is archived")
}

func TestRetentionSweeper_Freeze(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := aggregators.NewServiceRegistry(aggregators.NewExactCardinality, nil)
	seedDays(t, registry)

	hook := aggregatormocks.NewMockEvictionHook(ctrl)
	sweeper, err := aggregators.NewRetentionSweeper(registry, aggregators.RetentionWindow{Days: 5},
		aggregators.RetentionPolicyFreeze, hook)
	require.NoError(t, err)

	hook.EXPECT().Archive(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, summary *models.DaySummary) error {
			assert.True(t, summary.Frozen)
			return nil
		}).Times(4)

	result, err := sweeper.Sweep(context.Background(), sweepNow)
	require.NoError(t, err)
	assert.Equal(t, &aggregators.SweepResult{Frozen: 4, Archived: 4}, result)

	store, _ := registry.Store("blog")
	assert.Len(t, store.Days(), 9, "frozen days stay in the store")
	for _, day := range store.Days() {
		agg, _ := store.Get(day)
		assert.Equal(t, day.Before("2025-12-24"), agg.Frozen(), "day %s", day)
	}

	// already frozen days are not frozen or archived again
	result, err = sweeper.Sweep(context.Background(), sweepNow)
	require.NoError(t, err)
	assert.Equal(t, &aggregators.SweepResult{}, result)
}

func TestRetentionSweeper_FrozenAndPurgedAreExclusive(t *testing.T) {
	t.Parallel()

	registry := aggregators.NewServiceRegistry(aggregators.NewExactCardinality, nil)
	seedDays(t, registry)

	freezer, err := aggregators.NewRetentionSweeper(registry, aggregators.RetentionWindow{Days: 5},
		aggregators.RetentionPolicyFreeze, nil)
	require.NoError(t, err)
	_, err = freezer.Sweep(context.Background(), sweepNow)
	require.NoError(t, err)

	purger, err := aggregators.NewRetentionSweeper(registry, aggregators.RetentionWindow{Days: 5},
		aggregators.RetentionPolicyPurge, nil)
	require.NoError(t, err)
	result, err := purger.Sweep(context.Background(), sweepNow)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Purged)

	store, _ := registry.Store("blog")
	for _, day := range store.Days() {
		agg, _ := store.Get(day)
		assert.False(t, agg.Frozen(), "remaining day %s is open", day)
	}
}

func TestRetentionSweeper_KeepForever(t *testing.T) {
	t.Parallel()

	registry := aggregators.NewServiceRegistry(aggregators.NewExactCardinality, nil)
	seedDays(t, registry)

	sweeper, err := aggregators.NewRetentionSweeper(registry, aggregators.RetentionWindow{},
		aggregators.RetentionPolicyPurge, nil)
	require.NoError(t, err)

	result, err := sweeper.Sweep(context.Background(), sweepNow)
	require.NoError(t, err)
	assert.Equal(t, &aggregators.SweepResult{}, result)

	store, _ := registry.Store("blog")
	assert.Len(t, store.Days(), 9)
}

func TestNewRetentionSweeper_UnknownPolicy(t *testing.T) {
	t.Parallel()

	registry := aggregators.NewServiceRegistry(aggregators.NewExactCardinality, nil)
	sweeper, err := aggregators.NewRetentionSweeper(registry, aggregators.RetentionWindow{Days: 1}, "delete", nil)
	assert.Error(t, err)
	assert.Nil(t, sweeper)
}
