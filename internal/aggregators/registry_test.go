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

func ingest(t *testing.T, coordinator aggregators.RollupCoordinator, service string, ts time.Time, ip string) {
	t.Helper()
	event := &models.Event{
		Service:   service,
		Timestamp: ts,
		IP:        ip,
		Path:      "/",
		Browser:   "Firefox",
		Platform:  "Linux",
	}
	require.Nil(t, coordinator.Ingest(context.Background(), event))
}

func TestServiceRegistry_Services(t *testing.T) {
	t.Parallel()

	registry := aggregators.NewServiceRegistry(aggregators.NewExactCardinality, nil)
	coordinator := aggregators.NewRollupCoordinator(registry, aggregators.RetentionWindow{})

	assert.Equal(t, []string{}, registry.Services())

	now := time.Now().UTC()
	ingest(t, coordinator, "shop", now, "1.1.1.1")
	ingest(t, coordinator, "blog", now, "1.1.1.1")

	// a store without days is not reported
	_, err := registry.GetOrCreateStore("empty")
	require.NoError(t, err)

	assert.Equal(t, []string{"blog", "shop"}, registry.Services())
	assert.Len(t, registry.Stores(), 3)

	_, ok := registry.Store("missing")
	assert.False(t, ok)
}

func TestServiceRegistry_GetOrCreateStore_SameInstance(t *testing.T) {
	t.Parallel()

	registry := aggregators.NewServiceRegistry(aggregators.NewExactCardinality, nil)

	first, err := registry.GetOrCreateStore("blog")
	require.NoError(t, err)
	second, err := registry.GetOrCreateStore("blog")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestServiceRegistry_Close_ArchivesEveryDay(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hook := aggregatormocks.NewMockEvictionHook(ctrl)
	registry := aggregators.NewServiceRegistry(aggregators.NewExactCardinality, hook)
	coordinator := aggregators.NewRollupCoordinator(registry, aggregators.RetentionWindow{})

	day1 := time.Date(2025, 12, 27, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 12, 28, 10, 0, 0, 0, time.UTC)
	ingest(t, coordinator, "blog", day1, "1.1.1.1")
	ingest(t, coordinator, "blog", day2, "1.1.1.1")
	ingest(t, coordinator, "shop", day2, "2.2.2.2")

	archived := make(map[string]int64)
	hook.EXPECT().Archive(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, summary *models.DaySummary) error {
			archived[summary.Service+"/"+summary.Date.String()] = summary.Visits
			return nil
		}).Times(3)

	require.NoError(t, registry.Close(context.Background()))
	assert.Equal(t, map[string]int64{
		"blog/2025-12-27": 1,
		"blog/2025-12-28": 1,
		"shop/2025-12-28": 1,
	}, archived)

	assert.Empty(t, registry.Services())
	_, err := registry.GetOrCreateStore("blog")
	assert.ErrorIs(t, err, aggregators.ErrRegistryClosed)

	// closing twice is a no-op
	require.NoError(t, registry.Close(context.Background()))
}

func TestServiceRegistry_Close_ArchiveFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hook := aggregatormocks.NewMockEvictionHook(ctrl)
	registry := aggregators.NewServiceRegistry(aggregators.NewExactCardinality, hook)
	coordinator := aggregators.NewRollupCoordinator(registry, aggregators.RetentionWindow{})
	ingest(t, coordinator, "blog", time.Now(), "1.1.1.1")

	hook.EXPECT().Archive(gomock.Any(), gomock.Any()).Return(assert.AnError)

	err := registry.Close(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
