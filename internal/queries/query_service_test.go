package queries_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"visit-analytics/internal/aggregators"
	"visit-analytics/internal/models"
	"visit-analytics/internal/queries"
	"visit-analytics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visit struct {
	day     int // December 2025
	ip      string
	path    string
	browser string
	gen     *float64
}

func ptr(f float64) *float64 {
	return &f
}

func newTestQueryService(t *testing.T, service string, visits []visit) queries.QueryService {
	t.Helper()
	registry := aggregators.NewServiceRegistry(aggregators.NewExactCardinality, nil)
	coordinator := aggregators.NewRollupCoordinator(registry, aggregators.RetentionWindow{})
	for i, v := range visits {
		event := &models.Event{
			Service:        service,
			Timestamp:      time.Date(2025, 12, v.day, 10, i%60, 0, 0, time.UTC),
			IP:             v.ip,
			Path:           v.path,
			Browser:        v.browser,
			Platform:       "Linux",
			GenerationTime: v.gen,
		}
		require.Nil(t, coordinator.Ingest(context.Background(), event))
	}
	return queries.NewQueryService(registry)
}

func TestQueryService_Count(t *testing.T) {
	t.Parallel()

	svc := newTestQueryService(t, "blog", []visit{
		{day: 29, ip: "10.0.0.1", path: "/"},
		{day: 28, ip: "10.0.0.1", path: "/"},
		{day: 28, ip: "10.0.0.2", path: "/"},
		{day: 28, ip: "10.0.0.1", path: "/a"},
		{day: 28, ip: "10.0.0.3", path: "/a"},
	})

	for _, field := range []string{"", "ip", " IP "} {
		points, err := svc.Count(context.Background(), "blog", field, models.DateRange{})
		require.NoError(t, err)
		assert.Equal(t, []models.CountPoint{
			{Date: "2025-12-28", Visits: 4, Unique: 3},
			{Date: "2025-12-29", Visits: 1, Unique: 1},
		}, points, "field %q", field)
	}
}

func TestQueryService_Count_SameEventTwice(t *testing.T) {
	t.Parallel()

	svc := newTestQueryService(t, "blog", []visit{
		{day: 28, ip: "10.0.0.1", path: "/"},
		{day: 28, ip: "10.0.0.1", path: "/"},
	})

	points, err := svc.Count(context.Background(), "blog", "ip", models.DateRange{})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, int64(2), points[0].Visits)
	assert.Equal(t, int64(1), points[0].Unique)
}

func TestQueryService_Count_DateRange(t *testing.T) {
	t.Parallel()

	svc := newTestQueryService(t, "blog", []visit{
		{day: 26, ip: "a"}, {day: 27, ip: "a"}, {day: 28, ip: "a"}, {day: 29, ip: "a"},
	})

	points, err := svc.Count(context.Background(), "blog", "", models.DateRange{Start: "2025-12-27", Stop: "2025-12-28"})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, models.Day("2025-12-27"), points[0].Date)
	assert.Equal(t, models.Day("2025-12-28"), points[1].Date)
}

func TestQueryService_Average(t *testing.T) {
	t.Parallel()

	svc := newTestQueryService(t, "blog", []visit{
		{day: 28, ip: "a", gen: ptr(2)},
		{day: 28, ip: "a", gen: ptr(4)},
		{day: 28, ip: "a", gen: ptr(6)},
		{day: 28, ip: "a"},
		{day: 29, ip: "a"},
	})

	points, err := svc.Average(context.Background(), "blog", "generation_time", models.DateRange{})
	require.NoError(t, err)
	require.Len(t, points, 2)

	require.NotNil(t, points[0].Avg)
	assert.InDelta(t, 4.0, *points[0].Avg, 1e-9)
	assert.InDelta(t, 12.0, points[0].Sum, 1e-9)
	assert.Equal(t, int64(3), points[0].Count)

	assert.Nil(t, points[1].Avg, "a day without measurements has no average")
	assert.Equal(t, int64(0), points[1].Count)

	encoded, err := json.Marshal(points[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-12-29","avg":null,"sum":0,"count":0}`, string(encoded))
}

func TestQueryService_GroupBy(t *testing.T) {
	t.Parallel()

	var visits []visit
	for i := 0; i < 5; i++ {
		visits = append(visits, visit{day: 28, ip: "x", path: "a"})
	}
	for i := 0; i < 3; i++ {
		visits = append(visits, visit{day: 28, ip: "x", path: "c"}, visit{day: 28, ip: "x", path: "b"})
	}
	visits = append(visits, visit{day: 27, ip: "x", path: "z"})
	svc := newTestQueryService(t, "blog", visits)

	tests := []struct {
		name     string
		limit    int
		expected []models.GroupPoint
	}{
		{
			name:  "top 2 breaks ties by group",
			limit: 2,
			expected: []models.GroupPoint{
				{Date: "2025-12-27", Group: "z", Count: 1},
				{Date: "2025-12-28", Group: "a", Count: 5},
				{Date: "2025-12-28", Group: "b", Count: 3},
			},
		},
		{
			name:  "no limit returns all",
			limit: 0,
			expected: []models.GroupPoint{
				{Date: "2025-12-27", Group: "z", Count: 1},
				{Date: "2025-12-28", Group: "a", Count: 5},
				{Date: "2025-12-28", Group: "b", Count: 3},
				{Date: "2025-12-28", Group: "c", Count: 3},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			points, err := svc.GroupBy(context.Background(), "blog", "path", tt.limit, models.DateRange{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, points)
		})
	}
}

func TestQueryService_GroupBy_TotalsEqualVisits(t *testing.T) {
	t.Parallel()

	svc := newTestQueryService(t, "blog", []visit{
		{day: 28, ip: "a", browser: "Firefox"},
		{day: 28, ip: "b", browser: "Chrome"},
		{day: 28, ip: "c", browser: models.UnknownGroup},
	})

	points, err := svc.GroupBy(context.Background(), "blog", "browser", 0, models.DateRange{})
	require.NoError(t, err)

	var total int64
	for _, p := range points {
		total += p.Count
	}
	assert.Equal(t, int64(3), total)
}

func TestQueryService_UnsupportedField(t *testing.T) {
	t.Parallel()

	svc := newTestQueryService(t, "blog", []visit{{day: 28, ip: "a", path: "/"}})
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
	}{
		{name: "count by path", run: func() error { _, err := svc.Count(ctx, "blog", "path", models.DateRange{}); return err }},
		{name: "count by unknown", run: func() error { _, err := svc.Count(ctx, "blog", "referrer", models.DateRange{}); return err }},
		{name: "average of ip", run: func() error { _, err := svc.Average(ctx, "blog", "ip", models.DateRange{}); return err }},
		{name: "group by ip", run: func() error { _, err := svc.GroupBy(ctx, "blog", "ip", 0, models.DateRange{}); return err }},
		{name: "group by empty", run: func() error { _, err := svc.GroupBy(ctx, "blog", "", 0, models.DateRange{}); return err }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.run()
			require.ErrorIs(t, err, queries.ErrUnsupportedField)
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok)
			assert.Equal(t, "QRY_1000", svcErr.Code)
			assert.Equal(t, 400, svcErr.HttpStatusCode)
		})
	}
}

func TestQueryService_EmptyResults(t *testing.T) {
	t.Parallel()

	svc := newTestQueryService(t, "blog", []visit{{day: 28, ip: "a", path: "/"}})
	ctx := context.Background()
	future := models.DateRange{Start: "2026-01-01"}

	counts, err := svc.Count(ctx, "unknown-service", "", models.DateRange{})
	require.NoError(t, err)
	assert.NotNil(t, counts)
	assert.Empty(t, counts)

	averages, err := svc.Average(ctx, "blog", "", future)
	require.NoError(t, err)
	encoded, err := json.Marshal(averages)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(encoded))

	groups, err := svc.GroupBy(ctx, "blog", "path", 5, future)
	require.NoError(t, err)
	encoded, err = json.Marshal(groups)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(encoded))

	dashboard, err := svc.Dashboard(ctx, "unknown-service", 5, models.DateRange{})
	require.NoError(t, err)
	encoded, err = json.Marshal(dashboard)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"overview": {},
		"time": {"elements": []},
		"paths": {"elements": []},
		"browsers": {"elements": []},
		"platforms": {"elements": []}
	}`, string(encoded))
}

func TestQueryService_Dashboard(t *testing.T) {
	t.Parallel()

	svc := newTestQueryService(t, "blog", []visit{
		{day: 28, ip: "a", path: "/", browser: "Firefox", gen: ptr(1)},
		{day: 28, ip: "b", path: "/", browser: "Chrome", gen: ptr(3)},
		{day: 28, ip: "b", path: "/about", browser: "Chrome"},
		{day: 29, ip: "c", path: "/", browser: "Firefox"},
	})

	dashboard, err := svc.Dashboard(context.Background(), "blog", 1, models.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, map[models.Day]models.OverviewPoint{
		"2025-12-28": {Visits: 3, Unique: 2},
		"2025-12-29": {Visits: 1, Unique: 1},
	}, dashboard.Overview)

	require.Len(t, dashboard.Time.Elements, 2)
	require.NotNil(t, dashboard.Time.Elements[0].Avg)
	assert.InDelta(t, 2.0, *dashboard.Time.Elements[0].Avg, 1e-9)
	assert.Nil(t, dashboard.Time.Elements[1].Avg)

	assert.Equal(t, []models.GroupPoint{
		{Date: "2025-12-28", Group: "/", Count: 2},
		{Date: "2025-12-29", Group: "/", Count: 1},
	}, dashboard.Paths.Elements)
	assert.Equal(t, []models.GroupPoint{
		{Date: "2025-12-28", Group: "Chrome", Count: 2},
		{Date: "2025-12-29", Group: "Firefox", Count: 1},
	}, dashboard.Browsers.Elements)
	assert.Equal(t, []models.GroupPoint{
		{Date: "2025-12-28", Group: "Linux", Count: 3},
		{Date: "2025-12-29", Group: "Linux", Count: 1},
	}, dashboard.Platforms.Elements)
}

func TestQueryService_Cancelled(t *testing.T) {
	t.Parallel()

	svc := newTestQueryService(t, "blog", []visit{{day: 28, ip: "a", path: "/"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Count(ctx, "blog", "", models.DateRange{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = svc.GroupBy(ctx, "blog", "path", 0, models.DateRange{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = svc.Dashboard(ctx, "blog", 0, models.DateRange{})
	require.ErrorIs(t, err, context.Canceled)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "QRY_9000", svcErr.Code)
	assert.Equal(t, 503, svcErr.HttpStatusCode)
	assert.False(t, svcErr.IsInternalError())

	_, err = svc.Services(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// the data is untouched
	points, err := svc.Count(context.Background(), "blog", "", models.DateRange{})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, int64(1), points[0].Visits)
}

func TestQueryService_Services(t *testing.T) {
	t.Parallel()

	svc := newTestQueryService(t, "blog", []visit{{day: 28, ip: "a"}})

	services, err := svc.Services(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"blog"}, services)
}
