package queries

import (
	"context"

	"visit-analytics/internal/aggregators"
	"visit-analytics/internal/models"
	"visit-analytics/internal/shared/loggers"
	"visit-analytics/internal/shared/metrics"
	"visit-analytics/internal/shared/svcerrors"

	"golang.org/x/sync/errgroup"
)

// QueryService answers read-only queries over the retained day aggregates of a service.
// Every series is ordered by date ascending. An unknown service or a range without data
// gives an empty series, never an error.
//
//go:generate mockgen -source=query_service.go -destination=./mocks/query_service_mock.go -package=mocks
type QueryService interface {
	// Count returns visits and unique visitors per day. field must be empty or "ip".
	Count(ctx context.Context, service string, field string, dr models.DateRange) ([]models.CountPoint, error)
	// Average returns the running average per day. field must be empty or "generation_time".
	Average(ctx context.Context, service string, field string, dr models.DateRange) ([]models.AveragePoint, error)
	// GroupBy returns, for each day, the limit most frequent values of field ordered by count
	// desc then group. A limit <= 0 returns every value.
	GroupBy(ctx context.Context, service string, field string, limit int, dr models.DateRange) ([]models.GroupPoint, error)
	// Dashboard builds the overview, time, paths, browsers and platforms series concurrently.
	Dashboard(ctx context.Context, service string, limit int, dr models.DateRange) (*models.Dashboard, error)
	// Services returns the services holding retained data, sorted by name.
	Services(ctx context.Context) ([]string, error)
}

type queryService struct {
	registry aggregators.ServiceRegistry
}

func NewQueryService(registry aggregators.ServiceRegistry) QueryService {
	return &queryService{registry: registry}
}

func (s *queryService) Count(ctx context.Context, service string, field string, dr models.DateRange) ([]models.CountPoint, error) {
	if field != "" {
		f, err := models.ParseField(field)
		if err != nil || !f.Countable() {
			return nil, s.fail(ctx, queryCount, errUnsupportedField(queryCount, field))
		}
	}

	result, err := s.count(ctx, service, dr)
	if err != nil {
		return nil, s.fail(ctx, queryCount, err)
	}
	s.succeed(queryCount)
	return result, nil
}

func (s *queryService) Average(ctx context.Context, service string, field string, dr models.DateRange) ([]models.AveragePoint, error) {
	if field != "" {
		f, err := models.ParseField(field)
		if err != nil || !f.Averageable() {
			return nil, s.fail(ctx, queryAverage, errUnsupportedField(queryAverage, field))
		}
	}

	result, err := s.average(ctx, service, dr)
	if err != nil {
		return nil, s.fail(ctx, queryAverage, err)
	}
	s.succeed(queryAverage)
	return result, nil
}

func (s *queryService) GroupBy(ctx context.Context, service string, field string, limit int, dr models.DateRange) ([]models.GroupPoint, error) {
	f, err := models.ParseField(field)
	if err != nil {
		return nil, s.fail(ctx, queryGroupBy, errUnsupportedField(queryGroupBy, field))
	}
	dim, ok := f.Dimension()
	if !ok {
		return nil, s.fail(ctx, queryGroupBy, errUnsupportedField(queryGroupBy, field))
	}

	result, err := s.groupBy(ctx, service, dim, limit, dr)
	if err != nil {
		return nil, s.fail(ctx, queryGroupBy, err)
	}
	s.succeed(queryGroupBy)
	return result, nil
}

func (s *queryService) Dashboard(ctx context.Context, service string, limit int, dr models.DateRange) (*models.Dashboard, error) {
	dashboard := models.NewEmptyDashboard()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := s.count(gctx, service, dr)
		if err != nil {
			return err
		}
		for _, p := range counts {
			dashboard.Overview[p.Date] = models.OverviewPoint{Visits: p.Visits, Unique: p.Unique}
		}
		return nil
	})
	g.Go(func() error {
		averages, err := s.average(gctx, service, dr)
		if err != nil {
			return err
		}
		dashboard.Time.Elements = averages
		return nil
	})

	groupSeries := []struct {
		dim    models.Dimension
		series *models.Series[models.GroupPoint]
	}{
		{dim: models.DimensionPath, series: &dashboard.Paths},
		{dim: models.DimensionBrowser, series: &dashboard.Browsers},
		{dim: models.DimensionPlatform, series: &dashboard.Platforms},
	}
	for _, gs := range groupSeries {
		gs := gs
		g.Go(func() error {
			points, err := s.groupBy(gctx, service, gs.dim, limit, dr)
			if err != nil {
				return err
			}
			gs.series.Elements = points
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, s.fail(ctx, queryDashboard, err)
	}
	s.succeed(queryDashboard)
	return dashboard, nil
}

func (s *queryService) Services(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.fail(ctx, queryServices, errQueryCancelled(err))
	}
	s.succeed(queryServices)
	return s.registry.Services(), nil
}

// days returns the aggregates of the range in date order, or nil for an unknown service.
func (s *queryService) days(service string, dr models.DateRange) []*aggregators.DayAggregate {
	store, ok := s.registry.Store(service)
	if !ok {
		return nil
	}
	return store.Range(dr)
}

func (s *queryService) count(ctx context.Context, service string, dr models.DateRange) ([]models.CountPoint, error) {
	days := s.days(service, dr)
	result := make([]models.CountPoint, 0, len(days))
	for _, agg := range days {
		if err := ctx.Err(); err != nil {
			return nil, errQueryCancelled(err)
		}
		visits, unique := agg.Counts()
		result = append(result, models.CountPoint{Date: agg.Date(), Visits: visits, Unique: unique})
	}
	return result, nil
}

func (s *queryService) average(ctx context.Context, service string, dr models.DateRange) ([]models.AveragePoint, error) {
	days := s.days(service, dr)
	result := make([]models.AveragePoint, 0, len(days))
	for _, agg := range days {
		if err := ctx.Err(); err != nil {
			return nil, errQueryCancelled(err)
		}
		avg, sum, count := agg.Average()
		result = append(result, models.AveragePoint{Date: agg.Date(), Avg: avg, Sum: sum, Count: count})
	}
	return result, nil
}

func (s *queryService) groupBy(ctx context.Context, service string, dim models.Dimension, limit int, dr models.DateRange) ([]models.GroupPoint, error) {
	days := s.days(service, dr)
	result := make([]models.GroupPoint, 0, len(days))
	for _, agg := range days {
		if err := ctx.Err(); err != nil {
			return nil, errQueryCancelled(err)
		}
		for _, gc := range agg.Groups(dim, limit) {
			result = append(result, models.GroupPoint{Date: agg.Date(), Group: gc.Group, Count: gc.Count})
		}
	}
	return result, nil
}

func (s *queryService) succeed(query string) {
	metricQueryTotal.WithLabelValues(query, metrics.ValueNoError).Inc()
}

func (s *queryService) fail(ctx context.Context, query string, err error) error {
	code := svcerrors.CodeOf(err)
	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldErrorCode, code).
		Err(err).
		Msgf("%s query failed", query)
	metricQueryTotal.WithLabelValues(query, code).Inc()
	return err
}
