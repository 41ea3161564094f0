package aggregators

import (
	"context"
	"errors"
	"sort"
	"sync"

	"visit-analytics/internal/models"
	"visit-analytics/internal/shared/loggers"
	"visit-analytics/internal/shared/metrics"
)

// ServiceRegistry owns one DayBucketStore per monitored service.
//
//go:generate mockgen -source=registry.go -destination=./mocks/registry_mock.go -package=mocks
type ServiceRegistry interface {
	// Store returns the store of service if it exists.
	Store(service string) (*DayBucketStore, bool)
	// GetOrCreateStore returns the store of service, creating it when missing.
	// It returns ErrRegistryClosed after Close.
	GetOrCreateStore(service string) (*DayBucketStore, error)
	// Stores returns every store ordered by service name.
	Stores() []*DayBucketStore
	// Services returns the names of services holding at least one day, sorted.
	Services() []string
	// Close archives every day through the eviction hook, when one is set, and drops all stores.
	Close(ctx context.Context) error
}

type serviceRegistry struct {
	mu     sync.RWMutex
	stores map[string]*DayBucketStore
	closed bool

	newCardinality CardinalityFactory
	evictionHook   EvictionHook
}

// NewServiceRegistry creates an empty registry. evictionHook may be nil.
func NewServiceRegistry(newCardinality CardinalityFactory, evictionHook EvictionHook) ServiceRegistry {
	return &serviceRegistry{
		stores:         make(map[string]*DayBucketStore),
		newCardinality: newCardinality,
		evictionHook:   evictionHook,
	}
}

func (r *serviceRegistry) Store(service string) (*DayBucketStore, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	store, ok := r.stores[service]
	return store, ok
}

func (r *serviceRegistry) GetOrCreateStore(service string) (*DayBucketStore, error) {
	r.mu.RLock()
	store, ok := r.stores[service]
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return nil, ErrRegistryClosed
	}
	if ok {
		return store, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrRegistryClosed
	}
	if store, ok := r.stores[service]; ok {
		return store, nil
	}
	store = NewDayBucketStore(service, r.newCardinality)
	r.stores[service] = store
	return store, nil
}

func (r *serviceRegistry) Stores() []*DayBucketStore {
	r.mu.RLock()
	out := make([]*DayBucketStore, 0, len(r.stores))
	for _, store := range r.stores {
		out = append(out, store)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Service() < out[j].Service() })
	return out
}

func (r *serviceRegistry) Services() []string {
	services := make([]string, 0)
	for _, store := range r.Stores() {
		if store.Len() > 0 {
			services = append(services, store.Service())
		}
	}
	return services
}

func (r *serviceRegistry) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	stores := r.stores
	r.stores = make(map[string]*DayBucketStore)
	r.mu.Unlock()

	if r.evictionHook == nil {
		return nil
	}

	logger := loggers.Ctx(ctx)
	var errs []error
	for _, store := range stores {
		for _, agg := range store.Range(models.DateRange{}) {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			if err := r.evictionHook.Archive(ctx, agg.Summary()); err != nil {
				svcErr := errInternalArchiveFailed(err)
				metricDaysArchivedTotal.WithLabelValues(svcErr.Code).Inc()
				logger.Error().Err(err).
					Str(loggers.FieldService, store.Service()).
					Str(loggers.FieldDate, agg.Date().String()).
					Msg("failed to archive day on registry close")
				errs = append(errs, svcErr)
				continue
			}
			metricDaysArchivedTotal.WithLabelValues(metrics.ValueNoError).Inc()
		}
	}
	return errors.Join(errs...)
}
