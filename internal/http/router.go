package http

import (
	"net/http"
	"time"

	"visit-analytics/internal/ingestors"
	"visit-analytics/internal/queries"
	"visit-analytics/internal/shared/loggers"
	"visit-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router. Read queries run under queryTimeout;
// event ingestion is bounded by the server's read and write timeouts instead.
func NewRouter(ingestionService ingestors.IngestionService, queryService queries.QueryService, httpLogger loggers.Logger, queryTimeout time.Duration) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	ingestEventsHandler := NewIngestEventsHandler(ingestionService)
	servicesHandler := NewServicesHandler(queryService)
	countHandler := NewCountHandler(queryService)
	averageHandler := NewAverageHandler(queryService)
	groupByHandler := NewGroupByHandler(queryService)
	dashboardHandler := NewDashboardHandler(queryService)

	router.With(mwQueryTimeout(queryTimeout)).Get("/services", errorHandlingAdapter(servicesHandler))
	router.Route("/services/{service}", func(r chi.Router) {
		r.Use(mwServiceParam)
		r.Post("/events", errorHandlingAdapter(ingestEventsHandler))

		r.Group(func(r chi.Router) {
			r.Use(mwQueryTimeout(queryTimeout))
			r.Get("/count", errorHandlingAdapter(countHandler))
			r.Get("/average", errorHandlingAdapter(averageHandler))
			r.Get("/groupby", errorHandlingAdapter(groupByHandler))
			r.Get("/dashboard", errorHandlingAdapter(dashboardHandler))
		})
	})
	router.Get("/metrics", metrics.Handler().ServeHTTP)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return router
}
