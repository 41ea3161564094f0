package http

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"visit-analytics/internal/shared/loggers"
	"visit-analytics/internal/shared/svcerrors"
	"visit-analytics/internal/shared/ulid"

	"github.com/go-chi/chi/v5"
)

func setupMiddleware(router *chi.Mux, httpLogger loggers.Logger) {
	router.Use(mwRequestID(httpLogger))
	router.Use(mwAppResponseWriter)
	router.Use(mwPrometheus)
	router.Use(mwRequestCompletionLog)
	router.Use(mwRecoverer)
}

// mwRequestID reuses the caller's x-request-id or generates one, echoes it on the response
// and attaches a request-scoped logger to the context.
func mwRequestID(httpLogger loggers.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestID(r)
			if id == "" {
				id = ulid.NewULID()
				setRequestID(r, id)
			}
			w.Header().Set(headerRequestID, id)

			ctx := httpLogger.With().
				Str(loggers.FieldRequestID, id).
				Logger().WithContext(r.Context())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func mwAppResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(newAppResponseWriter(w, r.ProtoMajor), r)
	})
}

// mwPrometheus labels by route pattern, never by raw path: the path carries the service name.
func mwPrometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlight := metricHTTPInFlight.WithLabelValues(r.Method)
		inFlight.Inc()
		defer inFlight.Dec()

		start := time.Now()
		next.ServeHTTP(w, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		status := http.StatusOK
		errorCode := ""
		bytesWritten := 0
		if appWriter, ok := w.(*appResponseWriter); ok {
			status = appWriter.StatusOrOK()
			errorCode = appWriter.ErrorCode()
			bytesWritten = appWriter.BytesWritten()
		}
		statusStr := strconv.Itoa(status)

		metricHTTPRequestsTotal.WithLabelValues(r.Method, route, statusStr, errorCode).Inc()
		metricHTTPRequestDuration.WithLabelValues(r.Method, route, statusStr).Observe(time.Since(start).Seconds())
		metricHTTPResponseBytes.WithLabelValues(r.Method, route).Observe(float64(bytesWritten))
	})
}

func mwRequestCompletionLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			event := loggers.Ctx(r.Context()).Info().
				Str(loggers.FieldHttpMethod, r.Method).
				Str(loggers.FieldHttpPath, r.URL.Path).
				Int64(loggers.FieldDuration, time.Since(start).Milliseconds())

			if appWriter, ok := w.(*appResponseWriter); ok {
				event = event.
					Int(loggers.FieldHttpStatus, appWriter.StatusOrOK()).
					Int(loggers.FieldHttpBytes, appWriter.BytesWritten())
				if service := appWriter.Service(); service != "" {
					event = event.Str(loggers.FieldService, service)
				}
				if code := appWriter.ErrorCode(); code != "" {
					event = event.Str(loggers.FieldErrorCode, code)
				}
			}
			event.Msg("request completed")
		}()

		next.ServeHTTP(w, r)
	})
}

func mwRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				loggers.Ctx(r.Context()).Error().
					Bytes(loggers.FieldErrorStack, debug.Stack()).
					Msgf("http panic recovered: %v", p)

				panicErr, ok := p.(error)
				if !ok {
					panicErr = fmt.Errorf("%v", p)
				}
				writeErrorResponse(w, r, svcerrors.NewInternalErrorPanic(panicErr))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// mwServiceParam records the {service} route parameter for the outer middlewares, which
// run before chi has matched the route.
func mwServiceParam(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if appWriter, ok := w.(*appResponseWriter); ok {
			appWriter.SetService(serviceParam(r))
		}
		next.ServeHTTP(w, r)
	})
}

// mwQueryTimeout bounds read queries. The query service checks the context between day
// buckets and answers QRY_9000 once the deadline passes. A zero timeout disables it.
func mwQueryTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
