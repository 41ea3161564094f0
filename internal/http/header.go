package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	headerRequestID      = "x-request-id"
	headerContentType    = "content-type"
	headerIdempotencyKey = "idempotency-key"
)

// Route and query parameters of the /services API.
const (
	paramService = "service"

	queryField = "field"
	queryLimit = "limit"
	queryStart = "start"
	queryStop  = "stop"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

func contentType(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerContentType))
}

// idempotencyKey is optional; the ingestion service generates a batch ID without one.
func idempotencyKey(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerIdempotencyKey))
}

// serviceParam is "" outside the /services/{service} routes.
func serviceParam(r *http.Request) string {
	return chi.URLParam(r, paramService)
}

func queryParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

func dateRangeParams(r *http.Request) (start, stop string) {
	q := r.URL.Query()
	return strings.TrimSpace(q.Get(queryStart)), strings.TrimSpace(q.Get(queryStop))
}
