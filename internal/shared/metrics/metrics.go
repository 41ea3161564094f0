package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Every visit-analytics metric is named visit_analytics_<subsystem>_<name>.
const (
	Namespace = "visit_analytics"

	SubIngestion   = "ingestion"
	SubStream      = "stream"
	SubAggregation = "aggregation"
	SubRetention   = "retention"
	SubQuery       = "query"
	SubHTTP        = "http"
)

// Shared label names. Service names are bounded by the identifier charset, but each one still
// adds series, so only per-service gauges carry the service label.
const (
	FieldErrorCode = "error_code"
	FieldService   = "service"

	// ValueNoError is the error_code of a successful operation.
	ValueNoError = ""
)

type (
	CounterOpts   = prometheus.CounterOpts
	GaugeOpts     = prometheus.GaugeOpts
	HistogramOpts = prometheus.HistogramOpts
)

var DefBuckets = prometheus.DefBuckets

// The constructors register with the default registry, which Handler serves.
var (
	NewCounterVec   = promauto.NewCounterVec
	NewGaugeVec     = promauto.NewGaugeVec
	NewHistogramVec = promauto.NewHistogramVec
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
