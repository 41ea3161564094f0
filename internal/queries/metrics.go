package queries

import (
	"visit-analytics/internal/shared/metrics"
)

var (
	metricQueryTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubQuery,
			Name:      "query_total",
		},
		[]string{"query", metrics.FieldErrorCode},
	)
)

const (
	queryCount     = "count"
	queryAverage   = "average"
	queryGroupBy   = "groupby"
	queryDashboard = "dashboard"
	queryServices  = "services"
)
