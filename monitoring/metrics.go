package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

var (
	DatabaseQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total database queries",
		},
	)

	// RepositorySoftFailures counts store errors that were logged and
	// converted to empty results instead of being surfaced.
	RepositorySoftFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repository_soft_failures_total",
			Help: "Store errors degraded to empty results, by entity",
		},
		[]string{"entity"},
	)
)

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DatabaseQueries)
	prometheus.MustRegister(RepositorySoftFailures)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
