package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the airport service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Lookup Metrics
	LookupsTotal   *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Dataset Metrics
	DatasetRowsLoaded *prometheus.GaugeVec
}

// NewMetricsRegistry registers every metric on reg and returns the registry.
// Pass prometheus.DefaultRegisterer in the server and a fresh prometheus.NewRegistry() in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airportd_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airportd_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "airportd_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		// Lookup Metrics
		LookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airportd_airport_lookups_total",
				Help: "Airport lookups by backend and outcome (found, not_found, error)",
			},
			[]string{"backend", "outcome"},
		),
		LookupDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airportd_airport_lookup_duration_seconds",
				Help:    "Time spent resolving an airport in the store, in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"backend"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airportd_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airportd_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Dataset Metrics
		DatasetRowsLoaded: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airportd_dataset_rows_loaded",
				Help: "Rows inserted by the last dataset load, by relation",
			},
			[]string{"relation"},
		),
	}
}
