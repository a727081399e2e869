package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the dashboard service.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec   // labels: route, status
	RequestDuration *prometheus.HistogramVec // labels: route

	// Dataset gauges, set once after the CSV load.
	DatasetRecords     prometheus.Gauge
	DatasetCities      prometheus.Gauge
	DatasetLoadSeconds prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crimescope",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and response status.",
		}, []string{"route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crimescope",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crimescope",
			Name:      "dataset_records",
			Help:      "Number of city-year records loaded.",
		}),
		DatasetCities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crimescope",
			Name:      "dataset_cities",
			Help:      "Number of distinct cities loaded.",
		}),
		DatasetLoadSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crimescope",
			Name:      "dataset_load_seconds",
			Help:      "Wall-clock time spent loading the dataset at startup.",
		}),
	}

	prometheus.MustRegister(
		m.HTTPRequests,
		m.RequestDuration,
		m.DatasetRecords,
		m.DatasetCities,
		m.DatasetLoadSeconds,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		HTTPRequests:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "crimescope", Name: "http_requests_total"}, []string{"route", "status"}),
		RequestDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "crimescope", Name: "http_request_duration_seconds"}, []string{"route"}),
		DatasetRecords:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "crimescope", Name: "dataset_records"}),
		DatasetCities:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "crimescope", Name: "dataset_cities"}),
		DatasetLoadSeconds: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "crimescope", Name: "dataset_load_seconds"}),
	}
}
