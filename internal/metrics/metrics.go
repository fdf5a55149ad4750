package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors of the lookup pipeline.
type Metrics struct {
	Lookups         *prometheus.CounterVec
	ResolverErrors  *prometheus.CounterVec
	ResolverSeconds *prometheus.HistogramVec
	SurfaceErrors   prometheus.Counter
	LiveMarkers     prometheus.Gauge
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "pinpoint_lookups_total",
			Help: "Total number of postal code lookups by outcome and failing stage.",
		}, []string{"outcome", "stage"}),
		ResolverErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "pinpoint_resolver_errors_total",
			Help: "Total number of transport errors returned by the directory or geocoding provider.",
		}, []string{"stage"}),
		ResolverSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pinpoint_resolver_request_duration_seconds",
			Help:    "Duration of requests to the directory and geocoding providers.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage", "provider"}),
		SurfaceErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "pinpoint_surface_errors_total",
			Help: "Total number of failed map surface mutations.",
		}),
		LiveMarkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "pinpoint_live_markers",
			Help: "Number of markers currently placed by the lookup pipeline.",
		}),
	}
}
