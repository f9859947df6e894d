package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus collectors
type Metrics struct {
	DispatchTotal   *prometheus.CounterVec
	DispatchLatency *prometheus.HistogramVec
	CharacterFetch  *prometheus.CounterVec
	UploadBytes     prometheus.Histogram
}

// NewMetrics registers the application collectors on the default registry
func NewMetrics() *Metrics {
	return &Metrics{
		DispatchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_dispatch_total",
			Help: "LLM dispatches by provider kind and outcome",
		}, []string{"provider", "outcome"}),
		DispatchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chat_dispatch_duration_seconds",
			Help:    "Round-trip time of LLM dispatches",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}, []string{"provider"}),
		CharacterFetch: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "character_host_requests_total",
			Help: "Requests to the character media host by operation and outcome",
		}, []string{"operation", "outcome"}),
		UploadBytes: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "character_upload_bytes",
			Help:    "Size of uploaded character portraits",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		}),
	}
}
