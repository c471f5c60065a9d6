package imagesearch

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type searchMetrics struct {
	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	images           *prometheus.CounterVec
}

var (
	metricsInstance *searchMetrics
	metricsOnce     sync.Once
	defaultRegistry = prometheus.DefaultRegisterer
)

func newSearchMetrics() *searchMetrics {
	metricsOnce.Do(func() {
		metricsInstance = &searchMetrics{
			providerRequests: promauto.With(defaultRegistry).NewCounterVec(prometheus.CounterOpts{
				Name: "itinerary_photo_provider_requests_total",
				Help: "Photo provider searches by outcome (success, empty, error)",
			}, []string{"provider", "outcome"}),
			providerDuration: promauto.With(defaultRegistry).NewHistogramVec(prometheus.HistogramOpts{
				Name:    "itinerary_photo_provider_duration_seconds",
				Help:    "Latency of photo provider searches",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			}, []string{"provider"}),
			images: promauto.With(defaultRegistry).NewCounterVec(prometheus.CounterOpts{
				Name: "itinerary_enrichment_images_total",
				Help: "Candidate images seen during enrichment by outcome (accepted, duplicate)",
			}, []string{"outcome"}),
		}
	})
	return metricsInstance
}

// resetMetricsForTesting swaps in a fresh registry. Tests only.
func resetMetricsForTesting() {
	defaultRegistry = prometheus.NewRegistry()
	metricsInstance = nil
	metricsOnce = sync.Once{}
}
