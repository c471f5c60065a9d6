package imagesearch

import (
	"context"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"go.uber.org/zap"
)

// PhotoSource is a keyword photo search backend such as the Unsplash or
// Pexels client.
type PhotoSource interface {
	Name() string
	SearchPhotos(ctx context.Context, query string, count int) ([]string, error)
}

// Provider wraps a PhotoSource so a failed search reads as "no results".
// Errors are logged and counted, never returned.
type Provider struct {
	source  PhotoSource
	timeout time.Duration
	log     *zap.SugaredLogger
	metrics *searchMetrics
}

// NewProvider returns nil for a nil source; a nil Provider searches nothing.
func NewProvider(source PhotoSource, timeout time.Duration) *Provider {
	if source == nil {
		return nil
	}
	return &Provider{
		source:  source,
		timeout: timeout,
		log:     logger.GetLogger().Named("photo-provider"),
		metrics: newSearchMetrics(),
	}
}

func (p *Provider) Name() string {
	if p == nil {
		return ""
	}
	return p.source.Name()
}

// Search returns up to count URLs in the provider's relevance order.
func (p *Provider) Search(ctx context.Context, query string, count int) []string {
	if p == nil || count <= 0 {
		return nil
	}
	name := p.source.Name()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	urls, err := p.source.SearchPhotos(ctx, query, count)
	p.metrics.providerDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		p.metrics.providerRequests.WithLabelValues(name, "error").Inc()
		p.log.Warnw("Photo provider call failed",
			"provider", name,
			"query", query,
			"error", err)
		return nil
	}
	if len(urls) == 0 {
		p.metrics.providerRequests.WithLabelValues(name, "empty").Inc()
		return nil
	}
	p.metrics.providerRequests.WithLabelValues(name, "success").Inc()
	if len(urls) > count {
		urls = urls[:count]
	}
	return urls
}
