package imagesearch

import (
	"fmt"
	"net/http"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/config"
	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/NomadCrew/nomad-crew-itinerary/pkg/pexels"
	"github.com/NomadCrew/nomad-crew-itinerary/pkg/unsplash"
	"github.com/redis/go-redis/v9"
)

const defaultProviderTimeout = 10 * time.Second

// NewEngineFromConfig builds the engine with Unsplash preferred over Pexels.
// A provider without a key is left out. When rdb is non-nil and a cache TTL
// is configured, searches go through the Redis cache.
func NewEngineFromConfig(cfg config.PhotosConfig, rdb redis.Cmdable) (*Engine, error) {
	log := logger.GetLogger().Named("enrichment")

	dict, err := LoadDictionaries(cfg.DictionaryFile)
	if err != nil {
		return nil, fmt.Errorf("load query dictionaries: %w", err)
	}

	timeout := defaultProviderTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	hc := &http.Client{Timeout: timeout}

	var sources []PhotoSource
	if cfg.UnsplashAccessKey != "" {
		sources = append(sources, unsplash.NewClient(cfg.UnsplashAccessKey, unsplash.WithHTTPClient(hc)))
	} else {
		log.Warn("UNSPLASH_ACCESS_KEY not set, Unsplash photos disabled")
	}
	if cfg.PexelsAPIKey != "" {
		sources = append(sources, pexels.NewClient(cfg.PexelsAPIKey, pexels.WithHTTPClient(hc)))
	} else {
		log.Warn("PEXELS_API_KEY not set, Pexels photos disabled")
	}

	providers := make([]*Provider, 0, len(sources))
	for _, src := range sources {
		if rdb != nil && cfg.CacheTTLSeconds > 0 {
			src = NewCachedSource(src, rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)
		}
		providers = append(providers, NewProvider(src, timeout))
	}

	log.Infow("Photo enrichment configured",
		"providers", len(providers),
		"cacheTTLSeconds", cfg.CacheTTLSeconds,
		"dictionaryFile", cfg.DictionaryFile)
	return NewEngine(NewRules(dict), providers...), nil
}
