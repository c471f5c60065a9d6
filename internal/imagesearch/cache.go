package imagesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "photos"

// CachedSource memoises non-empty search results in Redis. Redis failures
// are logged and the live source is used.
type CachedSource struct {
	source PhotoSource
	rdb    redis.Cmdable
	ttl    time.Duration
}

func NewCachedSource(source PhotoSource, rdb redis.Cmdable, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, rdb: rdb, ttl: ttl}
}

func (c *CachedSource) Name() string { return c.source.Name() }

func cacheKey(provider string, count int, query string) string {
	return fmt.Sprintf("%s:%s:%d:%s", cacheKeyPrefix, provider, count, query)
}

func (c *CachedSource) SearchPhotos(ctx context.Context, query string, count int) ([]string, error) {
	log := logger.GetLogger()
	key := cacheKey(c.source.Name(), count, query)

	raw, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var urls []string
		if jsonErr := json.Unmarshal([]byte(raw), &urls); jsonErr == nil && len(urls) > 0 {
			return urls, nil
		}
		log.Warnw("Discarding malformed photo cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		log.Warnw("Photo cache read failed", "key", key, "error", err)
	}

	urls, err := c.source.SearchPhotos(ctx, query, count)
	if err != nil || len(urls) == 0 {
		return urls, err
	}

	payload, err := json.Marshal(urls)
	if err == nil {
		if setErr := c.rdb.Set(ctx, key, string(payload), c.ttl).Err(); setErr != nil {
			log.Warnw("Photo cache write failed", "key", key, "error", setErr)
		}
	}
	return urls, nil
}
