package weather

import (
	"context"

	"go.uber.org/zap"

	"github.com/akozhamseitov/weather-api/internal/observability"
	"github.com/akozhamseitov/weather-api/internal/weather/types"
)

// Cache is the storage contract behind CachingFetcher. Keys are exact,
// case-sensitive city names.
type Cache interface {
	Get(ctx context.Context, city string) (types.Weather, bool)
	Set(ctx context.Context, city string, w types.Weather)
}

// CachingFetcher decorates another Fetcher with a Cache.
type CachingFetcher struct {
	inner  Fetcher
	cache  Cache
	logger *zap.Logger
}

// NewCachingFetcher returns a Fetcher that first looks in cache,
// falling back to inner on cache-miss. Only successful fetches are cached;
// errors of any kind leave the cache untouched.
func NewCachingFetcher(inner Fetcher, cache Cache, logger *zap.Logger) *CachingFetcher {
	return &CachingFetcher{inner: inner, cache: cache, logger: logger}
}

func (c *CachingFetcher) FetchCurrent(ctx context.Context, city string) (types.Weather, error) {
	if w, ok := c.cache.Get(ctx, city); ok {
		observability.CacheLookupsTotal.WithLabelValues("hit").Inc()
		c.logger.Debug("cache hit", zap.String("city", city))
		return w, nil
	}
	observability.CacheLookupsTotal.WithLabelValues("miss").Inc()

	w, err := c.inner.FetchCurrent(ctx, city)
	if err != nil {
		return w, err
	}

	c.cache.Set(ctx, city, w)
	return w, nil
}
