package weather

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/akozhamseitov/weather-api/internal/config"
	"github.com/akozhamseitov/weather-api/internal/weather/openweathermap"
)

// BuildCachingFetcher constructs the Fetcher used by the whole service:
// 1) Builds the OpenWeatherMap provider client
// 2) Decorates it with a cache — Redis when REDIS_ADDR is configured,
//    a bounded in-process cache otherwise
func BuildCachingFetcher(cfg *config.Config, logger *zap.Logger) (Fetcher, error) {
	base, err := openweathermap.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("openweathermap client: %w", err)
	}

	var cache Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("redis ping failed: %w", err)
		}
		cache = NewRedisCache(rdb, cfg.CacheTTL, logger)
		logger.Info("using redis weather cache", zap.String("addr", cfg.RedisAddr))
	} else {
		cache = NewMemoryCache(cfg.CacheCapacity, cfg.CacheTTL)
		logger.Info("using in-memory weather cache",
			zap.Int("capacity", cfg.CacheCapacity),
			zap.Duration("ttl", cfg.CacheTTL),
		)
	}

	return NewCachingFetcher(base, cache, logger), nil
}
