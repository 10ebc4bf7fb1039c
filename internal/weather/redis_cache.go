package weather

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/akozhamseitov/weather-api/internal/weather/types"
)

// RedisCache implements Cache on top of a Redis instance, for deployments
// where the cache should survive restarts or be shared between replicas.
// Redis failures are logged and treated as misses, never surfaced.
type RedisCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{redis: rdb, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, city string) (types.Weather, bool) {
	raw, err := c.redis.Get(ctx, "weather:"+city).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis GET failed", zap.Error(err))
		}
		return types.Weather{}, false
	}

	var w types.Weather
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		c.logger.Warn("cache unmarshal failed", zap.Error(err))
		return types.Weather{}, false
	}
	return w, true
}

func (c *RedisCache) Set(ctx context.Context, city string, w types.Weather) {
	blob, err := json.Marshal(w)
	if err != nil {
		c.logger.Warn("json marshal failed", zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, "weather:"+city, blob, c.ttl).Err(); err != nil {
		c.logger.Warn("redis SET failed", zap.Error(err))
	}
}
