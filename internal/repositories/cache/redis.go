package cache

import (
	"time"

	"smartdash/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the client from the REDIS_* settings. Timeouts are
// short because every caller falls back to postgres on a cache error.
func NewRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}
