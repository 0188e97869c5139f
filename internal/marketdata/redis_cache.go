package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL keeps a forecast for one day.
const DefaultCacheTTL = 24 * time.Hour

// RedisCache stores forecasts as JSON arrays in Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr. A zero ttl uses DefaultCacheTTL.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return NewRedisCacheFromClient(rdb, ttl)
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

var _ ForecastCache = (*RedisCache)(nil)

// Ping checks connectivity.
func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Get returns a cached forecast. Misses and unreadable entries both report false.
func (r *RedisCache) Get(ctx context.Context, key string) ([]float64, bool) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var out []float64
	if err := json.Unmarshal(val, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (r *RedisCache) Set(ctx context.Context, key string, returns []float64) error {
	b, err := json.Marshal(returns)
	if err != nil {
		return fmt.Errorf("encode forecast: %w", err)
	}
	if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache forecast %s: %w", key, err)
	}
	return nil
}

// Close releases the client.
func (r *RedisCache) Close() error { return r.client.Close() }
