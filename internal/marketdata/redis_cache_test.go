package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a Redis container and returns a client connected to it.
func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err, "failed to get redis endpoint")

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisCache_RoundTrip(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	cache := NewRedisCacheFromClient(client, time.Minute)
	require.NoError(t, cache.Ping(ctx))

	key := CacheKey("VAS", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3)
	_, ok := cache.Get(ctx, key)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, key, []float64{0.05, -0.01, 0.02}))
	got, ok := cache.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, []float64{0.05, -0.01, 0.02}, got)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestRedisCache_UnreadableEntryIsMiss(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "forecast:BAD", "not json", 0).Err())

	_, ok := NewRedisCacheFromClient(client, 0).Get(ctx, "forecast:BAD")
	assert.False(t, ok)
}

func TestNewRedisCacheFromClient_DefaultTTL(t *testing.T) {
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: "localhost:0"}), 0)
	defer c.Close()
	assert.Equal(t, DefaultCacheTTL, c.ttl)
}
