package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	asOf := time.Date(2025, 7, 1, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "forecast:VAS:2025-07-01:730", CacheKey("vas", asOf, 730))
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	in := []float64{0.1, 0.2}
	require.NoError(t, c.Set(ctx, "k", in))
	in[0] = 99

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []float64{0.1, 0.2}, got, "stored values are copied")

	got[1] = 42
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, []float64{0.1, 0.2}, again, "returned values are copies")
}
