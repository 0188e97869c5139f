package marketdata

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ForecastCache stores forecast paths between runs so repeated projections
// on the same day do not hit the rate-limited provider again.
type ForecastCache interface {
	Get(ctx context.Context, key string) ([]float64, bool)
	Set(ctx context.Context, key string, returns []float64) error
}

// CacheKey identifies a forecast by symbol, as-of date and horizon.
func CacheKey(symbol string, asOf time.Time, horizonDays int) string {
	return fmt.Sprintf("forecast:%s:%s:%d", strings.ToUpper(symbol), asOf.Format("2006-01-02"), horizonDays)
}

// MemoryCache is an in-process ForecastCache.
type MemoryCache struct {
	mu   sync.RWMutex
	Data map[string][]float64
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{Data: make(map[string][]float64)}
}

var _ ForecastCache = (*MemoryCache)(nil)

func (m *MemoryCache) Get(_ context.Context, key string) ([]float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.Data[key]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(val))
	copy(out, val)
	return out, true
}

func (m *MemoryCache) Set(_ context.Context, key string, returns []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	val := make([]float64, len(returns))
	copy(val, returns)
	m.Data[key] = val
	return nil
}
