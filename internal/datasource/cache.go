package datasource

import (
	"context"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/race-edge/internal/models"
)

// CachedForecastSource is a read-through cache over a ForecastSource.
// Toplines files change a couple of times a day, so repeated scans inside
// the TTL reuse the previous fetch. Market data is never cached.
type CachedForecastSource struct {
	source ForecastSource
	cache  *cache.Cache
	ttl    time.Duration

	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewCachedForecastSource wraps a forecast source with a TTL cache
func NewCachedForecastSource(source ForecastSource, ttl time.Duration) *CachedForecastSource {
	return &CachedForecastSource{
		source: source,
		cache:  cache.New(ttl, ttl*2),
		ttl:    ttl,
	}
}

// Name returns the name of the underlying data source
func (c *CachedForecastSource) Name() string {
	return c.source.Name()
}

// FetchToplines returns cached rows when fresh, fetching through otherwise.
// Callers get a copy; mutating the result never poisons the cache.
func (c *CachedForecastSource) FetchToplines(ctx context.Context, filename string) ([]models.ForecastRecord, error) {
	if cached, found := c.cache.Get(filename); found {
		c.mu.Lock()
		c.hitCount++
		c.mu.Unlock()
		if rows, ok := cached.([]models.ForecastRecord); ok {
			return copyRecords(rows), nil
		}
	}

	c.mu.Lock()
	c.missCount++
	c.mu.Unlock()

	rows, err := c.source.FetchToplines(ctx, filename)
	if err != nil {
		return nil, err
	}

	c.cache.Set(filename, copyRecords(rows), c.ttl)
	return rows, nil
}

// Invalidate drops one cached file
func (c *CachedForecastSource) Invalidate(filename string) {
	c.cache.Delete(filename)
}

// Stats returns cache hit and miss counts
func (c *CachedForecastSource) Stats() (hits, misses uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hitCount, c.missCount
}

func copyRecords(rows []models.ForecastRecord) []models.ForecastRecord {
	out := make([]models.ForecastRecord, len(rows))
	copy(out, rows)
	return out
}
