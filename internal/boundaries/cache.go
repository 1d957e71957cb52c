package boundaries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DistrictLens/DL-Backend/internal/metrics"
)

// ResultCache memoizes resolved lookups in Redis, keyed by the coordinate
// rounded to ~1 meter. Boundary data never changes within a deployment, so a
// long TTL is safe; the cache only exists to skip the containment scan for
// hot map regions. A nil client disables caching entirely — every method is
// safe to call on a zero-value cache.
type ResultCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResultCache(rdb *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{rdb: rdb, ttl: ttl}
}

func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("dlens:lookup:%.5f,%.5f", lat, lng)
}

func (c *ResultCache) Get(ctx context.Context, lat, lng float64) (LookupResult, bool) {
	if c == nil || c.rdb == nil {
		return LookupResult{}, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(lat, lng)).Bytes()
	if err != nil {
		metrics.CacheMissesTotal.Inc()
		return LookupResult{}, false
	}
	var result LookupResult
	if err := json.Unmarshal(raw, &result); err != nil {
		metrics.CacheMissesTotal.Inc()
		return LookupResult{}, false
	}
	metrics.CacheHitsTotal.Inc()
	return result, true
}

// Set stores a resolved result. Load failures are never cached: the UI tells
// users to retry those, and a later deploy may fix the boundary source.
func (c *ResultCache) Set(ctx context.Context, lat, lng float64, result LookupResult) {
	if c == nil || c.rdb == nil {
		return
	}
	if !result.Success && result.Error == ErrLoadFailure {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	// Best effort; a cache write failure never surfaces to the caller.
	_ = c.rdb.Set(ctx, cacheKey(lat, lng), raw, c.ttl).Err()
}
