package planner

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/Yeong-ho/jeju-onul-api/pkg/routing"
	"github.com/redis/go-redis/v9"
)

// legCacheTTL bounds how long a cached leg set is trusted. Traffic
// conditions and the underlying road graph both drift, so stale legs are
// worse than a cache miss.
const legCacheTTL = time.Hour

// legCache memoizes routing-collaborator responses for a given profile and
// ordered coordinate sequence in Redis, keyed by a hash of the sequence so
// the key stays a fixed, short length regardless of route size.
type legCache struct {
	rdb *redis.Client
}

func newLegCache(rdb *redis.Client) *legCache {
	return &legCache{rdb: rdb}
}

func legCacheKey(profile models.Profile, locations []models.Coordinate) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s", profile)
	for _, loc := range locations {
		fmt.Fprintf(h, "|%g,%g", loc[0], loc[1])
	}
	return "wave-planner:legs:" + hex.EncodeToString(h.Sum(nil))
}

func (c *legCache) get(ctx context.Context, profile models.Profile, locations []models.Coordinate) ([]routing.Leg, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, legCacheKey(profile, locations)).Bytes()
	if err != nil {
		return nil, false
	}

	var legs []routing.Leg
	if err := json.Unmarshal(raw, &legs); err != nil {
		return nil, false
	}

	return legs, true
}

func (c *legCache) set(ctx context.Context, profile models.Profile, locations []models.Coordinate, legs []routing.Leg) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(legs)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, legCacheKey(profile, locations), raw, legCacheTTL)
}
