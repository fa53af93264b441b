package planner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/veldra/planforge/internal/domain"
)

// planCache memoizes plan results. Resolution is pure and deterministic
// over an immutable catalog, so a cached result is exact; the catalog
// hash in the key invalidates everything on reload. Cached results are
// shared and must be treated as read-only by callers.
type planCache struct {
	lru *expirable.LRU[string, *domain.PlanResult]
}

// newPlanCache creates a plan cache. size is the maximum number of
// cached plans, ttl the time-to-live per entry.
func newPlanCache(size int, ttl time.Duration) *planCache {
	return &planCache{
		lru: expirable.NewLRU[string, *domain.PlanResult](size, nil, ttl),
	}
}

func (c *planCache) Get(key string) (*domain.PlanResult, bool) {
	return c.lru.Get(key)
}

func (c *planCache) Set(key string, result *domain.PlanResult) {
	c.lru.Add(key, result)
}

func (c *planCache) Purge() {
	c.lru.Purge()
}

// cacheKey derives a stable key from everything the result depends on:
// catalog content, target item and rate, projection mode and the recipe
// selections in sorted order.
func cacheKey(catalogHash string, req domain.PlanRequest) string {
	var sb strings.Builder
	sb.WriteString(catalogHash)
	fmt.Fprintf(&sb, "|%s|%g|%s", req.ItemID, req.Rate, req.Mode)

	if len(req.Selections) > 0 {
		keys := make([]string, 0, len(req.Selections))
		for k := range req.Selections {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "|%s=%s", k, req.Selections[k])
		}
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
