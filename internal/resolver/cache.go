// internal/resolver/cache.go
package resolver

import (
	"context"

	"github.com/valpere/SurveyRanker/pkg/types"
)

// URLResolver resolves one raw URL into a Resolution.
type URLResolver interface {
	Resolve(ctx context.Context, rawURL string) types.Resolution
}

// Cache memoizes resolution results per raw URL string (exact match, not
// normalized) for the duration of one run. For N occurrences of the same
// URL the underlying resolver runs at most once and all N callers observe
// the identical cached result; unresolved outcomes are cached the same
// way, so a URL that fails once is not retried within the run.
//
// Processing is strictly sequential, so the map is deliberately not
// synchronized. A concurrent pipeline must wrap this in its own
// single-flight layer to keep the at-most-once guarantee.
type Cache struct {
	resolver URLResolver
	entries  map[string]types.Resolution
	hits     int
	misses   int
}

// CacheStats summarizes cache effectiveness for run metrics.
type CacheStats struct {
	Hits   int
	Misses int
	Size   int
}

// NewCache creates a Cache over the given resolver.
func NewCache(resolver URLResolver) *Cache {
	return &Cache{
		resolver: resolver,
		entries:  make(map[string]types.Resolution),
	}
}

// GetOrResolve returns the cached resolution for rawURL, resolving and
// caching it on first sight.
func (c *Cache) GetOrResolve(ctx context.Context, rawURL string) types.Resolution {
	if res, ok := c.entries[rawURL]; ok {
		c.hits++
		return res
	}

	res := c.resolver.Resolve(ctx, rawURL)
	c.entries[rawURL] = res
	c.misses++
	return res
}

// Stats returns hit/miss counters and the number of distinct URLs seen.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits,
		Misses: c.misses,
		Size:   len(c.entries),
	}
}
