package fetch

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/fieldhouse/internal/cache"
)

// Cached wraps a Fetcher with a Redis page cache. Cache failures are logged
// and degrade to a direct fetch; the cache is an accelerator, never a
// dependency.
type Cached struct {
	inner Fetcher
	pages *cache.PageCache
	ttl   time.Duration
}

// WithCache returns a caching fetcher. A non-positive ttl uses the cache
// package default.
func WithCache(inner Fetcher, pages *cache.PageCache, ttl time.Duration) *Cached {
	return &Cached{inner: inner, pages: pages, ttl: ttl}
}

func (c *Cached) Fetch(ctx context.Context, url string) (string, error) {
	if body, ok, err := c.pages.Get(ctx, url); err != nil {
		log.Printf("[fetch] ⚠️ cache read failed for %s: %v", url, err)
	} else if ok {
		return body, nil
	}

	body, err := c.inner.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if err := c.pages.Set(ctx, url, body, c.ttl); err != nil {
		log.Printf("[fetch] ⚠️ cache write failed for %s: %v", url, err)
	}
	return body, nil
}
