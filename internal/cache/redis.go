// Package cache stores fetched page markup in Redis so repeat scrapes of the
// same page skip the network.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL keeps finished-game pages around long enough for a batch rerun
// without risking stale in-progress data on a fresh run.
const DefaultTTL = 6 * time.Hour

// PageCache is a Redis-backed page store keyed by URL.
type PageCache struct {
	client *redis.Client
}

// NewPageCache connects to Redis and verifies the connection.
func NewPageCache(redisURL string) (*PageCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &PageCache{client: client}, nil
}

// Close closes the Redis connection.
func (pc *PageCache) Close() error {
	return pc.client.Close()
}

// Client returns the underlying Redis client, for callers that share the
// connection (stream publishing).
func (pc *PageCache) Client() *redis.Client {
	return pc.client
}

// HealthCheck pings Redis to verify the connection.
func (pc *PageCache) HealthCheck(ctx context.Context) error {
	return pc.client.Ping(ctx).Err()
}

// Get returns the cached markup for a URL. The second result is false on a
// cache miss.
func (pc *PageCache) Get(ctx context.Context, url string) (string, bool, error) {
	body, err := pc.client.Get(ctx, pageKey(url)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return body, true, nil
}

// Set stores markup for a URL with the given TTL. A non-positive TTL falls
// back to DefaultTTL.
func (pc *PageCache) Set(ctx context.Context, url, body string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return pc.client.Set(ctx, pageKey(url), body, ttl).Err()
}

// Delete drops cached pages by URL.
func (pc *PageCache) Delete(ctx context.Context, urls ...string) error {
	keys := make([]string, len(urls))
	for i, u := range urls {
		keys[i] = pageKey(u)
	}
	return pc.client.Del(ctx, keys...).Err()
}

func pageKey(url string) string {
	return "fieldhouse:page:" + url
}
