// Package cache provides the Redis-backed pieces of the request path.
// The only consumer is the per-IP rate limiter guarding /graphql, so the
// client is tuned for many small script calls on the hot path.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the Redis client behind the rate limiter.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection. The pool stays
// small: every command this service issues is one Lua script evaluation
// per incoming GraphQL request.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 4
	opt.MinIdleConns = 1
	opt.DialTimeout = 2 * time.Second
	// Rate limit checks sit in front of every GraphQL request; a slow
	// Redis round trip must not stall the request longer than this.
	opt.ReadTimeout = 500 * time.Millisecond
	opt.WriteTimeout = 500 * time.Millisecond
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping checks Redis connectivity. Used by the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the underlying Redis client for tests.
func (c *Cache) Client() *redis.Client {
	return c.client
}
