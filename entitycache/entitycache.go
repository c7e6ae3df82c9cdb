// Package entitycache implements the "ecache" abstraction from spec.md §3
// and §4.9: a cache from a word's first token to its matching entity rows,
// avoiding repeated database queries for repeated initials within (or, for
// the redis-backed implementation, across) pipeline runs.
package entitycache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hagstofa/toknun/entitydb"
)

// Cache stores and retrieves cached entity rows by first word.
type Cache interface {
	Get(ctx context.Context, word string) ([]entitydb.Row, bool, error)
	Set(ctx context.Context, word string, rows []entitydb.Row) error
}

// MemoryCache is an in-process map, scoped to the lifetime of one pipeline
// run (spec.md §3 "Entity cache ... lifetime of one pipeline run").
type MemoryCache struct {
	mu   sync.RWMutex
	rows map[string][]entitydb.Row
}

// NewMemoryCache builds an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{rows: make(map[string][]entitydb.Row)}
}

func (c *MemoryCache) Get(_ context.Context, word string) ([]entitydb.Row, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows, ok := c.rows[word]
	return rows, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, word string, rows []entitydb.Row) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows[word] = rows
	return nil
}

// RedisCache persists the entity cache across pipeline runs in a
// long-lived service process (SPEC_FULL.md §B), backed by
// redis/go-redis/v9. Entries expire after TTL so a stale entity catalog
// doesn't linger forever.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache wraps client. prefix namespaces keys (e.g. "toknun:ecache:").
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, word string) ([]entitydb.Row, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+word).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var rows []entitydb.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

func (c *RedisCache) Set(ctx context.Context, word string, rows []entitydb.Row) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+word, data, c.ttl).Err()
}
