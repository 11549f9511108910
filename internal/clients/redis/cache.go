package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/mia-backend/internal/observability"
	"github.com/yungbote/mia-backend/internal/platform/logger"
)

// Cache is the TTL cache used for catalog queries and mechanic extractions.
// Miss is reported as (false, nil); errors are reserved for broken transport
// or undecodable payloads.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Close() error
}

type redisCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewCache connects to the Redis named by REDIS_ADDR. Callers that can run
// without Redis should fall back to NewMemoryCache when this fails.
func NewCache(log *logger.Logger) (Cache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisCache{
		log: log.With("service", "RedisCache"),
		rdb: rdb,
	}, nil
}

func (c *redisCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		observability.Current().IncCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		observability.Current().IncCache("redis", "error")
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("redis decode %s: %w", key, err)
	}
	observability.Current().IncCache("redis", "hit")
	return true, nil
}

func (c *redisCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Close() error {
	return c.rdb.Close()
}

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryCache is the in-process fallback used when no Redis is
// configured. Entries are dropped lazily on read.
func NewMemoryCache() Cache {
	return &memoryCache{entries: map[string]memoryEntry{}}
}

func (c *memoryCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		observability.Current().IncCache("memory", "miss")
		return false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		observability.Current().IncCache("memory", "miss")
		return false, nil
	}
	if err := json.Unmarshal(e.raw, out); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	observability.Current().IncCache("memory", "hit")
	return true, nil
}

func (c *memoryCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	e := memoryEntry{raw: raw}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	c.entries = map[string]memoryEntry{}
	c.mu.Unlock()
	return nil
}
