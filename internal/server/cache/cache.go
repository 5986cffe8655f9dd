// Package cache keeps read-mostly catalog data in Redis. Entries are keyed by
// a global version number; bumping the version orphans every old entry, which
// then ages out through its TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sonchiik/Workout-Traker/internal/logging"
)

const versionKey = "catalog:version"

// Cache is a versioned JSON cache. A nil *Cache or one without a client
// calls the loader every time.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    logging.Logger
}

// New wraps client. Redis failures inside FetchJSON are reported to log and
// never reach the caller; a nil log discards them.
func New(client *redis.Client, ttl time.Duration, log logging.Logger) *Cache {
	if log == nil {
		log = logging.Discard()
	}
	return &Cache{client: client, ttl: ttl, log: log.With("module", "catalog_cache")}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

// Version returns the current cache version, initialising it to 1.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) || (err == nil && ver <= 0) {
		// SetNX keeps a concurrent Bump from being overwritten.
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey joins parts and appends the current version.
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if !c.enabled() {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchJSON decodes the cached value at key into dest, or calls loader and
// stores its result. Loader errors are returned as is and never cached.
// Redis errors and undecodable entries are logged and fall through to the
// loader, so an unhealthy Redis only costs a database round trip.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c.enabled() {
		payload, err := c.client.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			if err := json.Unmarshal(payload, dest); err == nil {
				return nil
			}
			c.log.Warn(ctx, "cache entry undecodable", "key", key)
		case !errors.Is(err, redis.Nil):
			c.log.Warn(ctx, "cache get failed", "key", key, "error", err)
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.enabled() {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn(ctx, "cache set failed", "key", key, "error", err)
		}
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalidates every entry built with the previous version.
func (c *Cache) Bump(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Incr(ctx, versionKey).Err()
}
