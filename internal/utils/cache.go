package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // redis.Nil check
	"strconv"       // Generation suffix
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// DefaultCacheTTL is used when no TTL is configured
const DefaultCacheTTL = 60 * time.Second

// Cache is a JSON read-through cache on Redis. A nil Cache, or one without a
// client, is a valid no-op cache.
//
// Entries of one payment id are keyed by its generation. Readers take the
// generation before loading from the store; Invalidate bumps it, so a value
// loaded before the bump is written under a key nobody reads any more.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache wraps rdb; rdb may be nil to disable caching
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// AccountKey is the cache key of a public profile at generation gen
func AccountKey(paymentID string, gen int64) string {
	return "account:upi:" + paymentID + ":" + strconv.FormatInt(gen, 10)
}

// HistoryKey is the cache key of a transaction history at generation gen
func HistoryKey(paymentID string, gen int64) string {
	return "txhistory:upi:" + paymentID + ":" + strconv.FormatInt(gen, 10)
}

// GenerationKey holds the current generation of a payment id's entries
func GenerationKey(paymentID string) string { return "cachegen:upi:" + paymentID }

func (c *Cache) enabled() bool { return c != nil && c.rdb != nil }

// Get retrieves a value from Redis and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Bytes() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value as JSON with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if !c.enabled() {
		return nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// Generation returns the current generation of paymentID; 0 when never invalidated
func (c *Cache) Generation(ctx context.Context, paymentID string) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	gen, err := c.rdb.Get(ctx, GenerationKey(paymentID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil // Never invalidated
	}
	return gen, err
}

// Invalidate retires the cached profile and history of every payment id.
// Entries of the previous generation are deleted; late writers to them are
// never read again.
func (c *Cache) Invalidate(ctx context.Context, paymentIDs ...string) error {
	if !c.enabled() || len(paymentIDs) == 0 {
		return nil
	}
	incrs := make([]*redis.IntCmd, len(paymentIDs))
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range paymentIDs {
			incrs[i] = pipe.Incr(ctx, GenerationKey(id)) // New generation
		}
		return nil
	})
	if err != nil {
		return err
	}
	var stale []string
	for i, id := range paymentIDs {
		prev := incrs[i].Val() - 1
		stale = append(stale, AccountKey(id, prev), HistoryKey(id, prev))
	}
	return c.rdb.Del(ctx, stale...).Err()
}
