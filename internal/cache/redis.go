package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

// RedisConfig holds connection settings for the Redis stats cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// TTL bounds how long stats may be served without being recomputed.
	// Zero keeps entries until they are invalidated.
	TTL time.Duration

	// Prefix namespaces keys. Default: "tracker"
	Prefix string

	// DialTimeout bounds the initial connection check.
	// Default: 2 seconds
	DialTimeout time.Duration
}

// Redis is a Cache backed by a Redis server.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewRedis connects to Redis and verifies the connection with a PING.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 2 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return NewRedisWithClient(client, cfg.TTL, cfg.Prefix), nil
}

// NewRedisWithClient wraps an existing client, e.g. a cluster client.
func NewRedisWithClient(client redis.UniversalClient, ttl time.Duration, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Redis{client: client, ttl: ttl, prefix: prefix}
}

// GetStats returns cached stats for deckID, if present.
func (c *Redis) GetStats(ctx context.Context, deckID int64) (*models.DeckStats, bool) {
	key := StatsKey(c.prefix, deckID)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("stats cache: get %s failed: %v", key, err)
		return nil, false
	}

	var stats models.DeckStats
	if err := json.Unmarshal(data, &stats); err != nil {
		log.Printf("stats cache: dropping corrupt entry %s: %v", key, err)
		c.InvalidateStats(ctx, deckID)
		return nil, false
	}
	if stats.Opponents == nil {
		stats.Opponents = []*models.OpponentStats{}
	}

	return &stats, true
}

// errStaleStats aborts a SetStats whose generation is out of date.
var errStaleStats = errors.New("stats generation changed")

// Generation returns the invalidation count of deckID. A missing key is
// generation zero.
func (c *Redis) Generation(ctx context.Context, deckID int64) uint64 {
	key := GenerationKey(c.prefix, deckID)

	gen, err := c.client.Get(ctx, key).Uint64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("stats cache: get %s failed: %v", key, err)
	}
	return gen
}

// SetStats stores stats under stats.DeckID. The write runs in a
// WATCH/MULTI transaction on the generation key, so an invalidation that
// lands after generation was read discards it.
func (c *Redis) SetStats(ctx context.Context, stats *models.DeckStats, generation uint64) {
	if stats == nil {
		return
	}
	key := StatsKey(c.prefix, stats.DeckID)
	genKey := GenerationKey(c.prefix, stats.DeckID)

	data, err := json.Marshal(stats)
	if err != nil {
		log.Printf("stats cache: encode %s failed: %v", key, err)
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleStats
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil, errors.Is(err, errStaleStats), errors.Is(err, redis.TxFailedErr):
	default:
		log.Printf("stats cache: set %s failed: %v", key, err)
	}
}

// InvalidateStats drops the cached stats for deckID and advances its
// generation in one transaction.
func (c *Redis) InvalidateStats(ctx context.Context, deckID int64) {
	key := StatsKey(c.prefix, deckID)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(c.prefix, deckID))
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		log.Printf("stats cache: invalidate %s failed: %v", key, err)
	}
}

// Close closes the Redis client.
func (c *Redis) Close() error {
	return c.client.Close()
}
