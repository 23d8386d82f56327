// Package cache holds computed deck statistics between requests.
package cache

import (
	"context"
	"fmt"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

// Cache stores computed deck statistics. Implementations never fail a
// request: lookups that error are reported as misses, and write errors are
// logged.
type Cache interface {
	// GetStats returns cached stats for deckID, if present.
	GetStats(ctx context.Context, deckID int64) (*models.DeckStats, bool)

	// Generation returns the invalidation count of deckID. Read it before
	// loading the stats that will be passed to SetStats.
	Generation(ctx context.Context, deckID int64) uint64

	// SetStats stores stats under stats.DeckID unless the deck has been
	// invalidated since generation was read.
	SetStats(ctx context.Context, stats *models.DeckStats, generation uint64)

	// InvalidateStats drops the cached stats for deckID and advances its
	// generation.
	InvalidateStats(ctx context.Context, deckID int64)

	// Close releases any connection held by the cache.
	Close() error
}

// StatsKey returns the key stats for deckID are stored under.
func StatsKey(prefix string, deckID int64) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s:stats:%d", prefix, deckID)
}

// GenerationKey returns the key holding the generation of deckID.
func GenerationKey(prefix string, deckID int64) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s:gen:%d", prefix, deckID)
}

// DefaultPrefix namespaces every key written by the tracker.
const DefaultPrefix = "tracker"

// Noop is a Cache that stores nothing.
type Noop struct{}

// NewNoop returns a cache that always misses.
func NewNoop() Noop {
	return Noop{}
}

func (Noop) GetStats(context.Context, int64) (*models.DeckStats, bool) { return nil, false }
func (Noop) Generation(context.Context, int64) uint64                  { return 0 }
func (Noop) SetStats(context.Context, *models.DeckStats, uint64)       {}
func (Noop) InvalidateStats(context.Context, int64)                    {}
func (Noop) Close() error                                              { return nil }
