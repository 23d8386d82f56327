package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

// Tracker is the set of storage operations the handlers need.
// *storage.Service satisfies it.
type Tracker interface {
	RegisterDeck(ctx context.Context, name string) (*models.Deck, error)
	ListDecks(ctx context.Context) ([]*models.Deck, error)
	GetDeck(ctx context.Context, id int64) (*models.Deck, error)
	RecordMatch(ctx context.Context, in storage.RecordMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int64) error
	ListMatchHistory(ctx context.Context) ([]*models.MatchHistoryEntry, error)
	ComputeStats(ctx context.Context, deckID int64) (*models.DeckStats, error)
}

var _ Tracker = (*storage.Service)(nil)

// parseID parses a positive integer id. ok is false for anything else.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
