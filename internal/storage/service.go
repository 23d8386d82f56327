package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/jmoiron/sqlx"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/cache"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/stats"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/repository"
)

// DefaultTimezone is the zone match dates are recorded in unless configured.
const DefaultTimezone = "Asia/Tokyo"

// RecordMatchInput carries the fields of a match submission.
type RecordMatchInput struct {
	MyDeckID       int64
	OpponentDeckID int64
	Result         string
}

// ServiceConfig holds optional collaborators for the service.
// Nil fields fall back to defaults.
type ServiceConfig struct {
	// Location decides which calendar day a match is recorded on.
	// Default: Asia/Tokyo
	Location *time.Location

	// Clock supplies the current time. Default: time.Now
	Clock stats.Clock

	// Cache holds computed deck statistics. Default: no caching.
	Cache cache.Cache
}

// Service provides the tracker operations on top of the repositories.
type Service struct {
	db      *DB
	decks   repository.DeckRepository
	matches repository.MatchRepository
	stats   repository.StatsRepository
	cache   cache.Cache
	loc     *time.Location
	clock   stats.Clock
}

// NewService creates a new storage service with default settings.
func NewService(db *DB) *Service {
	return NewServiceWithConfig(db, nil)
}

// NewServiceWithConfig creates a new storage service. A nil config uses
// all defaults.
func NewServiceWithConfig(db *DB, cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = &ServiceConfig{}
	}

	s := &Service{
		db:      db,
		decks:   repository.NewDeckRepository(db.Conn()),
		matches: repository.NewMatchRepository(db.Conn()),
		stats:   repository.NewStatsRepository(db.Conn()),
		cache:   cfg.Cache,
		loc:     cfg.Location,
		clock:   cfg.Clock,
	}

	if s.cache == nil {
		s.cache = cache.NewNoop()
	}
	if s.loc == nil {
		s.loc = defaultLocation()
	}
	if s.clock == nil {
		s.clock = time.Now
	}

	return s
}

func defaultLocation() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Location returns the zone match dates are recorded in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// RegisterDeck creates a deck with the given name. Surrounding whitespace
// is trimmed; a blank name returns ErrMissingField.
func (s *Service) RegisterDeck(ctx context.Context, name string) (*Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("deck name: %w", ErrMissingField)
	}

	deck := &Deck{
		Name:      name,
		CreatedAt: s.clock().UTC(),
	}
	if err := s.decks.Create(ctx, deck); err != nil {
		return nil, err
	}

	return deck, nil
}

// ListDecks returns every deck in registration order.
func (s *Service) ListDecks(ctx context.Context) ([]*Deck, error) {
	return s.decks.List(ctx)
}

// GetDeck returns a deck or ErrDeckNotFound.
func (s *Service) GetDeck(ctx context.Context, id int64) (*Deck, error) {
	deck, err := s.decks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, fmt.Errorf("deck %d: %w", id, ErrDeckNotFound)
	}
	return deck, nil
}

// RecordMatch stores one match played with MyDeckID against OpponentDeckID,
// dated with today's date in the service location.
func (s *Service) RecordMatch(ctx context.Context, in RecordMatchInput) (*Match, error) {
	if in.MyDeckID == 0 || in.OpponentDeckID == 0 || strings.TrimSpace(in.Result) == "" {
		return nil, ErrMissingField
	}

	result, err := ParseResult(in.Result)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResult, in.Result)
	}

	match := &Match{
		MyDeckID:       in.MyDeckID,
		OpponentDeckID: in.OpponentDeckID,
		Result:         result,
		Date:           stats.Today(s.clock, s.loc),
		CreatedAt:      s.clock().UTC(),
	}

	err = s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		decks := repository.NewDeckRepository(tx)

		for _, id := range []int64{in.MyDeckID, in.OpponentDeckID} {
			deck, err := decks.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if deck == nil {
				return fmt.Errorf("deck %d: %w", id, ErrDeckNotFound)
			}
		}

		return repository.NewMatchRepository(tx).Create(ctx, match)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateStats(ctx, match.MyDeckID)
	return match, nil
}

// DeleteMatch removes a match. Deleting an unknown id is a no-op.
func (s *Service) DeleteMatch(ctx context.Context, id int64) error {
	var deleted *Match

	err := s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		matches := repository.NewMatchRepository(tx)

		match, err := matches.GetByID(ctx, id)
		if err != nil || match == nil {
			return err
		}

		ok, err := matches.Delete(ctx, id)
		if err != nil {
			return err
		}
		if ok {
			deleted = match
		}
		return nil
	})
	if err != nil {
		return err
	}

	if deleted != nil {
		s.cache.InvalidateStats(ctx, deleted.MyDeckID)
	}
	return nil
}

// ListMatchHistory returns every match with both deck names resolved.
func (s *Service) ListMatchHistory(ctx context.Context) ([]*MatchHistoryEntry, error) {
	return s.matches.ListHistory(ctx)
}

// ComputeStats aggregates the matches played with deckID, overall and per
// opponent deck.
func (s *Service) ComputeStats(ctx context.Context, deckID int64) (*DeckStats, error) {
	if cached, ok := s.cache.GetStats(ctx, deckID); ok {
		return cached, nil
	}

	// Read before the queries so a write that commits meanwhile keeps these
	// results out of the cache.
	generation := s.cache.Generation(ctx, deckID)

	deck, err := s.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	groups, err := s.stats.OpponentBreakdown(ctx, deckID)
	if err != nil {
		return nil, err
	}

	sequence, err := s.stats.ResultSequence(ctx, deckID)
	if err != nil {
		return nil, err
	}

	result := stats.Summarize(deck, groups)
	result.Streak = stats.Streaks(sequence)
	s.cache.SetStats(ctx, result, generation)

	return result, nil
}

// Ping verifies the database connection is alive.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Conn().PingContext(ctx)
}

// Close closes the stats cache and the database.
func (s *Service) Close() error {
	if err := s.cache.Close(); err != nil {
		return fmt.Errorf("failed to close cache: %w", err)
	}
	return s.db.Close()
}
