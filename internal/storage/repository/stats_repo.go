package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

// StatsRepository runs the aggregation queries behind deck statistics.
type StatsRepository interface {
	// OpponentBreakdown groups the matches played with deckID by opponent deck.
	// Win rates are left at zero; the caller derives them from the counts.
	OpponentBreakdown(ctx context.Context, deckID int64) ([]*models.OpponentStats, error)

	// ResultSequence returns the results of the matches played with deckID
	// in the order they were recorded.
	ResultSequence(ctx context.Context, deckID int64) ([]models.Result, error)
}

// statsRepository is the concrete implementation of StatsRepository.
type statsRepository struct {
	db Querier
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db Querier) StatsRepository {
	return &statsRepository{db: db}
}

// OpponentBreakdown groups the matches played with deckID by opponent deck,
// ordered by opponent name and then id so the result is stable.
func (r *statsRepository) OpponentBreakdown(ctx context.Context, deckID int64) ([]*models.OpponentStats, error) {
	query := `
		SELECT
			m.opponent_deck_id AS opponent_deck_id,
			opponent_deck.name AS opponent_name,
			COUNT(*) AS total_matches,
			SUM(CASE WHEN m.result = 'win' THEN 1 ELSE 0 END) AS wins
		FROM matches m
		INNER JOIN decks AS opponent_deck ON opponent_deck.id = m.opponent_deck_id
		WHERE m.my_deck_id = ?
		GROUP BY m.opponent_deck_id, opponent_deck.name
		ORDER BY opponent_deck.name, m.opponent_deck_id
	`

	groups := []*models.OpponentStats{}
	if err := sqlx.SelectContext(ctx, r.db, &groups, query, deckID); err != nil {
		return nil, fmt.Errorf("failed to get opponent stats for deck %d: %w", deckID, err)
	}

	return groups, nil
}

// ResultSequence returns the results of the matches played with deckID,
// oldest first.
func (r *statsRepository) ResultSequence(ctx context.Context, deckID int64) ([]models.Result, error) {
	query := `
		SELECT result
		FROM matches
		WHERE my_deck_id = ?
		ORDER BY id
	`

	results := []models.Result{}
	if err := sqlx.SelectContext(ctx, r.db, &results, query, deckID); err != nil {
		return nil, fmt.Errorf("failed to get results for deck %d: %w", deckID, err)
	}

	return results, nil
}
