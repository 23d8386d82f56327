package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

// MatchRepository handles database operations for matches.
type MatchRepository interface {
	// Create inserts a new match and sets its ID.
	Create(ctx context.Context, match *models.Match) error

	// GetByID retrieves a match by its ID. Returns nil, nil when no match exists.
	GetByID(ctx context.Context, id int64) (*models.Match, error)

	// Delete removes a match. It reports whether a row was deleted.
	Delete(ctx context.Context, id int64) (bool, error)

	// Count returns the number of recorded matches.
	Count(ctx context.Context) (int, error)

	// ListHistory returns every match with both deck names resolved, oldest first.
	ListHistory(ctx context.Context) ([]*models.MatchHistoryEntry, error)
}

// matchRepository is the concrete implementation of MatchRepository.
type matchRepository struct {
	db Querier
}

// NewMatchRepository creates a new match repository.
func NewMatchRepository(db Querier) MatchRepository {
	return &matchRepository{db: db}
}

// Create inserts a new match and sets its ID.
func (r *matchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (
			my_deck_id, opponent_deck_id, result, date, created_at
		) VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		match.MyDeckID,
		match.OpponentDeckID,
		match.Result,
		match.Date,
		match.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get match id: %w", err)
	}
	match.ID = id

	return nil
}

// GetByID retrieves a match by its ID.
func (r *matchRepository) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	query := `
		SELECT id, my_deck_id, opponent_deck_id, result, date, created_at
		FROM matches
		WHERE id = ?
	`

	match := &models.Match{}
	err := sqlx.GetContext(ctx, r.db, match, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	return match, nil
}

// Delete removes a match. Deleting a missing match is not an error.
func (r *matchRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete match: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return affected > 0, nil
}

// Count returns the number of recorded matches.
func (r *matchRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM matches`); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

// historyRow is the raw shape of a history row before the date is formatted.
type historyRow struct {
	ID               int64         `db:"id"`
	Date             models.Date   `db:"date"`
	MyDeckName       string        `db:"my_deck_name"`
	OpponentDeckName string        `db:"opponent_deck_name"`
	Result           models.Result `db:"result"`
}

// ListHistory returns every match with both deck names resolved.
// The decks table is joined twice under the names my_deck and opponent_deck.
func (r *matchRepository) ListHistory(ctx context.Context) ([]*models.MatchHistoryEntry, error) {
	query := `
		SELECT
			m.id AS id,
			m.date AS date,
			my_deck.name AS my_deck_name,
			opponent_deck.name AS opponent_deck_name,
			m.result AS result
		FROM matches m
		INNER JOIN decks AS my_deck ON my_deck.id = m.my_deck_id
		INNER JOIN decks AS opponent_deck ON opponent_deck.id = m.opponent_deck_id
		ORDER BY m.id
	`

	var rows []historyRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list match history: %w", err)
	}

	entries := make([]*models.MatchHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &models.MatchHistoryEntry{
			ID:               row.ID,
			Date:             row.Date.String(),
			MyDeckName:       row.MyDeckName,
			OpponentDeckName: row.OpponentDeckName,
			Result:           row.Result,
		})
	}

	return entries, nil
}
