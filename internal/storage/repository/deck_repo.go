package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

// DeckRepository handles database operations for decks.
type DeckRepository interface {
	// Create inserts a new deck and sets its ID.
	Create(ctx context.Context, deck *models.Deck) error

	// GetByID retrieves a deck by its ID. Returns nil, nil when no deck exists.
	GetByID(ctx context.Context, id int64) (*models.Deck, error)

	// List retrieves all decks in creation order.
	List(ctx context.Context) ([]*models.Deck, error)

	// Count returns the number of registered decks.
	Count(ctx context.Context) (int, error)
}

// deckRepository is the concrete implementation of DeckRepository.
type deckRepository struct {
	db Querier
}

// NewDeckRepository creates a new deck repository.
func NewDeckRepository(db Querier) DeckRepository {
	return &deckRepository{db: db}
}

// Create inserts a new deck and sets its ID.
func (r *deckRepository) Create(ctx context.Context, deck *models.Deck) error {
	query := `INSERT INTO decks (name, created_at) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, deck.Name, deck.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create deck: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get deck id: %w", err)
	}
	deck.ID = id

	return nil
}

// GetByID retrieves a deck by its ID.
func (r *deckRepository) GetByID(ctx context.Context, id int64) (*models.Deck, error) {
	query := `
		SELECT id, name, created_at
		FROM decks
		WHERE id = ?
	`

	deck := &models.Deck{}
	err := sqlx.GetContext(ctx, r.db, deck, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck by id: %w", err)
	}

	return deck, nil
}

// List retrieves all decks in creation order.
func (r *deckRepository) List(ctx context.Context) ([]*models.Deck, error) {
	query := `
		SELECT id, name, created_at
		FROM decks
		ORDER BY id
	`

	decks := []*models.Deck{}
	if err := sqlx.SelectContext(ctx, r.db, &decks, query); err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}

	return decks, nil
}

// Count returns the number of registered decks.
func (r *deckRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM decks`); err != nil {
		return 0, fmt.Errorf("failed to count decks: %w", err)
	}
	return count, nil
}
