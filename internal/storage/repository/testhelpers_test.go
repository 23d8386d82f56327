package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

// setupTestDB creates an in-memory database with the deck and match tables.
// The pool is pinned to one connection so every query sees the same database.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:?_pragma=foreign_keys(1)&_time_format=sqlite")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE decks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL CHECK(length(trim(name)) > 0),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			my_deck_id INTEGER NOT NULL,
			opponent_deck_id INTEGER NOT NULL,
			result TEXT NOT NULL,
			date TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (my_deck_id) REFERENCES decks(id),
			FOREIGN KEY (opponent_deck_id) REFERENCES decks(id),
			CHECK(result IN ('win', 'lose'))
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Error closing database: %v", err)
		}
	})

	return db
}

// createDeck inserts a deck through the repository and returns it.
func createDeck(t *testing.T, db *sqlx.DB, name string) *models.Deck {
	t.Helper()

	deck := &models.Deck{Name: name, CreatedAt: time.Now()}
	if err := NewDeckRepository(db).Create(context.Background(), deck); err != nil {
		t.Fatalf("failed to create deck %q: %v", name, err)
	}
	return deck
}

// createMatch inserts a match through the repository and returns it.
func createMatch(t *testing.T, db *sqlx.DB, my, opponent *models.Deck, result models.Result, date string) *models.Match {
	t.Helper()

	d, err := models.ParseDate(date)
	if err != nil {
		t.Fatalf("bad test date: %v", err)
	}

	match := &models.Match{
		MyDeckID:       my.ID,
		OpponentDeckID: opponent.ID,
		Result:         result,
		Date:           d,
		CreatedAt:      time.Now(),
	}
	if err := NewMatchRepository(db).Create(context.Background(), match); err != nil {
		t.Fatalf("failed to create match: %v", err)
	}
	return match
}
