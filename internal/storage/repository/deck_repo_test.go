package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

func TestDeckRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeckRepository(db)
	ctx := context.Background()

	deck := &models.Deck{Name: "Pikachu ex", CreatedAt: time.Now()}
	if err := repo.Create(ctx, deck); err != nil {
		t.Fatalf("failed to create deck: %v", err)
	}

	if deck.ID == 0 {
		t.Fatal("expected deck ID to be assigned")
	}

	retrieved, err := repo.GetByID(ctx, deck.ID)
	if err != nil {
		t.Fatalf("failed to retrieve deck: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected deck to be found")
	}
	if retrieved.Name != "Pikachu ex" {
		t.Errorf("expected name 'Pikachu ex', got '%s'", retrieved.Name)
	}
	if retrieved.CreatedAt.IsZero() {
		t.Error("expected created_at to round-trip")
	}
}

func TestDeckRepository_Create_DuplicateNamesAllowed(t *testing.T) {
	db := setupTestDB(t)

	first := createDeck(t, db, "Mewtwo ex")
	second := createDeck(t, db, "Mewtwo ex")

	if first.ID == second.ID {
		t.Errorf("expected distinct IDs for duplicate names, both got %d", first.ID)
	}
}

func TestDeckRepository_Create_RejectsBlankName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeckRepository(db)

	err := repo.Create(context.Background(), &models.Deck{Name: "   ", CreatedAt: time.Now()})
	if err == nil {
		t.Error("expected CHECK constraint to reject a blank name")
	}
}

func TestDeckRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeckRepository(db)

	deck, err := repo.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deck != nil {
		t.Error("expected nil deck for nonexistent ID")
	}
}

func TestDeckRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeckRepository(db)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list decks: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil list, got %v", empty)
	}

	names := []string{"Zapdos", "Articuno", "Moltres"}
	for _, name := range names {
		createDeck(t, db, name)
	}

	decks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list decks: %v", err)
	}
	if len(decks) != len(names) {
		t.Fatalf("expected %d decks, got %d", len(names), len(decks))
	}

	// Insertion order, not alphabetical.
	for i, name := range names {
		if decks[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, decks[i].Name)
		}
	}
}

func TestDeckRepository_Count(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeckRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 decks, got %d", count)
	}

	createDeck(t, db, "Fire")
	createDeck(t, db, "Fire")

	count, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 decks, got %d", count)
	}
}
