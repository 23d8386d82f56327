package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

// mockTracker is a mock implementation of Tracker for testing.
type mockTracker struct {
	decks   []*models.Deck
	deck    *models.Deck
	match   *models.Match
	history []*models.MatchHistoryEntry
	stats   *models.DeckStats
	err     error

	// listErr fails ListDecks independently of err.
	listErr error

	registeredName string
	recorded       *storage.RecordMatchInput
	deletedID      int64
}

func (m *mockTracker) RegisterDeck(_ context.Context, name string) (*models.Deck, error) {
	m.registeredName = name
	if m.err != nil {
		return nil, m.err
	}
	return m.deck, nil
}

func (m *mockTracker) ListDecks(_ context.Context) ([]*models.Deck, error) {
	return m.decks, m.listErr
}

func (m *mockTracker) GetDeck(_ context.Context, _ int64) (*models.Deck, error) {
	return m.deck, m.err
}

func (m *mockTracker) RecordMatch(_ context.Context, in storage.RecordMatchInput) (*models.Match, error) {
	m.recorded = &in
	if m.err != nil {
		return nil, m.err
	}
	return m.match, nil
}

func (m *mockTracker) DeleteMatch(_ context.Context, id int64) error {
	m.deletedID = id
	return m.err
}

func (m *mockTracker) ListMatchHistory(_ context.Context) ([]*models.MatchHistoryEntry, error) {
	return m.history, m.err
}

func (m *mockTracker) ComputeStats(_ context.Context, _ int64) (*models.DeckStats, error) {
	return m.stats, m.err
}

// withURLParam attaches a chi route parameter to the request.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
