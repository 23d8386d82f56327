package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/api/response"
)

// DeckHandler handles deck-related API requests.
type DeckHandler struct {
	tracker Tracker
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(tracker Tracker) *DeckHandler {
	return &DeckHandler{tracker: tracker}
}

// GetDecks returns all decks in registration order.
func (h *DeckHandler) GetDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.tracker.ListDecks(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, decks)
}

// CreateDeckRequest represents a request to create a deck.
type CreateDeckRequest struct {
	Name string `json:"name"`
}

// CreateDeck registers a new deck.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.InvalidBody(w)
		return
	}

	deck, err := h.tracker.RegisterDeck(r.Context(), req.Name)
	if err != nil {
		response.TrackerError(w, err, "deck name is required")
		return
	}

	response.Created(w, deck)
}

// GetDeck returns a single deck by ID.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID, ok := parseID(chi.URLParam(r, "deckID"))
	if !ok {
		response.InvalidID(w, "deck")
		return
	}

	deck, err := h.tracker.GetDeck(r.Context(), deckID)
	if err != nil {
		response.TrackerError(w, err, "deck not found")
		return
	}

	response.Success(w, deck)
}

// GetDeckStats returns overall and per-opponent win rates for a deck.
func (h *DeckHandler) GetDeckStats(w http.ResponseWriter, r *http.Request) {
	deckID, ok := parseID(chi.URLParam(r, "deckID"))
	if !ok {
		response.InvalidID(w, "deck")
		return
	}

	st, err := h.tracker.ComputeStats(r.Context(), deckID)
	if err != nil {
		response.TrackerError(w, err, "deck not found")
		return
	}

	response.Success(w, st)
}
