package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/api/response"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage"
)

// MatchHandler handles match-related API requests.
type MatchHandler struct {
	tracker Tracker
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(tracker Tracker) *MatchHandler {
	return &MatchHandler{tracker: tracker}
}

// GetMatches returns the full match history with deck names resolved.
func (h *MatchHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	history, err := h.tracker.ListMatchHistory(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, history)
}

// RecordMatchRequest represents a request to record a match.
type RecordMatchRequest struct {
	MyDeckID       int64  `json:"my_deck_id"`
	OpponentDeckID int64  `json:"opponent_deck_id"`
	Result         string `json:"result"`
}

// RecordMatch records a match dated today in the tracker's timezone.
func (h *MatchHandler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	var req RecordMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.InvalidBody(w)
		return
	}

	match, err := h.tracker.RecordMatch(r.Context(), storage.RecordMatchInput{
		MyDeckID:       req.MyDeckID,
		OpponentDeckID: req.OpponentDeckID,
		Result:         req.Result,
	})
	switch {
	case err == nil:
		response.Created(w, match)
	case errors.Is(err, storage.ErrMissingField):
		response.TrackerError(w, err, "my_deck_id, opponent_deck_id and result are required")
	case errors.Is(err, storage.ErrInvalidResult):
		response.TrackerError(w, err, "result must be win or lose")
	default:
		response.TrackerError(w, err, "")
	}
}

// DeleteMatch removes a match. Unknown IDs succeed as well.
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := parseID(chi.URLParam(r, "matchID"))
	if !ok {
		response.InvalidID(w, "match")
		return
	}

	if err := h.tracker.DeleteMatch(r.Context(), matchID); err != nil {
		response.InternalError(w, err)
		return
	}

	response.NoContent(w)
}
