package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/api/views"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/charts"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

const deckNotFound = "Deck not found"

// formPage is the data behind every form page.
type formPage struct {
	Decks   []*models.Deck
	Message string
	Error   string
}

type statsPage struct {
	Stats *models.DeckStats
}

type historyPage struct {
	Matches []*models.MatchHistoryEntry
}

// PageHandler serves the HTML pages.
type PageHandler struct {
	tracker Tracker
	chart   charts.ChartConfig
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(tracker Tracker, chart charts.ChartConfig) *PageHandler {
	return &PageHandler{tracker: tracker, chart: chart}
}

// Index renders the landing page.
func (h *PageHandler) Index(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusOK, views.Index, nil)
}

// RegisterDeck renders the deck form and creates a deck on POST.
// A blank name re-renders the form without a message.
func (h *PageHandler) RegisterDeck(w http.ResponseWriter, r *http.Request) {
	page := formPage{}

	if r.Method == http.MethodPost {
		deck, err := h.tracker.RegisterDeck(r.Context(), r.PostFormValue("deck_name"))
		switch {
		case errors.Is(err, storage.ErrMissingField):
		case err != nil:
			internalError(w, err)
			return
		default:
			page.Message = fmt.Sprintf("Deck '%s' registered successfully!", deck.Name)
		}
	}

	h.render(w, http.StatusOK, views.RegisterDeck, page)
}

// RecordMatch renders the match form and records a match on POST.
// Missing fields re-render the form silently; invalid values are reported.
func (h *PageHandler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	page := formPage{}
	status := http.StatusOK

	if r.Method == http.MethodPost {
		msg, errMsg, err := h.recordMatch(r)
		if err != nil {
			internalError(w, err)
			return
		}
		page.Message = msg
		if errMsg != "" {
			page.Error = errMsg
			status = http.StatusBadRequest
		}
	}

	decks, err := h.tracker.ListDecks(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	page.Decks = decks

	h.render(w, status, views.RecordMatch, page)
}

// recordMatch returns either a success message, a user-facing error message,
// or an internal error.
func (h *PageHandler) recordMatch(r *http.Request) (string, string, error) {
	myRaw := strings.TrimSpace(r.PostFormValue("my_deck_id"))
	oppRaw := strings.TrimSpace(r.PostFormValue("opponent_deck_id"))
	result := r.PostFormValue("result")

	if myRaw == "" || oppRaw == "" || strings.TrimSpace(result) == "" {
		return "", "", nil
	}

	myID, ok1 := parseID(myRaw)
	oppID, ok2 := parseID(oppRaw)
	if !ok1 || !ok2 {
		return "", "Please choose decks from the list.", nil
	}

	_, err := h.tracker.RecordMatch(r.Context(), storage.RecordMatchInput{
		MyDeckID:       myID,
		OpponentDeckID: oppID,
		Result:         result,
	})
	switch {
	case err == nil:
		return "Match recorded successfully!", "", nil
	case errors.Is(err, storage.ErrMissingField):
		return "", "", nil
	case errors.Is(err, storage.ErrInvalidResult):
		return "", "Result must be win or lose.", nil
	case errors.Is(err, storage.ErrDeckNotFound):
		return "", "Selected deck does not exist.", nil
	default:
		return "", "", err
	}
}

// Stats renders the win-rate breakdown for a deck.
func (h *PageHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, ok := h.loadStats(w, r)
	if !ok {
		return
	}
	h.render(w, http.StatusOK, views.Stats, statsPage{Stats: st})
}

// StatsChart renders the per-opponent win rates as a bar chart page.
func (h *PageHandler) StatsChart(w http.ResponseWriter, r *http.Request) {
	st, ok := h.loadStats(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := charts.RenderOpponentWinRates(&buf, st, h.chart); err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// loadStats resolves the deckID URL parameter and computes its stats,
// answering 404 or 500 itself when it cannot.
func (h *PageHandler) loadStats(w http.ResponseWriter, r *http.Request) (*models.DeckStats, bool) {
	deckID, ok := parseID(chi.URLParam(r, "deckID"))
	if !ok {
		http.Error(w, deckNotFound, http.StatusNotFound)
		return nil, false
	}

	st, err := h.tracker.ComputeStats(r.Context(), deckID)
	if errors.Is(err, storage.ErrDeckNotFound) {
		http.Error(w, deckNotFound, http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		internalError(w, err)
		return nil, false
	}

	return st, true
}

// SelectDeck renders the deck picker and redirects to the stats page on POST.
func (h *PageHandler) SelectDeck(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		deckID := strings.TrimSpace(r.PostFormValue("deck_id"))
		if deckID == "" {
			http.Redirect(w, r, "/select_deck", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/stats/"+url.PathEscape(deckID), http.StatusSeeOther)
		return
	}

	decks, err := h.tracker.ListDecks(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	h.render(w, http.StatusOK, views.SelectDeck, formPage{Decks: decks})
}

// MatchHistory lists every match and deletes one on POST.
func (h *PageHandler) MatchHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if id, ok := parseID(r.PostFormValue("match_id")); ok {
			if err := h.tracker.DeleteMatch(r.Context(), id); err != nil {
				internalError(w, err)
				return
			}
		}
	}

	matches, err := h.tracker.ListMatchHistory(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	h.render(w, http.StatusOK, views.MatchHistory, historyPage{Matches: matches})
}

func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	if err := views.Render(w, status, name, data); err != nil {
		internalError(w, err)
	}
}

func internalError(w http.ResponseWriter, err error) {
	log.Printf("Internal error: %v", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
