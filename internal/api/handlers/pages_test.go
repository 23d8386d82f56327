package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/charts"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func newPages(mock *mockTracker) *PageHandler {
	return NewPageHandler(mock, charts.DefaultChartConfig())
}

func TestPageHandler_Index(t *testing.T) {
	rec := httptest.NewRecorder()
	newPages(&mockTracker{}).Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/register_deck")
}

func TestPageHandler_RegisterDeck(t *testing.T) {
	t.Run("get renders form", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newPages(&mockTracker{}).RegisterDeck(rec, httptest.NewRequest(http.MethodGet, "/register_deck", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `name="deck_name"`)
	})

	t.Run("post registers deck", func(t *testing.T) {
		mock := &mockTracker{deck: &models.Deck{ID: 1, Name: "Fire"}}
		rec := httptest.NewRecorder()

		newPages(mock).RegisterDeck(rec, postForm("/register_deck", url.Values{"deck_name": {"Fire"}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Fire", mock.registeredName)
		assert.Contains(t, rec.Body.String(), "Deck &#39;Fire&#39; registered successfully!")
	})

	t.Run("empty name is silent", func(t *testing.T) {
		mock := &mockTracker{err: storage.ErrMissingField}
		rec := httptest.NewRecorder()

		newPages(mock).RegisterDeck(rec, postForm("/register_deck", url.Values{"deck_name": {""}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "registered successfully")
		assert.NotContains(t, rec.Body.String(), `class="error"`)
	})

	t.Run("store failure is a 500", func(t *testing.T) {
		mock := &mockTracker{err: errors.New("disk full")}
		rec := httptest.NewRecorder()

		newPages(mock).RegisterDeck(rec, postForm("/register_deck", url.Values{"deck_name": {"Fire"}}))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "disk full")
	})
}

func TestPageHandler_RecordMatch(t *testing.T) {
	decks := []*models.Deck{{ID: 1, Name: "Fire"}, {ID: 2, Name: "Water"}}
	valid := url.Values{"my_deck_id": {"1"}, "opponent_deck_id": {"2"}, "result": {"win"}}

	tests := []struct {
		name           string
		form           url.Values
		mockErr        error
		expectedStatus int
		expectCall     bool
		contains       string
	}{
		{
			name:           "success",
			form:           valid,
			expectedStatus: http.StatusOK,
			expectCall:     true,
			contains:       "Match recorded successfully!",
		},
		{
			name:           "missing result is silent",
			form:           url.Values{"my_deck_id": {"1"}, "opponent_deck_id": {"2"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing opponent is silent",
			form:           url.Values{"my_deck_id": {"1"}, "result": {"win"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non-numeric deck id",
			form:           url.Values{"my_deck_id": {"fire"}, "opponent_deck_id": {"2"}, "result": {"win"}},
			expectedStatus: http.StatusBadRequest,
			contains:       "Please choose decks from the list.",
		},
		{
			name:           "invalid result",
			form:           url.Values{"my_deck_id": {"1"}, "opponent_deck_id": {"2"}, "result": {"draw"}},
			mockErr:        storage.ErrInvalidResult,
			expectedStatus: http.StatusBadRequest,
			expectCall:     true,
			contains:       "Result must be win or lose.",
		},
		{
			name:           "unknown deck",
			form:           url.Values{"my_deck_id": {"1"}, "opponent_deck_id": {"99"}, "result": {"win"}},
			mockErr:        storage.ErrDeckNotFound,
			expectedStatus: http.StatusBadRequest,
			expectCall:     true,
			contains:       "Selected deck does not exist.",
		},
		{
			name:           "store failure",
			form:           valid,
			mockErr:        errors.New("disk full"),
			expectedStatus: http.StatusInternalServerError,
			expectCall:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockTracker{decks: decks, match: &models.Match{ID: 1}, err: tt.mockErr}
			rec := httptest.NewRecorder()

			newPages(mock).RecordMatch(rec, postForm("/record_match", tt.form))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectCall, mock.recorded != nil)
			if tt.contains != "" {
				assert.Contains(t, rec.Body.String(), tt.contains)
			}
			if tt.expectedStatus != http.StatusInternalServerError {
				assert.Contains(t, rec.Body.String(), `<option value="2">Water</option>`)
			}
		})
	}
}

func TestPageHandler_RecordMatch_ListFailure(t *testing.T) {
	mock := &mockTracker{listErr: errors.New("disk full")}
	rec := httptest.NewRecorder()

	newPages(mock).RecordMatch(rec, httptest.NewRequest(http.MethodGet, "/record_match", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPageHandler_Stats(t *testing.T) {
	stats := &models.DeckStats{
		DeckID:         1,
		DeckName:       "Fire",
		TotalMatches:   2,
		Wins:           1,
		OverallWinRate: 50,
		Opponents: []*models.OpponentStats{
			{OpponentDeckID: 2, OpponentName: "Water", TotalMatches: 2, Wins: 1, WinRate: 50},
		},
	}

	tests := []struct {
		name           string
		deckID         string
		mockErr        error
		expectedStatus int
		contains       string
	}{
		{"found", "1", nil, http.StatusOK, "50.0%"},
		{"unknown deck", "9", storage.ErrDeckNotFound, http.StatusNotFound, "Deck not found"},
		{"non-numeric id", "fire", nil, http.StatusNotFound, "Deck not found"},
		{"store failure", "1", errors.New("disk full"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockTracker{stats: stats, err: tt.mockErr}
			rec := httptest.NewRecorder()

			req := withURLParam(httptest.NewRequest(http.MethodGet, "/stats/"+tt.deckID, nil), "deckID", tt.deckID)
			newPages(mock).Stats(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestPageHandler_StatsChart(t *testing.T) {
	stats := &models.DeckStats{
		DeckID:    1,
		DeckName:  "Fire",
		Opponents: []*models.OpponentStats{{OpponentDeckID: 2, OpponentName: "Water", TotalMatches: 1, Wins: 1, WinRate: 100}},
	}

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/stats/1/chart", nil), "deckID", "1")
	newPages(&mockTracker{stats: stats}).StatsChart(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Water (1)")

	rec = httptest.NewRecorder()
	req = withURLParam(httptest.NewRequest(http.MethodGet, "/stats/9/chart", nil), "deckID", "9")
	newPages(&mockTracker{err: storage.ErrDeckNotFound}).StatsChart(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPageHandler_SelectDeck(t *testing.T) {
	t.Run("get lists decks", func(t *testing.T) {
		mock := &mockTracker{decks: []*models.Deck{{ID: 3, Name: "Grass"}}}
		rec := httptest.NewRecorder()

		newPages(mock).SelectDeck(rec, httptest.NewRequest(http.MethodGet, "/select_deck", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<option value="3">Grass</option>`)
	})

	t.Run("post redirects to stats", func(t *testing.T) {
		rec := httptest.NewRecorder()

		newPages(&mockTracker{}).SelectDeck(rec, postForm("/select_deck", url.Values{"deck_id": {"3"}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/stats/3", rec.Header().Get("Location"))
	})

	t.Run("post without deck returns to picker", func(t *testing.T) {
		rec := httptest.NewRecorder()

		newPages(&mockTracker{}).SelectDeck(rec, postForm("/select_deck", url.Values{}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/select_deck", rec.Header().Get("Location"))
	})
}

func TestPageHandler_MatchHistory(t *testing.T) {
	history := []*models.MatchHistoryEntry{
		{ID: 4, Date: "2025-01-01", MyDeckName: "Fire", OpponentDeckName: "Water", Result: models.ResultWin},
	}

	t.Run("get lists matches", func(t *testing.T) {
		mock := &mockTracker{history: history}
		rec := httptest.NewRecorder()

		newPages(mock).MatchHistory(rec, httptest.NewRequest(http.MethodGet, "/match_history", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "2025-01-01")
		assert.Zero(t, mock.deletedID)
	})

	t.Run("post deletes then lists", func(t *testing.T) {
		mock := &mockTracker{history: history}
		rec := httptest.NewRecorder()

		newPages(mock).MatchHistory(rec, postForm("/match_history", url.Values{"match_id": {"4"}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(4), mock.deletedID)
	})

	t.Run("post with bad id is ignored", func(t *testing.T) {
		mock := &mockTracker{history: history}
		rec := httptest.NewRecorder()

		newPages(mock).MatchHistory(rec, postForm("/match_history", url.Values{"match_id": {"x"}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, mock.deletedID)
	})

	t.Run("store failure", func(t *testing.T) {
		mock := &mockTracker{err: errors.New("disk full")}
		rec := httptest.NewRecorder()

		newPages(mock).MatchHistory(rec, httptest.NewRequest(http.MethodGet, "/match_history", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
