package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]int{"count": 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"count":2}}`, w.Body.String())
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()
	Created(w, "ok")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"data":"ok"}`, w.Body.String())
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	NoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestInvalidRequestHelpers(t *testing.T) {
	w := httptest.NewRecorder()
	InvalidID(w, "deck")
	body := decodeError(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ReasonInvalidID, body.Reason)
	assert.Equal(t, "invalid deck ID", body.Message)

	w = httptest.NewRecorder()
	InvalidBody(w)
	body = decodeError(t, w)
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Equal(t, ReasonInvalidBody, body.Reason)

	w = httptest.NewRecorder()
	ServiceUnavailable(w, "database unavailable")
	body = decodeError(t, w)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, ReasonUnavailable, body.Reason)
	assert.Equal(t, "database unavailable", body.Message)
}

func TestTrackerError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		message     string
		wantStatus  int
		wantReason  Reason
		wantMessage string
	}{
		{"missing field", fmt.Errorf("deck name: %w", storage.ErrMissingField), "deck name is required",
			http.StatusBadRequest, ReasonMissingField, "deck name is required"},
		{"invalid result", fmt.Errorf("%w: %q", storage.ErrInvalidResult, "draw"), "",
			http.StatusBadRequest, ReasonInvalidResult, `invalid match result: "draw"`},
		{"deck not found", fmt.Errorf("deck 9: %w", storage.ErrDeckNotFound), "",
			http.StatusNotFound, ReasonDeckNotFound, "deck 9: deck not found"},
		{"store failure", errors.New("disk I/O error at /var/lib/tracker.db"), "ignored",
			http.StatusInternalServerError, ReasonInternal, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			TrackerError(w, tt.err, tt.message)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.wantReason, body.Reason)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, http.StatusText(tt.wantStatus), body.Error)
			assert.NotContains(t, w.Body.String(), "/var/lib")
		})
	}
}
