// Package response writes the JSON envelopes of the tracker API.
package response

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage"
)

// Reason is a stable, machine-readable cause carried by every error body.
type Reason string

const (
	ReasonInvalidBody   Reason = "invalid_body"
	ReasonInvalidID     Reason = "invalid_id"
	ReasonMissingField  Reason = "missing_field"
	ReasonInvalidResult Reason = "invalid_result"
	ReasonDeckNotFound  Reason = "deck_not_found"
	ReasonUnavailable   Reason = "unavailable"
	ReasonInternal      Reason = "internal"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Reason  Reason `json:"reason"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// SuccessResponse wraps a successful payload.
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// trackerErrors maps the storage sentinels to their HTTP answer.
var trackerErrors = []struct {
	err    error
	status int
	reason Reason
}{
	{storage.ErrMissingField, http.StatusBadRequest, ReasonMissingField},
	{storage.ErrInvalidResult, http.StatusBadRequest, ReasonInvalidResult},
	{storage.ErrDeckNotFound, http.StatusNotFound, ReasonDeckNotFound},
}

// JSON writes data as JSON with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode response: %v", err)
		}
	}
}

// Success writes data in a 200 envelope.
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, SuccessResponse{Data: data})
}

// Created writes data in a 201 envelope.
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

// NoContent writes an empty 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes an error body.
func Error(w http.ResponseWriter, status int, reason Reason, message string) {
	JSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Reason:  reason,
		Message: message,
		Code:    status,
	})
}

// InvalidBody answers a request body that is not valid JSON.
func InvalidBody(w http.ResponseWriter) {
	Error(w, http.StatusBadRequest, ReasonInvalidBody, "invalid request body")
}

// InvalidID answers a path id that is not a positive integer, e.g.
// InvalidID(w, "deck") gives "invalid deck ID".
func InvalidID(w http.ResponseWriter, what string) {
	Error(w, http.StatusBadRequest, ReasonInvalidID, "invalid "+what+" ID")
}

// TrackerError answers an error returned by a tracker operation. The
// validation and not-found sentinels become 400 and 404 with their reason
// and message (the error text when message is empty); anything else is a 500.
func TrackerError(w http.ResponseWriter, err error, message string) {
	for _, te := range trackerErrors {
		if errors.Is(err, te.err) {
			if message == "" {
				message = err.Error()
			}
			Error(w, te.status, te.reason, message)
			return
		}
	}
	InternalError(w, err)
}

// InternalError logs err and writes a 500 without exposing it.
func InternalError(w http.ResponseWriter, err error) {
	log.Printf("Internal error: %v", err)
	Error(w, http.StatusInternalServerError, ReasonInternal, "internal server error")
}

// ServiceUnavailable writes a 503.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	Error(w, http.StatusServiceUnavailable, ReasonUnavailable, message)
}
