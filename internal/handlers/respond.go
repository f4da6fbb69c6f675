package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/descmd1/lms-backend/internal/services/livesession"
)

var validate = validator.New()

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps the live-session error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, livesession.ErrInvalidID),
		errors.Is(err, livesession.ErrMissingFields):
		status = http.StatusBadRequest
	case errors.Is(err, livesession.ErrNotEnrolled):
		status = http.StatusForbidden
	case errors.Is(err, livesession.ErrSessionNotFound),
		errors.Is(err, livesession.ErrCourseNotFound):
		status = http.StatusNotFound
	case errors.Is(err, livesession.ErrCannotStart),
		errors.Is(err, livesession.ErrCannotEnd),
		errors.Is(err, livesession.ErrSessionIsLive),
		errors.Is(err, livesession.ErrSessionNotLive),
		errors.Is(err, livesession.ErrAtCapacity):
		status = http.StatusConflict
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Something went wrong",
			Message: err.Error(),
		})
		return
	}
	writeError(w, status, err.Error())
}
