package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"vantage/internal/core"
	"vantage/internal/services"
	"vantage/internal/session"
	"vantage/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps domain failures onto HTTP statuses. Store errors
// arrive as explicit results, never panics, so this switch is the whole
// error surface of the API.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, store.ErrInvalidCredentials),
		errors.Is(err, store.ErrNoSession):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, store.ErrAccountExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrLeadNotFound),
		errors.Is(err, services.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrEmptyText, core.ErrInvalidCategory, core.ErrInvalidDate,
		core.ErrInvalidTime, core.ErrEmptyName, core.ErrInvalidStatus,
		core.ErrInvalidValue, core.ErrEmptyTitle, core.ErrInvalidTarget,
		services.ErrNegativeAmount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
