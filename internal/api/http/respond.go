package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"anamola-backend/internal/identity"
	"anamola-backend/internal/logger"
	"anamola-backend/internal/repository"
	"anamola-backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// respondError translates service and repository errors into the API's
// error taxonomy. Unrecognized errors become a generic 500 so internals
// never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(validationErr.Missing, ", "))
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "Invalid email format")
	case errors.Is(err, service.ErrUserExists):
		writeError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrPaymentIncomplete):
		writeError(w, http.StatusBadRequest, "Payment not completed")
	case errors.Is(err, service.ErrEventFull):
		writeError(w, http.StatusBadRequest, "Event has reached maximum participants")
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, identity.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, identity.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrAccountCreation):
		logger.Error("Account creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create user account")
	default:
		logger.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
