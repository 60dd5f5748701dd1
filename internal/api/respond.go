package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"tripdesk/internal/domain"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{"success": false, "message": message})
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Unknown errors
// become an opaque 500; their detail stays in the logs.
func writeDomainError(w http.ResponseWriter, err error) int {
	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
		return http.StatusBadRequest
	case domain.IsAuth(err):
		writeError(w, http.StatusUnauthorized, err.Error())
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
		return http.StatusNotFound
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return domain.Validation("invalid JSON body")
	}
	return nil
}
