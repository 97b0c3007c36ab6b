package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"porter-desk-service/internal/domain"
	"porter-desk-service/internal/ports"
	"porter-desk-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Storage
// failures are logged in full but reported generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrParse):
		writeError(w, r, http.StatusBadRequest, "invalid backup file")
	case errors.Is(err, ports.ErrStorageUnavailable):
		log.Printf("storage unavailable: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusServiceUnavailable, "storage unavailable")
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// requireConfirm gates destructive endpoints: the UI must ask the operator
// first and resend with confirm=true. The mutations themselves stay pure.
func requireConfirm(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, r, http.StatusBadRequest, "confirmation required: repeat the request with confirm=true")
		return false
	}

	return true
}
