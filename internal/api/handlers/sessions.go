package handlers

import (
	"encoding/json"
	"net/http"

	"porter-desk-service/internal/api/dto"
	"porter-desk-service/internal/domain"
	"porter-desk-service/internal/services"
)

// SessionHandler exposes the porter shift endpoints.
type SessionHandler struct {
	Tracker *services.Tracker
}

func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	session, err := h.Tracker.Current(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if session == nil {
		writeError(w, r, http.StatusNotFound, "no active session")
		return
	}

	writeJSON(w, r, http.StatusOK, toSessionResponse(*session))
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.Tracker.Start(r.Context(), req.Name, domain.Shift(req.Shift))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toSessionResponse(session))
}

// End clears the active session after logout confirmation.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	if !requireConfirm(w, r) {
		return
	}

	if err := h.Tracker.End(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toSessionResponse(s domain.PorterSession) dto.SessionResponse {
	return dto.SessionResponse{
		Name:      s.Name,
		Shift:     string(s.Shift),
		StartedAt: s.StartedAt,
	}
}
