package handlers

import (
	"encoding/json"
	"net/http"

	"porter-desk-service/internal/api/dto"
	"porter-desk-service/internal/domain"
	"porter-desk-service/internal/services"
)

// ResidentHandler exposes the resident registry endpoints.
type ResidentHandler struct {
	Ledger *services.Ledger
}

// List returns residents in insertion order, optionally narrowed by the
// desk search box (?q= matches name or apartment).
func (h *ResidentHandler) List(w http.ResponseWriter, r *http.Request) {
	residents := h.Ledger.Residents()
	if q := r.URL.Query().Get("q"); q != "" {
		residents = domain.SearchResidents(residents, q)
	}

	res := dto.ListResidentsResponse{
		Residents: make([]dto.ResidentResponse, 0, len(residents)),
	}
	for _, resident := range residents {
		res.Residents = append(res.Residents, toResidentResponse(resident))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ResidentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateResidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	resident, err := h.Ledger.AddResident(r.Context(), req.Name, req.Apartment, req.Phone)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toResidentResponse(resident))
}

// Delete removes a resident after confirmation. Their packages survive as
// orphans on purpose; the UI warns but never blocks.
func (h *ResidentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireConfirm(w, r) {
		return
	}

	if err := h.Ledger.DeleteResident(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toResidentResponse(r domain.Resident) dto.ResidentResponse {
	return dto.ResidentResponse{
		ID:        r.ID,
		Name:      r.Name,
		Apartment: r.Apartment,
		Phone:     r.Phone,
	}
}
