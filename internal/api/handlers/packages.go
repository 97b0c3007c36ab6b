package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"porter-desk-service/internal/adapters/notify"
	"porter-desk-service/internal/api/dto"
	"porter-desk-service/internal/domain"
	"porter-desk-service/internal/ports"
	"porter-desk-service/internal/services"
)

// PackageHandler exposes the package ledger endpoints.
type PackageHandler struct {
	Ledger   *services.Ledger
	Tracker  *services.Tracker
	Composer ports.MessageComposer
}

// DayView returns one calendar day's packages split into the pending and
// delivered panels. Defaults to today when ?date= is absent.
func (h *PackageHandler) DayView(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	residents := h.Ledger.Residents()
	pending, delivered := domain.SplitByStatus(h.Ledger.PackagesOn(date))

	res := dto.DayViewResponse{
		Date:      date,
		Pending:   toPackageResponses(pending, residents),
		Delivered: toPackageResponses(delivered, residents),
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	pkg, err := h.Ledger.AddPackage(r.Context(), services.PackageDraft{
		ResidentID:  req.ResidentID,
		Carrier:     req.Carrier,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		Porter:      h.Tracker.Porter(r.Context()),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toPackageResponse(pkg, h.Ledger.Residents()))
}

func (h *PackageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePackageStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.Ledger.UpdatePackageStatus(r.Context(), r.PathValue("id"), domain.PackageStatus(req.Status))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireConfirm(w, r) {
		return
	}

	if err := h.Ledger.DeletePackage(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearDelivered removes every delivered package across all dates, not just
// the visible day.
func (h *PackageHandler) ClearDelivered(w http.ResponseWriter, r *http.Request) {
	if !requireConfirm(w, r) {
		return
	}

	if err := h.Ledger.ClearDeliveredHistory(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Notify composes the arrival notice for a package and returns it together
// with the WhatsApp hand-off link. Composition failures fall back to the
// deterministic template; the desk must always get a message.
func (h *PackageHandler) Notify(w http.ResponseWriter, r *http.Request) {
	pkg, ok := h.Ledger.FindPackage(r.PathValue("id"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "package not found")
		return
	}

	resident, ok := domain.ResolveResident(h.Ledger.Residents(), pkg.ResidentID)
	if !ok {
		writeError(w, r, http.StatusConflict, "resident no longer exists; no phone to notify")
		return
	}

	fallback := false
	message, err := h.Composer.ComposeArrivalNotice(r.Context(), pkg, resident)
	if err != nil {
		log.Printf("compose failed, using fallback: package=%s err=%v", pkg.ID, err)
		message = notify.FallbackNotice(pkg, resident)
		fallback = true
	}

	link, err := notify.WhatsAppLink(resident.Phone, message)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NotifyResponse{
		Message:     message,
		WhatsAppURL: link,
		Fallback:    fallback,
	})
}

func toPackageResponse(p domain.Package, residents []domain.Resident) dto.PackageResponse {
	return dto.PackageResponse{
		ID:          p.ID,
		ResidentID:  p.ResidentID,
		Resident:    domain.ResidentLabel(residents, p.ResidentID),
		Carrier:     p.Carrier,
		Description: p.Description,
		ReceivedAt:  p.ReceivedAt,
		DeliveredAt: p.DeliveredAt,
		Status:      string(p.Status),
		PhotoURL:    p.PhotoURL,
		PorterID:    p.PorterID,
	}
}

func toPackageResponses(pkgs []domain.Package, residents []domain.Resident) []dto.PackageResponse {
	out := make([]dto.PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, toPackageResponse(p, residents))
	}

	return out
}
