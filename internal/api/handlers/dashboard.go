package handlers

import (
	"net/http"
	"time"

	"porter-desk-service/internal/services"
)

// DashboardHandler serves the desk's at-a-glance counters.
type DashboardHandler struct {
	Ledger *services.Ledger
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	today := time.Now().Format("2006-01-02")
	writeJSON(w, r, http.StatusOK, h.Ledger.Stats(today))
}
