package handlers

import (
	"fmt"
	"net/http"
	"time"

	"porter-desk-service/internal/adapters/report"
	"porter-desk-service/internal/services"
)

// ReportHandler downloads the full package log as an xlsx table.
type ReportHandler struct {
	Ledger *services.Ledger
}

func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	data, err := report.BuildPackageReport(h.Ledger.Packages(), h.Ledger.Residents(), now)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.ReportFilename(now)))
	if _, err := w.Write(data); err != nil {
		return
	}
}
