package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"porter-desk-service/internal/ports"
	"porter-desk-service/internal/services"
)

// Uploaded backups are small JSON blobs; anything larger is not ours.
const maxBackupSize = 16 << 20

// BackupHandler exposes snapshot export and import. It talks to the store
// directly and reloads the ledger after a successful import, since import
// bypasses the in-memory collections.
type BackupHandler struct {
	Store  ports.StateStore
	Ledger *services.Ledger
}

func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := services.ExportSnapshot(r.Context(), h.Store)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	filename := services.BackupFilename(time.Now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		// Too late to change the status; the client sees a truncated download.
		return
	}
}

func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBackupSize))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read upload")
		return
	}

	if err := services.ImportSnapshot(r.Context(), h.Store, data); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.Ledger.Load(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "restored"})
}
