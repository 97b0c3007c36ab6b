package api

import (
	"net/http"

	"porter-desk-service/internal/api/handlers"
	"porter-desk-service/internal/ports"
	"porter-desk-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. Method-qualified mux patterns replace per-handler method
// checks; destructive routes additionally demand confirm=true.
func NewRouter(
	ledger *services.Ledger,
	tracker *services.Tracker,
	composer ports.MessageComposer,
	store ports.StateStore,
) http.Handler {
	mux := http.NewServeMux()

	residentHandler := &handlers.ResidentHandler{Ledger: ledger}
	packageHandler := &handlers.PackageHandler{
		Ledger:   ledger,
		Tracker:  tracker,
		Composer: composer,
	}
	sessionHandler := &handlers.SessionHandler{Tracker: tracker}
	backupHandler := &handlers.BackupHandler{Store: store, Ledger: ledger}
	reportHandler := &handlers.ReportHandler{Ledger: ledger}
	dashboardHandler := &handlers.DashboardHandler{Ledger: ledger}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("GET /residents", residentHandler.List)
	mux.HandleFunc("POST /residents", residentHandler.Create)
	mux.HandleFunc("DELETE /residents/{id}", residentHandler.Delete)

	mux.HandleFunc("GET /packages", packageHandler.DayView)
	mux.HandleFunc("POST /packages", packageHandler.Create)
	mux.HandleFunc("POST /packages/{id}/status", packageHandler.UpdateStatus)
	mux.HandleFunc("POST /packages/{id}/notify", packageHandler.Notify)
	mux.HandleFunc("DELETE /packages/delivered", packageHandler.ClearDelivered)
	mux.HandleFunc("DELETE /packages/{id}", packageHandler.Delete)

	mux.HandleFunc("GET /session", sessionHandler.Current)
	mux.HandleFunc("POST /session", sessionHandler.Start)
	mux.HandleFunc("DELETE /session", sessionHandler.End)

	mux.HandleFunc("GET /backup", backupHandler.Export)
	mux.HandleFunc("POST /backup", backupHandler.Import)

	mux.HandleFunc("GET /report", reportHandler.Download)
	mux.HandleFunc("GET /dashboard", dashboardHandler.Stats)

	return loggingMiddleware(mux)
}
