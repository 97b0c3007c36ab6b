package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"porter-desk-service/internal/adapters/notify"
	"porter-desk-service/internal/adapters/storage"
	"porter-desk-service/internal/api"
	"porter-desk-service/internal/platform/db"
	"porter-desk-service/internal/ports"
	"porter-desk-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres slot store, Gemini
// composer) behind ports and starts the HTTP server for the desk UI.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := getEnv("DB_PATH", "data/porter.db")
	port := getEnv("PORT", "8080")

	ctx := context.Background()

	store, closeStore, err := openStore(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	ledger := services.NewLedger(store)
	if err := ledger.Load(ctx); err != nil {
		log.Fatal(err)
	}

	tracker := services.NewTracker(store)

	// Without an API key the desk still runs; notices use the deterministic
	// template instead of generated text.
	var composer ports.MessageComposer = notify.FallbackComposer{}
	if key := os.Getenv("GEMINI_API_KEY"); strings.TrimSpace(key) != "" {
		gemini, err := notify.NewGeminiComposer(ctx, key, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatal(err)
		}
		composer = gemini
	} else {
		log.Println("GEMINI_API_KEY not set; arrival notices use the fallback template")
	}

	router := api.NewRouter(ledger, tracker, composer, store)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openStore selects the slot-store backend: Postgres when DATABASE_URL is
// set, otherwise a local SQLite file.
func openStore(dbPath string) (ports.StateStore, func(), error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := storage.InitPostgresSchema(pg); err != nil {
			pg.Close()
			return nil, nil, err
		}
		log.Println("Using Postgres state store")
		return storage.NewPostgresStateStore(pg), func() { pg.Close() }, nil
	}

	sqlDB, err := openSqlite(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.InitSqliteSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	log.Printf("Using SQLite state store path=%s", dbPath)
	return storage.NewSqliteStateStore(sqlDB), func() { sqlDB.Close() }, nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("openSqlite: create data directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openSqlite: open sqlite database %q: %w", dbPath, err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("openSqlite: verify sqlite connection to %q: %w", dbPath, err)
	}

	return sqlDB, nil
}
