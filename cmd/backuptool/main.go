package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"porter-desk-service/internal/adapters/storage"
	"porter-desk-service/internal/platform/db"
	"porter-desk-service/internal/ports"
	"porter-desk-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// backuptool exports or imports a ledger snapshot against the configured
// slot store, for desks that script their backups instead of using the UI.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	doExport := flag.Bool("export", false, "write a snapshot of the stored ledger")
	outPath := flag.String("out", "", "export destination (default: dated filename)")
	importPath := flag.String("import", "", "backup file to restore into the store")
	flag.Parse()

	if *doExport == (*importPath != "") {
		log.Fatal("exactly one of -export or -import is required")
	}

	store, closeStore, err := openStore()
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	ctx := context.Background()

	if *doExport {
		if err := runExport(ctx, store, *outPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := runImport(ctx, store, *importPath); err != nil {
		log.Fatal(err)
	}
}

func runExport(ctx context.Context, store ports.StateStore, outPath string) error {
	data, err := services.ExportSnapshot(ctx, store)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if outPath == "" {
		outPath = services.BackupFilename(time.Now())
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("export: write %q: %w", outPath, err)
	}

	log.Printf("Exported snapshot path=%s bytes=%d", outPath, len(data))
	return nil
}

func runImport(ctx context.Context, store ports.StateStore, importPath string) error {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return fmt.Errorf("import: read %q: %w", importPath, err)
	}

	if err := services.ImportSnapshot(ctx, store, data); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	log.Printf("Imported snapshot path=%s", importPath)
	return nil
}

func openStore() (ports.StateStore, func(), error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := storage.InitPostgresSchema(pg); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return storage.NewPostgresStateStore(pg), func() { pg.Close() }, nil
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/porter.db"
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite database %q: %w", dbPath, err)
	}
	if err := storage.InitSqliteSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return storage.NewSqliteStateStore(sqlDB), func() { sqlDB.Close() }, nil
}
