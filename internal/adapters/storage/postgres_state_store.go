package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"porter-desk-service/internal/platform/obs"
	"porter-desk-service/internal/ports"
)

// Postgres-backed implementation of the StateStore port, for desks that
// keep their ledger on a building back-office database instead of a local
// file. Same slots layout as the SQLite store.
type PostgresStateStore struct{ DB *sql.DB }

func NewPostgresStateStore(db *sql.DB) *PostgresStateStore {
	return &PostgresStateStore{DB: db}
}

// Initialize the Postgres slot schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init schema: create slots table: %w", err)
	}

	return nil
}

func (s *PostgresStateStore) Write(ctx context.Context, slot, value string) (err error) {
	defer obs.Time(ctx, "state.postgres.Write")(&err)

	if s.DB == nil {
		return errors.New("postgres state store: DB is nil")
	}
	if strings.TrimSpace(slot) == "" {
		return errors.New("postgres state store: empty slot name")
	}

	query := `
	INSERT INTO slots (
		name,
		value
	)
	VALUES ($1, $2)
	ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value;
	`
	if _, err := s.DB.ExecContext(ctx, query, slot, value); err != nil {
		return fmt.Errorf("postgres state store: write slot %q: %w: %w", slot, ports.ErrStorageUnavailable, err)
	}

	return nil
}

func (s *PostgresStateStore) Read(ctx context.Context, slot string) (value string, ok bool, err error) {
	defer obs.Time(ctx, "state.postgres.Read")(&err)

	if s.DB == nil {
		return "", false, errors.New("postgres state store: DB is nil")
	}

	query := `
	SELECT value
	FROM slots
	WHERE name = $1;
	`
	err = s.DB.QueryRowContext(ctx, query, slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres state store: read slot %q: %w: %w", slot, ports.ErrStorageUnavailable, err)
	}

	return value, true, nil
}

func (s *PostgresStateStore) Clear(ctx context.Context, slot string) error {
	if s.DB == nil {
		return errors.New("postgres state store: DB is nil")
	}

	query := `
	DELETE FROM slots
	WHERE name = $1;
	`
	if _, err := s.DB.ExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("postgres state store: clear slot %q: %w: %w", slot, ports.ErrStorageUnavailable, err)
	}

	return nil
}
