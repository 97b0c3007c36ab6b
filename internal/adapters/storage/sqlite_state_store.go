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

// SQLite-backed implementation of the StateStore port. Each logical slot is
// one row in the slots table; a write replaces the whole value, matching the
// whole-collection persistence model of the ledger.
type SqliteStateStore struct{ DB *sql.DB }

func NewSqliteStateStore(db *sql.DB) *SqliteStateStore {
	return &SqliteStateStore{DB: db}
}

// Initialize the SQLite slot schema.
func InitSqliteSchema(db *sql.DB) error {
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

func (s *SqliteStateStore) Write(ctx context.Context, slot, value string) (err error) {
	defer obs.Time(ctx, "state.sqlite.Write")(&err)

	if s.DB == nil {
		return errors.New("sqlite state store: DB is nil")
	}
	if strings.TrimSpace(slot) == "" {
		return errors.New("sqlite state store: empty slot name")
	}

	query := `
	INSERT OR REPLACE INTO slots (
		name,
		value
	)
	VALUES (?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, slot, value); err != nil {
		return fmt.Errorf("sqlite state store: write slot %q: %w: %w", slot, ports.ErrStorageUnavailable, err)
	}

	return nil
}

func (s *SqliteStateStore) Read(ctx context.Context, slot string) (value string, ok bool, err error) {
	defer obs.Time(ctx, "state.sqlite.Read")(&err)

	if s.DB == nil {
		return "", false, errors.New("sqlite state store: DB is nil")
	}

	query := `
	SELECT value
	FROM slots
	WHERE name = ?;
	`
	err = s.DB.QueryRowContext(ctx, query, slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite state store: read slot %q: %w: %w", slot, ports.ErrStorageUnavailable, err)
	}

	return value, true, nil
}

func (s *SqliteStateStore) Clear(ctx context.Context, slot string) error {
	if s.DB == nil {
		return errors.New("sqlite state store: DB is nil")
	}

	query := `
	DELETE FROM slots
	WHERE name = ?;
	`
	if _, err := s.DB.ExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("sqlite state store: clear slot %q: %w: %w", slot, ports.ErrStorageUnavailable, err)
	}

	return nil
}
