// Package sqlite provides the SQLite-backed roll history store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/erikjuhani/droll/internal/history"
	"github.com/erikjuhani/droll/internal/history/sqlite/migrations"
	"github.com/erikjuhani/droll/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

const defaultListLimit = 50

// Store provides a SQLite-backed roll history store.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite roll history store at the provided path and applies
// embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
//
// Close is intentionally nil-safe so callers can defer it in all startup paths.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Put stores a roll record.
func (s *Store) Put(ctx context.Context, record history.Record) error {
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("record id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO rolls (id, notation, rendered, result, seed, rolled_at)
VALUES (?, ?, ?, ?, ?, ?)
`, record.ID, record.Notation, record.Rendered, record.Result, toNullSeed(record.Seed), toMillis(record.RolledAt))
	if err != nil {
		return fmt.Errorf("insert roll record: %w", err)
	}
	return nil
}

// Get returns the roll record with the provided id.
func (s *Store) Get(ctx context.Context, id string) (history.Record, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, notation, rendered, result, seed, rolled_at
FROM rolls WHERE id = ?
`, id)

	record, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return history.Record{}, history.ErrNotFound
	}
	if err != nil {
		return history.Record{}, fmt.Errorf("get roll record: %w", err)
	}
	return record, nil
}

// List returns the most recent roll records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]history.Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, notation, rendered, result, seed, rolled_at
FROM rolls ORDER BY rolled_at DESC, id LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list roll records: %w", err)
	}
	defer rows.Close()

	var records []history.Record
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan roll record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read roll records: %w", err)
	}
	return records, nil
}

func scanRecord(scan func(...any) error) (history.Record, error) {
	var record history.Record
	var seed sql.NullInt64
	var rolledAt int64
	if err := scan(&record.ID, &record.Notation, &record.Rendered, &record.Result, &seed, &rolledAt); err != nil {
		return history.Record{}, err
	}
	record.Seed = fromNullSeed(seed)
	record.RolledAt = fromMillis(rolledAt)
	return record, nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis reverses toMillis for persisted millisecond timestamps.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func toNullSeed(seed *int64) sql.NullInt64 {
	if seed == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *seed, Valid: true}
}

func fromNullSeed(seed sql.NullInt64) *int64 {
	if !seed.Valid {
		return nil
	}
	value := seed.Int64
	return &value
}
