// Package history keeps a local log of listing invocations in SQLite.
// Recording is best-effort; callers treat every error here as non-fatal.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// History manages the listing log database.
type History struct {
	db *sql.DB
}

// Open opens (and if needed creates) the history database at dbPath.
func Open(dbPath string) (*History, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer; SQLite locks the whole file anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	h := &History{db: db}

	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return h, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) initSchema() error {
	_, err := h.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			listed_at TEXT NOT NULL,
			app_filter TEXT NOT NULL,
			deployment_count INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	_, err = h.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_listed_at
		ON listings(listed_at DESC)
	`)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// RecordListing inserts one invocation record and returns its row id.
// A zero ListedAt is filled with the current time.
func (h *History) RecordListing(ctx context.Context, record *ListingRecord) (int64, error) {
	listedAt := record.ListedAt
	if listedAt.IsZero() {
		listedAt = time.Now()
	}

	result, err := h.db.ExecContext(ctx, `
		INSERT INTO listings (listed_at, app_filter, deployment_count, duration_ms)
		VALUES (?, ?, ?, ?)
	`,
		listedAt.UTC().Format(time.RFC3339),
		record.AppFilter,
		record.Count,
		record.DurationMS,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert listing record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// Recent returns up to limit invocation records, most recent first.
func (h *History) Recent(ctx context.Context, limit int) ([]ListingRecord, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, listed_at, app_filter, deployment_count, duration_ms
		FROM listings
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query listing history: %w", err)
	}
	defer rows.Close()

	var records []ListingRecord
	for rows.Next() {
		var record ListingRecord
		var listedAtStr string

		if err := rows.Scan(&record.ID, &listedAtStr, &record.AppFilter, &record.Count, &record.DurationMS); err != nil {
			return nil, fmt.Errorf("failed to scan listing record: %w", err)
		}

		listedAt, err := time.Parse(time.RFC3339, listedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse listed_at timestamp: %w", err)
		}
		record.ListedAt = listedAt

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}
