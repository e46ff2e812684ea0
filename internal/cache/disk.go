package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// DiskStore is the persistent cache tier: one row per dataset key, carrying
// the payload and its fetch timestamp. Rows survive process restarts and are
// read lazily per key, never scanned eagerly.
type DiskStore struct {
	db   *sql.DB
	path string
}

// OpenDiskStore opens (or creates) the cache database at path.
func OpenDiskStore(path string) (*DiskStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}

	s := &DiskStore{db: sqlDB, path: path}

	if err := s.configure(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to configure cache database: %w", err)
	}
	if err := s.createSchema(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *DiskStore) Path() string {
	return s.path
}

// configure sets up database pragmas. WAL tolerates concurrent readers with
// one writer per row, which is all the cache needs.
func (s *DiskStore) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}
	return nil
}

func (s *DiskStore) createSchema() error {
	_, err := s.db.ExecContext(context.Background(), `
		CREATE TABLE IF NOT EXISTS cache_entries (
			key        TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		)
	`)
	return err
}

// Load reads the row for key. A missing row returns ok=false with a nil
// error; unreadable rows are the caller's to treat as absent.
func (s *DiskStore) Load(ctx context.Context, key string) (payload []byte, fetchedAt time.Time, ok bool, err error) {
	var millis int64
	row := s.db.QueryRowContext(ctx,
		"SELECT payload, fetched_at FROM cache_entries WHERE key = ?", key)
	if err := row.Scan(&payload, &millis); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, false, nil
		}
		return nil, time.Time{}, false, err
	}
	if len(payload) == 0 || millis <= 0 {
		// Corrupted row: treat as absent.
		return nil, time.Time{}, false, nil
	}
	return payload, time.UnixMilli(millis), true, nil
}

// Store upserts the row for key. A row already carrying a newer fetched_at
// wins: late completions of older fetches never clobber fresher data.
func (s *DiskStore) Store(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
		WHERE excluded.fetched_at > cache_entries.fetched_at
	`, key, payload, fetchedAt.UnixMilli())
	return err
}

// Delete removes the row for key.
func (s *DiskStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE key = ?", key)
	return err
}

// Close closes the underlying database.
func (s *DiskStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
