// Package store is the local content library: playlists mirrored as
// collection records, videos mirrored as content records, sideloaded
// thumbnail attachments, a small options table, and the sync lock.
//
// Everything lives in one SQLite database. External IDs (YouTube playlist
// and video IDs) are unique-indexed, so upsert-or-insert is a single
// indexed lookup rather than a metadata-key existence dance.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Pure-Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the sole writer to the library database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger

	// nowFunc is injectable for deterministic tests.
	nowFunc func() time.Time
}

// Open opens the SQLite database at dbPath, runs migrations, and returns
// a ready-to-use Store. The database uses WAL mode with synchronous=FULL
// for crash-safe durability.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// DSN parameters ensure pragmas apply to every connection from the pool.
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)"+
			"&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)",
		dbPath,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: opening database %s: %w", dbPath, err)
	}

	// Sole-writer pattern: only one connection writes at a time.
	db.SetMaxOpenConns(1)

	if err := runMigrations(context.Background(), db, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("library store opened", slog.String("db_path", dbPath))

	return &Store{
		db:      db,
		logger:  logger,
		nowFunc: time.Now,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// now returns the current time via the injectable clock.
func (s *Store) now() time.Time {
	return s.nowFunc()
}
