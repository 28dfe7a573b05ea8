package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// AcquireSyncLock attempts to take the sync lock by writing the current
// timestamp into the single-row sync_lock table. The whole check-and-set
// is one conditional upsert, so two near-simultaneous callers cannot both
// acquire: the statement only succeeds when no lock row exists or the
// existing timestamp is older than timeout (an abandoned run).
//
// Returns true when the lock was acquired, false when a sync is already
// in progress.
func (s *Store) AcquireSyncLock(ctx context.Context, timeout time.Duration) (bool, error) {
	now := s.now()
	cutoff := now.Add(-timeout).Unix()

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO sync_lock (id, acquired_at) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET acquired_at = excluded.acquired_at
		 WHERE sync_lock.acquired_at <= ?`,
		now.Unix(), cutoff)
	if err != nil {
		return false, fmt.Errorf("store: acquiring sync lock: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("store: sync lock rows affected: %w", err)
	}

	if rows == 0 {
		return false, nil
	}

	s.logger.Debug("sync lock acquired", slog.Time("at", now))

	return true, nil
}

// ReleaseSyncLock clears the sync lock. Safe to call when no lock is held.
func (s *Store) ReleaseSyncLock(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sync_lock WHERE id = 1`); err != nil {
		return fmt.Errorf("store: releasing sync lock: %w", err)
	}

	return nil
}

// SyncLockedAt returns the lock timestamp and whether a lock row exists.
func (s *Store) SyncLockedAt(ctx context.Context) (time.Time, bool, error) {
	var acquiredAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT acquired_at FROM sync_lock WHERE id = 1`).Scan(&acquiredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}

	if err != nil {
		return time.Time{}, false, fmt.Errorf("store: reading sync lock: %w", err)
	}

	return time.Unix(acquiredAt, 0), true, nil
}
