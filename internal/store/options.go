package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Well-known option keys.
const (
	optionChannelCache  = "channel_cache"
	optionLatestSyncLog = "latest_sync_log"
)

// SetOption upserts a key/value pair in the options table.
func (s *Store) SetOption(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO options (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().Unix())
	if err != nil {
		return fmt.Errorf("store: setting option %s: %w", key, err)
	}

	return nil
}

// Option returns the value for a key and whether it was present.
func (s *Store) Option(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM options WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("store: reading option %s: %w", key, err)
	}

	return value, true, nil
}

// DeleteOption removes a key. Missing keys are not an error.
func (s *Store) DeleteOption(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM options WHERE key = ?`, key); err != nil {
		return fmt.Errorf("store: deleting option %s: %w", key, err)
	}

	return nil
}

// SetChannelCache overwrites the cached channel document.
func (s *Store) SetChannelCache(ctx context.Context, raw []byte) error {
	return s.SetOption(ctx, optionChannelCache, string(raw))
}

// ChannelCache returns the cached channel document, if any.
func (s *Store) ChannelCache(ctx context.Context) ([]byte, bool, error) {
	value, ok, err := s.Option(ctx, optionChannelCache)
	if err != nil || !ok {
		return nil, ok, err
	}

	return []byte(value), true, nil
}

// ClearChannelCache drops the cached channel document.
func (s *Store) ClearChannelCache(ctx context.Context) error {
	return s.DeleteOption(ctx, optionChannelCache)
}

// SetLatestSyncLog records the path of the most recent sync log artifact.
func (s *Store) SetLatestSyncLog(ctx context.Context, path string) error {
	return s.SetOption(ctx, optionLatestSyncLog, path)
}

// LatestSyncLog returns the path of the most recent sync log artifact.
func (s *Store) LatestSyncLog(ctx context.Context) (string, bool, error) {
	return s.Option(ctx, optionLatestSyncLog)
}
