package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// PlaylistRecord is one local playlist, mirroring a remote playlist by
// its stable external ID. Etag is the stored change fingerprint; Payload
// is the raw remote document it was computed from.
type PlaylistRecord struct {
	ID          int64
	PlaylistID  string
	Etag        string
	Title       string
	Description string
	EmbedHTML   string
	Payload     []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const sqlSelectPlaylist = `SELECT id, playlist_id, etag, title, description,
	embed_html, payload, created_at, updated_at FROM playlists `

// PlaylistByExternalID looks up a playlist by its external ID via the
// unique index. Returns (nil, nil) when no record exists — absence is an
// ordinary answer during upsert, not an error.
func (s *Store) PlaylistByExternalID(ctx context.Context, playlistID string) (*PlaylistRecord, error) {
	row := s.db.QueryRowContext(ctx, sqlSelectPlaylist+`WHERE playlist_id = ?`, playlistID)

	rec, err := scanPlaylist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("store: playlist lookup %s: %w", playlistID, err)
	}

	return rec, nil
}

// InsertPlaylist creates a new playlist record and returns its local key.
func (s *Store) InsertPlaylist(ctx context.Context, rec *PlaylistRecord) (int64, error) {
	now := s.now().Unix()

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO playlists (playlist_id, etag, title, description, embed_html, payload, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.PlaylistID, rec.Etag, rec.Title, rec.Description, rec.EmbedHTML, rec.Payload, now, now)
	if err != nil {
		return 0, fmt.Errorf("store: inserting playlist %s: %w", rec.PlaylistID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: playlist insert id: %w", err)
	}

	s.logger.Debug("playlist inserted",
		slog.Int64("id", id),
		slog.String("playlist_id", rec.PlaylistID),
	)

	return id, nil
}

// UpdatePlaylist overwrites the mutable fields of an existing playlist
// record, including the stored fingerprint and payload.
func (s *Store) UpdatePlaylist(ctx context.Context, rec *PlaylistRecord) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE playlists SET etag = ?, title = ?, description = ?, embed_html = ?, payload = ?, updated_at = ?
		 WHERE id = ?`,
		rec.Etag, rec.Title, rec.Description, rec.EmbedHTML, rec.Payload, s.now().Unix(), rec.ID)
	if err != nil {
		return fmt.Errorf("store: updating playlist %d: %w", rec.ID, err)
	}

	return nil
}

// DeletePlaylistsNotIn removes every playlist whose local key is absent
// from keep, returning the keys actually deleted. An empty keep list
// removes all playlists.
func (s *Store) DeletePlaylistsNotIn(ctx context.Context, keep []int64) ([]int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin playlist cleanup: %w", err)
	}
	defer tx.Rollback()

	cond, args := notInCondition(keep)

	ids, err := collectIDs(tx.QueryContext(ctx, `SELECT id FROM playlists WHERE `+cond, args...))
	if err != nil {
		return nil, fmt.Errorf("store: selecting orphaned playlists: %w", err)
	}

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id); err != nil {
			return nil, fmt.Errorf("store: deleting playlist %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit playlist cleanup: %w", err)
	}

	if len(ids) > 0 {
		s.logger.Info("orphaned playlists deleted", slog.Int("count", len(ids)))
	}

	return ids, nil
}

// scanPlaylist scans one playlist row.
func scanPlaylist(row *sql.Row) (*PlaylistRecord, error) {
	var (
		rec                  PlaylistRecord
		createdAt, updatedAt int64
	)

	err := row.Scan(&rec.ID, &rec.PlaylistID, &rec.Etag, &rec.Title, &rec.Description,
		&rec.EmbedHTML, &rec.Payload, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = time.Unix(createdAt, 0)
	rec.UpdatedAt = time.Unix(updatedAt, 0)

	return &rec, nil
}
