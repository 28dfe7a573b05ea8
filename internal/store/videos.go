package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Video lifecycle statuses. Active records are "publish"; "trash" is the
// reversible soft-removed state.
const (
	StatusPublish = "publish"
	StatusTrash   = "trash"
)

// VideoRecord is one local video, mirroring a remote playlist item by its
// stable external video ID.
type VideoRecord struct {
	ID           int64
	VideoID      string
	Title        string
	Description  string
	URL          string
	EmbedHTML    string
	Status       string
	ThumbnailID  int64 // 0 when no attachment is set
	Payload      []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const sqlSelectVideo = `SELECT id, video_id, title, description, url, embed_html,
	status, thumbnail_id, payload, created_at, updated_at FROM videos `

// VideoByExternalID looks up a video by its external ID via the unique
// index. Returns (nil, nil) when no record exists.
func (s *Store) VideoByExternalID(ctx context.Context, videoID string) (*VideoRecord, error) {
	row := s.db.QueryRowContext(ctx, sqlSelectVideo+`WHERE video_id = ?`, videoID)

	rec, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("store: video lookup %s: %w", videoID, err)
	}

	return rec, nil
}

// UpsertVideo inserts a new video record or updates the existing one in
// place, keyed by external video ID. The local primary key of an existing
// record is preserved; a trashed record that reappears remotely is
// republished. Returns the local key.
func (s *Store) UpsertVideo(ctx context.Context, rec *VideoRecord) (int64, error) {
	now := s.now().Unix()

	existing, err := s.VideoByExternalID(ctx, rec.VideoID)
	if err != nil {
		return 0, err
	}

	if existing == nil {
		result, insErr := s.db.ExecContext(ctx,
			`INSERT INTO videos (video_id, title, description, url, embed_html, status, payload, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.VideoID, rec.Title, rec.Description, rec.URL, rec.EmbedHTML, StatusPublish, rec.Payload, now, now)
		if insErr != nil {
			return 0, fmt.Errorf("store: inserting video %s: %w", rec.VideoID, insErr)
		}

		id, idErr := result.LastInsertId()
		if idErr != nil {
			return 0, fmt.Errorf("store: video insert id: %w", idErr)
		}

		s.logger.Debug("video inserted",
			slog.Int64("id", id),
			slog.String("video_id", rec.VideoID),
		)

		return id, nil
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE videos SET title = ?, description = ?, url = ?, embed_html = ?, status = ?, payload = ?, updated_at = ?
		 WHERE id = ?`,
		rec.Title, rec.Description, rec.URL, rec.EmbedHTML, StatusPublish, rec.Payload, now, existing.ID)
	if err != nil {
		return 0, fmt.Errorf("store: updating video %s: %w", rec.VideoID, err)
	}

	return existing.ID, nil
}

// SetVideoThumbnail points a video at a sideloaded attachment.
func (s *Store) SetVideoThumbnail(ctx context.Context, videoKey, attachmentID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE videos SET thumbnail_id = ? WHERE id = ?`, attachmentID, videoKey)
	if err != nil {
		return fmt.Errorf("store: setting thumbnail for video %d: %w", videoKey, err)
	}

	return nil
}

// AssociateVideoPlaylist records that a video was seen under a playlist.
// The association is additive: existing rows for other playlists stay.
func (s *Store) AssociateVideoPlaylist(ctx context.Context, videoKey, playlistKey int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO video_playlists (video_id, playlist_id) VALUES (?, ?)`,
		videoKey, playlistKey)
	if err != nil {
		return fmt.Errorf("store: associating video %d with playlist %d: %w", videoKey, playlistKey, err)
	}

	return nil
}

// DeleteVideosNotIn permanently removes every published video whose local
// key is absent from keep, returning the keys actually deleted. Trashed
// records are left alone — they were already swept in an earlier run.
func (s *Store) DeleteVideosNotIn(ctx context.Context, keep []int64) ([]int64, error) {
	return s.sweepVideos(ctx, keep, func(ctx context.Context, tx *sql.Tx, id int64) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
		return err
	}, "deleted")
}

// TrashVideosNotIn soft-removes every published video whose local key is
// absent from keep, returning the keys actually trashed. The transition
// is reversible via RestoreVideo.
func (s *Store) TrashVideosNotIn(ctx context.Context, keep []int64) ([]int64, error) {
	now := s.now().Unix()

	return s.sweepVideos(ctx, keep, func(ctx context.Context, tx *sql.Tx, id int64) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE videos SET status = ?, updated_at = ? WHERE id = ?`, StatusTrash, now, id)
		return err
	}, "trashed")
}

// RestoreVideo flips a trashed video back to published.
func (s *Store) RestoreVideo(ctx context.Context, videoKey int64) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE videos SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		StatusPublish, s.now().Unix(), videoKey, StatusTrash)
	if err != nil {
		return fmt.Errorf("store: restoring video %d: %w", videoKey, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: restore rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("store: restoring video %d: not in trash", videoKey)
	}

	return nil
}

// sweepVideos applies op to every published video not in keep, inside one
// transaction, and returns the affected keys.
func (s *Store) sweepVideos(
	ctx context.Context, keep []int64,
	op func(context.Context, *sql.Tx, int64) error, verb string,
) ([]int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin video cleanup: %w", err)
	}
	defer tx.Rollback()

	cond, args := notInCondition(keep)
	args = append(args, StatusPublish)

	ids, err := collectIDs(tx.QueryContext(ctx,
		`SELECT id FROM videos WHERE `+cond+` AND status = ?`, args...))
	if err != nil {
		return nil, fmt.Errorf("store: selecting orphaned videos: %w", err)
	}

	for _, id := range ids {
		if err := op(ctx, tx, id); err != nil {
			return nil, fmt.Errorf("store: sweeping video %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit video cleanup: %w", err)
	}

	if len(ids) > 0 {
		s.logger.Info("orphaned videos "+verb, slog.Int("count", len(ids)))
	}

	return ids, nil
}

// scanVideo scans one video row, handling the nullable thumbnail column.
func scanVideo(row *sql.Row) (*VideoRecord, error) {
	var (
		rec                  VideoRecord
		thumbnailID          sql.NullInt64
		createdAt, updatedAt int64
	)

	err := row.Scan(&rec.ID, &rec.VideoID, &rec.Title, &rec.Description, &rec.URL,
		&rec.EmbedHTML, &rec.Status, &thumbnailID, &rec.Payload, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if thumbnailID.Valid {
		rec.ThumbnailID = thumbnailID.Int64
	}

	rec.CreatedAt = time.Unix(createdAt, 0)
	rec.UpdatedAt = time.Unix(updatedAt, 0)

	return &rec, nil
}
