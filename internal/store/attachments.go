package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// AttachmentRecord is one sideloaded media asset, tagged with the
// external video ID it belongs to so a later run can reuse it instead of
// downloading again.
type AttachmentRecord struct {
	ID        int64
	VideoID   string
	Path      string
	Title     string
	CreatedAt time.Time
}

// AttachmentByVideoID returns the attachment tagged with the given
// external video ID, or (nil, nil) when none exists.
func (s *Store) AttachmentByVideoID(ctx context.Context, videoID string) (*AttachmentRecord, error) {
	var (
		rec       AttachmentRecord
		createdAt int64
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT id, video_id, path, title, created_at FROM attachments WHERE video_id = ? ORDER BY id LIMIT 1`,
		videoID).Scan(&rec.ID, &rec.VideoID, &rec.Path, &rec.Title, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("store: attachment lookup %s: %w", videoID, err)
	}

	rec.CreatedAt = time.Unix(createdAt, 0)

	return &rec, nil
}

// InsertAttachment records a committed media asset and returns its key.
func (s *Store) InsertAttachment(ctx context.Context, rec *AttachmentRecord) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO attachments (video_id, path, title, created_at) VALUES (?, ?, ?, ?)`,
		rec.VideoID, rec.Path, rec.Title, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("store: inserting attachment for %s: %w", rec.VideoID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: attachment insert id: %w", err)
	}

	s.logger.Debug("attachment recorded",
		slog.Int64("id", id),
		slog.String("video_id", rec.VideoID),
	)

	return id, nil
}
