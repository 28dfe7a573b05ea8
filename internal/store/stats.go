package store

import (
	"context"
	"fmt"
)

// LibraryStats summarizes the local library for status display.
type LibraryStats struct {
	Playlists       int `json:"playlists"`
	VideosPublished int `json:"videos_published"`
	VideosTrashed   int `json:"videos_trashed"`
	Attachments     int `json:"attachments"`
}

// Stats counts the library's records.
func (s *Store) Stats(ctx context.Context) (*LibraryStats, error) {
	var stats LibraryStats

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM playlists`, &stats.Playlists},
		{`SELECT COUNT(*) FROM videos WHERE status = '` + StatusPublish + `'`, &stats.VideosPublished},
		{`SELECT COUNT(*) FROM videos WHERE status = '` + StatusTrash + `'`, &stats.VideosTrashed},
		{`SELECT COUNT(*) FROM attachments`, &stats.Attachments},
	}

	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("store: counting library records: %w", err)
		}
	}

	return &stats, nil
}
