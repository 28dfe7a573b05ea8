// Package media downloads remote thumbnail images and commits them as
// managed attachments in the library's media directory.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ytmirror/ytmirror/internal/store"
)

// downloadTimeout bounds a single thumbnail fetch.
const downloadTimeout = 30 * time.Second

// mediaDirPermissions for the managed media directory.
const mediaDirPermissions = 0o755

// Sideloader fetches remote images into the media directory and records
// them as attachments tagged with the owning external video ID.
type Sideloader struct {
	dir        string
	httpClient *http.Client
	store      *store.Store
	logger     *slog.Logger
}

// New creates a Sideloader committing files under dir. A nil httpClient
// selects a default with a download timeout.
func New(dir string, httpClient *http.Client, st *store.Store, logger *slog.Logger) *Sideloader {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: downloadTimeout}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Sideloader{
		dir:        dir,
		httpClient: httpClient,
		store:      st,
		logger:     logger,
	}
}

// Sideload downloads the image at srcURL and commits it as an attachment
// for the given external video ID. If an attachment tagged with the same
// video ID already exists it is reused without downloading. fileExt may
// be empty, in which case the extension is inferred from the response
// Content-Type (falling back to the URL path, then to jpg).
//
// Returns the attachment key. Failures are surfaced as errors; callers
// treat them as non-fatal for the owning video.
func (s *Sideloader) Sideload(ctx context.Context, srcURL, videoID, title, fileExt string) (int64, error) {
	existing, err := s.store.AttachmentByVideoID(ctx, videoID)
	if err != nil {
		return 0, err
	}

	if existing != nil {
		s.logger.Debug("reusing existing attachment",
			slog.Int64("id", existing.ID),
			slog.String("video_id", videoID),
		)

		return existing.ID, nil
	}

	if err := os.MkdirAll(s.dir, mediaDirPermissions); err != nil {
		return 0, fmt.Errorf("media: creating media directory: %w", err)
	}

	tmpPath, contentType, err := s.download(ctx, srcURL)
	if err != nil {
		return 0, err
	}

	if fileExt == "" {
		fileExt = inferExtension(contentType, srcURL)
	}

	finalPath := filepath.Join(s.dir, Slug(title+"-"+videoID)+"."+fileExt)

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("media: committing %s: %w", finalPath, err)
	}

	id, err := s.store.InsertAttachment(ctx, &store.AttachmentRecord{
		VideoID: videoID,
		Path:    finalPath,
		Title:   title,
	})
	if err != nil {
		os.Remove(finalPath)
		return 0, err
	}

	s.logger.Debug("thumbnail sideloaded",
		slog.Int64("id", id),
		slog.String("video_id", videoID),
		slog.String("path", finalPath),
	)

	return id, nil
}

// download fetches srcURL into a temporary file inside the media
// directory (same filesystem as the final path, so the commit rename is
// atomic). Returns the temp path and the response Content-Type.
func (s *Sideloader) download(ctx context.Context, srcURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("media: building download request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("media: downloading %s: %w", srcURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("media: downloading %s: status %d", srcURL, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(s.dir, "sideload-*.partial")
	if err != nil {
		return "", "", fmt.Errorf("media: creating temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return "", "", fmt.Errorf("media: writing %s: %w", tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", "", fmt.Errorf("media: closing temp file: %w", err)
	}

	return tmp.Name(), resp.Header.Get("Content-Type"), nil
}

// inferExtension derives a file extension from the Content-Type header,
// falling back to the URL path, then to jpg. The common image types are
// mapped explicitly because mime.ExtensionsByType returns alphabetical
// oddities like ".jpe" first.
func inferExtension(contentType, srcURL string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil {
		switch mediaType {
		case "image/jpeg":
			return "jpg"
		case "image/png":
			return "png"
		case "image/gif":
			return "gif"
		case "image/webp":
			return "webp"
		}
	}

	if ext := filepath.Ext(srcURL); len(ext) > 1 {
		return ext[1:]
	}

	return "jpg"
}
