package media

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytmirror/ytmirror/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "library.db"), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSideload_CommitsFileAndRecordsAttachment(t *testing.T) {
	var downloads int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		downloads++

		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	st := newTestStore(t)
	dir := t.TempDir()
	sl := New(dir, srv.Client(), st, slog.New(slog.DiscardHandler))

	id, err := sl.Sideload(context.Background(), srv.URL+"/hq.jpg", "vid1", "My Video!", "")
	require.NoError(t, err)
	assert.Equal(t, 1, downloads)

	rec, err := st.AttachmentByVideoID(context.Background(), "vid1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, filepath.Join(dir, "my-video-vid1.jpg"), rec.Path)

	data, err := os.ReadFile(rec.Path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestSideload_ReusesExistingAttachment(t *testing.T) {
	var downloads int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		downloads++

		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	st := newTestStore(t)
	sl := New(t.TempDir(), srv.Client(), st, slog.New(slog.DiscardHandler))

	first, err := sl.Sideload(context.Background(), srv.URL+"/a.jpg", "vid1", "Video", "")
	require.NoError(t, err)

	second, err := sl.Sideload(context.Background(), srv.URL+"/a.jpg", "vid1", "Video", "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, downloads)
}

func TestSideload_DownloadFailureSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	st := newTestStore(t)
	sl := New(t.TempDir(), srv.Client(), st, slog.New(slog.DiscardHandler))

	_, err := sl.Sideload(context.Background(), srv.URL+"/gone.jpg", "vid1", "Video", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	// No attachment row and no leftover temp files.
	rec, err := st.AttachmentByVideoID(context.Background(), "vid1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSideload_ExplicitExtensionWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	st := newTestStore(t)
	dir := t.TempDir()
	sl := New(dir, srv.Client(), st, slog.New(slog.DiscardHandler))

	_, err := sl.Sideload(context.Background(), srv.URL+"/img", "vid2", "Other", "jpg")
	require.NoError(t, err)

	rec, err := st.AttachmentByVideoID(context.Background(), "vid2")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "other-vid2.jpg"), rec.Path)
}

func TestInferExtension(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		url         string
		want        string
	}{
		{"jpeg content type", "image/jpeg", "https://img.example/x", "jpg"},
		{"png content type", "image/png", "https://img.example/x", "png"},
		{"webp with params", "image/webp; charset=binary", "https://img.example/x", "webp"},
		{"falls back to url path", "application/octet-stream", "https://img.example/pic.gif", "gif"},
		{"falls back to jpg", "", "https://img.example/pic", "jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferExtension(tt.contentType, tt.url))
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Video!", "my-video"},
		{"  spaced   out  ", "spaced-out"},
		{"Çafé Tour — Pt. 2", "çafé-tour-pt-2"},
		{"UPPER_case-123", "upper-case-123"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}
