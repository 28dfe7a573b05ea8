package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOEmbedClient_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://www.youtube.com/watch?v=vid1", r.URL.Query().Get("url"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"html": "<iframe src=\"https://www.youtube.com/embed/vid1\"></iframe>", "title": "Video One"}`)
	}))
	defer srv.Close()

	client := NewOEmbedClient(srv.URL, srv.Client())

	html, err := client.EmbedHTML(context.Background(), WatchURL("vid1"))
	require.NoError(t, err)
	assert.Contains(t, html, "embed/vid1")
}

func TestOEmbedClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewOEmbedClient(srv.URL, srv.Client())

	_, err := client.EmbedHTML(context.Background(), WatchURL("gone"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
