package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	yt "google.golang.org/api/youtube/v3"
)

// playlistParts are the response parts requested for playlist lookups.
// player carries the embeddable iframe markup.
var playlistParts = []string{"player", "snippet", "status"}

// PlaylistByID fetches exactly one playlist. A zero-item response returns
// ErrPlaylistNotFound.
func (c *Client) PlaylistByID(ctx context.Context, playlistID string) (*Playlist, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.Playlists.List(playlistParts).
		Id(playlistID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: fetching playlist %s: %w", playlistID, err)
	}

	if len(resp.Items) == 0 {
		return nil, ErrPlaylistNotFound
	}

	return toPlaylist(resp.Items[0])
}

// PlaylistsByChannel fetches all playlists owned by a channel, following
// page tokens until the listing is exhausted or the call budget runs out.
// A transport failure on any page aborts the whole listing.
func (c *Client) PlaylistsByChannel(ctx context.Context, channelID string) ([]*Playlist, error) {
	var playlists []*Playlist

	pageToken := ""
	calls := 0

	for {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		call := c.service.Playlists.List(playlistParts).
			ChannelId(channelID).
			MaxResults(maxResults).
			Context(ctx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("youtube: listing playlists for channel %s: %w", channelID, err)
		}

		for _, item := range resp.Items {
			pl, convErr := toPlaylist(item)
			if convErr != nil {
				return nil, convErr
			}

			playlists = append(playlists, pl)
		}

		pageToken = resp.NextPageToken
		calls++

		if pageToken == "" || calls >= maxCalls {
			break
		}
	}

	c.logger.Debug("listed channel playlists",
		slog.String("channel_id", channelID),
		slog.Int("count", len(playlists)),
		slog.Int("pages", calls),
	)

	return playlists, nil
}

// toPlaylist normalizes an API playlist into the package's typed record.
func toPlaylist(in *yt.Playlist) (*Playlist, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("youtube: encoding playlist payload: %w", err)
	}

	pl := &Playlist{
		ID:   in.Id,
		Etag: in.Etag,
		Raw:  raw,
	}

	if in.Snippet != nil {
		pl.Title = in.Snippet.Title
		pl.Description = in.Snippet.Description
	}

	if in.Player != nil {
		pl.EmbedHTML = in.Player.EmbedHtml
	}

	return pl, nil
}
