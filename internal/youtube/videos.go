package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	yt "google.golang.org/api/youtube/v3"
)

// playlistItemParts are the response parts requested for playlist item
// listings. snippet.resourceId carries the video reference.
var playlistItemParts = []string{"contentDetails", "snippet", "status"}

// VideosByPlaylist fetches all items of a playlist, following page tokens
// until the listing is exhausted or the call budget runs out. An empty
// playlist is not an error. A transport failure on any page aborts the
// whole listing.
func (c *Client) VideosByPlaylist(ctx context.Context, playlistID string) ([]*PlaylistItem, error) {
	var items []*PlaylistItem

	pageToken := ""
	calls := 0

	for {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		call := c.service.PlaylistItems.List(playlistItemParts).
			PlaylistId(playlistID).
			MaxResults(maxResults).
			Context(ctx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("youtube: listing items for playlist %s: %w", playlistID, err)
		}

		for _, item := range resp.Items {
			pi, convErr := toPlaylistItem(item)
			if convErr != nil {
				return nil, convErr
			}

			items = append(items, pi)
		}

		pageToken = resp.NextPageToken
		calls++

		if pageToken == "" || calls >= maxCalls {
			break
		}
	}

	c.logger.Debug("listed playlist items",
		slog.String("playlist_id", playlistID),
		slog.Int("count", len(items)),
		slog.Int("pages", calls),
	)

	return items, nil
}

// toPlaylistItem normalizes an API playlist item. The external video ID
// comes from the item's embedded resource reference.
func toPlaylistItem(in *yt.PlaylistItem) (*PlaylistItem, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("youtube: encoding playlist item payload: %w", err)
	}

	pi := &PlaylistItem{
		Etag: in.Etag,
		Raw:  raw,
	}

	if in.Snippet != nil {
		pi.Title = in.Snippet.Title
		pi.Description = in.Snippet.Description
		pi.ThumbnailURL = bestThumbnailURL(in.Snippet.Thumbnails)

		if in.Snippet.ResourceId != nil {
			pi.VideoID = in.Snippet.ResourceId.VideoId
		}
	}

	return pi, nil
}
