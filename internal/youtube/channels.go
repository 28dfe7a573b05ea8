package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	yt "google.golang.org/api/youtube/v3"
)

// channelParts are the response parts requested for channel lookups.
// contentDetails carries the uploads playlist reference.
var channelParts = []string{"contentDetails", "snippet", "status"}

// ChannelByID fetches exactly one channel. A zero-item response returns
// ErrChannelNotFound.
func (c *Client) ChannelByID(ctx context.Context, channelID string) (*Channel, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.Channels.List(channelParts).
		Id(channelID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: fetching channel %s: %w", channelID, err)
	}

	if len(resp.Items) == 0 {
		return nil, ErrChannelNotFound
	}

	ch, err := toChannel(resp.Items[0])
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetched channel",
		slog.String("channel_id", ch.ID),
		slog.String("title", ch.Title),
	)

	return ch, nil
}

// toChannel normalizes an API channel into the package's typed record,
// retaining the raw payload for the local cache.
func toChannel(in *yt.Channel) (*Channel, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("youtube: encoding channel payload: %w", err)
	}

	ch := &Channel{
		ID:   in.Id,
		Etag: in.Etag,
		Raw:  raw,
	}

	if in.Snippet != nil {
		ch.Title = in.Snippet.Title
		ch.Description = in.Snippet.Description
		ch.ThumbnailURL = bestThumbnailURL(in.Snippet.Thumbnails)
	}

	if in.ContentDetails != nil && in.ContentDetails.RelatedPlaylists != nil {
		ch.UploadsPlaylistID = in.ContentDetails.RelatedPlaylists.Uploads
	}

	return ch, nil
}
