package importer

import (
	"context"
	"log/slog"

	"github.com/ytmirror/ytmirror/internal/youtube"
)

// ImportChannel refreshes the cached channel document. On success the
// raw remote payload replaces the cache; on any failure the cache is
// cleared so stale channel metadata is never served. An empty channel ID
// clears the cache and reports the channel as not found.
func (e *Engine) ImportChannel(ctx context.Context, channelID string) (*youtube.Channel, error) {
	if channelID == "" {
		if err := e.store.ClearChannelCache(ctx); err != nil {
			return nil, err
		}

		return nil, youtube.ErrChannelNotFound
	}

	ch, err := e.remote.ChannelByID(ctx, channelID)
	if err != nil {
		if clearErr := e.store.ClearChannelCache(ctx); clearErr != nil {
			e.logger.Warn("clearing channel cache", slog.Any("error", clearErr))
		}

		return nil, err
	}

	if err := e.store.SetChannelCache(ctx, ch.Raw); err != nil {
		return nil, err
	}

	e.logger.Debug("channel cached",
		slog.String("channel_id", ch.ID),
		slog.String("title", ch.Title),
	)

	return ch, nil
}
