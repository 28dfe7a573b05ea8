package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ytmirror/ytmirror/internal/config"
	"github.com/ytmirror/ytmirror/internal/importer"
	"github.com/ytmirror/ytmirror/internal/media"
	"github.com/ytmirror/ytmirror/internal/store"
	"github.com/ytmirror/ytmirror/internal/youtube"
)

// app bundles the components a sync-capable command needs. Everything is
// wired explicitly here; nothing reaches for configuration on its own.
type app struct {
	cfg    *config.Config
	store  *store.Store
	engine *importer.Engine
	logger *slog.Logger
}

// buildApp wires the library store, the API client, and the sync engine
// from the resolved configuration. The returned cleanup closes the store.
func buildApp(ctx context.Context, logger *slog.Logger) (*app, func(), error) {
	cfg := resolvedCfg

	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("no API key configured; set api_key in the config file or YTMIRROR_API_KEY")
	}

	if cfg.ChannelID == "" {
		return nil, nil, fmt.Errorf("no channel configured; set channel_id in the config file or pass --channel")
	}

	st, cleanup, err := openStore(logger)
	if err != nil {
		return nil, nil, err
	}

	client, err := youtube.New(ctx, cfg.APIKey, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	sideloader := media.New(cfg.MediaDir(), nil, st, logger)
	embeds := youtube.NewOEmbedClient("", nil)
	engine := importer.New(st, client, embeds, sideloader, cfg, logger)

	return &app{cfg: cfg, store: st, engine: engine, logger: logger}, cleanup, nil
}

// openStore opens just the library store, for commands that never talk
// to the remote API.
func openStore(logger *slog.Logger) (*store.Store, func(), error) {
	cfg := resolvedCfg

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	st, err := store.Open(cfg.DBPath(), logger)
	if err != nil {
		return nil, nil, err
	}

	return st, func() { st.Close() }, nil
}

// pidFilePath is where the watch daemon records its PID.
func pidFilePath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "ytmirror.pid")
}
