// Package scheduler runs recurring syncs and reacts to configuration
// changes. A Runner combines a recurrence timer, an on-demand trigger,
// and a config-file watcher into one long-running loop.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/ytmirror/ytmirror/internal/config"
	"github.com/ytmirror/ytmirror/internal/importer"
	"github.com/ytmirror/ytmirror/internal/youtube"
)

// SyncRunTimeout bounds a single sync run. A run that exceeds it is
// canceled so a hung remote call cannot wedge the recurrence.
const SyncRunTimeout = 15 * time.Minute

// Engine is the subset of the sync engine the scheduler drives.
type Engine interface {
	Sync(ctx context.Context, force bool) (*importer.Report, error)
	ImportChannel(ctx context.Context, channelID string) (*youtube.Channel, error)
}

// ReloadFunc re-resolves configuration after the config file changed.
type ReloadFunc func() (*config.Config, error)

// IntervalFor maps an update frequency to a sync interval. The second
// return is false when scheduled syncs are off. Unrecognized values fall
// back to hourly, same as config validation.
func IntervalFor(frequency string) (time.Duration, bool) {
	switch config.NormalizeFrequency(frequency) {
	case config.FrequencyHourly:
		return time.Hour, true
	case config.FrequencyTwiceDaily:
		return 12 * time.Hour, true
	case config.FrequencyOnceDaily:
		return 24 * time.Hour, true
	default:
		return 0, false
	}
}

// Runner drives recurring syncs until its context is canceled.
type Runner struct {
	engine     Engine
	configPath string
	reload     ReloadFunc
	logger     *slog.Logger

	mu  sync.Mutex
	cfg *config.Config

	trigger chan struct{}

	// intervalFor and runTimeout are injectable so tests can run on
	// short intervals and timeouts.
	intervalFor func(string) (time.Duration, bool)
	runTimeout  time.Duration
}

// New creates a Runner. configPath and reload may be empty/nil to run
// without config watching.
func New(engine Engine, cfg *config.Config, configPath string, reload ReloadFunc, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		engine:      engine,
		configPath:  configPath,
		reload:      reload,
		logger:      logger,
		cfg:         cfg,
		trigger:     make(chan struct{}, 1),
		intervalFor: IntervalFor,
		runTimeout:  SyncRunTimeout,
	}
}

// TriggerSync requests an immediate sync outside the recurrence. Safe to
// call from any goroutine; a request while one is already pending is
// coalesced.
func (r *Runner) TriggerSync() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Run blocks, executing syncs on the configured recurrence and on
// demand, until ctx is canceled. Returns ctx.Err() on cancellation.
func (r *Runner) Run(ctx context.Context) error {
	interval, enabled := r.intervalFor(r.currentConfig().UpdateFrequency)
	if enabled {
		r.logger.Info("scheduler started", slog.Duration("interval", interval))
	} else {
		r.logger.Info("scheduler started, recurring sync off")
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return r.loop(ctx) })

	if r.configPath != "" && r.reload != nil {
		g.Go(func() error { return r.watchConfig(ctx) })
	}

	return g.Wait()
}

// loop waits for the next tick or trigger and runs a sync. The timer is
// re-armed from the current config each round, so a reload takes effect
// on the following wait.
func (r *Runner) loop(ctx context.Context) error {
	for {
		interval, enabled := r.intervalFor(r.currentConfig().UpdateFrequency)

		var (
			timer *time.Timer
			tick  <-chan time.Time
		)

		if enabled {
			timer = time.NewTimer(interval)
			tick = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return ctx.Err()
		case <-tick:
			r.runSync(ctx, false)
		case <-r.trigger:
			if timer != nil {
				timer.Stop()
			}

			r.runSync(ctx, true)
		}
	}
}

// runSync executes one sync under a per-run deadline, treating
// concurrency refusals as routine.
func (r *Runner) runSync(ctx context.Context, force bool) {
	runCtx, cancel := context.WithTimeout(ctx, r.runTimeout)
	defer cancel()

	report, err := r.engine.Sync(runCtx, force)

	switch {
	case errors.Is(err, importer.ErrSyncInProgress):
		r.logger.Debug("sync skipped, another run in progress")
	case errors.Is(err, importer.ErrSyncDisabled):
		r.logger.Debug("sync skipped, disabled")
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		r.logger.Warn("sync timed out", slog.Duration("timeout", r.runTimeout))
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		r.logger.Debug("sync interrupted by shutdown")
	case err != nil:
		r.logger.Error("scheduled sync failed", slog.Any("error", err))
	default:
		r.logger.Info("scheduled sync complete",
			slog.Int("playlists_imported", len(report.ImportedPlaylists)),
			slog.Int("videos_imported", len(report.ImportedVideos)),
		)
	}
}

// watchConfig watches the config file for changes and reloads on write.
// The parent directory is watched rather than the file itself, because
// editors replace files via rename and the original watch would be lost.
func (r *Runner) watchConfig(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scheduler: creating config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(r.configPath)); err != nil {
		return fmt.Errorf("scheduler: watching %s: %w", filepath.Dir(r.configPath), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != filepath.Clean(r.configPath) {
				continue
			}

			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}

			r.handleConfigChange(ctx)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			r.logger.Warn("config watcher error", slog.Any("error", watchErr))
		}
	}
}

// handleConfigChange re-resolves configuration and, when the API key or
// channel changed, refreshes the channel cache and queues an immediate
// sync so the library converges without waiting for the next tick.
func (r *Runner) handleConfigChange(ctx context.Context) {
	newCfg, err := r.reload()
	if err != nil {
		r.logger.Warn("config reload failed", slog.Any("error", err))
		return
	}

	old := r.swapConfig(newCfg)

	r.logger.Info("configuration reloaded", slog.String("path", r.configPath))

	if old.APIKey == newCfg.APIKey && old.ChannelID == newCfg.ChannelID {
		return
	}

	if _, err := r.engine.ImportChannel(ctx, newCfg.ChannelID); err != nil {
		r.logger.Warn("channel re-import after config change failed", slog.Any("error", err))
	}

	r.TriggerSync()
}

func (r *Runner) currentConfig() *config.Config {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cfg
}

func (r *Runner) swapConfig(cfg *config.Config) *config.Config {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.cfg
	r.cfg = cfg

	return old
}
