package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// runLogHandler is a slog.Handler writing plain timestamped lines to a
// sync run's log artifact. One line per record:
//
//	2026-08-29 14:03:07 INFO playlist imported playlist_id=PL_abc
type runLogHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newRunLogHandler(w io.Writer) *runLogHandler {
	return &runLogHandler{mu: &sync.Mutex{}, w: w}
}

func (h *runLogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *runLogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	b.WriteString(r.Time.Format("2006-01-02 15:04:05"))
	b.WriteByte(' ')
	b.WriteString(r.Level.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}

	r.Attrs(func(a slog.Attr) bool {
		b.WriteByte(' ')
		b.WriteString(a.String())

		return true
	})

	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, b.String())

	return err
}

func (h *runLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &runLogHandler{mu: h.mu, w: h.w, attrs: merged}
}

func (h *runLogHandler) WithGroup(string) slog.Handler {
	// Groups are not used on the run logger.
	return h
}

// fanoutHandler duplicates records to every wrapped handler, so a run
// logs to both the process logger and the run's log artifact.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (f *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (f *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error

	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}

		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (f *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		out[i] = h.WithAttrs(attrs)
	}

	return &fanoutHandler{handlers: out}
}

func (f *fanoutHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		out[i] = h.WithGroup(name)
	}

	return &fanoutHandler{handlers: out}
}

// openRunLog creates the timestamped log artifact for a run, records it
// as the latest sync log, and returns a logger fanning out to both the
// artifact and the process logger. The returned close function flushes
// and closes the artifact.
func (e *Engine) openRunLog(ctx context.Context) (*slog.Logger, string, func(), error) {
	dir := e.cfg.LogDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", nil, fmt.Errorf("importer: creating log directory: %w", err)
	}

	path := filepath.Join(dir, e.now().Format(logNameLayout)+".log")

	f, err := os.Create(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("importer: creating sync log %s: %w", path, err)
	}

	if err := e.store.SetLatestSyncLog(ctx, path); err != nil {
		f.Close()
		return nil, "", nil, err
	}

	handler := &fanoutHandler{handlers: []slog.Handler{
		e.logger.Handler(),
		newRunLogHandler(f),
	}}

	logger := slog.New(handler).With(slog.String("run_id", uuid.NewString()))

	return logger, path, func() { f.Close() }, nil
}
