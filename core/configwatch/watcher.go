package configwatch

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jdelaire/postbridge/internal/metrics"
)

// Reloader re-reads configuration from its source.
type Reloader interface {
	Reload() error
}

// Watcher polls config files for changes and reloads them.
type Watcher struct {
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	entries []watchEntry
}

type watchEntry struct {
	path  string
	stamp stamp
	to    Reloader
}

// stamp identifies a file version by modification time and size.
type stamp struct {
	modTime time.Time
	size    int64
}

// New creates a Watcher that polls at the given interval.
func New(interval time.Duration, logger *slog.Logger) *Watcher {
	return &Watcher{
		interval: interval,
		logger:   logger,
	}
}

// Watch reloads r whenever the file at path changes. The file does not
// need to exist at watch time.
func (w *Watcher) Watch(path string, r Reloader) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries = append(w.entries, watchEntry{
		path:  path,
		stamp: fileStamp(path),
		to:    r,
	})
}

// Run polls until the context is cancelled. It blocks, so call it in a goroutine.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.entries {
		e := &w.entries[i]
		current := fileStamp(e.path)

		// Skip if file doesn't exist (may be mid-save) or unchanged.
		if current.modTime.IsZero() || current.same(e.stamp) {
			continue
		}

		e.stamp = current
		if err := e.to.Reload(); err != nil {
			metrics.ConfigReloadsTotal.WithLabelValues("failure").Inc()
			w.logger.Error("config reload failed, keeping previous settings", "path", e.path, "error", err)
			continue
		}
		metrics.ConfigReloadsTotal.WithLabelValues("success").Inc()
		w.logger.Info("config reloaded", "path", e.path)
	}
}

func (s stamp) same(o stamp) bool {
	return s.modTime.Equal(o.modTime) && s.size == o.size
}

// fileStamp returns the file's version stamp, or zero if it can't be read.
func fileStamp(path string) stamp {
	info, err := os.Stat(path)
	if err != nil {
		return stamp{}
	}
	return stamp{modTime: info.ModTime(), size: info.Size()}
}
