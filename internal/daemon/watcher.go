package daemon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/dockgap/internal/docks"
)

// SnapshotFunc reads the current strut state.
type SnapshotFunc func() (docks.Snapshot, error)

// RetileFunc re-applies the active layout after the strut state changed.
type RetileFunc func() error

// WatcherConfig holds configuration for the strut watcher.
type WatcherConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Watcher periodically compares strut snapshots and re-tiles when docks
// appear, disappear, change their reservations or the screen is resized.
type Watcher struct {
	interval time.Duration
	snapshot SnapshotFunc
	retile   RetileFunc
	logger   *slog.Logger

	mu   sync.Mutex
	last *docks.Snapshot
}

// NewWatcher creates a strut watcher. A non-positive interval falls back to
// the default poll interval.
func NewWatcher(cfg WatcherConfig, snapshot SnapshotFunc, retile RetileFunc) *Watcher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		interval: interval,
		snapshot: snapshot,
		retile:   retile,
		logger:   logger,
	}
}

// Run starts the watch loop. Blocks until context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("strut watcher started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("strut watcher stopped")
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// CheckNow runs a single pass immediately and reports whether the strut
// state changed.
func (w *Watcher) CheckNow() bool {
	return w.check()
}

func (w *Watcher) check() (changed bool) {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			w.logger.Error("strut watcher panic recovered", "error", err)
			changed = false
		}
	}()

	snap, err := w.snapshot()
	if err != nil {
		w.logger.Error("strut watcher: failed to read struts", "error", err)
		return false
	}

	w.mu.Lock()
	prev := w.last
	w.last = &snap
	w.mu.Unlock()

	if prev == nil {
		w.logger.Debug("strut watcher: baseline recorded", "struts", len(snap.Struts), "usable", snap.Usable)
		return false
	}
	if prev.Equal(snap) {
		return false
	}

	w.logger.Info("strut watcher: struts changed",
		"before", len(prev.Struts),
		"after", len(snap.Struts),
		"usable", snap.Usable)

	if err := w.retile(); err != nil {
		w.logger.Warn("strut watcher: retile failed", "error", err)
	}
	return true
}

// Reset forgets the last snapshot so the next pass records a new baseline.
func (w *Watcher) Reset() {
	w.mu.Lock()
	w.last = nil
	w.mu.Unlock()
}
