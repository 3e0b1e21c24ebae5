// Package watch re-runs a program whenever its source file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hassan/codeinterp/internal/logging"
)

// RunFunc performs one run. Its context is cancelled as soon as the next
// change is picked up, and the watcher waits for it to return before
// starting the next run.
type RunFunc func(ctx context.Context)

// Watcher watches a single file.
type Watcher struct {
	path     string
	debounce time.Duration
	run      RunFunc
	logger   *slog.Logger
}

// New creates a watcher for path. Changes closer together than debounce are
// collapsed into one run.
func New(path string, debounce time.Duration, run RunFunc, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Watcher{path: abs, debounce: debounce, run: run, logger: logger}, nil
}

// Run calls the run function once, then again after every change to the
// file, until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	// Editors often save by renaming a new file over the old one, which
	// drops a watch on the file itself. Watching the directory survives that.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}
	w.logger.Info("Started watching for changes", "file", w.path)

	runCtx, cancel := context.WithCancel(ctx)
	done := w.start(runCtx)
	stop := func() {
		cancel()
		<-done
	}

	var fire <-chan time.Time
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			stop()
			w.logger.Info("Stopping file watcher (context cancelled)")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				stop()
				return nil
			}
			if event.Name != w.path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger.Info("Source changed, re-running", "file", filepath.Base(w.path))
			stop()
			runCtx, cancel = context.WithCancel(ctx)
			done = w.start(runCtx)

		case err, ok := <-fw.Errors:
			if !ok {
				stop()
				return nil
			}
			w.logger.Error("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.run(ctx)
	}()
	return done
}
