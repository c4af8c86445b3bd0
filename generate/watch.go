package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-assembles entry points when any of their inputs change.
type Watcher struct {
	assembler *Assembler
	debounce  time.Duration
	log       *zap.Logger

	// ignored are files produced by assembler itself.
	ignored []string
}

// NewWatcher creates watcher, zero debounce assembles on every event.
func NewWatcher(assembler *Assembler, debounce time.Duration, log *zap.Logger) *Watcher {
	w := &Watcher{
		assembler: assembler,
		debounce:  debounce,
		log:       log.Named("watch"),
	}
	for _, name := range assembler.Outputs() {
		w.ignored = append(w.ignored, filepath.Join(assembler.out, name))
	}
	return w
}

// Run assembles once and then watches output directory until ctx is done.
// The ready callback (may be nil) is invoked once watches are in place.
func (w *Watcher) Run(ctx context.Context, ready func()) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create file watcher: %w", err)
	}
	defer fsw.Close()

	out := w.assembler.out
	for _, dir := range []string{out, filepath.Join(out, tokensDir), filepath.Join(out, componentsDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("unable to create directory to watch: %w", err)
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("unable to watch '%s': %w", dir, err)
		}
	}

	if err := w.assembler.Assemble(); err != nil {
		return err
	}
	w.log.Info("Watching for changes", zap.String("dir", out), zap.Duration("debounce", w.debounce))
	if ready != nil {
		ready()
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("File event", zap.String("op", event.Op.String()), zap.String("file", event.Name))
			w.assembler.Invalidate(event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("File watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			if err := w.assembler.Assemble(); err != nil {
				w.log.Error("Unable to assemble entry points", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if filepath.Ext(event.Name) != ".css" {
		return false
	}
	return !slices.Contains(w.ignored, filepath.Clean(event.Name))
}
