package generate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestWatcher_Reassembles(t *testing.T) {
	defer goleak.VerifyNone(t)

	out := t.TempDir()
	put(t, out, "base.css", "/* base v1 */\n")
	name := filepath.Join(out, "base.css")
	fi, err := os.Stat(name)
	require.NoError(t, err)

	a, err := NewAssembler(out, testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	w := NewWatcher(a, 20*time.Millisecond, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { close(ready) })
	}()

	select {
	case <-ready:
	case err := <-done:
		cancel()
		t.Fatalf("watcher ended early: %v", err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("watcher did not start")
	}
	require.Contains(t, readOut(t, out, IndexFile), "/* base v1 */")

	// rewrite keeping size and modification time
	put(t, out, "base.css", "/* base v2 */\n")
	require.NoError(t, os.Chtimes(name, fi.ModTime(), fi.ModTime()))
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(filepath.Join(out, IndexFile))
		return err == nil && strings.Contains(string(data), "/* base v2 */")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_Relevant(t *testing.T) {
	out := t.TempDir()
	cfg := testConfig(t)
	cfg.Entries.BundleAll = true
	a, err := NewAssembler(out, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	w := NewWatcher(a, 0, zaptest.NewLogger(t))

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: filepath.Join(out, "base.css"), Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: filepath.Join(out, "components", "btn.css"), Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: filepath.Join(out, "tokens", "dark-tokens.css"), Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: filepath.Join(out, "base.css"), Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: filepath.Join(out, "tokens", "light-tokens.json"), Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: filepath.Join(out, IndexFile), Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: filepath.Join(out, "dark.css"), Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: filepath.Join(out, BundleFile), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := w.relevant(tt.event); got != tt.want {
			t.Errorf("relevant(%s %s) = %v, want %v", tt.event.Op, tt.event.Name, got, tt.want)
		}
	}
}
