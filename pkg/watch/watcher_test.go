package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := New(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})
	require.NoError(t, w.Start(ctx))
	return w
}

func waitChanged(t *testing.T, w *Watcher) bool {
	t.Helper()
	select {
	case <-w.Changed():
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	w := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	assert.True(t, waitChanged(t, w))
}

func TestWatcherReportsRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	w := startWatcher(t, path)

	tmp := filepath.Join(dir, "tasks.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("null"), 0644))
	require.NoError(t, os.Rename(tmp, path))
	assert.True(t, waitChanged(t, w))
}

func TestWatcherCoalescesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	w := startWatcher(t, path)

	for range 10 {
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	}
	require.True(t, waitChanged(t, w))

	select {
	case <-w.Changed():
		t.Fatal("burst produced more than one notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, filepath.Join(dir, "tasks.json"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "kraban.db"), []byte("x"), 0644))

	select {
	case <-w.Changed():
		t.Fatal("unexpected notification")
	case <-time.After(100 * time.Millisecond):
	}
}
