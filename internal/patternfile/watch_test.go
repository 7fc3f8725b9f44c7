package patternfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDetectsWrite(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	dir := t.TempDir()
	path := filepath.Join(dir, "pattern.yaml")
	require.NoError(t, os.WriteFile(path, []byte("loop_end: 1\n"), 0o644))
	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("noise"), 0o644))
	select {
	case <-w.Changes():
		t.Error("unexpected change signal from unrelated file")
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("loop_end: 2\n"), 0o644))
	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Error("timed out waiting for change signal")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := filepath.Join(t.TempDir(), "pattern.yaml")
	require.NoError(t, os.WriteFile(path, []byte("loop_end: 1\n"), 0o644))
	w, err := NewWatcher(path)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NotPanics(t, func() {
		assert.NoError(t, w.Close())
	})
}

func TestWatcherBadPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewWatcher("/nonexistent/dir/pattern.yaml")
	assert.Error(t, err)
}
