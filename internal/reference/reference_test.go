package reference

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_InitialLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.md")
	require.NoError(t, os.WriteFile(path, []byte("# target\n"), 0644))

	w, err := NewWatcher(path, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(context.Background()))

	assert.Equal(t, "# target\n", w.Content())
}

func TestWatcher_MissingFileYieldsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.md")

	w, err := NewWatcher(path, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(context.Background()))

	assert.Equal(t, "", w.Content())
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reference.md")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(context.Background()))

	// Give the watcher a moment to register before writing
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))

	select {
	case got := <-w.Updates():
		assert.Equal(t, "v2", got)
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a reload update after writing the snapshot")
	}
	assert.Equal(t, "v2", w.Content())
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reference.md")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(context.Background()))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("noise"), 0644))

	select {
	case got := <-w.Updates():
		t.Fatalf("Unexpected update from sibling file: %q", got)
	case <-time.After(200 * time.Millisecond):
	}
}
