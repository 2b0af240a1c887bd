package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.txt")
	require.NoError(t, os.WriteFile(path, []byte("root/\n"), 0o644))

	w, err := New(path)
	require.NoError(t, err)
	w.SetDebounceDelay(50 * time.Millisecond)
	t.Cleanup(func() { w.Close() })
	return w, path
}

func waitChange(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case got := <-w.Changes():
		return got
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	return ""
}

func TestNewResolvesTarget(t *testing.T) {
	w, path := newTestWatcher(t)
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, abs, w.Target())
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "tree.txt"))
	assert.Error(t, err)
}

func TestWriteIsReported(t *testing.T) {
	w, path := newTestWatcher(t)

	require.NoError(t, os.WriteFile(path, []byte("root/\n└── a.txt\n"), 0o644))
	assert.Equal(t, w.Target(), waitChange(t, w))
}

func TestBurstIsCoalesced(t *testing.T) {
	w, path := newTestWatcher(t)

	for i := 0; i < 5; i++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
		require.NoError(t, err)
		_, err = f.WriteString("├── x.txt\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	waitChange(t, w)
	select {
	case <-w.Changes():
		t.Fatal("burst should produce a single change")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestReplaceByRenameIsReported(t *testing.T) {
	w, path := newTestWatcher(t)

	tmp := path + ".swp"
	require.NoError(t, os.WriteFile(tmp, []byte("other/\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	assert.Equal(t, w.Target(), waitChange(t, w))
}

func TestOtherFilesIgnored(t *testing.T) {
	w, path := newTestWatcher(t)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "notes.txt"), []byte("x"), 0o644))
	select {
	case got := <-w.Changes():
		t.Fatalf("unexpected change for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCloseTwice(t *testing.T) {
	w, _ := newTestWatcher(t)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
