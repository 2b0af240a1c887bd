package filelock

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestLockUnlock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lock := NewFileLock(lockPath)

	if lock.Path() != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.Path())
	}
	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestTryLockHeld(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	first := NewFileLock(lockPath)
	acquired, err := first.TryLock()
	if err != nil || !acquired {
		t.Fatalf("first TryLock: acquired=%v err=%v", acquired, err)
	}
	defer first.Unlock()

	second := NewFileLock(lockPath)
	acquired, err = second.TryLock()
	if err != nil {
		t.Fatalf("second TryLock: %v", err)
	}
	if acquired {
		t.Fatal("second TryLock should fail while the first lock is held")
	}
}

func TestRootLockPath(t *testing.T) {
	dir := t.TempDir()

	a, err := RootLockPath(dir)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RootLockPath(filepath.Join(dir, "sub", ".."))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("equivalent roots should share a lock: %s vs %s", a, b)
	}
	if filepath.Dir(a) != filepath.Clean(os.TempDir()) {
		t.Errorf("lock should live in the temp dir, got %s", a)
	}
	if !strings.HasPrefix(filepath.Base(a), "treegen-") || !strings.HasSuffix(a, ".lock") {
		t.Errorf("unexpected lock name %s", a)
	}

	other, err := RootLockPath(filepath.Join(dir, "other"))
	if err != nil {
		t.Fatal(err)
	}
	if other == a {
		t.Error("different roots should not share a lock")
	}
}

func TestAcquireRoot(t *testing.T) {
	root := t.TempDir()

	lock, err := AcquireRoot(root)
	if err != nil {
		t.Fatalf("AcquireRoot: %v", err)
	}

	_, err = AcquireRoot(root)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	if err := lock.Unlock(); err != nil {
		t.Fatal(err)
	}

	again, err := AcquireRoot(root)
	if err != nil {
		t.Fatalf("AcquireRoot after unlock: %v", err)
	}
	again.Unlock()
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "manifest.yaml")

	if err := AtomicWrite(path, []byte("first"), 0644); err != nil {
		t.Fatalf("AtomicWrite: %v", err)
	}
	if err := AtomicWrite(path, []byte("second"), 0600); err != nil {
		t.Fatalf("AtomicWrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("expected content %q, got %q", "second", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestLockAndWriteConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")

	const writers = 5
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs <- LockAndWrite(path, []byte(strings.Repeat("x", n+1)))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("LockAndWrite: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 1 || len(data) > writers || strings.Trim(string(data), "x") != "" {
		t.Errorf("unexpected manifest content %q", data)
	}
}
