package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireLock_Release(t *testing.T) {
	s := testStore(t)
	release, err := s.acquireLock()
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	path := filepath.Join(s.Dir(), lockFile)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("lock file missing while held: %v", err)
	}

	release()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("lock file still present after release")
	}
}

func TestAcquireLock_BusyTimesOut(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out the retry window")
	}
	s := testStore(t)
	release, err := s.acquireLock()
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	// Fresh lock held by "another process": second acquire must give up.
	_, err = s.acquireLock()
	if err != ErrLockBusy {
		t.Fatalf("expected ErrLockBusy, got %v", err)
	}
}

func TestAcquireLock_StaleTakeover(t *testing.T) {
	s := testStore(t)
	path := filepath.Join(s.Dir(), lockFile)

	// A crashed process left a lock behind long ago.
	if err := os.WriteFile(path, []byte("99999 2020-01-01T00:00:00Z\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-time.Minute)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	release, err := s.acquireLock()
	if err != nil {
		t.Fatalf("expected stale lock takeover, got %v", err)
	}
	release()
}
