package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrLockBusy means the commit lock could not be acquired within the
// retry window. Another process is likely mid-commit.
var ErrLockBusy = errors.New("commit lock busy")

const (
	lockRetryInterval = 25 * time.Millisecond
	lockRetryWindow   = 2 * time.Second

	// A lock file older than this belongs to a crashed process and is
	// taken over. Commits finish in local-disk time, never seconds.
	lockStaleAfter = 10 * time.Second
)

// acquireLock takes the commit lock via exclusive file creation, which
// is atomic on every platform we care about. The lock is held only for
// the duration of a single commit; long-running actors never block each
// other across operations.
func (s *Store) acquireLock() (release func(), err error) {
	path := filepath.Join(s.dir, lockFile)
	deadline := time.Now().Add(lockRetryWindow)

	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d %s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339Nano))
			f.Close()
			return func() { os.Remove(path) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("acquire commit lock: %w", err)
		}

		if info, statErr := os.Stat(path); statErr == nil && time.Since(info.ModTime()) > lockStaleAfter {
			s.logger.Warn("removing stale commit lock", "path", path, "age", time.Since(info.ModTime()))
			os.Remove(path)
			continue
		}

		if time.Now().After(deadline) {
			return nil, ErrLockBusy
		}
		time.Sleep(lockRetryInterval)
	}
}
