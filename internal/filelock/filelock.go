// Package filelock guards the shared output directory against concurrent
// wheelhouse runs. The run loop assumes the dist directory is only ever
// appended to by a single sequential process; a second process violating that
// is refused up front instead of corrupting the artifact listing.
package filelock

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFile is the lock file name created inside the dist directory.
const LockFile = ".wheelhouse.lock"

// RunLock is an advisory exclusive lock scoped to one output directory.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// New creates a run lock for the given dist directory.
func New(distDir string) *RunLock {
	path := filepath.Join(distDir, LockFile)
	return &RunLock{
		flock: flock.New(path),
		path:  path,
	}
}

// TryAcquire attempts to take the lock without blocking. Returns false when
// another run already holds it.
func (l *RunLock) TryAcquire() (bool, error) {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", l.path, err)
	}
	return acquired, nil
}

// Release releases the lock.
func (l *RunLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}

// Path returns the lock file location.
func (l *RunLock) Path() string {
	return l.path
}
