package filelock

import (
	"os"
	"testing"
)

func TestTryAcquireAndRelease(t *testing.T) {
	dist := t.TempDir()
	lock := New(dist)

	acquired, err := lock.TryAcquire()
	if err != nil {
		t.Fatalf("TryAcquire() failed: %v", err)
	}
	if !acquired {
		t.Fatal("expected to acquire lock on fresh directory")
	}

	if _, err := os.Stat(lock.Path()); err != nil {
		t.Errorf("lock file not created: %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
}

func TestSecondAcquireBlocked(t *testing.T) {
	dist := t.TempDir()

	first := New(dist)
	acquired, err := first.TryAcquire()
	if err != nil || !acquired {
		t.Fatalf("first TryAcquire() = %v, %v", acquired, err)
	}
	defer func() {
		if err := first.Release(); err != nil {
			t.Errorf("Release() failed: %v", err)
		}
	}()

	// flock locks are per file handle; a second RunLock simulates a second process.
	second := New(dist)
	acquired, err = second.TryAcquire()
	if err != nil {
		t.Fatalf("second TryAcquire() failed: %v", err)
	}
	if acquired {
		t.Error("second lock should not be acquirable while first is held")
	}
}
