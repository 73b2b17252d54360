package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrRunInProgress is returned when another process holds the lock for the user.
var ErrRunInProgress = errors.New("a deletion run for this user is already in progress")

// UserLock serializes deletion runs for one user id across processes.
type UserLock struct {
	fl *flock.Flock
}

// Path returns the lock file used for userID inside dir.
func Path(dir, userID string) string {
	return filepath.Join(dir, fmt.Sprintf("gorm-purge-%s.lock", userID))
}

// Acquire takes the lock without blocking.
func Acquire(dir, userID string) (*UserLock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(Path(dir, userID))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", fl.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrRunInProgress, userID)
	}
	return &UserLock{fl: fl}, nil
}

// Release frees the lock. The file stays so that concurrent openers keep
// locking the same inode.
func (l *UserLock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock %s: %w", l.fl.Path(), err)
	}
	return nil
}
