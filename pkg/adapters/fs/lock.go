package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// lockFileName guards the whole notes directory. Holding it serializes
// create and delete sequences across sessions and across processes.
const lockFileName = ".noters.lock"

// Lock acquires an exclusive lock over the note set by atomically creating
// the lock file, and returns the unlock function that removes it. Waiters
// spin with a short backoff until the file disappears or ctx is cancelled.
func (r *Repository) Lock(ctx context.Context) (func(), error) {
	lockPath := filepath.Join(r.Path, lockFileName)

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL, 0666)
		if err == nil {
			f.Close()
			return func() {
				os.Remove(lockPath)
			}, nil
		}

		if os.IsExist(err) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(10 * time.Millisecond):
			}
			continue
		}

		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
}
