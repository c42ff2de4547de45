package journal

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	lockRetryInterval = 10 * time.Millisecond
	lockWaitLimit     = 2 * time.Second

	// staleLockAge is how old a lock file must be before another invocation
	// may assume its owner died and take it over.
	staleLockAge = 10 * time.Second
)

// acquireLock serializes whole-file rewrites of path across concurrently
// running hook invocations. It spins on an exclusive-create of path+".lock"
// and returns the release function.
func acquireLock(path string) (func(), error) {
	lockPath := path + ".lock"
	deadline := time.Now().Add(lockWaitLimit)

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePermission)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}

		if info, statErr := os.Stat(lockPath); statErr == nil && time.Since(info.ModTime()) > staleLockAge {
			log.Warn().Str("lock", lockPath).Msg("Removing stale lock file")
			_ = os.Remove(lockPath)
			continue
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for lock on %s", path)
		}
		time.Sleep(lockRetryInterval)
	}
}
