package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// LockPath returns the advisory lock file guarding results. It lives in the temporary
// directory so that nothing but solver output ever appears next to or inside results.
//
// The file is never removed, not even after the lock is released: removing it while
// another run holds it open would let two runs lock different files for the same
// results. Its name depends only on the results path, so later runs reuse it.
func LockPath(results string) (string, error) {
	absolute, err := filepath.Abs(results)
	if err != nil {
		return "", err
	}
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+absolute))
	return filepath.Join(os.TempDir(), "satbatch-"+name.String()+".lock"), nil
}

func acquireLock(results string) (*flock.Flock, error) {
	path, err := LockPath(results)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve results directory: %w", err)
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrLocked, results)
	}
	return lock, nil
}

// resetResults destroys and recreates the results directory. Unless force is set, an
// existing path is only destroyed when it looks like the output of a previous run.
func (r *Runner) resetResults(results string, logger *slog.Logger) error {
	info, err := os.Lstat(results)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("cannot inspect results directory: %w", err)
	default:
		if !r.force {
			recognized, err := r.recognizedOutput(results, info)
			if err != nil {
				return fmt.Errorf("cannot inspect results directory: %w", err)
			}
			if !recognized {
				return fmt.Errorf("%w: %v (enable force to discard its contents)", ErrUnrecognizedResults, results)
			}
		}

		logger.Warn("removing results directory", "path", results, "force", r.force)
		if err := os.RemoveAll(results); err != nil {
			return fmt.Errorf("cannot remove results directory: %w", err)
		}
	}

	if err := os.MkdirAll(results, 0o755); err != nil {
		return fmt.Errorf("cannot create results directory: %w", err)
	}
	return nil
}

// A directory is prior output when every file below it carries the output suffix.
func (r *Runner) recognizedOutput(results string, info fs.FileInfo) (bool, error) {
	if !info.IsDir() {
		return false, nil
	}

	recognized := true
	err := filepath.WalkDir(results, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), r.outputSuffix) {
			recognized = false
			return filepath.SkipAll
		}
		return nil
	})
	return recognized, err
}
