package idl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockSuffix is appended to the IDL path to name its lock file.
const LockSuffix = ".lock"

// ErrLocked is wrapped by KindLock errors.
var ErrLocked = errors.New("locked by another process")

type fileLock struct {
	path string
	fl   *flock.Flock
}

// acquireLock takes the advisory write lock for path without blocking.
func acquireLock(path string) (*fileLock, error) {
	lockPath := path + LockSuffix
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, newError(KindIO, "lock", lockPath, err)
	}
	if !locked {
		return nil, newError(KindLock, "lock", lockPath, ErrLocked)
	}
	return &fileLock{path: lockPath, fl: fl}, nil
}

// release unlocks and removes the lock file.
func (l *fileLock) release() error {
	if err := l.fl.Unlock(); err != nil {
		return newError(KindLock, "unlock", l.path, err)
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return newError(KindIO, "remove", l.path, err)
	}
	return nil
}

// WriteFile replaces path with data atomically: the data is written and
// synced to a temp file in the same directory, which is then renamed over
// path. The original file's permissions are kept. On failure the original
// is left untouched and the temp file removed.
func WriteFile(path string, data []byte) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return newError(KindIO, "write", path, err)
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, data, perm); err != nil {
		os.Remove(tmpName)
		return newError(KindIO, "write", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return newError(KindIO, "write", path, fmt.Errorf("renaming temp file: %w", err))
	}
	return nil
}

func writeAndClose(f *os.File, data []byte, perm os.FileMode) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(perm); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
