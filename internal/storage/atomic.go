package storage

import (
	"os"
	"path/filepath"

	apperrors "github.com/julianstephens/habitchain/internal/errors"
)

// WriteFileAtomic writes data to path via a temp file in the same directory,
// fsync and rename, so readers see either the old or the new contents.
// The result is readable only by the owner.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return &apperrors.PersistenceError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".habitchain-*.tmp")
	if err != nil {
		return &apperrors.PersistenceError{Op: "create", Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &apperrors.PersistenceError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &apperrors.PersistenceError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &apperrors.PersistenceError{Op: "close", Path: tmpPath, Err: err}
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return &apperrors.PersistenceError{Op: "chmod", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &apperrors.PersistenceError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
