package driver

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
)

// writeIfChanged replaces path with content unless it already holds exactly
// that. With check set nothing is written. The write goes through a temp
// file in the same directory and a rename.
func writeIfChanged(path string, content []byte, check bool) (bool, error) {
	// #nosec G304 -- path is the generator's own output
	old, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(old, content):
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, err
	}
	if check {
		return true, nil
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".enumgen-*")
	if err != nil {
		return false, err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // gone after a successful rename
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return false, err
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		return false, err
	}
	if err := f.Close(); err != nil {
		return false, err
	}
	return true, os.Rename(tmp, path)
}
