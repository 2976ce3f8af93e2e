package typegen

import (
	"io"
	"os"
	"path/filepath"

	"github.com/teranos/cfgopt/errors"
)

// WriteFileAtomic writes data to path through a temp file in the same
// directory and renames it into place, so a failed run never leaves a
// truncated destination behind.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapOutputUnwritable(err, path)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.WrapOutputUnwritable(err, path)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapOutputUnwritable(err, path)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.WrapOutputUnwritable(err, path)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapOutputUnwritable(err, path)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return errors.WrapOutputUnwritable(err, path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.WrapOutputUnwritable(err, path)
	}
	return nil
}

// WriteTo writes data to w in one call; used for stdout once generation has
// fully succeeded
func WriteTo(w io.Writer, name string, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return errors.WrapOutputUnwritable(err, name)
	}
	return nil
}
