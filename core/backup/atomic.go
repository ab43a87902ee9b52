package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ankit-chaubey/metascrub/core"
)

// Swappable so tests can force rename failures.
var renameFunc = os.Rename

// Rename moves src over dst, wrapping failures as I/O errors on dst.
func Rename(src, dst string) error {
	if err := renameFunc(src, dst); err != nil {
		return core.NewError(core.KindIO, dst, fmt.Errorf("rename %q: %w", src, err))
	}
	return nil
}

// ReplaceFile atomically replaces path with data. The temp file lives in the
// same directory so the final rename never crosses filesystems, and it takes
// the original's permission bits. On any failure the original is untouched
// and the temp file is removed.
func ReplaceFile(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return core.NewError(core.KindIO, path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := writeAll(tmp, data); err != nil {
		return core.NewError(core.KindIO, path, err)
	}
	if err := tmp.Chmod(perm); err != nil && runtime.GOOS != "windows" {
		return core.NewError(core.KindIO, path, err)
	}
	if err := tmp.Sync(); err != nil {
		return core.NewError(core.KindIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		return core.NewError(core.KindIO, path, err)
	}
	if err := Rename(tmpName, path); err != nil {
		return err
	}

	_ = syncDir(dir)
	return nil
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
