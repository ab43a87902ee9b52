// Package backup copies originals aside before they are overwritten and
// replaces files atomically.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ankit-chaubey/metascrub/core"
)

// DefaultMaxAttempts caps the ".backup.N" probe so a directory stuffed with
// backup names cannot make the search run forever.
const DefaultMaxAttempts = 10000

// Manager implements core.Backuper.
type Manager struct {
	Enabled     bool
	MaxAttempts int
}

// New returns a Manager with the default attempt cap.
func New(enabled bool) *Manager {
	return &Manager{Enabled: enabled, MaxAttempts: DefaultMaxAttempts}
}

var _ core.Backuper = (*Manager)(nil)

// Candidate returns the n-th backup name for path: n == 0 is path+".backup",
// n > 0 is path+".backup.n".
func Candidate(path string, n int) string {
	if n == 0 {
		return path + ".backup"
	}
	return path + ".backup." + strconv.Itoa(n)
}

// Create copies path to the first free backup name and returns it. A disabled
// Manager does nothing and returns "". The copy is complete (bytes, mode and
// timestamps) when Create returns nil.
func (m *Manager) Create(path string) (string, error) {
	if m == nil || !m.Enabled {
		return "", nil
	}

	src, err := os.Open(path)
	if err != nil {
		return "", core.NewError(core.KindIO, path, fmt.Errorf("open for backup: %w", err))
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", core.NewError(core.KindIO, path, err)
	}

	dst, name, err := m.claim(path, info.Mode().Perm())
	if err != nil {
		return "", err
	}

	if err := copyInto(dst, src); err != nil {
		_ = os.Remove(name)
		return "", core.NewError(core.KindIO, path, fmt.Errorf("write backup %q: %w", name, err))
	}

	// Permission bits and timestamps are best-effort on platforms that
	// do not support them.
	_ = os.Chmod(name, info.Mode().Perm())
	_ = os.Chtimes(name, atime(info), info.ModTime())

	return name, nil
}

// claim creates the first backup candidate that does not exist yet. O_EXCL
// guarantees an existing file is never truncated.
func (m *Manager) claim(path string, perm os.FileMode) (*os.File, string, error) {
	limit := m.MaxAttempts
	if limit <= 0 {
		limit = DefaultMaxAttempts
	}
	for n := 0; n < limit; n++ {
		name := Candidate(path, n)
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm|0o200)
		if err == nil {
			return f, name, nil
		}
		if errors.Is(err, os.ErrExist) {
			continue
		}
		return nil, "", core.NewError(core.KindIO, path, fmt.Errorf("create backup %q: %w", name, err))
	}
	return nil, "", core.NewError(core.KindIO, path, fmt.Errorf("%w after %d attempts", core.ErrBackupExhausted, limit))
}

func copyInto(dst *os.File, src io.Reader) error {
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	if err := dst.Sync(); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
