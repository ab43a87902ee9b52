package backup

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ankit-chaubey/metascrub/core"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestCandidate(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "f.jpg.backup"},
		{1, "f.jpg.backup.1"},
		{12, "f.jpg.backup.12"},
	}
	for _, tt := range tests {
		if got := Candidate("f.jpg", tt.n); got != tt.want {
			t.Errorf("Candidate(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCreate_Disabled(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.css")
	writeFile(t, f, "body{}")

	got, err := New(false).Create(f)
	if err != nil || got != "" {
		t.Fatalf("Create = %q, %v; want no-op", got, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("disabled manager wrote files: %v", entries)
	}
}

func TestCreate_FirstBackup(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.css")
	writeFile(t, f, "body{}")
	old := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(f, old, old); err != nil {
		t.Fatal(err)
	}

	got, err := New(true).Create(f)
	if err != nil {
		t.Fatal(err)
	}
	if got != f+".backup" {
		t.Fatalf("backup path = %q", got)
	}
	if readFile(t, got) != "body{}" {
		t.Errorf("backup content mismatch")
	}
	fi, err := os.Stat(got)
	if err != nil {
		t.Fatal(err)
	}
	if !fi.ModTime().Equal(old) {
		t.Errorf("mtime = %v, want %v", fi.ModTime(), old)
	}
}

func TestCreate_CollisionFreedom(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "f")
	writeFile(t, f, "current")
	writeFile(t, f+".backup", "first")
	writeFile(t, f+".backup.1", "second")

	got, err := New(true).Create(f)
	if err != nil {
		t.Fatal(err)
	}
	if got != f+".backup.2" {
		t.Fatalf("backup path = %q, want %q", got, f+".backup.2")
	}
	if readFile(t, f+".backup") != "first" || readFile(t, f+".backup.1") != "second" {
		t.Errorf("existing backups were overwritten")
	}
	if readFile(t, got) != "current" {
		t.Errorf("new backup content mismatch")
	}
}

func TestCreate_Exhausted(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "f")
	writeFile(t, f, "x")
	writeFile(t, f+".backup", "")
	writeFile(t, f+".backup.1", "")

	m := &Manager{Enabled: true, MaxAttempts: 2}
	_, err := m.Create(f)
	if !errors.Is(err, core.ErrBackupExhausted) {
		t.Fatalf("err = %v, want ErrBackupExhausted", err)
	}
	if core.KindOf(err) != core.KindIO {
		t.Errorf("kind = %q, want io_failure", core.KindOf(err))
	}
}

func TestCreate_MissingSource(t *testing.T) {
	_, err := New(true).Create(filepath.Join(t.TempDir(), "nope.js"))
	if err == nil || core.KindOf(err) != core.KindIO {
		t.Fatalf("err = %v, want io failure", err)
	}
}

func TestReplaceFile_KeepsModeAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.js")
	if err := os.WriteFile(f, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := ReplaceFile(f, []byte("new")); err != nil {
		t.Fatal(err)
	}
	if readFile(t, f) != "new" {
		t.Errorf("content not replaced")
	}
	fi, _ := os.Stat(f)
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", fi.Mode().Perm())
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left: %s", e.Name())
		}
	}
}

func TestReplaceFile_RenameFailLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.js")
	writeFile(t, f, "old")

	orig := renameFunc
	renameFunc = func(string, string) error { return os.ErrPermission }
	defer func() { renameFunc = orig }()

	if err := ReplaceFile(f, []byte("new")); err == nil {
		t.Fatal("expected error")
	}
	if readFile(t, f) != "old" {
		t.Errorf("original modified")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("leftover files: %v", entries)
	}
}
