package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Category
	}{
		{"a.jpg", CategoryImage},
		{"A.JPEG", CategoryImage},
		{"dir/x.tif", CategoryImage},
		{"x.webp", CategoryImage},
		{"m.mkv", CategoryVideo},
		{"m.M4V", CategoryVideo},
		{"m.wmv", CategoryVideo},
		{"p.htm", CategoryWebText},
		{"s.TSX", CategoryWebText},
		{"notes.txt", CategoryUnsupported},
		{"song.mp3", CategoryUnsupported},
		{"a.jpg.backup", CategoryUnsupported},
		{"a.mp4.temp", CategoryUnsupported},
		{"Makefile", CategoryUnsupported},
		{".jpg", CategoryImage},
	}
	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestClassify_ExtensionSetsDisjoint(t *testing.T) {
	seen := map[string]Category{}
	for _, c := range []Category{CategoryImage, CategoryVideo, CategoryWebText} {
		for _, ext := range Extensions(c) {
			if prev, ok := seen[ext]; ok {
				t.Errorf("%s in both %s and %s", ext, prev, c)
			}
			seen[ext] = c
			if got := Classify("f" + ext); got != c {
				t.Errorf("Classify(f%s) = %s, want %s", ext, got, c)
			}
			if !IsSupported("f" + strings.ToUpper(ext)) {
				t.Errorf("%s not supported in upper case", ext)
			}
		}
	}
	if len(seen) != 22 {
		t.Errorf("%d extensions, want 22", len(seen))
	}
}

func TestMarkupKindAndMuxer(t *testing.T) {
	if k, ok := MarkupKindFor("a.css"); !ok || k != KindStylesheet {
		t.Errorf("css kind = %s %v", k, ok)
	}
	if k, ok := MarkupKindFor("a.jsx"); !ok || k != KindScript {
		t.Errorf("jsx kind = %s %v", k, ok)
	}
	if k, ok := MarkupKindFor("a.HTML"); !ok || k != KindMarkup {
		t.Errorf("html kind = %s %v", k, ok)
	}
	if _, ok := MarkupKindFor("a.png"); ok {
		t.Errorf("png has a markup kind")
	}
	for ext, want := range map[string]string{".mkv": "matroska", ".m4v": "mp4", ".wmv": "asf", ".mov": "mov"} {
		if got, ok := MuxerFor("v" + ext); !ok || got != want {
			t.Errorf("MuxerFor(%s) = %q, want %q", ext, got, want)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	base := errors.New("disk on fire")
	e := NewError(KindDecodeOrEncode, "a.png", base)
	wrapped := fmt.Errorf("strip: %w", e)

	if KindOf(wrapped) != KindDecodeOrEncode || !IsKind(wrapped, KindDecodeOrEncode) {
		t.Errorf("KindOf(wrapped) = %s", KindOf(wrapped))
	}
	if !errors.Is(wrapped, base) {
		t.Errorf("cause lost")
	}
	if KindOf(base) != KindIO {
		t.Errorf("plain error kind = %s, want io", KindOf(base))
	}
	if KindOf(nil) != "" || IsKind(nil, KindIO) {
		t.Errorf("nil error has a kind")
	}
	if !strings.Contains(e.Error(), `"a.png"`) || !strings.Contains(e.Error(), "decode_or_encode_failure") {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestSummary_Add(t *testing.T) {
	var s Summary
	for _, o := range []Outcome{OutcomeSuccess, OutcomeSuccess, OutcomeFailure, OutcomeSkipped} {
		s.Add(FileResult{Outcome: o})
	}
	if s.Processed != 2 || s.Errors != 1 || s.Skipped != 1 || s.Total() != 3 || len(s.Items) != 4 {
		t.Errorf("summary = %+v", s)
	}
}

func TestPrinter_JSON(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := Summary{RunID: "run-1", StartedAt: start, FinishedAt: start.Add(2 * time.Second)}
	s.Add(FileResult{Path: "a.jpg", Category: CategoryImage, Outcome: OutcomeSuccess, Changed: true, BackupPath: "a.jpg.backup"})
	s.Add(FileResult{Path: "b.mp4", Category: CategoryVideo, Outcome: OutcomeFailure,
		Err: NewError(KindCollaboratorUnavailable, "b.mp4", errors.New("ffmpeg not available"))})

	var buf bytes.Buffer
	if err := (&Printer{JSON: true, Writer: &buf}).PrintSummary(&s); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["run_id"] != "run-1" || got["processed"] != float64(1) || got["errors"] != float64(1) || got["total"] != float64(2) {
		t.Errorf("report = %v", got)
	}
	items := got["items"].([]any)
	second := items[1].(map[string]any)
	if second["status"] != "failure" || second["error_kind"] != "collaborator_unavailable" {
		t.Errorf("item = %v", second)
	}
	if _, ok := items[0].(map[string]any)["error"]; ok {
		t.Errorf("success item carries an error field")
	}
}

func TestPrinter_Text(t *testing.T) {
	var s Summary
	s.Add(FileResult{Path: "x.css", Outcome: OutcomeFailure, Err: errors.New("denied")})
	var buf bytes.Buffer
	if err := (&Printer{Writer: &buf}).PrintSummary(&s); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Processed: 0", "Errors   : 1", "x.css: denied"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("text report missing %q:\n%s", want, buf.String())
		}
	}
}

func TestLogger_LevelsAndFileSink(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "run.log")
	var out, errOut bytes.Buffer
	l, err := NewLogger(LogOptions{Color: ColorAlways, File: logPath, Stdout: &out, Stderr: &errOut})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hello %d", 1)
	l.Debug("hidden")
	l.Error("bad %s", "thing")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "\033[") || !strings.Contains(out.String(), "hello 1") {
		t.Errorf("stdout = %q", out.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Errorf("debug line printed without verbose")
	}
	if !strings.Contains(errOut.String(), "bad thing") || strings.Contains(out.String(), "bad thing") {
		t.Errorf("error line went to the wrong stream")
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if strings.Contains(text, "\033[") {
		t.Errorf("file sink has color codes")
	}
	if !strings.Contains(text, "[INFO] hello 1") || !strings.Contains(text, "[ERROR] bad thing") {
		t.Errorf("file sink = %q", text)
	}
}

func TestLogger_NilAndDiscard(t *testing.T) {
	var l *Logger
	l.Info("x")
	l.Debug("x")
	if l.Verbose() || l.Close() != nil {
		t.Errorf("nil logger misbehaves")
	}
	Discard().Warn("x")

	v, _ := NewLogger(LogOptions{Verbose: true, Color: ColorNever, Stdout: io.Discard, Stderr: io.Discard})
	if !v.Verbose() {
		t.Errorf("verbose not set")
	}
}
