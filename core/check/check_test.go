package check

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

type recLogger struct{ lines []string }

func (r *recLogger) Info(f string, a ...interface{})    { r.add("INFO", f, a) }
func (r *recLogger) Success(f string, a ...interface{}) { r.add("SUCCESS", f, a) }
func (r *recLogger) Warn(f string, a ...interface{})    { r.add("WARN", f, a) }
func (r *recLogger) add(level, f string, a []interface{}) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(f, a...))
}

func TestProbe_MissingFFmpeg(t *testing.T) {
	caps := Probe(filepath.Join(t.TempDir(), "ffmpeg-missing"), true)
	if caps.FFmpeg || caps.FFmpegPath != "" || !caps.ImageCodec {
		t.Errorf("caps = %+v", caps)
	}
}

func TestReport(t *testing.T) {
	cases := []struct {
		name string
		caps Capabilities
		want []string
	}{
		{"all present", Capabilities{ImageCodec: true, FFmpeg: true, FFmpegPath: "/usr/bin/ffmpeg", FFmpegVersion: "ffmpeg version 6.1"},
			[]string{"INFO Image codec: built in", "SUCCESS ffmpeg: ffmpeg version 6.1"}},
		{"no ffmpeg", Capabilities{ImageCodec: true},
			[]string{"INFO Image codec: built in", "WARN ffmpeg not found; video files will fail (see --install-deps)"}},
		{"broken ffmpeg", Capabilities{FFmpeg: true, FFmpegPath: "/opt/ffmpeg"},
			[]string{"WARN Image codec not available; image files will fail", "WARN ffmpeg found at /opt/ffmpeg but -version failed"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var log recLogger
			Report(c.caps, &log)
			if strings.Join(log.lines, "\n") != strings.Join(c.want, "\n") {
				t.Errorf("got %q, want %q", log.lines, c.want)
			}
		})
	}
}

func TestPrintInstallGuide(t *testing.T) {
	var buf bytes.Buffer
	PrintInstallGuide(&buf)
	for _, want := range []string{"apt-get install ffmpeg", "brew install ffmpeg", "winget", "--ffmpeg"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("guide missing %q", want)
		}
	}
}
