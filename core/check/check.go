// Package check probes the external collaborators once at startup and prints
// the --install-deps guidance.
package check

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// Logger is the subset of core.Logger used by Report.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
}

// Capabilities is what Probe found.
type Capabilities struct {
	ImageCodec    bool
	FFmpeg        bool
	FFmpegPath    string // resolved executable, empty when missing
	FFmpegVersion string // first line of "ffmpeg -version"
}

// versionTimeout bounds the "ffmpeg -version" call.
var versionTimeout = 5 * time.Second

// Probe looks for ffmpeg (ffmpegPath, or "ffmpeg" on PATH). imageCodec
// reports whether the image codec is usable; it is compiled in, so callers
// pass its Available result.
func Probe(ffmpegPath string, imageCodec bool) Capabilities {
	caps := Capabilities{ImageCodec: imageCodec}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	resolved, err := exec.LookPath(ffmpegPath)
	if err != nil {
		return caps
	}
	caps.FFmpeg = true
	caps.FFmpegPath = resolved
	caps.FFmpegVersion = versionLine(resolved)
	return caps
}

func versionLine(bin string) string {
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, bin, "-version").Output()
	if err != nil {
		return ""
	}
	first := strings.TrimSpace(string(out))
	if idx := strings.Index(first, "\n"); idx > 0 {
		first = first[:idx]
	}
	return strings.TrimSpace(first)
}

// Report logs caps. Missing collaborators are warnings only: the files that
// need them fail individually.
func Report(caps Capabilities, log Logger) {
	if caps.ImageCodec {
		log.Info("Image codec: built in")
	} else {
		log.Warn("Image codec not available; image files will fail")
	}
	switch {
	case !caps.FFmpeg:
		log.Warn("ffmpeg not found; video files will fail (see --install-deps)")
	case caps.FFmpegVersion != "":
		log.Success("ffmpeg: %s", caps.FFmpegVersion)
	default:
		log.Warn("ffmpeg found at %s but -version failed", caps.FFmpegPath)
	}
}

// PrintInstallGuide writes the --install-deps text.
func PrintInstallGuide(w io.Writer) {
	fmt.Fprint(w, `metascrub dependencies

Images (JPEG, PNG, TIFF, BMP, WebP) are handled by the built-in codec.
Nothing to install.

Videos (MP4, M4V, MOV, MKV, WebM, AVI, WMV, FLV) need the ffmpeg executable
on PATH, or pass its location with --ffmpeg.

  Debian/Ubuntu : sudo apt-get install ffmpeg
  Fedora/RHEL   : sudo dnf install ffmpeg   (enable RPM Fusion first)
  Arch          : sudo pacman -S ffmpeg
  macOS         : brew install ffmpeg
  Windows       : winget install Gyan.FFmpeg
                  or download a build from https://ffmpeg.org/download.html
                  and add its bin directory to PATH

Web files (HTML, CSS, JS, TS) need nothing extra.
`)
}
