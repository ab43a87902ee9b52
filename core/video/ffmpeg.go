package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// Muxer is the video collaborator: it copies every stream of in into out
// (container format) without re-encoding and without metadata.
type Muxer interface {
	Available() bool
	Remux(ctx context.Context, in, out, format string) error
}

// FFmpeg runs the ffmpeg executable as the Muxer.
type FFmpeg struct {
	// Path is the executable name or path. Empty means "ffmpeg".
	Path string
	// Verbose tees ffmpeg's stderr to os.Stderr and raises its log level.
	Verbose bool

	// Probed marks Found as the result of the startup probe. Available then
	// answers from it instead of searching PATH for every file.
	Probed bool
	Found  bool
}

// NewFFmpeg returns an FFmpeg whose availability was decided by a probe.
// resolved is the probed executable; when empty, path is kept.
func NewFFmpeg(path, resolved string, found, verbose bool) *FFmpeg {
	if resolved != "" {
		path = resolved
	}
	return &FFmpeg{Path: path, Verbose: verbose, Probed: true, Found: found}
}

var _ Muxer = (*FFmpeg)(nil)

func (f *FFmpeg) bin() string {
	if f.Path == "" {
		return "ffmpeg"
	}
	return f.Path
}

// Available reports whether the executable can be found.
func (f *FFmpeg) Available() bool {
	if f.Probed {
		return f.Found
	}
	_, err := exec.LookPath(f.bin())
	return err == nil
}

// Args builds the ffmpeg argument list (without the program name).
func Args(in, out, format string, verbose bool) []string {
	loglevel := "error"
	if verbose {
		loglevel = "info"
	}
	return []string{
		"-hide_banner", "-nostdin",
		"-y", // overwrite a temp left by an earlier failed run
		"-loglevel", loglevel,
		"-i", in,
		"-map", "0",
		"-ignore_unknown",
		"-c", "copy",
		"-map_metadata", "-1",
		"-map_chapters", "-1",
		"-fflags", "+bitexact",
		"-f", format,
		out,
	}
}

// Remux runs ffmpeg to completion. Failures are returned as *ExecError.
func (f *FFmpeg) Remux(ctx context.Context, in, out, format string) error {
	cmd := exec.CommandContext(ctx, f.bin(), Args(in, out, format, f.Verbose)...)

	var stderrBuf bytes.Buffer
	if f.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		return &ExecError{Stderr: stderrBuf.String(), Err: err}
	}
	return nil
}

// ExecError carries ffmpeg's stderr for classification and reporting.
type ExecError struct {
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	msg := lastLine(e.Stderr)
	if msg == "" {
		return "ffmpeg: " + e.Err.Error()
	}
	return fmt.Sprintf("ffmpeg: %v: %s", e.Err, msg)
}

func (e *ExecError) Unwrap() error { return e.Err }

// Stderr patterns meaning the input itself is malformed or unsupported.
var reBadInput = regexp.MustCompile(
	`(?i)Invalid data found when processing input|` +
		`moov atom not found|` +
		`EBML header parsing failed|` +
		`could not find codec parameters|` +
		`Could not find tag for codec|` +
		`not currently supported in container|` +
		`Unknown input format`)

// IsBadInput reports whether err is an ffmpeg failure caused by the input
// content rather than the environment.
func IsBadInput(err error) bool {
	var e *ExecError
	return errors.As(err, &e) && reBadInput.MatchString(e.Stderr)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
