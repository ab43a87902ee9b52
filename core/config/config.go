// Package config holds runtime configuration: defaults, CLI flag parsing and
// validation.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ankit-chaubey/metascrub/core"
)

// Version is printed by --version; override with -ldflags "-X ...config.Version=...".
var Version = "1.0.0"

// Config holds all runtime settings. It is populated by DefaultConfig and
// then mutated by ParseFlags.
type Config struct {
	// Path is the file or directory to process (positional argument).
	Path string

	Recursive bool
	Backup    bool // Default: true. Cleared by --no-backup.
	Verbose   bool

	// InstallDeps prints collaborator install guidance and exits.
	InstallDeps bool

	JSON    bool          // Summary as JSON on stdout; logs move to stderr.
	Workers int           // Default: 1.
	Timeout time.Duration // Per-video ffmpeg limit. Default: 0 (none).
	FFmpeg  string        // Default: "ffmpeg".

	LogFile   string
	ColorMode core.ColorMode // Default: auto.

	ShowHelp    bool
	ShowVersion bool
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Backup:    true,
		Workers:   1,
		FFmpeg:    "ffmpeg",
		ColorMode: core.ColorAuto,
	}
}

// ErrNoPath is returned by Validate when no target path was given.
var ErrNoPath = errors.New("missing path argument")

// Validate checks cfg after flags are parsed. Help, version and
// --install-deps need no path.
func (c *Config) Validate() error {
	if c.ShowHelp || c.ShowVersion || c.InstallDeps {
		return nil
	}
	var errs []error
	if c.Path == "" {
		errs = append(errs, ErrNoPath)
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("--workers must be at least 1 (got %d)", c.Workers))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("--timeout must not be negative (got %s)", c.Timeout))
	}
	if c.FFmpeg == "" {
		errs = append(errs, errors.New("--ffmpeg must not be empty"))
	}
	switch c.ColorMode {
	case core.ColorAuto, core.ColorAlways, core.ColorNever:
	default:
		errs = append(errs, fmt.Errorf("invalid color mode %q", c.ColorMode))
	}
	return errors.Join(errs...)
}
