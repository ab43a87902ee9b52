package config

// Flag parsing and help text. Negated flags (--no-backup, --no-color) are
// applied after Parse so DefaultConfig values hold unless the user sets them.

import (
	"flag"
	"fmt"
	"io"

	"github.com/ankit-chaubey/metascrub/core"
)

type negatedFlags struct {
	noBackup   bool
	forceColor bool
	noColor    bool
}

// ParseFlags parses args (without the program name) into cfg. The path may
// come before, between or after the flags. More than one path is an error.
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("metascrub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var n negatedFlags
	defineFlags(fs, cfg, &n)

	var positionals []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return err
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		positionals = append(positionals, rest[0])
		rest = rest[1:]
	}

	applyNegatedFlags(cfg, &n)

	switch len(positionals) {
	case 0:
	case 1:
		cfg.Path = positionals[0]
	default:
		return fmt.Errorf("expected one path, got %d: %q", len(positionals), positionals)
	}
	return nil
}

func defineFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.Recursive, "recursive", cfg.Recursive, "Process subdirectories")
	fs.BoolVar(&cfg.Recursive, "r", cfg.Recursive, "Same as --recursive")
	fs.BoolVar(&n.noBackup, "no-backup", false, "Do not create backup files")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&cfg.InstallDeps, "install-deps", false, "Show how to install dependencies and exit")

	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "Print the run summary as JSON")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Files processed in parallel")
	fs.IntVar(&cfg.Workers, "j", cfg.Workers, "Same as --workers")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-video ffmpeg timeout")
	fs.StringVar(&cfg.FFmpeg, "ffmpeg", cfg.FFmpeg, "ffmpeg executable")

	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")
	fs.BoolVar(&cfg.ShowVersion, "V", false, "Same as --version")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "Same as --help")
}

func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noBackup {
		cfg.Backup = false
	}
	if n.noColor {
		cfg.ColorMode = core.ColorNever
	} else if n.forceColor {
		cfg.ColorMode = core.ColorAlways
	}
}

// PrintUsage writes the help text to w.
func PrintUsage(w io.Writer) {
	const col1 = 26
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "metascrub v" + Version + ": strip metadata from images, videos and web files"},
		{"", ""},
		{"  metascrub [OPTIONS] <path>", ""},
		{"", ""},
		{"Options", ""},
		{"  -r, --recursive", "Process subdirectories"},
		{"  --no-backup", "Do not create <file>.backup copies"},
		{"  -v, --verbose", "Show per-file detail"},
		{"  --install-deps", "Show how to install ffmpeg and exit"},
		{"  -j, --workers <n>", "Files processed in parallel (default: 1)"},
		{"  --timeout <duration>", "Per-video ffmpeg timeout, e.g. 5m (default: none)"},
		{"  --ffmpeg <path>", "ffmpeg executable (default: ffmpeg)"},
		{"", ""},
		{"Output", ""},
		{"  --json", "Print the run summary as JSON on stdout"},
		{"  --log <path>", "Append logs to file"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		switch {
		case l.flags == "" && l.desc == "":
			fmt.Fprintln(w)
		case l.desc == "":
			fmt.Fprintln(w, l.flags)
		case l.flags == "":
			fmt.Fprintln(w, l.desc)
		default:
			padding := col1 - len(l.flags)
			if padding < 1 {
				padding = 1
			}
			fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
		}
	}
}
