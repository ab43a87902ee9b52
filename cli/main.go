// Command metascrub removes embedded metadata from images, videos and web
// files in place, keeping a backup of each original.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ankit-chaubey/metascrub/core"
	"github.com/ankit-chaubey/metascrub/core/backup"
	"github.com/ankit-chaubey/metascrub/core/batch"
	"github.com/ankit-chaubey/metascrub/core/check"
	"github.com/ankit-chaubey/metascrub/core/config"
	"github.com/ankit-chaubey/metascrub/core/dispatch"
	"github.com/ankit-chaubey/metascrub/core/image"
	"github.com/ankit-chaubey/metascrub/core/video"
	"github.com/ankit-chaubey/metascrub/core/web"
)

// Exit statuses.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// 1. Config from defaults and flags.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(cfg, args); err != nil {
		fmt.Fprintf(stderr, "metascrub: %v\n", err)
		fmt.Fprintln(stderr, "Run 'metascrub --help' for usage.")
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "metascrub: %v\n", err)
		fmt.Fprintln(stderr, "Run 'metascrub --help' for usage.")
		return exitUsage
	}

	switch {
	case cfg.ShowHelp:
		config.PrintUsage(stdout)
		return exitOK
	case cfg.ShowVersion:
		fmt.Fprintln(stdout, "metascrub v"+config.Version)
		return exitOK
	case cfg.InstallDeps:
		check.PrintInstallGuide(stdout)
		return exitOK
	}

	// 2. Logger. In JSON mode stdout carries only the report.
	logOut := stdout
	if cfg.JSON {
		logOut = stderr
	}
	log, err := core.NewLogger(core.LogOptions{
		Color:   cfg.ColorMode,
		File:    cfg.LogFile,
		Verbose: cfg.Verbose,
		Stdout:  logOut,
		Stderr:  stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "metascrub: open log: %v\n", err)
		return exitFail
	}
	defer log.Close()

	// 3. Collaborators. Missing ones only warn; their files fail one by one.
	codec := image.StdCodec{}
	caps := check.Probe(cfg.FFmpeg, codec.Available())
	check.Report(caps, log)
	ffmpeg := video.NewFFmpeg(cfg.FFmpeg, caps.FFmpegPath, caps.FFmpeg, cfg.Verbose)

	b := backup.New(cfg.Backup)
	if !cfg.Backup {
		log.Warn("Backups disabled")
	}
	vh := video.New(ffmpeg, b, log)
	vh.Timeout = cfg.Timeout
	d := dispatch.New(log,
		image.New(codec, b, log),
		vh,
		web.New(b, log),
	)
	for _, f := range d.Formats() {
		log.Debug("%s: %v", f.Name, f.Extensions)
	}

	// 4. Run.
	log.Info("Starting metadata removal: %s", cfg.Path)
	runner := &batch.Runner{Dispatcher: d, Log: log, Workers: cfg.Workers}
	summary, err := runner.Run(ctx, cfg.Path, cfg.Recursive)
	if err != nil {
		if core.IsKind(err, core.KindPathNotFound) {
			log.Error("Path does not exist: %s", cfg.Path)
		} else {
			log.Error("%v", err)
		}
		return exitFail
	}

	log.Info("Completed in %.2f seconds", summary.Duration().Seconds())
	log.Success("Successfully processed: %d", summary.Processed)
	if summary.Errors > 0 {
		log.Error("Errors: %d", summary.Errors)
	} else {
		log.Info("Errors: 0")
	}
	interrupted := summary.Interrupted || ctx.Err() != nil
	if interrupted {
		log.Warn("Interrupted: %d selected files were not processed", summary.NotRun)
	}

	// 5. Report.
	p := &core.Printer{JSON: cfg.JSON, Writer: stdout}
	if cfg.JSON || cfg.Verbose || interrupted {
		if err := p.PrintSummary(&summary); err != nil {
			log.Error("write report: %v", err)
			return exitFail
		}
	}

	if summary.Errors > 0 || interrupted {
		return exitFail
	}
	return exitOK
}
