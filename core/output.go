package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when the output is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

type palette struct {
	red, green, yellow, blue, cyan, nc string
}

var ansi = palette{
	red:    "\033[1;91m",
	green:  "\033[1;92m",
	yellow: "\033[1;93m",
	blue:   "\033[1;94m",
	cyan:   "\033[1;96m",
	nc:     "\033[0m",
}

// LogOptions configures NewLogger. Nil writers default to os.Stdout and
// os.Stderr.
type LogOptions struct {
	Color   ColorMode
	File    string
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
}

// Logger provides leveled, optionally colored logging with an optional file
// sink. All methods are goroutine-safe and a nil *Logger discards everything.
type Logger struct {
	mu      sync.Mutex
	colors  palette
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
	file    *os.File
}

// NewLogger builds a Logger from opts. Call Close when File was set.
func NewLogger(opts LogOptions) (*Logger, error) {
	l := &Logger{verbose: opts.Verbose, stdout: opts.Stdout, stderr: opts.Stderr}
	if l.stdout == nil {
		l.stdout = os.Stdout
	}
	if l.stderr == nil {
		l.stderr = os.Stderr
	}

	enable := false
	switch opts.Color {
	case ColorAlways:
		enable = true
	case ColorAuto, "":
		f, ok := l.stdout.(*os.File)
		enable = ok && IsTerminal(f) && os.Getenv("NO_COLOR") == "" && strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
	if enable {
		l.colors = ansi
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

// Discard returns a Logger that writes nowhere.
func Discard() *Logger {
	return &Logger{stdout: io.Discard, stderr: io.Discard}
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// Verbose reports whether debug lines are emitted.
func (l *Logger) Verbose() bool { return l != nil && l.verbose }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level, color, text string) {
	if l == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	plain := ts + " [" + level + "] " + text + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.stdout
	if level == "ERROR" {
		out = l.stderr
	}
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+l.colors.nc+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", l.pal().blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", l.pal().green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", l.pal().yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red) to the error stream.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", l.pal().red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only in verbose mode.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.Verbose() {
		return
	}
	l.line("DEBUG", l.pal().cyan, fmt.Sprintf(format, args...))
}

func (l *Logger) pal() palette {
	if l == nil {
		return palette{}
	}
	return l.colors
}

// Printer renders run summaries for the CLI.
type Printer struct {
	JSON   bool
	Writer io.Writer
}

// NewPrinter creates a Printer writing to stdout.
func NewPrinter(jsonMode bool) *Printer {
	return &Printer{JSON: jsonMode, Writer: os.Stdout}
}

// PrintSummary renders s as text lines or a single JSON object.
func (p *Printer) PrintSummary(s *Summary) error {
	if p.JSON {
		return p.printJSON(s)
	}
	p.printText(s)
	return nil
}

func (p *Printer) printText(s *Summary) {
	fmt.Fprintf(p.Writer, "Run      : %s\n", s.RunID)
	fmt.Fprintf(p.Writer, "Duration : %s\n", s.Duration().Round(time.Millisecond))
	fmt.Fprintf(p.Writer, "Processed: %d\n", s.Processed)
	fmt.Fprintf(p.Writer, "Errors   : %d\n", s.Errors)
	if s.Skipped > 0 {
		fmt.Fprintf(p.Writer, "Skipped  : %d\n", s.Skipped)
	}
	fmt.Fprintf(p.Writer, "Total    : %d\n", s.Total())
	if s.Interrupted {
		fmt.Fprintf(p.Writer, "Interrupted: %d files not processed\n", s.NotRun)
	}
	for _, it := range s.Items {
		if it.Outcome != OutcomeFailure {
			continue
		}
		fmt.Fprintf(p.Writer, "  ✗ %s: %v\n", it.Path, it.Err)
	}
}

type jsonItem struct {
	Path       string `json:"path"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	Changed    bool   `json:"changed"`
	Backup     string `json:"backup,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

type jsonSummary struct {
	RunID       string     `json:"run_id"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  time.Time  `json:"finished_at"`
	Processed   int        `json:"processed"`
	Errors      int        `json:"errors"`
	Skipped     int        `json:"skipped"`
	Total       int        `json:"total"`
	Interrupted bool       `json:"interrupted,omitempty"`
	NotRun      int        `json:"not_run,omitempty"`
	Items       []jsonItem `json:"items"`
}

func (p *Printer) printJSON(s *Summary) error {
	out := jsonSummary{
		RunID:       s.RunID,
		StartedAt:   s.StartedAt,
		FinishedAt:  s.FinishedAt,
		Processed:   s.Processed,
		Errors:      s.Errors,
		Skipped:     s.Skipped,
		Total:       s.Total(),
		Interrupted: s.Interrupted,
		NotRun:      s.NotRun,
		Items:       make([]jsonItem, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		ji := jsonItem{
			Path:       it.Path,
			Category:   string(it.Category),
			Status:     string(it.Outcome),
			Changed:    it.Changed,
			Backup:     it.BackupPath,
			DurationMS: it.Duration.Milliseconds(),
		}
		if it.Err != nil {
			ji.ErrorKind = string(KindOf(it.Err))
			ji.Error = it.Err.Error()
		}
		out.Items = append(out.Items, ji)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.Writer, string(b))
	return err
}
