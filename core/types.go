// Package core defines the shared types, interfaces, and extension registry
// for metascrub.
package core

import (
	"context"
	"time"
)

// Category is the coarse file kind derived from the extension.
type Category string

const (
	CategoryImage       Category = "image"
	CategoryVideo       Category = "video"
	CategoryWebText     Category = "webtext"
	CategoryUnsupported Category = "unsupported"
)

// MarkupKind selects which pattern set the scrubber applies to web text.
type MarkupKind string

const (
	KindMarkup     MarkupKind = "markup"     // .html, .htm
	KindStylesheet MarkupKind = "stylesheet" // .css
	KindScript     MarkupKind = "script"     // .js, .jsx, .ts, .tsx
)

// FileTask is one classified path awaiting dispatch.
type FileTask struct {
	Path     string
	Category Category
}

// NewFileTask classifies path and returns the task.
func NewFileTask(path string) FileTask {
	return FileTask{Path: path, Category: Classify(path)}
}

// Outcome is the per-file result of a dispatch.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeSkipped Outcome = "skipped"
)

// StripResult is what a Handler reports after a successful strip.
type StripResult struct {
	// Changed is false when the file was already clean and nothing was written.
	Changed bool
	// BackupPath is empty when backups are disabled or no write happened.
	BackupPath string
}

// FileResult records the outcome of one dispatched FileTask.
type FileResult struct {
	Path       string
	Category   Category
	Outcome    Outcome
	Changed    bool
	BackupPath string
	Err        error
	Duration   time.Duration
}

// Summary aggregates outcomes for one batch invocation.
type Summary struct {
	RunID      string
	Processed  int
	Errors     int
	Skipped    int
	Items      []FileResult
	StartedAt  time.Time
	FinishedAt time.Time

	// Interrupted is set when the run was cancelled; NotRun files were
	// selected but never dispatched.
	Interrupted bool
	NotRun      int
}

// Add folds one result into the counters. Success counts as processed,
// failure as an error; skipped files touch neither.
func (s *Summary) Add(r FileResult) {
	switch r.Outcome {
	case OutcomeSuccess:
		s.Processed++
	case OutcomeFailure:
		s.Errors++
	case OutcomeSkipped:
		s.Skipped++
	}
	s.Items = append(s.Items, r)
}

// Total is the number of dispatched files that were processed or failed.
func (s *Summary) Total() int { return s.Processed + s.Errors }

// Duration is the wall time of the run.
func (s *Summary) Duration() time.Duration { return s.FinishedAt.Sub(s.StartedAt) }

// FormatInfo describes what a handler covers.
type FormatInfo struct {
	Name       string   // "Image"
	Category   Category // CategoryImage
	Extensions []string // [".jpg", ".png", ...]
	Notes      string   // Any caveats or notes
}

// Handler is the interface every category adapter implements.
type Handler interface {
	// Strip removes metadata from path in place. A returned error means the
	// original file was left unmodified.
	Strip(ctx context.Context, path string) (StripResult, error)
	// Info returns the handler's coverage.
	Info() FormatInfo
}

// Backuper copies a file aside before it is overwritten.
type Backuper interface {
	// Create returns the backup path, or "" when backups are disabled.
	Create(path string) (string, error)
}
