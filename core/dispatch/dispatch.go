// Package dispatch routes a file to the handler for its category and turns
// the handler's answer into a core.FileResult.
package dispatch

import (
	"context"
	"time"

	"github.com/ankit-chaubey/metascrub/core"
)

// Dispatcher holds one handler per category.
type Dispatcher struct {
	handlers map[core.Category]core.Handler
	log      *core.Logger
}

// New returns a Dispatcher with handlers registered under their own
// FormatInfo category. A nil handler is ignored.
func New(log *core.Logger, hs ...core.Handler) *Dispatcher {
	d := &Dispatcher{handlers: make(map[core.Category]core.Handler), log: log}
	for _, h := range hs {
		if h != nil {
			d.Register(h)
		}
	}
	return d
}

// Register adds or replaces the handler for h.Info().Category.
func (d *Dispatcher) Register(h core.Handler) {
	d.handlers[h.Info().Category] = h
}

// Handler returns the handler registered for c.
func (d *Dispatcher) Handler(c core.Category) (core.Handler, bool) {
	h, ok := d.handlers[c]
	return h, ok
}

// DispatchPath classifies path and dispatches it.
func (d *Dispatcher) DispatchPath(ctx context.Context, path string) core.FileResult {
	return d.Dispatch(ctx, core.NewFileTask(path))
}

// Formats lists the registered handlers' descriptions in category order.
func (d *Dispatcher) Formats() []core.FormatInfo {
	var out []core.FormatInfo
	for _, c := range []core.Category{core.CategoryImage, core.CategoryVideo, core.CategoryWebText} {
		if h, ok := d.handlers[c]; ok {
			out = append(out, h.Info())
		}
	}
	return out
}

// Dispatch strips one file. It never returns an error: failures are logged
// with the path and reported as OutcomeFailure, unsupported files as
// OutcomeSkipped.
func (d *Dispatcher) Dispatch(ctx context.Context, task core.FileTask) core.FileResult {
	path := task.Path
	r := core.FileResult{Path: path, Category: task.Category}
	start := time.Now()

	h, ok := d.handlers[task.Category]
	if task.Category == core.CategoryUnsupported || !ok {
		d.log.Warn("Unsupported file type: %s", path)
		r.Outcome = core.OutcomeSkipped
		r.Duration = time.Since(start)
		return r
	}

	d.log.Debug("Processing %s file: %s", task.Category, path)
	res, err := h.Strip(ctx, path)
	if err != nil {
		d.log.Error("Failed to process %s: %v", path, err)
		r.Outcome = core.OutcomeFailure
		r.Err = err
		r.Duration = time.Since(start)
		return r
	}

	if res.Changed {
		d.log.Success("Metadata removed: %s", path)
	} else {
		d.log.Info("No metadata found: %s", path)
	}
	r.Outcome = core.OutcomeSuccess
	r.Changed = res.Changed
	r.BackupPath = res.BackupPath
	r.Duration = time.Since(start)
	return r
}
