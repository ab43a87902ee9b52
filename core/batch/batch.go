// Package batch enumerates a target path and dispatches each supported file.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ankit-chaubey/metascrub/core"
)

// Dispatcher is the part of dispatch.Dispatcher the runner needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, task core.FileTask) core.FileResult
}

// Runner processes a file or directory.
type Runner struct {
	Dispatcher Dispatcher
	Log        *core.Logger
	// Workers is the number of files processed at once. Values below 1 mean 1.
	Workers int
}

// New returns a sequential Runner.
func New(d Dispatcher, log *core.Logger) *Runner {
	return &Runner{Dispatcher: d, Log: log, Workers: 1}
}

// Run processes root. A missing root is the only error returned; every
// per-file failure is counted in the summary instead. Cancelling ctx stops
// files that have not started yet from being dispatched; the summary is then
// marked Interrupted and NotRun counts the files left out.
func (r *Runner) Run(ctx context.Context, root string, recursive bool) (core.Summary, error) {
	s := core.Summary{RunID: uuid.NewString(), StartedAt: time.Now()}

	info, err := os.Stat(root)
	if err != nil {
		s.FinishedAt = time.Now()
		if errors.Is(err, fs.ErrNotExist) {
			return s, core.NewError(core.KindPathNotFound, root, fmt.Errorf("path does not exist: %w", err))
		}
		return s, core.NewError(core.KindIO, root, err)
	}

	if !info.IsDir() {
		if ctx.Err() != nil {
			s.Interrupted, s.NotRun = true, 1
		} else {
			s.Add(r.Dispatcher.Dispatch(ctx, core.NewFileTask(root)))
		}
		s.FinishedAt = time.Now()
		return s, nil
	}

	tasks, err := Enumerate(root, recursive)
	if err != nil {
		s.FinishedAt = time.Now()
		return s, err
	}
	r.Log.Info("Found %d supported files", len(tasks))

	r.runPool(ctx, tasks, &s)
	if ctx.Err() != nil {
		s.Interrupted = true
	}
	s.FinishedAt = time.Now()
	return s, nil
}

// runPool fans tasks out to the workers and folds results into s.
func (r *Runner) runPool(ctx context.Context, tasks []core.FileTask, s *core.Summary) {
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	jobs := make(chan core.FileTask)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				res := r.Dispatcher.Dispatch(ctx, t)
				mu.Lock()
				s.Add(res)
				mu.Unlock()
			}
		}()
	}

	for i, t := range tasks {
		if ctx.Err() != nil {
			s.NotRun = len(tasks) - i
			r.Log.Warn("Interrupted: %d files not processed", s.NotRun)
			break
		}
		jobs <- t
	}
	close(jobs)
	wg.Wait()
}

// Enumerate lists the supported files under root: its direct children, or
// the whole subtree when recursive is set. Order is the filesystem walk
// order (lexical). Unsupported files are left out silently.
func Enumerate(root string, recursive bool) ([]core.FileTask, error) {
	var tasks []core.FileTask

	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, core.NewError(core.KindIO, root, err)
		}
		for _, e := range entries {
			p := filepath.Join(root, e.Name())
			if core.IsSupported(p) && isFile(p, e) {
				tasks = append(tasks, core.NewFileTask(p))
			}
		}
		return tasks, nil
	}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			// Unreadable subdirectory: skip it, keep walking.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if core.IsSupported(p) && isFile(p, d) {
			tasks = append(tasks, core.NewFileTask(p))
		}
		return nil
	})
	if err != nil {
		return nil, core.NewError(core.KindIO, root, err)
	}
	return tasks, nil
}

// isFile reports whether the entry is a regular file, following symlinks.
// Dangling links and links to directories are not files.
func isFile(p string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}
