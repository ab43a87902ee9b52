// Package video strips container and stream metadata from video files by
// remuxing them with ffmpeg: MP4, M4V, MOV, MKV, WebM, AVI, WMV, FLV.
package video

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ankit-chaubey/metascrub/core"
	"github.com/ankit-chaubey/metascrub/core/backup"
)

// ErrMuxerUnavailable is returned when ffmpeg cannot be found.
var ErrMuxerUnavailable = errors.New("ffmpeg not available")

// TempSuffix names the sibling file ffmpeg writes before it replaces the
// original.
const TempSuffix = ".temp"

// Handler implements core.Handler for video formats.
type Handler struct {
	Muxer  Muxer
	Backup core.Backuper
	Log    *core.Logger
	// Timeout bounds one ffmpeg run. Zero means no limit.
	Timeout time.Duration
}

// New returns a video Handler.
func New(m Muxer, b core.Backuper, log *core.Logger) *Handler {
	return &Handler{Muxer: m, Backup: b, Log: log}
}

var _ core.Handler = (*Handler)(nil)

func (h *Handler) Info() core.FormatInfo {
	return core.FormatInfo{
		Name:       "Video",
		Category:   core.CategoryVideo,
		Extensions: core.Extensions(core.CategoryVideo),
		Notes:      "Streams copied without re-encoding; global, stream and chapter metadata dropped.",
	}
}

// Strip remuxes path into path+".temp" and moves it over the original once
// the backup exists. On any failure the temp file is removed and the
// original is left as it was.
func (h *Handler) Strip(ctx context.Context, path string) (res core.StripResult, err error) {
	if h.Muxer == nil || !h.Muxer.Available() {
		return res, core.NewError(core.KindCollaboratorUnavailable, path, ErrMuxerUnavailable)
	}
	format, ok := core.MuxerFor(path)
	if !ok {
		return res, core.NewError(core.KindIO, path, core.ErrUnsupported)
	}
	if _, err := os.Stat(path); err != nil {
		return res, core.NewError(core.KindIO, path, err)
	}

	if h.Log.Verbose() {
		if tags := ContainerTags(path); len(tags) > 0 {
			h.Log.Debug("Container tags in %s: %s", path, strings.Join(tags, ", "))
		}
	}

	temp := path + TempSuffix
	committed := false
	defer func() {
		if !committed {
			h.removeTemp(temp)
		}
	}()

	runCtx := ctx
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	if err := h.Muxer.Remux(runCtx, path, temp, format); err != nil {
		kind := core.KindIO
		if IsBadInput(err) {
			kind = core.KindDecodeOrEncode
		}
		return res, core.NewError(kind, path, fmt.Errorf("remux: %w", err))
	}

	if h.Backup != nil {
		if res.BackupPath, err = h.Backup.Create(path); err != nil {
			return core.StripResult{}, err
		}
		if res.BackupPath != "" {
			h.Log.Debug("Backup created: %s", res.BackupPath)
		}
	}
	if err := backup.Rename(temp, path); err != nil {
		return core.StripResult{}, err
	}
	committed = true

	h.Log.Debug("Metadata removed from video: %s", path)
	res.Changed = true
	return res, nil
}

// removeTemp deletes temp whenever it exists, whatever caused the failure.
func (h *Handler) removeTemp(temp string) {
	if _, err := os.Lstat(temp); err != nil {
		return
	}
	if err := os.Remove(temp); err != nil {
		h.Log.Warn("Could not remove temp file %s: %v", temp, err)
		return
	}
	h.Log.Debug("Removed temp file: %s", temp)
}
