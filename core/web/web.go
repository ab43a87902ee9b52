package web

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ankit-chaubey/metascrub/core"
	"github.com/ankit-chaubey/metascrub/core/backup"
)

// Handler implements core.Handler for web source text.
type Handler struct {
	Backup core.Backuper
	Log    *core.Logger
}

// New returns a web-text Handler.
func New(b core.Backuper, log *core.Logger) *Handler {
	return &Handler{Backup: b, Log: log}
}

var _ core.Handler = (*Handler)(nil)

func (h *Handler) Info() core.FormatInfo {
	return core.FormatInfo{
		Name:       "Web text",
		Category:   core.CategoryWebText,
		Extensions: core.Extensions(core.CategoryWebText),
		Notes:      "Comments and tracking tags removed by pattern; string literals are not protected.",
	}
}

// Strip scrubs path in place. Already-clean files are left alone: no backup
// and no write.
func (h *Handler) Strip(ctx context.Context, path string) (core.StripResult, error) {
	if err := ctx.Err(); err != nil {
		return core.StripResult{}, core.NewError(core.KindIO, path, err)
	}
	kind, ok := core.MarkupKindFor(path)
	if !ok {
		return core.StripResult{}, core.NewError(core.KindIO, path, core.ErrUnsupported)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return core.StripResult{}, core.NewError(core.KindIO, path, err)
	}
	text, form, err := decodeText(raw)
	if err != nil {
		return core.StripResult{}, core.NewError(core.KindDecodeOrEncode, path, fmt.Errorf("decode text: %w", err))
	}

	if kind == core.KindMarkup && h.Log.Verbose() {
		if tags := TrackingMeta(text); len(tags) > 0 {
			h.Log.Debug("Tracking meta in %s: %s", path, strings.Join(tags, ", "))
		}
	}

	cleaned := Scrub(text, kind)
	if cleaned == text {
		h.Log.Debug("No metadata found in: %s", path)
		return core.StripResult{}, nil
	}

	out, err := encodeText(cleaned, form)
	if err != nil {
		return core.StripResult{}, core.NewError(core.KindDecodeOrEncode, path, fmt.Errorf("encode text: %w", err))
	}

	var bp string
	if h.Backup != nil {
		if bp, err = h.Backup.Create(path); err != nil {
			return core.StripResult{}, err
		}
		if bp != "" {
			h.Log.Debug("Backup created: %s", bp)
		}
	}
	if err := backup.ReplaceFile(path, out); err != nil {
		return core.StripResult{}, err
	}

	h.Log.Debug("Metadata removed from web file: %s (%d -> %d bytes)", path, len(raw), len(out))
	return core.StripResult{Changed: true, BackupPath: bp}, nil
}
