// Package image strips metadata from raster images by re-encoding their
// pixels: JPEG, PNG, TIFF, BMP and WebP (decode only).
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ankit-chaubey/metascrub/core"
	"github.com/ankit-chaubey/metascrub/core/backup"
)

// ErrCodecUnavailable is returned when no image codec is present.
var ErrCodecUnavailable = errors.New("image codec not available")

// Handler implements core.Handler for image formats.
type Handler struct {
	Codec  Codec
	Backup core.Backuper
	Log    *core.Logger
}

// New returns an image Handler using codec.
func New(codec Codec, b core.Backuper, log *core.Logger) *Handler {
	return &Handler{Codec: codec, Backup: b, Log: log}
}

var _ core.Handler = (*Handler)(nil)

func (h *Handler) Info() core.FormatInfo {
	return core.FormatInfo{
		Name:       "Image",
		Category:   core.CategoryImage,
		Extensions: core.Extensions(core.CategoryImage),
		Notes:      "Pixels re-encoded in the source format; EXIF, ICC and text chunks dropped. WebP cannot be re-encoded.",
	}
}

// Strip decodes path, copies only its pixels into a fresh image and writes it
// back in the same format. Every image is rewritten, whether or not metadata
// was detected. The original is replaced only after a successful encode.
func (h *Handler) Strip(ctx context.Context, path string) (core.StripResult, error) {
	if h.Codec == nil || !h.Codec.Available() {
		return core.StripResult{}, core.NewError(core.KindCollaboratorUnavailable, path, ErrCodecUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return core.StripResult{}, core.NewError(core.KindIO, path, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return core.StripResult{}, core.NewError(core.KindIO, path, err)
	}

	if h.Log.Verbose() {
		if fields := ExifFields(raw); len(fields) > 0 {
			h.Log.Debug("EXIF data found in %s (%d fields: %s)", path, len(fields), strings.Join(fields, ", "))
		}
	}

	src, format, err := h.Codec.Decode(bytes.NewReader(raw))
	if err != nil {
		return core.StripResult{}, core.NewError(core.KindDecodeOrEncode, path, fmt.Errorf("decode: %w", err))
	}
	if want, ok := core.ImageFormatFor(path); ok && string(want) != format {
		h.Log.Warn("%s has a %s extension but holds %s data; keeping %s", path, want, format, format)
	}

	var buf bytes.Buffer
	if err := h.Codec.Encode(&buf, clonePixels(src), format); err != nil {
		return core.StripResult{}, core.NewError(core.KindDecodeOrEncode, path, fmt.Errorf("encode %s: %w", format, err))
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
	if err := backup.ReplaceFile(path, buf.Bytes()); err != nil {
		return core.StripResult{}, err
	}

	h.Log.Debug("Metadata removed from image: %s (%s, %d -> %d bytes)", path, format, len(raw), buf.Len())
	return core.StripResult{Changed: true, BackupPath: bp}, nil
}
