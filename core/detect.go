package core

import (
	"path/filepath"
	"sort"
	"strings"
)

// ImageFormat names the codec used to re-encode an image.
type ImageFormat string

const (
	FmtJPEG ImageFormat = "jpeg"
	FmtPNG  ImageFormat = "png"
	FmtTIFF ImageFormat = "tiff"
	FmtBMP  ImageFormat = "bmp"
	FmtWebP ImageFormat = "webp"
)

// imageExts maps lowercase extensions to image formats.
var imageExts = map[string]ImageFormat{
	".jpg":  FmtJPEG,
	".jpeg": FmtJPEG,
	".png":  FmtPNG,
	".tiff": FmtTIFF,
	".tif":  FmtTIFF,
	".bmp":  FmtBMP,
	".webp": FmtWebP,
}

// videoExts maps lowercase extensions to the ffmpeg muxer that writes them.
var videoExts = map[string]string{
	".mp4":  "mp4",
	".m4v":  "mp4",
	".mov":  "mov",
	".mkv":  "matroska",
	".webm": "webm",
	".avi":  "avi",
	".wmv":  "asf",
	".flv":  "flv",
}

// webExts maps lowercase extensions to the scrubber's pattern set.
var webExts = map[string]MarkupKind{
	".html": KindMarkup,
	".htm":  KindMarkup,
	".css":  KindStylesheet,
	".js":   KindScript,
	".jsx":  KindScript,
	".ts":   KindScript,
	".tsx":  KindScript,
}

func ext(path string) string { return strings.ToLower(filepath.Ext(path)) }

// Classify maps path to its Category by extension alone. Content is never
// sniffed: a ".jpg" holding something else is still an image.
func Classify(path string) Category {
	e := ext(path)
	if _, ok := imageExts[e]; ok {
		return CategoryImage
	}
	if _, ok := videoExts[e]; ok {
		return CategoryVideo
	}
	if _, ok := webExts[e]; ok {
		return CategoryWebText
	}
	return CategoryUnsupported
}

// IsSupported reports whether path's extension is in any of the three sets.
func IsSupported(path string) bool { return Classify(path) != CategoryUnsupported }

// MarkupKindFor returns the scrubber kind for a web-text path.
func MarkupKindFor(path string) (MarkupKind, bool) {
	k, ok := webExts[ext(path)]
	return k, ok
}

// ImageFormatFor returns the image format implied by path's extension.
func ImageFormatFor(path string) (ImageFormat, bool) {
	f, ok := imageExts[ext(path)]
	return f, ok
}

// MuxerFor returns the ffmpeg output format name for a video path.
func MuxerFor(path string) (string, bool) {
	m, ok := videoExts[ext(path)]
	return m, ok
}

// Extensions returns the sorted extension set for a category.
func Extensions(c Category) []string {
	var out []string
	switch c {
	case CategoryImage:
		for e := range imageExts {
			out = append(out, e)
		}
	case CategoryVideo:
		for e := range videoExts {
			out = append(out, e)
		}
	case CategoryWebText:
		for e := range webExts {
			out = append(out, e)
		}
	}
	sort.Strings(out)
	return out
}
