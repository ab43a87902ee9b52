package image

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // registers the WebP decoder
)

// JPEGQuality is the high-fidelity re-encode quality.
const JPEGQuality = 95

// Codec is the image collaborator: it decodes a file into pixels and encodes
// pixels back into a named format.
type Codec interface {
	// Available reports whether the codec can be used at all.
	Available() bool
	// Decode returns the image and the format name it was stored in.
	Decode(r io.Reader) (image.Image, string, error)
	// Encode writes img in format (a name returned by Decode).
	Encode(w io.Writer, img image.Image, format string) error
}

// StdCodec uses the standard library decoders plus golang.org/x/image for
// BMP, TIFF and WebP. None of the encoders write EXIF, ICC or text chunks.
type StdCodec struct{}

var _ Codec = StdCodec{}

// Available is always true: the codecs are compiled into the binary.
func (StdCodec) Available() bool { return true }

func (StdCodec) Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// Encode applies the per-format options: JPEG at JPEGQuality, PNG at best
// compression, everything else with library defaults. WebP has no encoder.
func (StdCodec) Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, nil)
	default:
		return fmt.Errorf("no encoder for %s images", format)
	}
}
