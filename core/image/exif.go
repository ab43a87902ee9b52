package image

import (
	"bytes"
	"sort"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ExifFields returns the sorted EXIF field names found in raw image bytes,
// or nil when there is no readable EXIF block.
func ExifFields(raw []byte) []string {
	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil
	}
	var w fieldWalker
	if err := x.Walk(&w); err != nil {
		return nil
	}
	sort.Strings(w.names)
	return w.names
}

type fieldWalker struct {
	names []string
}

func (w *fieldWalker) Walk(name exif.FieldName, _ *tiff.Tag) error {
	w.names = append(w.names, string(name))
	return nil
}
