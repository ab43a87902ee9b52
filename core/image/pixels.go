package image

import (
	"image"
	"image/color"
	"image/draw"
)

// clonePixels builds a new image with the same bounds and color model as src
// and copies pixel values only. Nothing else from the decoded file survives.
// Types without a dedicated case fall back to NRGBA.
func clonePixels(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch s := src.(type) {
	case *image.RGBA:
		d := image.NewRGBA(b)
		copyPlane(d.Pix, d.Stride, s.Pix, s.Stride, 4*w, h)
		return d
	case *image.NRGBA:
		d := image.NewNRGBA(b)
		copyPlane(d.Pix, d.Stride, s.Pix, s.Stride, 4*w, h)
		return d
	case *image.RGBA64:
		d := image.NewRGBA64(b)
		copyPlane(d.Pix, d.Stride, s.Pix, s.Stride, 8*w, h)
		return d
	case *image.NRGBA64:
		d := image.NewNRGBA64(b)
		copyPlane(d.Pix, d.Stride, s.Pix, s.Stride, 8*w, h)
		return d
	case *image.Gray:
		d := image.NewGray(b)
		copyPlane(d.Pix, d.Stride, s.Pix, s.Stride, w, h)
		return d
	case *image.Gray16:
		d := image.NewGray16(b)
		copyPlane(d.Pix, d.Stride, s.Pix, s.Stride, 2*w, h)
		return d
	case *image.CMYK:
		d := image.NewCMYK(b)
		copyPlane(d.Pix, d.Stride, s.Pix, s.Stride, 4*w, h)
		return d
	case *image.Paletted:
		d := image.NewPaletted(b, append(color.Palette(nil), s.Palette...))
		copyPlane(d.Pix, d.Stride, s.Pix, s.Stride, w, h)
		return d
	case *image.YCbCr:
		d := image.NewYCbCr(b, s.SubsampleRatio)
		copyPlane(d.Y, d.YStride, s.Y, s.YStride, w, h)
		if d.CStride > 0 {
			rows := len(d.Cb) / d.CStride
			copyPlane(d.Cb, d.CStride, s.Cb, s.CStride, d.CStride, rows)
			copyPlane(d.Cr, d.CStride, s.Cr, s.CStride, d.CStride, rows)
		}
		return d
	default:
		d := image.NewNRGBA(b)
		draw.Draw(d, b, src, b.Min, draw.Src)
		return d
	}
}

// copyPlane copies rows of rowBytes from src to dst. Rows that do not fit in
// either slice are left zero.
func copyPlane(dst []byte, dstStride int, src []byte, srcStride int, rowBytes, rows int) {
	for y := 0; y < rows; y++ {
		do, so := y*dstStride, y*srcStride
		if do+rowBytes > len(dst) || so+rowBytes > len(src) {
			return
		}
		copy(dst[do:do+rowBytes], src[so:so+rowBytes])
	}
}
