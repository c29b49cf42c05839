package sprite

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Scale resamples img to percent% of its original size and returns a new
// buffer. percent == 100 returns img unchanged. Dimensions never round below
// one pixel.
//
// CatmullRom is used for its downscale quality; sprite sheets are usually
// scaled down for lower-resolution asset tiers.
func Scale(img *image.RGBA, percent int) *image.RGBA {
	if percent == 100 {
		return img
	}
	b := img.Bounds()
	w := max(b.Dx()*percent/100, 1)
	h := max(b.Dy()*percent/100, 1)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
