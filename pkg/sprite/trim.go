package sprite

import (
	"image"
	"math"
)

// Trim computes the tight bounding box of img's visible content by scanning
// the four edges inward.
//
// A pixel counts as empty when its alpha is within fuzz tolerance of fully
// transparent, or — when fuzz > 0 — when it matches the background color
// sampled from the top-left corner. Color similarity uses the normalized
// Euclidean distance in RGB space:
//
//	dist = sqrt((dr² + dg² + db²) / 3) / 255
//
// A pixel matches the background when dist ≤ fuzz and its alpha differs from
// the corner alpha by at most fuzz·255. This metric is pinned: descriptor
// geometry must not drift between releases for identical inputs.
//
// fuzz is a fraction in [0, 1]. With fuzz = 0 only fully transparent pixels
// (alpha == 0) are empty.
//
// A fully empty image collapses to a 1×1 box anchored at the origin; this is
// a defined fallback, not an error.
func Trim(img *image.RGBA, fuzz float64) TrimInfo {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	empty := emptyPixelFunc(img, fuzz)

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if empty(x, y) {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < 0 {
		// Fully empty: collapse to a 1×1 box at the origin.
		return TrimInfo{
			Width: 1, Height: 1,
			SourceWidth: w, SourceHeight: h,
			Trimmed: w > 1 || h > 1,
		}
	}

	return TrimInfo{
		Width:        maxX - minX + 1,
		Height:       maxY - minY + 1,
		OffsetX:      minX,
		OffsetY:      minY,
		SourceWidth:  w,
		SourceHeight: h,
		Trimmed:      minX > 0 || minY > 0 || maxX < w-1 || maxY < h-1,
	}
}

// NoTrim returns the identity TrimInfo for an untrimmed image.
func NoTrim(w, h int) TrimInfo {
	return TrimInfo{Width: w, Height: h, SourceWidth: w, SourceHeight: h}
}

// emptyPixelFunc builds the per-pixel emptiness predicate for Trim.
func emptyPixelFunc(img *image.RGBA, fuzz float64) func(x, y int) bool {
	b := img.Bounds()
	at := func(x, y int) (r, g, bl, a uint8) {
		i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
		return img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
	}

	alphaMax := fuzz * 255

	if fuzz == 0 {
		return func(x, y int) bool {
			_, _, _, a := at(x, y)
			return a == 0
		}
	}

	// Background color is sampled from the top-left corner.
	bgR, bgG, bgB, bgA := at(0, 0)

	return func(x, y int) bool {
		r, g, bl, a := at(x, y)
		if float64(a) <= alphaMax {
			return true
		}
		dr := float64(int(r) - int(bgR))
		dg := float64(int(g) - int(bgG))
		db := float64(int(bl) - int(bgB))
		da := math.Abs(float64(int(a) - int(bgA)))
		dist := math.Sqrt((dr*dr + dg*dg + db*db) / 3.0)
		return dist/255 <= fuzz && da <= alphaMax
	}
}
