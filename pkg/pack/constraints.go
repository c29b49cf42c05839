package pack

import (
	"github.com/matzehuels/spritepack/pkg/errors"
)

// Constraints are the geometric canvas constraints applied after packing.
type Constraints struct {
	Square         bool
	PowerOfTwo     bool
	DivisibleByTwo bool
}

// Resolve expands the raw packed bounding box until every active constraint
// holds. Expansion never shrinks a dimension and never moves a placement; it
// only grows the canvas. Constraints apply in priority order: square first,
// then power-of-two, then divisible-by-two.
func Resolve(width, height int, c Constraints) (int, int) {
	if c.Square {
		side := max(width, height)
		width, height = side, side
	}
	if c.PowerOfTwo {
		width = nextPowerOfTwo(width)
		height = nextPowerOfTwo(height)
	}
	if c.DivisibleByTwo {
		width += width % 2
		height += height % 2
	}
	return width, height
}

// nextPowerOfTwo rounds n up to the nearest power of two. Zero stays zero.
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Validate re-checks the packing invariant after constraint resolution: no
// two rectangles overlap and every rectangle lies fully within the width×
// height canvas. It is a safety net against algorithm defects, not a
// normal-path check; the first violation found is reported.
func Validate(rects []Rect, width, height int) error {
	for i := range rects {
		r := &rects[i]
		if r.X < 0 || r.Y < 0 || r.X+r.Width > width || r.Y+r.Height > height {
			return errors.New(errors.ErrCodeValidationFailed,
				"rect %q (%d,%d %dx%d) exceeds the %dx%d canvas",
				r.Name, r.X, r.Y, r.Width, r.Height, width, height)
		}
		for j := i + 1; j < len(rects); j++ {
			o := &rects[j]
			if r.X < o.X+o.Width && o.X < r.X+r.Width &&
				r.Y < o.Y+o.Height && o.Y < r.Y+r.Height {
				return errors.New(errors.ErrCodeValidationFailed,
					"rects %q (%d,%d %dx%d) and %q (%d,%d %dx%d) overlap",
					r.Name, r.X, r.Y, r.Width, r.Height,
					o.Name, o.X, o.Y, o.Width, o.Height)
			}
		}
	}
	return nil
}
