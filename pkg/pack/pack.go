// Package pack implements the rectangle packing engine: sorting strategies,
// the binary-tree shelf packers (growing and fixed-bounds), the linear
// single-row/column packers, and post-packing canvas constraint resolution.
//
// # Algorithms
//
// Four algorithms share one capability, [Packer]:
//
//   - growing-binpacking: binary-tree shelf packer whose canvas grows right or
//     down as needed; never fails
//   - binpacking: the same tree bounded by a fixed width/height; fails with
//     PACKING_OVERFLOW when a rectangle cannot be placed
//   - vertical: a single column, top to bottom
//   - horizontal: a single row, left to right
//
// Rectangles are packed in slice order; callers sort first via [Sort].
// Dimensions are expected to already include padding.
package pack

import (
	"github.com/matzehuels/spritepack/pkg/errors"
)

// Algorithm identifiers accepted by [New].
const (
	AlgorithmGrowing    = "growing-binpacking"
	AlgorithmBinpacking = "binpacking"
	AlgorithmVertical   = "vertical"
	AlgorithmHorizontal = "horizontal"
)

// ValidAlgorithms is the set of supported packing algorithms.
var ValidAlgorithms = map[string]bool{
	AlgorithmGrowing:    true,
	AlgorithmBinpacking: true,
	AlgorithmVertical:   true,
	AlgorithmHorizontal: true,
}

// Rect is a named rectangle flowing through the packing engine. Width and
// Height include padding; X and Y are assigned by a Packer.
type Rect struct {
	Name   string
	Width  int
	Height int
	X      int
	Y      int
}

// maxSide returns the longer of the rectangle's two sides.
func (r *Rect) maxSide() int {
	return max(r.Width, r.Height)
}

// area returns the rectangle's area.
func (r *Rect) area() int {
	return r.Width * r.Height
}

// Packer assigns an origin to every rectangle and reports the resulting
// canvas size. Implementations mutate the X/Y fields of the given slice.
type Packer interface {
	Pack(rects []Rect) (width, height int, err error)
}

// New returns the packer for the named algorithm. fixedWidth and fixedHeight
// are consulted only by the binpacking algorithm, which requires both.
func New(algorithm string, fixedWidth, fixedHeight int) (Packer, error) {
	switch algorithm {
	case AlgorithmGrowing:
		return &growingPacker{}, nil
	case AlgorithmBinpacking:
		if fixedWidth <= 0 || fixedHeight <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"binpacking requires positive width and height, got %dx%d", fixedWidth, fixedHeight)
		}
		return &fixedPacker{width: fixedWidth, height: fixedHeight}, nil
	case AlgorithmVertical:
		return &verticalPacker{}, nil
	case AlgorithmHorizontal:
		return &horizontalPacker{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidAlgorithm,
			"unknown algorithm: %q (must be one of: growing-binpacking, binpacking, vertical, horizontal)", algorithm)
	}
}

// verticalPacker stacks rectangles in a single column.
type verticalPacker struct{}

func (p *verticalPacker) Pack(rects []Rect) (int, int, error) {
	width, y := 0, 0
	for i := range rects {
		rects[i].X = 0
		rects[i].Y = y
		y += rects[i].Height
		width = max(width, rects[i].Width)
	}
	return width, y, nil
}

// horizontalPacker lays rectangles out in a single row.
type horizontalPacker struct{}

func (p *horizontalPacker) Pack(rects []Rect) (int, int, error) {
	height, x := 0, 0
	for i := range rects {
		rects[i].X = x
		rects[i].Y = 0
		x += rects[i].Width
		height = max(height, rects[i].Height)
	}
	return x, height, nil
}
