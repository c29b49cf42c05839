package pack

import (
	"sort"

	"github.com/matzehuels/spritepack/pkg/errors"
)

// Sort keys accepted by [Sort].
const (
	SortMaxSide = "maxside"
	SortArea    = "area"
	SortWidth   = "width"
	SortHeight  = "height"
	SortNone    = "none"
)

// ValidSorts is the set of supported sort strategies.
var ValidSorts = map[string]bool{
	SortMaxSide: true,
	SortArea:    true,
	SortWidth:   true,
	SortHeight:  true,
	SortNone:    true,
}

// Sort orders rects in place for the packer. All keys sort descending and are
// stable: equal-key rectangles keep their relative input order, so repeated
// runs on identical input produce identical layouts.
//
//   - maxside: by max(width, height); the default, it minimizes wasted area
//     for the growing packers
//   - area: by width×height
//   - width, height: by the named dimension
//   - none: identity, preserving caller order
func Sort(rects []Rect, by string) error {
	var key func(r *Rect) int
	switch by {
	case SortMaxSide:
		key = (*Rect).maxSide
	case SortArea:
		key = (*Rect).area
	case SortWidth:
		key = func(r *Rect) int { return r.Width }
	case SortHeight:
		key = func(r *Rect) int { return r.Height }
	case SortNone:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidSort,
			"unknown sort: %q (must be one of: maxside, area, width, height, none)", by)
	}

	sort.SliceStable(rects, func(i, j int) bool {
		return key(&rects[i]) > key(&rects[j])
	})
	return nil
}
