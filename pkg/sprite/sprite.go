// Package sprite defines the data model shared by every stage of the packing
// pipeline: source images, trim geometry, placements, and the final atlas result.
//
// Values in this package are built once per run and treated as read-only by the
// downstream compositor and descriptor emitters.
package sprite

import "image"

// SourceImage is a decoded input image. It is immutable once loaded; the RGBA
// buffer is owned exclusively by the pipeline run that created it.
type SourceImage struct {
	// Name is the display name used in descriptors (after prefix/fullpath
	// transforms are applied by the emitter).
	Name string

	// Path is the source file path, used for error reporting.
	Path string

	// Width and Height are the decoded pixel dimensions.
	Width  int
	Height int

	// RGBA is the decoded pixel buffer.
	RGBA *image.RGBA
}

// TrimInfo records the tight bounding box of an image's visible content.
// When trimming is disabled the trimmed bounds equal the source bounds and the
// offsets are zero.
type TrimInfo struct {
	// Width and Height are the trimmed dimensions.
	Width  int
	Height int

	// OffsetX and OffsetY locate the trimmed box relative to the source
	// image's top-left corner.
	OffsetX int
	OffsetY int

	// SourceWidth and SourceHeight are the untrimmed dimensions.
	SourceWidth  int
	SourceHeight int

	// Trimmed reports whether trimming removed anything.
	Trimmed bool
}

// Placement is the packing engine's output for one image: its assigned origin
// on the canvas. Rotated is reserved for a future capability and is always
// false.
type Placement struct {
	X       int
	Y       int
	Rotated bool
}

// CanvasPlan is the resolved canvas size, satisfying all active constraints.
type CanvasPlan struct {
	Width  int
	Height int
}

// Item pairs a source image with its trim geometry and placement.
type Item struct {
	Image     *SourceImage
	Trim      TrimInfo
	Placement Placement
}

// AtlasResult is the immutable aggregate handed to the compositor and the
// descriptor emitters. It is created once per run, never mutated afterwards.
type AtlasResult struct {
	Plan  CanvasPlan
	Items []Item
}

// FillRatio returns the fraction of the canvas covered by trimmed sprite
// pixels. Used for run statistics only.
func (r *AtlasResult) FillRatio() float64 {
	area := r.Plan.Width * r.Plan.Height
	if area == 0 {
		return 0
	}
	used := 0
	for _, it := range r.Items {
		used += it.Trim.Width * it.Trim.Height
	}
	return float64(used) / float64(area)
}
