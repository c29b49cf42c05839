package pack

import (
	"github.com/matzehuels/spritepack/pkg/errors"
)

// node is one region of the binary packing tree. A used node holds exactly one
// rectangle and points at the free space to its right and below it.
type node struct {
	x, y, w, h  int
	used        bool
	right, down *node
}

// find locates a free leaf at least w×h, or nil.
func (n *node) find(w, h int) *node {
	if n == nil {
		return nil
	}
	if n.used {
		if hit := n.right.find(w, h); hit != nil {
			return hit
		}
		return n.down.find(w, h)
	}
	if w <= n.w && h <= n.h {
		return n
	}
	return nil
}

// split marks n used by a w×h rectangle and carves the remaining free space
// into a lower strip and a right strip.
func (n *node) split(w, h int) *node {
	n.used = true
	n.down = &node{x: n.x, y: n.y + h, w: n.w, h: n.h - h}
	n.right = &node{x: n.x + w, y: n.y, w: n.w - w, h: h}
	return n
}

// growingPacker is a binary-tree shelf packer with an unbounded canvas. The
// root starts at the first rectangle's size and grows right or down as
// rectangles stop fitting. It never fails: canvas size is determined solely
// by content.
type growingPacker struct {
	root *node
}

func (p *growingPacker) Pack(rects []Rect) (int, int, error) {
	if len(rects) == 0 {
		return 0, 0, nil
	}

	p.root = &node{w: rects[0].Width, h: rects[0].Height}
	for i := range rects {
		r := &rects[i]
		n := p.root.find(r.Width, r.Height)
		if n == nil {
			n = p.grow(r.Width, r.Height)
		}
		n.split(r.Width, r.Height)
		r.X = n.x
		r.Y = n.y
	}
	return p.root.w, p.root.h, nil
}

// grow expands the tree to admit a w×h rectangle and returns the leaf it
// fits in. The direction is chosen to keep the aggregate bounding box as
// close to square as possible: growing down is preferred while the canvas is
// taller than it is wide, growing right while it is wider than tall. When a
// rectangle exceeds both canvas dimensions the canvas grows right and the new
// strip is raised to the rectangle's height, so growth always succeeds.
func (p *growingPacker) grow(w, h int) *node {
	canGrowDown := w <= p.root.w
	canGrowRight := h <= p.root.h

	// Balance heuristic: only grow a side when doing so keeps that side the
	// shorter (or equal) one.
	shouldGrowRight := canGrowRight && p.root.h >= p.root.w+w
	shouldGrowDown := canGrowDown && p.root.w >= p.root.h+h

	switch {
	case shouldGrowRight:
		return p.growRight(w, h)
	case shouldGrowDown:
		return p.growDown(w, h)
	case canGrowRight:
		return p.growRight(w, h)
	case canGrowDown:
		return p.growDown(w, h)
	default:
		return p.growRight(w, h)
	}
}

func (p *growingPacker) growRight(w, h int) *node {
	height := max(p.root.h, h)
	free := &node{x: p.root.w, y: 0, w: w, h: height}
	p.root = &node{
		used:  true,
		w:     p.root.w + w,
		h:     height,
		down:  p.root,
		right: free,
	}
	return free
}

func (p *growingPacker) growDown(w, h int) *node {
	width := max(p.root.w, w)
	free := &node{x: 0, y: p.root.h, w: width, h: h}
	p.root = &node{
		used:  true,
		w:     width,
		h:     p.root.h + h,
		down:  free,
		right: p.root,
	}
	return free
}

// fixedPacker is the same binary-tree shelf packer bounded by a fixed canvas.
// A rectangle that fits no free leaf is a PACKING_OVERFLOW error.
type fixedPacker struct {
	width, height int
}

func (p *fixedPacker) Pack(rects []Rect) (int, int, error) {
	root := &node{w: p.width, h: p.height}
	for i := range rects {
		r := &rects[i]
		n := root.find(r.Width, r.Height)
		if n == nil {
			freeW, freeH := largestFree(root)
			return 0, 0, errors.New(errors.ErrCodePackingOverflow,
				"rect %q (%dx%d) does not fit within the fixed %dx%d bounds: largest free region is %dx%d",
				r.Name, r.Width, r.Height, p.width, p.height, freeW, freeH)
		}
		n.split(r.Width, r.Height)
		r.X = n.x
		r.Y = n.y
	}
	return p.width, p.height, nil
}

// largestFree returns the dimensions of the largest free leaf by area.
func largestFree(n *node) (w, h int) {
	if n == nil {
		return 0, 0
	}
	if !n.used {
		return n.w, n.h
	}
	rw, rh := largestFree(n.right)
	dw, dh := largestFree(n.down)
	if rw*rh >= dw*dh {
		return rw, rh
	}
	return dw, dh
}
