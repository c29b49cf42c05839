package sprite

import (
	"image"
	"image/color"
	"testing"
)

// fill creates a w×h transparent image with an opaque white rectangle at
// (x0, y0)-(x1, y1) exclusive.
func fill(w, h, x0, y0, x1, y1 int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	return img
}

func TestTrimTightBox(t *testing.T) {
	tests := []struct {
		name               string
		img                *image.RGBA
		wantW, wantH       int
		wantOffX, wantOffY int
		wantTrimmed        bool
	}{
		{"centered content", fill(10, 10, 3, 4, 7, 8), 4, 4, 3, 4, true},
		{"full content", fill(5, 5, 0, 0, 5, 5), 5, 5, 0, 0, false},
		{"single pixel", fill(8, 8, 2, 6, 3, 7), 1, 1, 2, 6, true},
		{"left edge", fill(6, 6, 0, 1, 2, 5), 2, 4, 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Trim(tt.img, 0)
			if info.Width != tt.wantW || info.Height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", info.Width, info.Height, tt.wantW, tt.wantH)
			}
			if info.OffsetX != tt.wantOffX || info.OffsetY != tt.wantOffY {
				t.Errorf("offset = (%d,%d), want (%d,%d)", info.OffsetX, info.OffsetY, tt.wantOffX, tt.wantOffY)
			}
			if info.Trimmed != tt.wantTrimmed {
				t.Errorf("Trimmed = %v, want %v", info.Trimmed, tt.wantTrimmed)
			}
		})
	}
}

func TestTrimBoundsInvariant(t *testing.T) {
	// offset + trimmed size must never exceed the source size.
	imgs := []*image.RGBA{
		fill(10, 10, 3, 4, 7, 8),
		fill(1, 1, 0, 0, 1, 1),
		fill(20, 5, 19, 4, 20, 5),
		fill(16, 16, 0, 0, 0, 0), // fully empty
	}
	for _, img := range imgs {
		info := Trim(img, 0)
		if info.OffsetX+info.Width > info.SourceWidth {
			t.Errorf("x: offset %d + width %d > source %d", info.OffsetX, info.Width, info.SourceWidth)
		}
		if info.OffsetY+info.Height > info.SourceHeight {
			t.Errorf("y: offset %d + height %d > source %d", info.OffsetY, info.Height, info.SourceHeight)
		}
	}
}

func TestTrimFullyEmpty(t *testing.T) {
	info := Trim(image.NewRGBA(image.Rect(0, 0, 12, 9)), 0)
	if info.Width != 1 || info.Height != 1 {
		t.Errorf("fully empty image should collapse to 1x1, got %dx%d", info.Width, info.Height)
	}
	if info.OffsetX != 0 || info.OffsetY != 0 {
		t.Errorf("fully empty box should anchor at origin, got (%d,%d)", info.OffsetX, info.OffsetY)
	}
	if info.SourceWidth != 12 || info.SourceHeight != 9 {
		t.Errorf("source size = %dx%d, want 12x9", info.SourceWidth, info.SourceHeight)
	}
}

func TestTrimFuzzAlpha(t *testing.T) {
	// Faint border pixels (alpha 20) around an opaque core.
	img := image.NewRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 0, 0, 20})
		}
	}
	img.SetRGBA(2, 2, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(3, 3, color.RGBA{255, 0, 0, 255})

	// fuzz 0: faint pixels are content.
	if info := Trim(img, 0); info.Width != 6 || info.Height != 6 {
		t.Errorf("fuzz 0: size = %dx%d, want 6x6", info.Width, info.Height)
	}

	// fuzz 0.1 (alpha ≤ 25.5 empty): only the opaque core remains.
	info := Trim(img, 0.1)
	if info.Width != 2 || info.Height != 2 || info.OffsetX != 2 || info.OffsetY != 2 {
		t.Errorf("fuzz 0.1: got %+v, want 2x2 at (2,2)", info)
	}
}

func TestTrimFuzzBackgroundColor(t *testing.T) {
	// Opaque near-white background with a dark sprite in the middle. The
	// corner sample defines the background; near-matches are trimmed.
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{250, 250, 250, 255})
		}
	}
	img.SetRGBA(4, 4, color.RGBA{255, 255, 255, 255}) // within fuzz of background
	img.SetRGBA(5, 5, color.RGBA{0, 0, 0, 255})       // sprite pixel

	info := Trim(img, 0.05)
	if info.Width != 1 || info.Height != 1 || info.OffsetX != 5 || info.OffsetY != 5 {
		t.Errorf("got %+v, want 1x1 at (5,5)", info)
	}
}

func TestNoTrim(t *testing.T) {
	info := NoTrim(7, 3)
	if info.Width != 7 || info.Height != 3 || info.Trimmed {
		t.Errorf("NoTrim = %+v", info)
	}
	if info.SourceWidth != 7 || info.SourceHeight != 3 {
		t.Errorf("NoTrim source = %dx%d", info.SourceWidth, info.SourceHeight)
	}
}

func TestScale(t *testing.T) {
	img := fill(10, 20, 0, 0, 10, 20)

	half := Scale(img, 50)
	if b := half.Bounds(); b.Dx() != 5 || b.Dy() != 10 {
		t.Errorf("50%% of 10x20 = %dx%d, want 5x10", b.Dx(), b.Dy())
	}

	if same := Scale(img, 100); same != img {
		t.Error("100% scale should return the original buffer")
	}

	// Never collapses below one pixel.
	tiny := Scale(fill(3, 3, 0, 0, 3, 3), 10)
	if b := tiny.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		t.Errorf("scaled size %dx%d below 1px", b.Dx(), b.Dy())
	}
}

func TestFillRatio(t *testing.T) {
	res := AtlasResult{
		Plan: CanvasPlan{Width: 10, Height: 10},
		Items: []Item{
			{Trim: TrimInfo{Width: 5, Height: 10}},
			{Trim: TrimInfo{Width: 5, Height: 5}},
		},
	}
	if got := res.FillRatio(); got != 0.75 {
		t.Errorf("FillRatio = %v, want 0.75", got)
	}
}
