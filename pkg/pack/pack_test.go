package pack

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/matzehuels/spritepack/pkg/errors"
)

func TestGrowingThreeRects(t *testing.T) {
	// Two 10x10 and one 20x20, maxside order, no padding: the bounding box
	// must come out 20x30 or 30x20 depending on the growth direction.
	rects := []Rect{
		{Name: "big", Width: 20, Height: 20},
		{Name: "s1", Width: 10, Height: 10},
		{Name: "s2", Width: 10, Height: 10},
	}
	if err := Sort(rects, SortMaxSide); err != nil {
		t.Fatal(err)
	}

	p, err := New(AlgorithmGrowing, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := p.Pack(rects)
	if err != nil {
		t.Fatalf("Pack error: %v", err)
	}

	if !(w == 20 && h == 30) && !(w == 30 && h == 20) {
		t.Errorf("canvas = %dx%d, want 20x30 or 30x20", w, h)
	}
	if err := Validate(rects, w, h); err != nil {
		t.Errorf("layout invalid: %v", err)
	}
}

func TestGrowingSingleRect(t *testing.T) {
	rects := []Rect{{Name: "only", Width: 33, Height: 7}}
	p, _ := New(AlgorithmGrowing, 0, 0)
	w, h, err := p.Pack(rects)
	if err != nil {
		t.Fatal(err)
	}
	if w != 33 || h != 7 {
		t.Errorf("canvas = %dx%d, want exactly the rect size 33x7", w, h)
	}
	if rects[0].X != 0 || rects[0].Y != 0 {
		t.Errorf("single rect should sit at origin, got (%d,%d)", rects[0].X, rects[0].Y)
	}
}

func TestGrowingEmpty(t *testing.T) {
	p, _ := New(AlgorithmGrowing, 0, 0)
	w, h, err := p.Pack(nil)
	if err != nil || w != 0 || h != 0 {
		t.Errorf("empty input: got %dx%d, %v", w, h, err)
	}
}

func TestGrowingOversizeUnsorted(t *testing.T) {
	// With sort "none" a later rectangle can exceed both canvas dimensions;
	// the packer must still place it.
	rects := []Rect{
		{Name: "tiny", Width: 2, Height: 2},
		{Name: "huge", Width: 50, Height: 60},
	}
	p, _ := New(AlgorithmGrowing, 0, 0)
	w, h, err := p.Pack(rects)
	if err != nil {
		t.Fatalf("growing packer must never fail, got %v", err)
	}
	if err := Validate(rects, w, h); err != nil {
		t.Errorf("layout invalid: %v", err)
	}
}

func TestFixedOverflow(t *testing.T) {
	rects := []Rect{{Name: "big", Width: 20, Height: 20}}
	p, err := New(AlgorithmBinpacking, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = p.Pack(rects)
	if !errors.Is(err, errors.ErrCodePackingOverflow) {
		t.Fatalf("want PACKING_OVERFLOW, got %v", err)
	}
	// The offending rectangle is named.
	if msg := err.Error(); !strings.Contains(msg, `"big"`) {
		t.Errorf("error should name the offending rect: %s", msg)
	}
}

func TestFixedFits(t *testing.T) {
	rects := []Rect{
		{Name: "a", Width: 50, Height: 50},
		{Name: "b", Width: 50, Height: 50},
		{Name: "c", Width: 100, Height: 50},
	}
	p, _ := New(AlgorithmBinpacking, 100, 100)
	w, h, err := p.Pack(rects)
	if err != nil {
		t.Fatalf("Pack error: %v", err)
	}
	if w != 100 || h != 100 {
		t.Errorf("fixed canvas reported as %dx%d, want 100x100", w, h)
	}
	if err := Validate(rects, w, h); err != nil {
		t.Errorf("layout invalid: %v", err)
	}
}

func TestFixedRequiresBounds(t *testing.T) {
	if _, err := New(AlgorithmBinpacking, 0, 128); err == nil {
		t.Error("binpacking without width should fail")
	}
}

func TestVertical(t *testing.T) {
	rects := []Rect{
		{Name: "a", Width: 10, Height: 4},
		{Name: "b", Width: 25, Height: 6},
		{Name: "c", Width: 5, Height: 10},
	}
	p, _ := New(AlgorithmVertical, 0, 0)
	w, h, err := p.Pack(rects)
	if err != nil {
		t.Fatal(err)
	}
	if w != 25 || h != 20 {
		t.Errorf("canvas = %dx%d, want 25x20", w, h)
	}
	wantY := []int{0, 4, 10}
	for i, r := range rects {
		if r.X != 0 || r.Y != wantY[i] {
			t.Errorf("rect %s at (%d,%d), want (0,%d)", r.Name, r.X, r.Y, wantY[i])
		}
	}
}

func TestHorizontal(t *testing.T) {
	rects := []Rect{
		{Name: "a", Width: 4, Height: 10},
		{Name: "b", Width: 6, Height: 25},
		{Name: "c", Width: 10, Height: 5},
	}
	p, _ := New(AlgorithmHorizontal, 0, 0)
	w, h, err := p.Pack(rects)
	if err != nil {
		t.Fatal(err)
	}
	if w != 20 || h != 25 {
		t.Errorf("canvas = %dx%d, want 20x25", w, h)
	}
	wantX := []int{0, 4, 10}
	for i, r := range rects {
		if r.Y != 0 || r.X != wantX[i] {
			t.Errorf("rect %s at (%d,%d), want (%d,0)", r.Name, r.X, r.Y, wantX[i])
		}
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	_, err := New("skyline", 0, 0)
	if !errors.Is(err, errors.ErrCodeInvalidAlgorithm) {
		t.Errorf("want INVALID_ALGORITHM, got %v", err)
	}
}

// TestPackInvariantRandom packs random rectangle sets with every algorithm and
// checks the no-overlap and in-bounds invariant on each result.
func TestPackInvariantRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	algorithms := []struct {
		name string
		w, h int
	}{
		{AlgorithmGrowing, 0, 0},
		{AlgorithmBinpacking, 4096, 4096},
		{AlgorithmVertical, 0, 0},
		{AlgorithmHorizontal, 0, 0},
	}

	for _, alg := range algorithms {
		t.Run(alg.name, func(t *testing.T) {
			for trial := 0; trial < 25; trial++ {
				n := rng.Intn(40) + 1
				rects := make([]Rect, n)
				for i := range rects {
					rects[i] = Rect{
						Name:   fmt.Sprintf("r%d", i),
						Width:  rng.Intn(120) + 1,
						Height: rng.Intn(120) + 1,
					}
				}
				if err := Sort(rects, SortMaxSide); err != nil {
					t.Fatal(err)
				}

				p, err := New(alg.name, alg.w, alg.h)
				if err != nil {
					t.Fatal(err)
				}
				w, h, err := p.Pack(rects)
				if err != nil {
					t.Fatalf("trial %d: Pack error: %v", trial, err)
				}
				if err := Validate(rects, w, h); err != nil {
					t.Fatalf("trial %d: %v", trial, err)
				}
			}
		})
	}
}
