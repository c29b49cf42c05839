package pack

import (
	"math/rand"
	"testing"

	"github.com/matzehuels/spritepack/pkg/errors"
)

func TestResolveSquare(t *testing.T) {
	w, h := Resolve(30, 20, Constraints{Square: true})
	if w != 30 || h != 30 {
		t.Errorf("square of 30x20 = %dx%d, want 30x30", w, h)
	}
}

func TestResolvePowerOfTwo(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{30, 20, 32, 32},
		{32, 64, 32, 64}, // exact powers stay put
		{1, 1, 1, 1},
		{129, 3, 256, 4},
	}
	for _, tt := range tests {
		w, h := Resolve(tt.w, tt.h, Constraints{PowerOfTwo: true})
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("pot(%dx%d) = %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestResolveDivisibleByTwo(t *testing.T) {
	w, h := Resolve(31, 20, Constraints{DivisibleByTwo: true})
	if w != 32 || h != 20 {
		t.Errorf("div2(31x20) = %dx%d, want 32x20", w, h)
	}
}

func TestResolvePriorityOrder(t *testing.T) {
	// square first (33x33), then power of two (64x64).
	w, h := Resolve(33, 20, Constraints{Square: true, PowerOfTwo: true})
	if w != 64 || h != 64 {
		t.Errorf("square+pot(33x20) = %dx%d, want 64x64", w, h)
	}
}

func TestResolveSquareAcrossAlgorithms(t *testing.T) {
	// The resolved canvas must end up square for every algorithm's raw box.
	rng := rand.New(rand.NewSource(7))
	for _, alg := range []string{AlgorithmGrowing, AlgorithmVertical, AlgorithmHorizontal} {
		rects := make([]Rect, 12)
		for i := range rects {
			rects[i] = Rect{Width: rng.Intn(60) + 1, Height: rng.Intn(60) + 1}
		}
		p, err := New(alg, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		rawW, rawH, err := p.Pack(rects)
		if err != nil {
			t.Fatal(err)
		}
		w, h := Resolve(rawW, rawH, Constraints{Square: true})
		if w != h {
			t.Errorf("%s: resolved canvas %dx%d not square", alg, w, h)
		}
		if w < rawW || h < rawH {
			t.Errorf("%s: resolution shrank %dx%d to %dx%d", alg, rawW, rawH, w, h)
		}
		if err := Validate(rects, w, h); err != nil {
			t.Errorf("%s: %v", alg, err)
		}
	}
}

func TestResolveNeverShrinks(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 50; trial++ {
		rawW, rawH := rng.Intn(500)+1, rng.Intn(500)+1
		c := Constraints{
			Square:         rng.Intn(2) == 0,
			PowerOfTwo:     rng.Intn(2) == 0,
			DivisibleByTwo: rng.Intn(2) == 0,
		}
		w, h := Resolve(rawW, rawH, c)
		if w < rawW || h < rawH {
			t.Fatalf("%+v shrank %dx%d to %dx%d", c, rawW, rawH, w, h)
		}
		if c.PowerOfTwo {
			if w&(w-1) != 0 || h&(h-1) != 0 {
				t.Fatalf("%dx%d not powers of two", w, h)
			}
		}
	}
}

func TestValidateOverlap(t *testing.T) {
	rects := []Rect{
		{Name: "a", X: 0, Y: 0, Width: 10, Height: 10},
		{Name: "b", X: 5, Y: 5, Width: 10, Height: 10},
	}
	err := Validate(rects, 100, 100)
	if !errors.Is(err, errors.ErrCodeValidationFailed) {
		t.Fatalf("want VALIDATION_FAILED, got %v", err)
	}
}

func TestValidateOutOfBounds(t *testing.T) {
	rects := []Rect{{Name: "a", X: 95, Y: 0, Width: 10, Height: 10}}
	if err := Validate(rects, 100, 100); !errors.Is(err, errors.ErrCodeValidationFailed) {
		t.Fatalf("want VALIDATION_FAILED, got %v", err)
	}
}

func TestValidateTouchingEdgesOK(t *testing.T) {
	// Shared edges are not overlap.
	rects := []Rect{
		{Name: "a", X: 0, Y: 0, Width: 10, Height: 10},
		{Name: "b", X: 10, Y: 0, Width: 10, Height: 10},
		{Name: "c", X: 0, Y: 10, Width: 20, Height: 10},
	}
	if err := Validate(rects, 20, 20); err != nil {
		t.Errorf("touching rects should validate, got %v", err)
	}
}
