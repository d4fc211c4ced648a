package texatlas

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestBoundsWidthHeight(t *testing.T) {
	b := Bounds{Left: 10, Right: 30, Bottom: 90, Top: 70}
	if got := b.Width(); got != 20 {
		t.Errorf("Width = %v, want 20", got)
	}
	if got := b.Height(); got != 20 {
		t.Errorf("Height = %v, want 20", got)
	}
	if got := b.FlipY(100).Height(); got != 20 {
		t.Errorf("flipped Height = %v, want 20", got)
	}
}

func TestBoundsFlipY(t *testing.T) {
	b := Bounds{Left: 10, Right: 30, Bottom: 90, Top: 70}
	f := b.FlipY(100)
	if f.Bottom != 10 || f.Top != 30 {
		t.Errorf("FlipY = bottom %v top %v, want 10 30", f.Bottom, f.Top)
	}
	if f.Left != 10 || f.Right != 30 {
		t.Errorf("FlipY changed columns: %+v", f)
	}
	if back := f.FlipY(100); back != b {
		t.Errorf("FlipY twice = %+v, want %+v", back, b)
	}
}

func TestIsGridAligned(t *testing.T) {
	grid := Extent{W: 16, H: 8}
	tests := []struct {
		name string
		b    Bounds
		want bool
	}{
		{"aligned", Bounds{Left: 0, Right: 32, Bottom: 8, Top: 24}, true},
		{"negative aligned", Bounds{Left: -16, Right: 16, Bottom: -8, Top: 0}, true},
		{"left off", Bounds{Left: 5, Right: 32, Bottom: 8, Top: 24}, false},
		{"right off", Bounds{Left: 0, Right: 33, Bottom: 8, Top: 24}, false},
		{"bottom off", Bounds{Left: 0, Right: 32, Bottom: 9, Top: 24}, false},
		{"top off", Bounds{Left: 0, Right: 32, Bottom: 8, Top: 23}, false},
		// Fractions are truncated, not rounded.
		{"fraction truncated", Bounds{Left: 0.9, Right: 32.5, Bottom: 8.99, Top: 24.1}, true},
		{"fraction below cell", Bounds{Left: 15.99, Right: 32, Bottom: 8, Top: 24}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGridAligned(tt.b, grid); got != tt.want {
				t.Errorf("IsGridAligned(%+v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestIsGridAligned_ZeroCell(t *testing.T) {
	if IsGridAligned(Bounds{}, Extent{W: 0.5, H: 16}) {
		t.Error("cell truncating to zero should never be aligned")
	}
}

func TestSnapToGrid_Scenario(t *testing.T) {
	b := Bounds{Left: 5, Bottom: 37, Right: 20, Top: 20}
	got := SnapToGrid(b, Extent{W: 16, H: 16})
	want := Bounds{Left: 0, Right: 16, Bottom: 32, Top: 64}
	if got != want {
		t.Errorf("SnapToGrid = %+v, want %+v", got, want)
	}
}

func TestSnapToGrid_AlignedUnchanged(t *testing.T) {
	b := Bounds{Left: 16, Right: 48, Bottom: 0, Top: 16}
	if got := SnapToGrid(b, Extent{W: 16, H: 16}); got != b {
		t.Errorf("SnapToGrid(aligned) = %+v, want %+v", got, b)
	}
}

func TestSnapToGrid_UsesOriginalExtent(t *testing.T) {
	// Left moves 15px down to 0, but the width term still covers only the
	// original 2px, so the box ends at one cell.
	b := Bounds{Left: 15, Right: 17, Bottom: 0, Top: 16}
	got := SnapToGrid(b, Extent{W: 16, H: 16})
	if got.Left != 0 || got.Right != 16 {
		t.Errorf("SnapToGrid columns = [%v, %v], want [0, 16]", got.Left, got.Right)
	}
}

func TestSnapToGrid_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 5000; i++ {
		grid := Extent{W: float64(1 + rng.IntN(64)), H: float64(1 + rng.IntN(64))}
		left := float64(rng.IntN(2000)-1000) + float64(rng.IntN(4))/4
		bottom := float64(rng.IntN(2000)-1000) + float64(rng.IntN(4))/4
		b := Bounds{
			Left:   left,
			Right:  left + float64(1+rng.IntN(300)),
			Bottom: bottom,
			Top:    bottom + float64(1+rng.IntN(300)),
		}

		s := SnapToGrid(b, grid)
		if !IsGridAligned(s, grid) {
			t.Fatalf("SnapToGrid(%+v, %+v) = %+v is not aligned", b, grid, s)
		}
		if s.Width() < b.Width() {
			t.Fatalf("SnapToGrid(%+v, %+v) width %v < %v", b, grid, s.Width(), b.Width())
		}
		if s.Height() < b.Height() {
			t.Fatalf("SnapToGrid(%+v, %+v) height %v < %v", b, grid, s.Height(), b.Height())
		}
		if IsGridAligned(b, grid) {
			continue
		}
		if math.Mod(s.Width(), grid.W) != 0 || math.Mod(s.Height(), grid.H) != 0 {
			t.Fatalf("SnapToGrid(%+v, %+v) = %+v is not a whole number of cells", b, grid, s)
		}
	}
}
