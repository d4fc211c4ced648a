package texatlas

import "math"

// Extent is a width/height pair. It is used both for document pixel sizes and
// for grid cell sizes.
type Extent struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Bounds is an axis-aligned box in pixel space.
//
// Documents describe layers with a top-left origin, where Top <= Bottom. The
// exporter flips the vertical axis into a bottom-left origin, after which
// Bottom <= Top. Width and Height are extents and are non-negative in both
// conventions.
type Bounds struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
}

// Width returns Right - Left.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of b regardless of origin convention.
func (b Bounds) Height() float64 {
	return math.Abs(b.Bottom - b.Top)
}

// FlipY mirrors the box vertically inside a space of height h, converting
// between top-left and bottom-left origins. FlipY(h).FlipY(h) == b.
func (b Bounds) FlipY(h float64) Bounds {
	return Bounds{
		Left:   b.Left,
		Right:  b.Right,
		Bottom: h - b.Bottom,
		Top:    h - b.Top,
	}
}

// IsGridAligned reports whether all four edges of b lie on multiples of the
// grid cell. Edges and cell sizes are truncated toward zero before the modulus
// test, so fractional pixel positions are tolerated rather than rounded.
// A cell that truncates to zero is never aligned.
func IsGridAligned(b Bounds, grid Extent) bool {
	gw, gh := int64(grid.W), int64(grid.H)
	if gw == 0 || gh == 0 {
		return false
	}
	return int64(b.Left)%gw == 0 &&
		int64(b.Right)%gw == 0 &&
		int64(b.Bottom)%gh == 0 &&
		int64(b.Top)%gh == 0
}

// SnapToGrid moves b outward onto the grid. Aligned bounds are returned
// unchanged. Left and Bottom are floored to the cell; Right and Top are
// placed a whole number of cells past them, enough to cover the original
// Width and Height. The result is never smaller than b in either dimension.
//
// b must use the bottom-left convention (Bottom <= Top).
func SnapToGrid(b Bounds, grid Extent) Bounds {
	if IsGridAligned(b, grid) {
		return b
	}
	w, h := b.Width(), b.Height()
	left := math.Floor(b.Left/grid.W) * grid.W
	bottom := math.Floor(b.Bottom/grid.H) * grid.H
	return Bounds{
		Left:   left,
		Right:  left + math.Ceil(w/grid.W)*grid.W,
		Bottom: bottom,
		Top:    bottom + math.Ceil(h/grid.H)*grid.H,
	}
}
