package geometry

import "math"

// RoundToScale rounds v to the nearest device pixel for the given scale.
// A non-positive scale leaves v unchanged.
func RoundToScale(v, scale float64) float64 {
	if scale <= 0 {
		return v
	}
	return math.Round(v*scale) / scale
}

// Rounded snaps r to the pixel grid. Edges are rounded in the coordinate
// space shifted by offset (usually the global origin of r's parent), so that
// adjacent views share pixel boundaries regardless of nesting depth.
func (r Rect) Rounded(scale float64, offset Point) Rect {
	left := RoundToScale(r.Left+offset.X, scale) - offset.X
	top := RoundToScale(r.Top+offset.Y, scale) - offset.Y
	right := RoundToScale(r.Right+offset.X, scale) - offset.X
	bottom := RoundToScale(r.Bottom+offset.Y, scale) - offset.Y
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Rounded returns a copy of a with its frame snapped to the pixel grid.
func (a LayoutAttributes) Rounded(scale float64, offset Point) LayoutAttributes {
	a.SetFrame(a.Frame().Rounded(scale, offset))
	return a
}
