package geometry

import (
	"math"

	"golang.org/x/image/math/f64"
)

var identityAff3 = f64.Aff3{1, 0, 0, 0, 1, 0}

// Transform is a 2D affine transform applied about a view's center.
// The zero value is the identity transform.
type Transform struct {
	m   f64.Aff3
	set bool
}

// IdentityTransform is the transform that leaves points unchanged.
var IdentityTransform = Transform{}

// TransformFromAff3 wraps a row-major affine matrix.
func TransformFromAff3(m f64.Aff3) Transform {
	return Transform{m: m, set: m != identityAff3}
}

// TranslationTransform returns a transform moving points by (dx, dy).
func TranslationTransform(dx, dy float64) Transform {
	return TransformFromAff3(f64.Aff3{1, 0, dx, 0, 1, dy})
}

// ScaleTransform returns a transform scaling by (sx, sy).
func ScaleTransform(sx, sy float64) Transform {
	return TransformFromAff3(f64.Aff3{sx, 0, 0, 0, sy, 0})
}

// RotationTransform returns a transform rotating by radians.
func RotationTransform(radians float64) Transform {
	sin, cos := math.Sincos(radians)
	return TransformFromAff3(f64.Aff3{cos, -sin, 0, sin, cos, 0})
}

// Aff3 returns the row-major matrix.
func (t Transform) Aff3() f64.Aff3 {
	if !t.set {
		return identityAff3
	}
	return t.m
}

// IsIdentity reports whether t leaves every point unchanged.
func (t Transform) IsIdentity() bool {
	if !t.set {
		return true
	}
	for i, v := range t.m {
		if !floatEqual(v, identityAff3[i]) {
			return false
		}
	}
	return true
}

// Then returns the transform that applies t followed by next.
func (t Transform) Then(next Transform) Transform {
	if !t.set {
		return next
	}
	if !next.set {
		return t
	}
	a, b := next.m, t.m
	return TransformFromAff3(f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	})
}

// Apply maps p through t.
func (t Transform) Apply(p Point) Point {
	m := t.Aff3()
	return Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// ApplyLinear maps p through t ignoring translation.
func (t Transform) ApplyLinear(p Point) Point {
	m := t.Aff3()
	return Point{
		X: m[0]*p.X + m[1]*p.Y,
		Y: m[3]*p.X + m[4]*p.Y,
	}
}

// Equal reports whether two transforms have the same matrix.
func (t Transform) Equal(other Transform) bool {
	return t.Aff3() == other.Aff3()
}
