package animation

import "math"

// Linear returns linear progress (no easing).
func Linear(t float64) float64 {
	return t
}

// EaseIn starts slowly and accelerates. Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.42, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.58, 1.0)

// EaseInOut starts and ends slowly. Equivalent to CSS ease-in-out and the
// default curve of platform animation blocks.
var EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)

// CubicBezier returns an easing curve through control points (x1,y1) and
// (x2,y2), with implicit end points (0,0) and (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return bezierY(y1, y2, solveBezierX(x1, x2, t))
	}
}

// solveBezierX finds the curve parameter whose x coordinate is t, first by
// Newton iteration and then by bisection when the slope flattens out.
func solveBezierX(x1, x2, t float64) float64 {
	u := t
	for range 8 {
		dx := bezierY(x1, x2, u) - t
		if math.Abs(dx) < 1e-7 {
			return u
		}
		slope := bezierSlope(x1, x2, u)
		if math.Abs(slope) < 1e-7 {
			break
		}
		u -= dx / slope
	}

	lo, hi := 0.0, 1.0
	u = min(max(u, 0), 1)
	for range 16 {
		dx := bezierY(x1, x2, u) - t
		if math.Abs(dx) < 1e-7 {
			break
		}
		if dx > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) * 0.5
	}
	return u
}

// bezierY evaluates one coordinate of the curve with control values a, b.
func bezierY(a, b, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*a + 3*inv*u*u*b + u*u*u
}

func bezierSlope(a, b, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*a + 6*inv*u*(b-a) + 3*u*u*(1-b)
}
