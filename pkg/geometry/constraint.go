package geometry

import (
	"fmt"
	"math"
)

// Axis bounds one dimension of a measurement. It is either AtMost(v) or
// Unconstrained. The zero value is Unconstrained.
//
// An unconstrained axis is never folded into arithmetic as a large finite
// number: adding to, subtracting from, scaling or dividing an unconstrained
// axis yields an unconstrained axis.
type Axis struct {
	value   float64
	bounded bool
}

// Unconstrained is the axis with no upper bound.
var Unconstrained = Axis{}

// AtMost returns an axis bounded by v. Infinite or NaN values normalize to
// Unconstrained.
func AtMost(v float64) Axis {
	if math.IsInf(v, 1) || math.IsNaN(v) {
		return Unconstrained
	}
	return Axis{value: v, bounded: true}
}

// IsConstrained reports whether the axis has an upper bound.
func (a Axis) IsConstrained() bool {
	return a.bounded
}

// ConstrainedValue returns the bound, and false when the axis is unconstrained.
func (a Axis) ConstrainedValue() (float64, bool) {
	return a.value, a.bounded
}

// Maximum returns the bound, or +Inf when unconstrained.
func (a Axis) Maximum() float64 {
	if !a.bounded {
		return math.Inf(1)
	}
	return a.value
}

// Minimum returns the bound, or zero when unconstrained.
func (a Axis) Minimum() float64 {
	if !a.bounded {
		return 0
	}
	return a.value
}

// Add returns the axis grown by x.
func (a Axis) Add(x float64) Axis {
	if !a.bounded {
		return a
	}
	return AtMost(a.value + x)
}

// Sub returns the axis shrunk by x.
func (a Axis) Sub(x float64) Axis {
	if !a.bounded {
		return a
	}
	return AtMost(a.value - x)
}

// Mul returns the axis scaled by x.
func (a Axis) Mul(x float64) Axis {
	if !a.bounded {
		return a
	}
	return AtMost(a.value * x)
}

// Div returns the axis divided by x. Dividing by zero yields Unconstrained.
func (a Axis) Div(x float64) Axis {
	if !a.bounded || x == 0 {
		return Unconstrained
	}
	return AtMost(a.value / x)
}

func (a Axis) String() string {
	if !a.bounded {
		return "unconstrained"
	}
	return fmt.Sprintf("atMost(%g)", a.value)
}

// SizeConstraint bounds both axes of a measurement. SizeConstraint is
// comparable and may be used as a map key.
type SizeConstraint struct {
	Width  Axis
	Height Axis
}

// UnconstrainedSize has no bound on either axis.
var UnconstrainedSize = SizeConstraint{}

// NewSizeConstraint bounds each axis by the matching dimension of size.
// Infinite dimensions become unconstrained.
func NewSizeConstraint(size Size) SizeConstraint {
	return SizeConstraint{Width: AtMost(size.Width), Height: AtMost(size.Height)}
}

// ConstraintFitting converts a host fitting size into a constraint. A zero
// dimension means "no opinion" and is treated as unconstrained rather than as
// zero available space.
func ConstraintFitting(size Size) SizeConstraint {
	axis := func(v float64) Axis {
		if v == 0 {
			return Unconstrained
		}
		return AtMost(v)
	}
	return SizeConstraint{Width: axis(size.Width), Height: axis(size.Height)}
}

// Maximum returns the bounds as a size; unconstrained axes are +Inf.
func (c SizeConstraint) Maximum() Size {
	return Size{Width: c.Width.Maximum(), Height: c.Height.Maximum()}
}

// Minimum returns the bounds as a size; unconstrained axes are zero.
func (c SizeConstraint) Minimum() Size {
	return Size{Width: c.Width.Minimum(), Height: c.Height.Minimum()}
}

// Inset shrinks each axis by the given amounts.
func (c SizeConstraint) Inset(width, height float64) SizeConstraint {
	return SizeConstraint{Width: c.Width.Sub(width), Height: c.Height.Sub(height)}
}

// Clamp limits size to the constrained axes.
func (c SizeConstraint) Clamp(size Size) Size {
	if v, ok := c.Width.ConstrainedValue(); ok && size.Width > v {
		size.Width = v
	}
	if v, ok := c.Height.ConstrainedValue(); ok && size.Height > v {
		size.Height = v
	}
	return size
}

func (c SizeConstraint) String() string {
	return fmt.Sprintf("{width: %s, height: %s}", c.Width, c.Height)
}
