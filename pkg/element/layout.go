package element

import "github.com/go-drift/blueprint/pkg/geometry"

// Measurable measures one child without exposing its structure.
type Measurable interface {
	Measure(constraint geometry.SizeConstraint) geometry.Size
}

// MeasurableFunc adapts a function to [Measurable].
type MeasurableFunc func(constraint geometry.SizeConstraint) geometry.Size

// Measure calls f.
func (f MeasurableFunc) Measure(constraint geometry.SizeConstraint) geometry.Size {
	return f(constraint)
}

// LayoutItem is one child as seen by a [Layout].
type LayoutItem struct {
	Traits  any
	Content Measurable
}

// Layout places the children of a container.
//
// Measure may measure children any number of times under any constraints.
// Layout must return exactly one attributes value per item, in item order,
// expressed in the container's local coordinate space.
type Layout interface {
	Measure(items []LayoutItem, constraint geometry.SizeConstraint) geometry.Size
	Layout(size geometry.Size, items []LayoutItem) []geometry.LayoutAttributes
}

// PassthroughLayout sizes a container to the largest child and places every
// child over the container's full bounds.
type PassthroughLayout struct{}

// Measure returns the largest child size.
func (PassthroughLayout) Measure(items []LayoutItem, constraint geometry.SizeConstraint) geometry.Size {
	var size geometry.Size
	for _, item := range items {
		s := item.Content.Measure(constraint)
		size.Width = max(size.Width, s.Width)
		size.Height = max(size.Height, s.Height)
	}
	return size
}

// Layout fills the container with every child.
func (PassthroughLayout) Layout(size geometry.Size, items []LayoutItem) []geometry.LayoutAttributes {
	out := make([]geometry.LayoutAttributes, len(items))
	for i := range items {
		out[i] = geometry.AttributesWithSize(size)
	}
	return out
}
