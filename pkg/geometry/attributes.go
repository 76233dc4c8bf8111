package geometry

// LayoutAttributes describe where a laid-out element sits within its
// parent's coordinate space, plus the visual attributes that compose down
// the tree.
type LayoutAttributes struct {
	// Center is the center of the element in the parent's coordinate space.
	Center Point
	// Bounds is the element's size.
	Bounds Size
	// Transform is applied about Center.
	Transform Transform
	// Alpha is the opacity in [0, 1].
	Alpha float64
	// Hidden hides the element and its descendants.
	Hidden bool
	// UserInteractionDisabled disables interaction for the element and its descendants.
	UserInteractionDisabled bool
}

// NewLayoutAttributes returns fully opaque, untransformed attributes for frame.
func NewLayoutAttributes(frame Rect) LayoutAttributes {
	return LayoutAttributes{
		Center: frame.Center(),
		Bounds: frame.Size(),
		Alpha:  1,
	}
}

// AttributesWithSize returns attributes for a frame of size at the origin.
func AttributesWithSize(size Size) LayoutAttributes {
	return NewLayoutAttributes(RectFromOriginSize(Point{}, size))
}

// Frame returns the untransformed frame in the parent's coordinate space.
func (a LayoutAttributes) Frame() Rect {
	return RectFromCenter(a.Center, a.Bounds)
}

// SetFrame moves and resizes the attributes to frame.
func (a *LayoutAttributes) SetFrame(frame Rect) {
	a.Center = frame.Center()
	a.Bounds = frame.Size()
}

// Within expresses a, which is relative to parent's bounds, in the
// coordinate space parent itself is expressed in.
//
// The parent's transform applies about the parent's center, so the child's
// center is rotated/scaled around it and the transforms concatenate. Alpha
// multiplies, Hidden and UserInteractionDisabled propagate.
func (a LayoutAttributes) Within(parent LayoutAttributes) LayoutAttributes {
	local := a.Center.Sub(Point{X: parent.Bounds.Width / 2, Y: parent.Bounds.Height / 2})

	result := a
	result.Center = parent.Center.Add(parent.Transform.ApplyLinear(local))
	result.Transform = a.Transform.Then(parent.Transform)
	result.Alpha = a.Alpha * parent.Alpha
	result.Hidden = a.Hidden || parent.Hidden
	result.UserInteractionDisabled = a.UserInteractionDisabled || parent.UserInteractionDisabled
	return result
}

// Equal reports whether two attributes would produce identical views.
func (a LayoutAttributes) Equal(other LayoutAttributes) bool {
	return a.Center == other.Center &&
		a.Bounds == other.Bounds &&
		a.Transform.Equal(other.Transform) &&
		a.Alpha == other.Alpha &&
		a.Hidden == other.Hidden &&
		a.UserInteractionDisabled == other.UserInteractionDisabled
}
