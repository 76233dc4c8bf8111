package headless

import (
	"slices"

	"github.com/go-drift/blueprint/pkg/errors"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/platform"
)

// View is an in-memory native view. Custom view types embed View and call
// [Platform.InitView] so that subview lists report the embedding type.
type View struct {
	self       platform.View
	id         int64
	viewType   string
	platform   *Platform
	superview  *View
	subviews   []*View
	attributes geometry.LayoutAttributes
	props      map[string]any
}

func (v *View) base() *View {
	return v
}

// ViewID returns the unique identifier for this view.
func (v *View) ViewID() int64 {
	return v.id
}

// ViewType returns the type identifier for this view.
func (v *View) ViewType() string {
	return v.viewType
}

// Platform returns the platform that created the view.
func (v *View) Platform() *Platform {
	return v.platform
}

// SetProperty assigns one named property binding.
// Assigning an unchanged comparable value is not recorded.
func (v *View) SetProperty(name string, value any) {
	if old, ok := v.props[name]; ok && sameValue(old, value) {
		return
	}
	if v.props == nil {
		v.props = make(map[string]any)
	}
	v.props[name] = value
	v.platform.record(Op{Kind: OpSetProperty, ViewID: v.id, ViewType: v.viewType, Name: name, Value: value})
}

// Property returns a previously assigned property.
func (v *View) Property(name string) (any, bool) {
	value, ok := v.props[name]
	return value, ok
}

// Properties returns a copy of every assigned property.
func (v *View) Properties() map[string]any {
	out := make(map[string]any, len(v.props))
	for k, value := range v.props {
		out[k] = value
	}
	return out
}

// Superview returns the view this view is a subview of, or nil.
func (v *View) Superview() platform.View {
	if v.superview == nil {
		return nil
	}
	return v.superview.self
}

// Subviews returns the subviews in back-to-front order.
func (v *View) Subviews() []platform.View {
	out := make([]platform.View, len(v.subviews))
	for i, sub := range v.subviews {
		out[i] = sub.self
	}
	return out
}

// InsertSubview inserts view at index, clamped to the subview count. A view
// that already has a superview is removed from it first.
func (v *View) InsertSubview(view platform.View, index int) {
	child := baseOf(view)
	if child.platform != v.platform {
		errors.Fatal("headless.InsertSubview", "%v: view %d", platform.ErrForeignView, child.id)
	}
	if child == v {
		errors.Fatal("headless.InsertSubview", "view %d inserted into itself", v.id)
	}
	if child.superview != nil {
		child.superview.detach(child)
	}
	index = max(0, min(index, len(v.subviews)))
	v.subviews = slices.Insert(v.subviews, index, child)
	child.superview = v
	v.platform.record(Op{Kind: OpInsert, ViewID: child.id, ViewType: child.viewType, ParentID: v.id, Index: index})
}

// RemoveFromSuperview detaches the view from its superview.
func (v *View) RemoveFromSuperview() {
	if v.superview == nil {
		return
	}
	parent := v.superview
	parent.detach(v)
	v.platform.record(Op{Kind: OpRemove, ViewID: v.id, ViewType: v.viewType, ParentID: parent.id})
}

func (v *View) detach(child *View) {
	if i := slices.Index(v.subviews, child); i >= 0 {
		v.subviews = slices.Delete(v.subviews, i, i+1)
	}
	child.superview = nil
}

// ApplyLayoutAttributes updates geometry, alpha and visibility. The
// innermost animation block in effect is recorded with the change.
func (v *View) ApplyLayoutAttributes(attributes geometry.LayoutAttributes) {
	if v.attributes.Equal(attributes) {
		return
	}
	v.attributes = attributes
	op := Op{Kind: OpApply, ViewID: v.id, ViewType: v.viewType, Attributes: attributes}
	if anim, ok := v.platform.CurrentAnimation(); ok {
		op.Animated = true
		op.Animation = anim
	}
	v.platform.record(op)
}

// LayoutAttributes returns the last applied attributes.
func (v *View) LayoutAttributes() geometry.LayoutAttributes {
	return v.attributes
}

// Frame returns the frame of the last applied attributes.
func (v *View) Frame() geometry.Rect {
	return v.attributes.Frame()
}

func baseOf(view platform.View) *View {
	b, ok := view.(interface{ base() *View })
	if !ok {
		errors.Fatal("headless.View", "%v: %T", platform.ErrForeignView, view)
	}
	return b.base()
}

func sameValue(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}
