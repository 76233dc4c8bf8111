// Package platform defines the native view primitives Blueprint reconciles
// against.
//
// A [View] is one live native view. A [Platform] constructs views by type,
// runs animation blocks, and schedules layout passes on its run loop. Blueprint
// only specifies the order in which it calls these primitives; the platform
// owns how they are carried out. See package headless for an in-memory
// implementation used by tests and tooling.
package platform

import (
	"github.com/go-drift/blueprint/pkg/animation"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// View represents a native view managed by the reconciler.
type View interface {
	// ViewID returns the unique identifier for this view.
	ViewID() int64

	// ViewType returns the type identifier for this view (e.g., "blueprint.label").
	ViewType() string

	// SetProperty assigns one named property binding.
	SetProperty(name string, value any)

	// Property returns a previously assigned property.
	Property(name string) (any, bool)

	// Superview returns the view this view is a subview of, or nil.
	Superview() View

	// Subviews returns the subviews in back-to-front order.
	Subviews() []View

	// InsertSubview inserts view at index. A view that already has a
	// superview is first removed from it.
	InsertSubview(view View, index int)

	// RemoveFromSuperview detaches the view from its superview.
	RemoveFromSuperview()

	// ApplyLayoutAttributes updates geometry, alpha and visibility.
	ApplyLayoutAttributes(attributes geometry.LayoutAttributes)

	// LayoutAttributes returns the last applied attributes.
	LayoutAttributes() geometry.LayoutAttributes
}

// ViewFactory creates views of a specific type.
type ViewFactory interface {
	// Create creates a new view instance.
	Create(viewID int64) (View, error)

	// ViewType returns the view type this factory creates.
	ViewType() string
}

// Platform provides view construction, animation blocks and layout scheduling.
// All methods are called from the single thread driving the UI.
type Platform interface {
	// CreateView creates a view of the given type.
	CreateView(viewType string) (View, error)

	// Animate performs changes inside an animation block. completion is
	// called exactly once when the animation ends; finished is false when it
	// was interrupted.
	Animate(anim animation.Animation, changes func(), completion func(finished bool))

	// PerformWithoutAnimation performs changes with animations suppressed,
	// including any ambient animation block.
	PerformWithoutAnimation(changes func())

	// CurrentAnimation returns the innermost animation block that is
	// currently executing, if any.
	CurrentAnimation() (animation.Animation, bool)

	// ScheduleLayout asks the run loop to call fn at the next layout
	// opportunity.
	ScheduleLayout(fn func())

	// Scale returns the number of device pixels per point.
	Scale() float64
}

// IndexOf returns the position of view among parent's subviews, or -1.
func IndexOf(parent, view View) int {
	if parent == nil || view == nil {
		return -1
	}
	for i, sub := range parent.Subviews() {
		if sub == view {
			return i
		}
	}
	return -1
}
