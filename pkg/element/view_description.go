package element

import (
	"fmt"

	"github.com/go-drift/blueprint/pkg/errors"
	"github.com/go-drift/blueprint/pkg/platform"
)

// Property is one named property binding.
type Property struct {
	Name  string
	Value any
}

// ViewDescription is a recipe for building and configuring one native view.
// Descriptions are compared for reuse only by their view type.
type ViewDescription struct {
	viewType      string
	build         func(platform.Platform) (platform.View, error)
	properties    []Property
	configure     []func(platform.View)
	contentView   func(platform.View) platform.View
	layout        LayoutTransition
	appearing     *VisibilityTransition
	disappearing  *VisibilityTransition
	onAppear      func()
	onDisappear   func()
	frameRounding bool
}

// ViewOption configures a [ViewDescription].
type ViewOption func(*ViewDescription)

// NewViewDescription describes a view of viewType. Views are created with
// platform.CreateView unless [WithBuilder] is given.
func NewViewDescription(viewType string, opts ...ViewOption) *ViewDescription {
	d := &ViewDescription{viewType: viewType, frameRounding: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithBuilder overrides how the view is constructed.
func WithBuilder(build func(platform.Platform) (platform.View, error)) ViewOption {
	return func(d *ViewDescription) {
		d.build = build
	}
}

// WithProperty binds a named property. Bindings are reapplied on every pass
// in the order they were declared.
func WithProperty(name string, value any) ViewOption {
	return func(d *ViewDescription) {
		d.properties = append(d.properties, Property{Name: name, Value: value})
	}
}

// Configure adds a typed configuration step, run after property bindings.
// Binding a view that is not a V is a fatal error.
func Configure[V platform.View](fn func(V)) ViewOption {
	return func(d *ViewDescription) {
		viewType := d.viewType
		d.configure = append(d.configure, func(view platform.View) {
			v, ok := view.(V)
			if !ok {
				errors.Fatal("element.Configure", "description of %q bound to %T", viewType, view)
			}
			fn(v)
		})
	}
}

// WithContentView selects the subview that hosts child views. By default
// children are inserted into the view itself.
func WithContentView(fn func(platform.View) platform.View) ViewOption {
	return func(d *ViewDescription) {
		d.contentView = fn
	}
}

// WithLayoutTransition sets how attribute changes animate.
func WithLayoutTransition(t LayoutTransition) ViewOption {
	return func(d *ViewDescription) {
		d.layout = t
	}
}

// WithAppearingTransition sets the transition run when the view is inserted.
func WithAppearingTransition(t VisibilityTransition) ViewOption {
	return func(d *ViewDescription) {
		d.appearing = &t
	}
}

// WithDisappearingTransition sets the transition run before the view is removed.
func WithDisappearingTransition(t VisibilityTransition) ViewOption {
	return func(d *ViewDescription) {
		d.disappearing = &t
	}
}

// WithTransition sets both visibility transitions.
func WithTransition(t VisibilityTransition) ViewOption {
	return func(d *ViewDescription) {
		d.appearing = &t
		d.disappearing = &t
	}
}

// OnAppear sets a callback run after the view becomes visible.
func OnAppear(fn func()) ViewOption {
	return func(d *ViewDescription) {
		d.onAppear = fn
	}
}

// OnDisappear sets a callback run after the view stops being visible.
func OnDisappear(fn func()) ViewOption {
	return func(d *ViewDescription) {
		d.onDisappear = fn
	}
}

// WithoutFrameRounding disables rounding the view's frame to device pixels.
func WithoutFrameRounding() ViewOption {
	return func(d *ViewDescription) {
		d.frameRounding = false
	}
}

// ViewType returns the declared view type.
func (d *ViewDescription) ViewType() string {
	return d.viewType
}

// CanReuse reports whether a view built for other can be updated with d.
func (d *ViewDescription) CanReuse(other *ViewDescription) bool {
	return d != nil && other != nil && d.viewType == other.viewType
}

// Build constructs a new view. A builder returning a view of a different
// type is a fatal error.
func (d *ViewDescription) Build(p platform.Platform) (platform.View, error) {
	var (
		view platform.View
		err  error
	)
	if d.build != nil {
		view, err = d.build(p)
	} else {
		view, err = p.CreateView(d.viewType)
	}
	if err != nil {
		return nil, &errors.BlueprintError{Op: "element.Build", Kind: errors.KindPlatform, Err: fmt.Errorf("build %q: %w", d.viewType, err)}
	}
	d.checkType(view)
	return view, nil
}

// Apply binds the description to view.
func (d *ViewDescription) Apply(view platform.View) {
	d.checkType(view)
	for _, p := range d.properties {
		view.SetProperty(p.Name, p.Value)
	}
	for _, fn := range d.configure {
		fn(view)
	}
}

func (d *ViewDescription) checkType(view platform.View) {
	if view.ViewType() != d.viewType {
		errors.Fatal("element.ViewDescription", "description of %q bound to view of type %q", d.viewType, view.ViewType())
	}
}

// ContentView returns the subview of view that hosts children.
func (d *ViewDescription) ContentView(view platform.View) platform.View {
	if d.contentView == nil {
		return view
	}
	return d.contentView(view)
}

// Properties returns the declared property bindings.
func (d *ViewDescription) Properties() []Property {
	return d.properties
}

// LayoutTransition returns the layout transition.
func (d *ViewDescription) LayoutTransition() LayoutTransition {
	return d.layout
}

// AppearingTransition returns the appearing transition, if any.
func (d *ViewDescription) AppearingTransition() *VisibilityTransition {
	return d.appearing
}

// DisappearingTransition returns the disappearing transition, if any.
func (d *ViewDescription) DisappearingTransition() *VisibilityTransition {
	return d.disappearing
}

// OnAppearCallback returns the on-appear callback, if any.
func (d *ViewDescription) OnAppearCallback() func() {
	return d.onAppear
}

// OnDisappearCallback returns the on-disappear callback, if any.
func (d *ViewDescription) OnDisappearCallback() func() {
	return d.onDisappear
}

// FrameRounding reports whether frames are rounded to device pixels.
func (d *ViewDescription) FrameRounding() bool {
	return d.frameRounding
}
