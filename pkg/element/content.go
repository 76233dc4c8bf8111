package element

import (
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// ContentKind identifies which of the content forms is active.
type ContentKind int

const (
	// KindEmpty is content with no size and no children.
	KindEmpty ContentKind = iota
	// KindLeaf is content measured directly.
	KindLeaf
	// KindContainer is content with children placed by a layout.
	KindContainer
	// KindEnvironment is content whose single child is built from the
	// environment at layout time.
	KindEnvironment
)

func (k ContentKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindLeaf:
		return "leaf"
	case KindContainer:
		return "container"
	case KindEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// MeasureFunc measures a leaf under a constraint.
type MeasureFunc func(constraint geometry.SizeConstraint, env environment.Environment) geometry.Size

// BuildFunc builds an element from the environment.
type BuildFunc func(env environment.Environment) Element

// Content is an element's content. Exactly one form is active; the zero
// value is empty content.
type Content struct {
	kind     ContentKind
	measure  MeasureFunc
	layout   Layout
	children []Child
	build    BuildFunc

	// envKeys are the environment keys the content reads. Opaque content
	// may read any key.
	envKeys []environment.AnyKey
	opaque  bool
}

// Child is one child of a container.
type Child struct {
	// Element is the child element. A nil element is skipped.
	Element Element
	// Traits are opaque per-child values read by the container's layout.
	Traits any
	// Key disambiguates siblings of the same type. Keys must be comparable.
	Key any
	// Adapt, if set, derives the child's environment from its parent's.
	Adapt func(environment.Environment) environment.Environment
}

// EmptyContent returns content with zero size and no children.
func EmptyContent() Content {
	return Content{}
}

// LeafContent returns leaf content with a fixed intrinsic size.
func LeafContent(size geometry.Size) Content {
	return Content{
		kind: KindLeaf,
		measure: func(geometry.SizeConstraint, environment.Environment) geometry.Size {
			return size
		},
	}
}

// MeasureContent returns leaf content measured by fn.
func MeasureContent(fn MeasureFunc) Content {
	if fn == nil {
		return EmptyContent()
	}
	return Content{kind: KindLeaf, measure: fn, opaque: true}
}

// ContainerContent returns content whose children are placed by layout.
// Children with a nil element are dropped.
func ContainerContent(layout Layout, children ...Child) Content {
	kept := make([]Child, 0, len(children))
	for _, c := range children {
		if c.Element != nil {
			kept = append(kept, c)
		}
	}
	if layout == nil {
		layout = PassthroughLayout{}
	}
	opaque := false
	for _, c := range kept {
		opaque = opaque || c.Adapt != nil
	}
	return Content{kind: KindContainer, layout: layout, children: kept, opaque: opaque}
}

// SingleChildContent returns content that sizes and places child exactly
// like the element itself.
func SingleChildContent(child Element) Content {
	if child == nil {
		return EmptyContent()
	}
	return ContainerContent(PassthroughLayout{}, Child{Element: child})
}

// AdaptedContent returns single-child content whose child sees the
// environment returned by adapt.
func AdaptedContent(child Element, adapt func(environment.Environment) environment.Environment) Content {
	if child == nil {
		return EmptyContent()
	}
	return ContainerContent(PassthroughLayout{}, Child{Element: child, Adapt: adapt})
}

// EnvironmentContent returns content whose single child is built from the
// environment active at the element.
func EnvironmentContent(build BuildFunc) Content {
	if build == nil {
		return EmptyContent()
	}
	return Content{kind: KindEnvironment, build: build, opaque: true}
}

// ReadingEnvironment returns c declaring that its measurement and children
// depend only on keys. Measure functions, environment builders and child
// adapters otherwise count as reading every key.
func (c Content) ReadingEnvironment(keys ...environment.AnyKey) Content {
	c.envKeys = keys
	c.opaque = false
	return c
}

// EnvironmentKeys returns the keys the content reads. ok is false when the
// content may read any key.
func (c Content) EnvironmentKeys() (keys []environment.AnyKey, ok bool) {
	if c.opaque {
		return nil, false
	}
	return c.envKeys, true
}

// Kind returns the active content form.
func (c Content) Kind() ContentKind {
	return c.kind
}

// Measure measures leaf content. Other forms report zero.
func (c Content) Measure(constraint geometry.SizeConstraint, env environment.Environment) geometry.Size {
	if c.kind != KindLeaf {
		return geometry.Size{}
	}
	return c.measure(constraint, env)
}

// Layout returns the container layout. Environment content uses a
// passthrough layout.
func (c Content) Layout() Layout {
	switch c.kind {
	case KindContainer:
		return c.layout
	case KindEnvironment:
		return PassthroughLayout{}
	default:
		return nil
	}
}

// Children returns the children of the content in declaration order.
// Environment content builds its child from env.
func (c Content) Children(env environment.Environment) []Child {
	switch c.kind {
	case KindContainer:
		return c.children
	case KindEnvironment:
		if el := c.build(env); el != nil {
			return []Child{{Element: el}}
		}
	}
	return nil
}

// ChildCount returns the number of declared children. Environment content
// always reports one.
func (c Content) ChildCount() int {
	switch c.kind {
	case KindContainer:
		return len(c.children)
	case KindEnvironment:
		return 1
	default:
		return 0
	}
}
