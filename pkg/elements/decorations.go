package elements

import (
	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// Opacity multiplies the alpha of its wrapped element.
type Opacity struct {
	Wrapped element.Element
	Alpha   float64
}

// Content places the wrapped element with the alpha applied.
func (o Opacity) Content() element.Content {
	return decorated(o.Wrapped, func(a *geometry.LayoutAttributes) {
		a.Alpha = o.Alpha
	})
}

// ViewDescription returns nil; the alpha folds into descendant views.
func (Opacity) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription {
	return nil
}

// Transformed applies an affine transform to its wrapped element about the
// element's center.
type Transformed struct {
	Wrapped   element.Element
	Transform geometry.Transform
}

// Content places the wrapped element with the transform applied.
func (t Transformed) Content() element.Content {
	return decorated(t.Wrapped, func(a *geometry.LayoutAttributes) {
		a.Transform = t.Transform
	})
}

// ViewDescription returns nil; the transform folds into descendant views.
func (Transformed) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription {
	return nil
}

// Hidden hides its wrapped element without removing it from the tree.
type Hidden struct {
	Wrapped  element.Element
	IsHidden bool
}

// Content places the wrapped element, hidden if IsHidden is set.
func (h Hidden) Content() element.Content {
	return decorated(h.Wrapped, func(a *geometry.LayoutAttributes) {
		a.Hidden = h.IsHidden
	})
}

// ViewDescription returns nil; hiding folds into descendant views.
func (Hidden) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription {
	return nil
}

func decorated(wrapped element.Element, adjust func(*geometry.LayoutAttributes)) element.Content {
	if wrapped == nil {
		return element.EmptyContent()
	}
	return element.ContainerContent(decorationLayout{adjust: adjust}, element.Child{Element: wrapped})
}

// decorationLayout passes its child through and adjusts its attributes.
type decorationLayout struct {
	adjust func(*geometry.LayoutAttributes)
}

func (l decorationLayout) Measure(items []element.LayoutItem, c geometry.SizeConstraint) geometry.Size {
	return element.PassthroughLayout{}.Measure(items, c)
}

func (l decorationLayout) Layout(size geometry.Size, items []element.LayoutItem) []geometry.LayoutAttributes {
	out := element.PassthroughLayout{}.Layout(size, items)
	for i := range out {
		l.adjust(&out[i])
	}
	return out
}

// Spacer takes up a fixed amount of space and displays nothing.
type Spacer struct {
	Width  float64
	Height float64
}

// Content is a fixed-size leaf.
func (s Spacer) Content() element.Content {
	return element.LeafContent(geometry.Size{Width: s.Width, Height: s.Height})
}

// ViewDescription returns nil; spacers do not back a view.
func (Spacer) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription {
	return nil
}

// EnvironmentReader builds its content from the environment at layout time.
type EnvironmentReader struct {
	Build func(env environment.Environment) element.Element
}

// Content defers to Build.
func (r EnvironmentReader) Content() element.Content {
	return element.EnvironmentContent(r.Build)
}

// ViewDescription returns nil.
func (EnvironmentReader) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription {
	return nil
}

// AdaptedEnvironment changes the environment seen by its wrapped element.
type AdaptedEnvironment struct {
	Wrapped element.Element
	Adapt   func(env environment.Environment) environment.Environment

	// constant is set when Adapt reads nothing from its input.
	constant bool
}

// Content passes the wrapped element through with the adapted environment.
func (a AdaptedEnvironment) Content() element.Content {
	c := element.AdaptedContent(a.Wrapped, a.Adapt)
	if a.constant {
		c = c.ReadingEnvironment()
	}
	return c
}

// ViewDescription returns nil.
func (AdaptedEnvironment) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription {
	return nil
}

// Set returns an [AdaptedEnvironment] that sets key to value for wrapped.
func Set[V any](key *environment.Key[V], value V, wrapped element.Element) AdaptedEnvironment {
	return AdaptedEnvironment{
		Wrapped: wrapped,
		Adapt: func(env environment.Environment) environment.Environment {
			return environment.Set(env, key, value)
		},
		constant: true,
	}
}
