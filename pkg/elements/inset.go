package elements

import (
	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// Inset pads its wrapped element.
type Inset struct {
	Wrapped element.Element
	Insets  geometry.Insets
}

// Uniform returns an Inset with the same padding on every edge.
func Uniform(v float64, wrapped element.Element) Inset {
	return Inset{Wrapped: wrapped, Insets: geometry.UniformInsets(v)}
}

// Content places the wrapped element inside the insets.
func (i Inset) Content() element.Content {
	if i.Wrapped == nil {
		return element.LeafContent(geometry.Size{Width: i.Insets.Horizontal(), Height: i.Insets.Vertical()})
	}
	return element.ContainerContent(insetLayout{insets: i.Insets}, element.Child{Element: i.Wrapped})
}

// ViewDescription returns nil; insets do not back a view.
func (Inset) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription {
	return nil
}

type insetLayout struct {
	insets geometry.Insets
}

func (l insetLayout) Measure(items []element.LayoutItem, c geometry.SizeConstraint) geometry.Size {
	h, v := l.insets.Horizontal(), l.insets.Vertical()
	s := items[0].Content.Measure(c.Inset(h, v))
	return geometry.Size{Width: s.Width + h, Height: s.Height + v}
}

func (l insetLayout) Layout(size geometry.Size, items []element.LayoutItem) []geometry.LayoutAttributes {
	frame := geometry.RectFromOriginSize(geometry.Point{}, size).Inset(l.insets)
	return []geometry.LayoutAttributes{geometry.NewLayoutAttributes(frame)}
}
