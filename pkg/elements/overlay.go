package elements

import "github.com/go-drift/blueprint/pkg/element"

// Overlay stacks its children on top of each other, each filling the
// overlay's bounds. Later children are in front.
type Overlay struct {
	Children []StackChild
}

// Content places every child over the full bounds.
func (o Overlay) Content() element.Content {
	children := make([]element.Child, len(o.Children))
	for i, c := range o.Children {
		children[i] = element.Child{Element: c.Element, Key: c.Key}
	}
	return element.ContainerContent(element.PassthroughLayout{}, children...)
}

// ViewDescription returns nil; overlays do not back a view.
func (Overlay) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription {
	return nil
}
