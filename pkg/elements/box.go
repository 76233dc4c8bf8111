package elements

import (
	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// BoxViewType is the view type backing [Box].
const BoxViewType = "blueprint.box"

// Box is a rectangular view with an optional wrapped element.
//
// Without a wrapped element the box measures as Size.
type Box struct {
	BackgroundColor string
	CornerRadius    float64
	Size            geometry.Size
	Wrapped         element.Element

	LayoutTransition element.LayoutTransition
	Appearing        *element.VisibilityTransition
	Disappearing     *element.VisibilityTransition
	OnAppear         func()
	OnDisappear      func()
}

// Content returns the wrapped element, or a fixed-size leaf.
func (b Box) Content() element.Content {
	if b.Wrapped != nil {
		return element.SingleChildContent(b.Wrapped)
	}
	return element.LeafContent(b.Size)
}

// ViewDescription describes a box view.
func (b Box) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription {
	opts := []element.ViewOption{
		element.WithProperty("backgroundColor", b.BackgroundColor),
		element.WithProperty("cornerRadius", b.CornerRadius),
		element.WithLayoutTransition(b.LayoutTransition),
	}
	if b.Appearing != nil {
		opts = append(opts, element.WithAppearingTransition(*b.Appearing))
	}
	if b.Disappearing != nil {
		opts = append(opts, element.WithDisappearingTransition(*b.Disappearing))
	}
	if b.OnAppear != nil {
		opts = append(opts, element.OnAppear(b.OnAppear))
	}
	if b.OnDisappear != nil {
		opts = append(opts, element.OnDisappear(b.OnDisappear))
	}
	return element.NewViewDescription(BoxViewType, opts...)
}
