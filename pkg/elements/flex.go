package elements

import (
	"fmt"

	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// Axis is the direction of a stack.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// MainAxisAlignment controls how children are positioned along the main axis
// (horizontal for [Row], vertical for [Column]).
type MainAxisAlignment int

const (
	// MainAxisAlignmentStart places children at the start.
	MainAxisAlignmentStart MainAxisAlignment = iota
	// MainAxisAlignmentEnd places children at the end.
	MainAxisAlignmentEnd
	// MainAxisAlignmentCenter centers children along the main axis.
	MainAxisAlignmentCenter
	// MainAxisAlignmentSpaceBetween distributes free space evenly between children.
	MainAxisAlignmentSpaceBetween
	// MainAxisAlignmentSpaceAround distributes free space evenly, with half-sized
	// spaces at the start and end.
	MainAxisAlignmentSpaceAround
	// MainAxisAlignmentSpaceEvenly distributes free space evenly, including
	// before the first and after the last child.
	MainAxisAlignmentSpaceEvenly
)

// String returns a human-readable representation of the main axis alignment.
func (a MainAxisAlignment) String() string {
	switch a {
	case MainAxisAlignmentStart:
		return "start"
	case MainAxisAlignmentEnd:
		return "end"
	case MainAxisAlignmentCenter:
		return "center"
	case MainAxisAlignmentSpaceBetween:
		return "space_between"
	case MainAxisAlignmentSpaceAround:
		return "space_around"
	case MainAxisAlignmentSpaceEvenly:
		return "space_evenly"
	default:
		return fmt.Sprintf("MainAxisAlignment(%d)", int(a))
	}
}

// CrossAxisAlignment controls how children are positioned along the cross axis.
type CrossAxisAlignment int

const (
	// CrossAxisAlignmentStart places children at the start of the cross axis.
	CrossAxisAlignmentStart CrossAxisAlignment = iota
	// CrossAxisAlignmentEnd places children at the end of the cross axis.
	CrossAxisAlignmentEnd
	// CrossAxisAlignmentCenter centers children along the cross axis.
	CrossAxisAlignmentCenter
	// CrossAxisAlignmentStretch stretches children to fill the cross axis.
	CrossAxisAlignmentStretch
)

// String returns a human-readable representation of the cross axis alignment.
func (a CrossAxisAlignment) String() string {
	switch a {
	case CrossAxisAlignmentStart:
		return "start"
	case CrossAxisAlignmentEnd:
		return "end"
	case CrossAxisAlignmentCenter:
		return "center"
	case CrossAxisAlignmentStretch:
		return "stretch"
	default:
		return fmt.Sprintf("CrossAxisAlignment(%d)", int(a))
	}
}

// MainAxisSize controls how much space a stack takes along its main axis.
type MainAxisSize int

const (
	// MainAxisSizeMin sizes the stack to fit its children. Flexible
	// children on a bounded axis still take the free space.
	MainAxisSizeMin MainAxisSize = iota
	// MainAxisSizeMax fills the available space when the axis is bounded.
	MainAxisSizeMax
)

// String returns a human-readable representation of the main axis size.
func (s MainAxisSize) String() string {
	switch s {
	case MainAxisSizeMin:
		return "min"
	case MainAxisSizeMax:
		return "max"
	default:
		return fmt.Sprintf("MainAxisSize(%d)", int(s))
	}
}

// StackChild is one child of a [Row] or [Column].
type StackChild struct {
	Element element.Element
	Key     any
	// Flex, when positive, gives the child a share of the remaining space
	// proportional to its value.
	Flex int
}

// Child wraps el as an unkeyed, inflexible stack child.
func Child(el element.Element) StackChild {
	return StackChild{Element: el}
}

// Keyed wraps el with a key.
func Keyed(key any, el element.Element) StackChild {
	return StackChild{Element: el, Key: key}
}

// Expanded wraps el so it takes a flex share of the remaining space.
func Expanded(flex int, el element.Element) StackChild {
	return StackChild{Element: el, Flex: flex}
}

// Row lays out children from left to right in a single run.
type Row struct {
	Children           []StackChild
	Spacing            float64
	MainAxisAlignment  MainAxisAlignment
	CrossAxisAlignment CrossAxisAlignment
	MainAxisSize       MainAxisSize
}

// Content places the children horizontally.
func (r Row) Content() element.Content {
	return flexContent(flexLayout{
		axis:           AxisHorizontal,
		spacing:        r.Spacing,
		alignment:      r.MainAxisAlignment,
		crossAlignment: r.CrossAxisAlignment,
		size:           r.MainAxisSize,
	}, r.Children)
}

// ViewDescription returns nil; rows do not back a view.
func (Row) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription {
	return nil
}

// Column lays out children from top to bottom in a single run.
type Column struct {
	Children           []StackChild
	Spacing            float64
	MainAxisAlignment  MainAxisAlignment
	CrossAxisAlignment CrossAxisAlignment
	MainAxisSize       MainAxisSize
}

// Content places the children vertically.
func (c Column) Content() element.Content {
	return flexContent(flexLayout{
		axis:           AxisVertical,
		spacing:        c.Spacing,
		alignment:      c.MainAxisAlignment,
		crossAlignment: c.CrossAxisAlignment,
		size:           c.MainAxisSize,
	}, c.Children)
}

// ViewDescription returns nil; columns do not back a view.
func (Column) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription {
	return nil
}

type flexTraits struct {
	flex int
}

func flexContent(l flexLayout, children []StackChild) element.Content {
	out := make([]element.Child, len(children))
	for i, c := range children {
		out[i] = element.Child{Element: c.Element, Key: c.Key, Traits: flexTraits{flex: c.Flex}}
	}
	return element.ContainerContent(l, out...)
}

// flexLayout is the layout shared by rows and columns.
type flexLayout struct {
	axis           Axis
	spacing        float64
	alignment      MainAxisAlignment
	crossAlignment CrossAxisAlignment
	size           MainAxisSize
}

type flexPlan struct {
	sizes []geometry.Size
	main  float64
	cross float64
	used  float64
}

func (l flexLayout) Measure(items []element.LayoutItem, c geometry.SizeConstraint) geometry.Size {
	p := l.plan(items, c)
	return l.makeSize(p.main, p.cross)
}

func (l flexLayout) Layout(size geometry.Size, items []element.LayoutItem) []geometry.LayoutAttributes {
	p := l.plan(items, geometry.NewSizeConstraint(size))
	mainSize, crossSize := l.mainAxis(size), l.crossAxis(size)

	spacing, cursor := l.computeSpacing(max(0, mainSize-p.used), len(items))
	spacing += l.spacing

	out := make([]geometry.LayoutAttributes, len(items))
	for i, s := range p.sizes {
		childMain, childCross := l.mainAxis(s), l.crossAxis(s)
		if l.crossAlignment == CrossAxisAlignmentStretch {
			childCross = crossSize
		}
		crossOffset := l.crossAxisOffset(crossSize - childCross)
		x, y := cursor, crossOffset
		w, h := childMain, childCross
		if l.axis == AxisVertical {
			x, y, w, h = y, x, h, w
		}
		out[i] = geometry.NewLayoutAttributes(geometry.RectFromLTWH(x, y, w, h))
		cursor += childMain + spacing
	}
	return out
}

// plan measures inflexible children first, then divides the remaining
// main-axis space between flexible children.
func (l flexLayout) plan(items []element.LayoutItem, c geometry.SizeConstraint) flexPlan {
	p := flexPlan{sizes: make([]geometry.Size, len(items))}
	mainAxis, crossAxis := l.constraintAxes(c)
	maxMain := mainAxis.Maximum()

	totalFlex := 0
	used := l.spacing * float64(max(0, len(items)-1))
	for i, item := range items {
		if flex := flexOf(item); flex > 0 && mainAxis.IsConstrained() {
			totalFlex += flex
			continue
		}
		s := item.Content.Measure(l.childConstraint(mainAxis.Sub(used), crossAxis))
		p.sizes[i] = s
		used += l.mainAxis(s)
		p.cross = max(p.cross, l.crossAxis(s))
	}

	if totalFlex > 0 {
		// Flex children are only deferred on a constrained main axis, so
		// the free space is known regardless of the stack's own sizing.
		remaining := max(0, maxMain-used)
		for i, item := range items {
			flex := flexOf(item)
			if flex <= 0 {
				continue
			}
			allocated := remaining * float64(flex) / float64(totalFlex)
			s := item.Content.Measure(l.childConstraint(geometry.AtMost(allocated), crossAxis))
			p.sizes[i] = l.makeSize(allocated, l.crossAxis(s))
			used += allocated
			p.cross = max(p.cross, l.crossAxis(s))
		}
	}

	p.used = used
	p.main = used
	if l.size == MainAxisSizeMax && mainAxis.IsConstrained() {
		p.main = maxMain
	}
	if l.crossAlignment == CrossAxisAlignmentStretch && crossAxis.IsConstrained() {
		p.cross = crossAxis.Maximum()
	}
	return p
}

func flexOf(item element.LayoutItem) int {
	if t, ok := item.Traits.(flexTraits); ok {
		return t.flex
	}
	return 0
}

func (l flexLayout) constraintAxes(c geometry.SizeConstraint) (main, cross geometry.Axis) {
	if l.axis == AxisHorizontal {
		return c.Width, c.Height
	}
	return c.Height, c.Width
}

func (l flexLayout) childConstraint(main, cross geometry.Axis) geometry.SizeConstraint {
	if l.axis == AxisHorizontal {
		return geometry.SizeConstraint{Width: main, Height: cross}
	}
	return geometry.SizeConstraint{Width: cross, Height: main}
}

func (l flexLayout) mainAxis(s geometry.Size) float64 {
	if l.axis == AxisHorizontal {
		return s.Width
	}
	return s.Height
}

func (l flexLayout) crossAxis(s geometry.Size) float64 {
	if l.axis == AxisHorizontal {
		return s.Height
	}
	return s.Width
}

func (l flexLayout) makeSize(main, cross float64) geometry.Size {
	if l.axis == AxisHorizontal {
		return geometry.Size{Width: main, Height: cross}
	}
	return geometry.Size{Width: cross, Height: main}
}

func (l flexLayout) crossAxisOffset(freeSpace float64) float64 {
	if freeSpace <= 0 {
		return 0
	}
	switch l.crossAlignment {
	case CrossAxisAlignmentEnd:
		return freeSpace
	case CrossAxisAlignmentCenter:
		return freeSpace * 0.5
	default:
		return 0
	}
}

func (l flexLayout) computeSpacing(freeSpace float64, n int) (spacing, offset float64) {
	switch l.alignment {
	case MainAxisAlignmentEnd:
		offset = freeSpace
	case MainAxisAlignmentCenter:
		offset = freeSpace * 0.5
	case MainAxisAlignmentSpaceBetween:
		if n > 1 {
			spacing = freeSpace / float64(n-1)
		}
	case MainAxisAlignmentSpaceAround:
		if n > 0 {
			spacing = freeSpace / float64(n)
			offset = spacing * 0.5
		}
	case MainAxisAlignmentSpaceEvenly:
		if n > 0 {
			spacing = freeSpace / float64(n+1)
			offset = spacing
		}
	}
	return
}
