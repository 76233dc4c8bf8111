package elements

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// LabelViewType is the view type backing [Label].
const LabelViewType = "blueprint.label"

// CellWidth is the width of one text cell in points. Wide runes occupy two
// cells.
var CellWidth = environment.NewKey("blueprint.cellWidth", 8.0)

// LineHeight is the height of one line of text in points.
var LineHeight = environment.NewKey("blueprint.lineHeight", 16.0)

// Label displays text.
//
// Without Wrap the text occupies one line per newline-separated segment.
// With Wrap, lines are broken at the constrained width. MaxLines limits the
// number of lines; zero means no limit.
type Label struct {
	Text     string
	Color    string
	Wrap     bool
	MaxLines int
}

// Content measures the text in cells.
func (l Label) Content() element.Content {
	return element.MeasureContent(func(c geometry.SizeConstraint, env environment.Environment) geometry.Size {
		return l.measure(c, env)
	}).ReadingEnvironment(CellWidth, LineHeight)
}

// ViewDescription describes a label view.
func (l Label) ViewDescription(ctx element.ViewDescriptionContext) *element.ViewDescription {
	lines := l.lines(ctx.Bounds.Width(), ctx.Environment)
	return element.NewViewDescription(LabelViewType,
		element.WithProperty("text", l.Text),
		element.WithProperty("textColor", l.Color),
		element.WithProperty("lines", len(lines)),
	)
}

func (l Label) measure(c geometry.SizeConstraint, env environment.Environment) geometry.Size {
	cell := environment.Get(env, CellWidth)
	lines := l.lines(c.Width.Maximum(), env)
	width := 0
	for _, line := range lines {
		width = max(width, runewidth.StringWidth(line))
	}
	return geometry.Size{
		Width:  float64(width) * cell,
		Height: float64(len(lines)) * environment.Get(env, LineHeight),
	}
}

// lines breaks the text for a maximum width in points.
func (l Label) lines(maxWidth float64, env environment.Environment) []string {
	if l.Text == "" {
		return nil
	}
	text := l.Text
	if l.Wrap && !math.IsInf(maxWidth, 1) {
		cols := max(1, int(maxWidth/environment.Get(env, CellWidth)))
		text = runewidth.Wrap(text, cols)
	}
	lines := strings.Split(text, "\n")
	if l.MaxLines > 0 && len(lines) > l.MaxLines {
		lines = lines[:l.MaxLines]
	}
	return lines
}
