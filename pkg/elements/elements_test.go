package elements

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/layout"
	"github.com/go-drift/blueprint/pkg/resolve"
)

func childFrames(t *testing.T, el element.Element, size geometry.Size) []geometry.Rect {
	t.Helper()
	tree := layout.NewEngine().Layout(el, geometry.RectFromOriginSize(geometry.Point{}, size), environment.Empty())
	var frames []geometry.Rect
	for _, i := range tree.Children(tree.Root()) {
		frames = append(frames, tree.Node(i).Attributes.Frame())
	}
	return frames
}

func rect(l, t, w, h float64) geometry.Rect {
	return geometry.RectFromLTWH(l, t, w, h)
}

func TestRowMeasure(t *testing.T) {
	row := Row{
		Spacing: 10,
		Children: []StackChild{
			Child(Spacer{Width: 20, Height: 10}),
			Child(Spacer{Width: 30, Height: 20}),
		},
	}
	got := layout.NewEngine().Measure(row, geometry.UnconstrainedSize, environment.Empty())
	if want := (geometry.Size{Width: 60, Height: 20}); got != want {
		t.Fatalf("Measure() = %v, want %v", got, want)
	}
}

func TestRowAlignment(t *testing.T) {
	children := []StackChild{
		Child(Spacer{Width: 20, Height: 10}),
		Child(Spacer{Width: 30, Height: 20}),
	}
	tests := []struct {
		name  string
		main  MainAxisAlignment
		cross CrossAxisAlignment
		want  []geometry.Rect
	}{
		{"start", MainAxisAlignmentStart, CrossAxisAlignmentStart, []geometry.Rect{rect(0, 0, 20, 10), rect(20, 0, 30, 20)}},
		{"end", MainAxisAlignmentEnd, CrossAxisAlignmentEnd, []geometry.Rect{rect(50, 30, 20, 10), rect(70, 20, 30, 20)}},
		{"center", MainAxisAlignmentCenter, CrossAxisAlignmentCenter, []geometry.Rect{rect(25, 15, 20, 10), rect(45, 10, 30, 20)}},
		{"space between", MainAxisAlignmentSpaceBetween, CrossAxisAlignmentStart, []geometry.Rect{rect(0, 0, 20, 10), rect(70, 0, 30, 20)}},
		{"space around", MainAxisAlignmentSpaceAround, CrossAxisAlignmentStretch, []geometry.Rect{rect(12.5, 0, 20, 40), rect(57.5, 0, 30, 40)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{Children: children, MainAxisAlignment: tt.main, CrossAxisAlignment: tt.cross}
			got := childFrames(t, row, geometry.Size{Width: 100, Height: 40})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("frames mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRowFlexDividesRemainingSpace(t *testing.T) {
	row := Row{
		MainAxisSize: MainAxisSizeMax,
		Children: []StackChild{
			Child(Spacer{Width: 20, Height: 5}),
			Expanded(1, Spacer{Height: 5}),
			Expanded(3, Spacer{Height: 5}),
		},
	}
	got := childFrames(t, row, geometry.Size{Width: 100, Height: 5})
	want := []geometry.Rect{rect(0, 0, 20, 5), rect(20, 0, 20, 5), rect(40, 0, 60, 5)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
}

func TestMinSizedRowGivesFlexChildrenFreeSpace(t *testing.T) {
	row := Row{
		MainAxisSize: MainAxisSizeMin,
		Children: []StackChild{
			Child(Spacer{Width: 20, Height: 5}),
			Expanded(1, Spacer{Height: 5}),
		},
	}
	got := childFrames(t, row, geometry.Size{Width: 100, Height: 5})
	want := []geometry.Rect{rect(0, 0, 20, 5), rect(20, 0, 80, 5)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}

	size := layout.NewEngine().Measure(row, geometry.SizeConstraint{Width: geometry.AtMost(100), Height: geometry.Unconstrained}, environment.Empty())
	if want := (geometry.Size{Width: 100, Height: 5}); size != want {
		t.Fatalf("Measure() = %v, want %v", size, want)
	}
}

func TestFlexChildrenInUnconstrainedStackUseIntrinsicSize(t *testing.T) {
	col := Column{
		MainAxisSize: MainAxisSizeMax,
		Children: []StackChild{
			Expanded(1, Spacer{Width: 5, Height: 12}),
		},
	}
	got := layout.NewEngine().Measure(col, geometry.UnconstrainedSize, environment.Empty())
	if want := (geometry.Size{Width: 5, Height: 12}); got != want {
		t.Fatalf("Measure() = %v, want %v", got, want)
	}
}

func TestColumnStretch(t *testing.T) {
	col := Column{
		Spacing:            4,
		CrossAxisAlignment: CrossAxisAlignmentStretch,
		Children: []StackChild{
			Child(Spacer{Width: 10, Height: 10}),
			Child(Spacer{Width: 20, Height: 6}),
		},
	}
	got := childFrames(t, col, geometry.Size{Width: 50, Height: 50})
	want := []geometry.Rect{rect(0, 0, 50, 10), rect(0, 14, 50, 6)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
}

func TestInset(t *testing.T) {
	in := Inset{
		Wrapped: Spacer{Width: 10, Height: 10},
		Insets:  geometry.Insets{Top: 1, Left: 2, Bottom: 3, Right: 4},
	}
	size := layout.NewEngine().Measure(in, geometry.UnconstrainedSize, environment.Empty())
	if want := (geometry.Size{Width: 16, Height: 14}); size != want {
		t.Fatalf("Measure() = %v, want %v", size, want)
	}
	got := childFrames(t, in, geometry.Size{Width: 30, Height: 30})
	if diff := cmp.Diff([]geometry.Rect{rect(2, 1, 24, 26)}, got); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelMeasure(t *testing.T) {
	tests := []struct {
		name       string
		label      Label
		constraint geometry.SizeConstraint
		want       geometry.Size
	}{
		{"empty", Label{}, geometry.UnconstrainedSize, geometry.Size{}},
		{"single line", Label{Text: "hello"}, geometry.UnconstrainedSize, geometry.Size{Width: 40, Height: 16}},
		{"newlines", Label{Text: "ab\nabcd"}, geometry.UnconstrainedSize, geometry.Size{Width: 32, Height: 32}},
		{"wide runes", Label{Text: "日本"}, geometry.UnconstrainedSize, geometry.Size{Width: 32, Height: 16}},
		{"wrap", Label{Text: "abcdefgh", Wrap: true}, geometry.NewSizeConstraint(geometry.Size{Width: 32, Height: 100}), geometry.Size{Width: 32, Height: 32}},
		{"wrap unconstrained", Label{Text: "abcdefgh", Wrap: true}, geometry.UnconstrainedSize, geometry.Size{Width: 64, Height: 16}},
		{"max lines", Label{Text: "a\nb\nc", MaxLines: 2}, geometry.UnconstrainedSize, geometry.Size{Width: 8, Height: 32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := layout.NewEngine().Measure(tt.label, tt.constraint, environment.Empty())
			if got != tt.want {
				t.Errorf("Measure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLabelReadsCellMetricsFromEnvironment(t *testing.T) {
	el := Set(CellWidth, 10.0, Set(LineHeight, 20.0, Label{Text: "abc"}))
	got := layout.NewEngine().Measure(el, geometry.UnconstrainedSize, environment.Empty())
	if want := (geometry.Size{Width: 30, Height: 20}); got != want {
		t.Fatalf("Measure() = %v, want %v", got, want)
	}
}

func TestDecorationsFoldIntoViews(t *testing.T) {
	el := Opacity{
		Alpha: 0.5,
		Wrapped: Hidden{
			IsHidden: true,
			Wrapped: Transformed{
				Transform: geometry.ScaleTransform(2, 2),
				Wrapped:   Box{Size: geometry.Size{Width: 10, Height: 10}},
			},
		},
	}
	tree := layout.NewEngine().Layout(el, rect(0, 0, 10, 10), environment.Empty())
	nodes := resolve.Resolve(tree)
	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}
	attrs := nodes[0].Node.Attributes
	if attrs.Alpha != 0.5 || !attrs.Hidden {
		t.Errorf("alpha/hidden = %v/%v, want 0.5/true", attrs.Alpha, attrs.Hidden)
	}
	if !attrs.Transform.Equal(geometry.ScaleTransform(2, 2)) {
		t.Errorf("transform = %v, want scale 2", attrs.Transform)
	}
	if got := nodes[0].Node.Description.ViewType(); got != BoxViewType {
		t.Errorf("view type = %q, want %q", got, BoxViewType)
	}
}

func TestEnvironmentReader(t *testing.T) {
	el := Set(CellWidth, 4.0, EnvironmentReader{
		Build: func(env environment.Environment) element.Element {
			w := environment.Get(env, CellWidth)
			return Spacer{Width: w * 3, Height: 1}
		},
	})
	got := layout.NewEngine().Measure(el, geometry.UnconstrainedSize, environment.Empty())
	if want := (geometry.Size{Width: 12, Height: 1}); got != want {
		t.Fatalf("Measure() = %v, want %v", got, want)
	}
}

func TestOverlayKeysChildren(t *testing.T) {
	el := Box{Wrapped: Overlay{Children: []StackChild{
		Keyed("a", Box{Size: geometry.Size{Width: 5, Height: 5}}),
		Keyed("b", Box{Size: geometry.Size{Width: 8, Height: 3}}),
	}}}
	tree := layout.NewEngine().Layout(el, rect(0, 0, 8, 5), environment.Empty())
	nodes := resolve.Resolve(tree)
	if len(nodes) != 1 || len(nodes[0].Node.Children) != 2 {
		t.Fatalf("unexpected tree shape: %d roots", len(nodes))
	}
	var keys []string
	for _, c := range nodes[0].Node.Children {
		keys = append(keys, c.Path.String())
	}
	want := []string{"Overlay/Box[a]", "Overlay/Box[b]"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestBoxDescription(t *testing.T) {
	appeared := false
	b := Box{BackgroundColor: "red", CornerRadius: 4, OnAppear: func() { appeared = true }}
	d := b.ViewDescription(element.ViewDescriptionContext{})
	want := []element.Property{
		{Name: "backgroundColor", Value: "red"},
		{Name: "cornerRadius", Value: 4.0},
	}
	if diff := cmp.Diff(want, d.Properties()); diff != "" {
		t.Errorf("properties mismatch (-want +got):\n%s", diff)
	}
	d.OnAppearCallback()()
	if !appeared {
		t.Error("OnAppear not carried by description")
	}
}
