package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/errors"
	"github.com/go-drift/blueprint/pkg/geometry"
)

type leaf struct {
	size  geometry.Size
	calls *int
}

func (l leaf) Content() element.Content {
	return element.MeasureContent(func(geometry.SizeConstraint, environment.Environment) geometry.Size {
		if l.calls != nil {
			*l.calls++
		}
		return l.size
	})
}

func (leaf) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription { return nil }

// trial measures each child unconstrained and then under the offered
// constraint, like a stack resolving overflow.
type trial struct{ children []element.Child }

func (p trial) Content() element.Content { return element.ContainerContent(trialLayout{}, p.children...) }

func (trial) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription { return nil }

type trialLayout struct{}

func (trialLayout) Measure(items []element.LayoutItem, c geometry.SizeConstraint) geometry.Size {
	var size geometry.Size
	for _, item := range items {
		item.Content.Measure(geometry.UnconstrainedSize)
		size = item.Content.Measure(c)
	}
	return size
}

func (trialLayout) Layout(size geometry.Size, items []element.LayoutItem) []geometry.LayoutAttributes {
	out := make([]geometry.LayoutAttributes, len(items))
	for i := range items {
		out[i] = geometry.AttributesWithSize(size)
	}
	return out
}

// row places children left to right at their measured widths.
type row struct{ children []element.Child }

func (r row) Content() element.Content { return element.ContainerContent(rowLayout{}, r.children...) }

func (row) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription { return nil }

type rowLayout struct{}

func (rowLayout) Measure(items []element.LayoutItem, c geometry.SizeConstraint) geometry.Size {
	var size geometry.Size
	for _, item := range items {
		s := item.Content.Measure(geometry.UnconstrainedSize)
		size.Width += s.Width
		size.Height = max(size.Height, s.Height)
	}
	return size
}

func (rowLayout) Layout(size geometry.Size, items []element.LayoutItem) []geometry.LayoutAttributes {
	out := make([]geometry.LayoutAttributes, len(items))
	x := 0.0
	for i, item := range items {
		s := item.Content.Measure(geometry.UnconstrainedSize)
		out[i] = geometry.NewLayoutAttributes(geometry.RectFromLTWH(x, 0, s.Width, size.Height))
		x += s.Width
	}
	return out
}

type broken struct{}

func (broken) Content() element.Content {
	return element.ContainerContent(brokenLayout{}, element.Child{Element: leaf{}}, element.Child{Element: leaf{}})
}

func (broken) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription { return nil }

type brokenLayout struct{ rowLayout }

func (brokenLayout) Layout(geometry.Size, []element.LayoutItem) []geometry.LayoutAttributes {
	return []geometry.LayoutAttributes{{}}
}

var labelKey = environment.NewKey("label", "")

type envLeaf struct{ builds *int }

func (e envLeaf) Content() element.Content {
	return element.EnvironmentContent(func(env environment.Environment) element.Element {
		*e.builds++
		return leaf{size: geometry.Size{Width: float64(len(environment.Get(env, labelKey))), Height: 1}}
	})
}

func (envLeaf) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription { return nil }

func nest(depth int, inner element.Element) element.Element {
	el := inner
	for range depth {
		el = trial{children: []element.Child{{Element: el}}}
	}
	return el
}

func TestMeasureLeaf(t *testing.T) {
	e := NewEngine()
	got := e.Measure(leaf{size: geometry.Size{Width: 4, Height: 2}}, geometry.UnconstrainedSize, environment.Empty())
	if got != (geometry.Size{Width: 4, Height: 2}) {
		t.Errorf("Measure = %v", got)
	}
}

func TestMeasureIsMemoizedWithinPass(t *testing.T) {
	const depth = 12
	calls := 0
	e := NewEngine()
	c := geometry.NewSizeConstraint(geometry.Size{Width: 100, Height: 100})

	size := e.Measure(nest(depth, leaf{size: geometry.Size{Width: 5, Height: 5}, calls: &calls}), c, environment.Empty())
	if size != (geometry.Size{Width: 5, Height: 5}) {
		t.Errorf("Measure = %v", size)
	}
	// Two distinct constraints reach every node: unconstrained and c.
	if calls != 2 {
		t.Errorf("leaf measured %d times, want 2", calls)
	}
	stats := e.LastPass()
	if stats.Nodes != depth+1 {
		t.Errorf("Nodes = %d, want %d", stats.Nodes, depth+1)
	}
	// The root only sees c.
	if stats.MeasureCalls != 2*depth+1 {
		t.Errorf("MeasureCalls = %d, want %d", stats.MeasureCalls, 2*depth+1)
	}
	if stats.CacheHits == 0 {
		t.Error("expected cache hits")
	}
}

func TestCacheDoesNotSurvivePasses(t *testing.T) {
	calls := 0
	e := NewEngine()
	el := leaf{size: geometry.Size{Width: 1, Height: 1}, calls: &calls}
	e.Measure(el, geometry.UnconstrainedSize, environment.Empty())
	e.Measure(el, geometry.UnconstrainedSize, environment.Empty())
	if calls != 2 {
		t.Errorf("leaf measured %d times across two passes, want 2", calls)
	}
	if e.Stats().MeasureCalls != 2 {
		t.Errorf("accumulated MeasureCalls = %d", e.Stats().MeasureCalls)
	}
	e.ResetStats()
	if e.Stats() != (Stats{}) {
		t.Errorf("ResetStats left %+v", e.Stats())
	}
}

func TestLayoutBuildsResultTree(t *testing.T) {
	env := environment.Set(environment.Empty(), labelKey, "root")
	el := row{children: []element.Child{
		{Element: leaf{size: geometry.Size{Width: 10, Height: 5}}, Key: "a"},
		{Element: leaf{size: geometry.Size{Width: 20, Height: 5}}, Adapt: func(env environment.Environment) environment.Environment {
			return environment.Set(env, labelKey, "adapted")
		}},
		{Element: row{children: []element.Child{{Element: leaf{size: geometry.Size{Width: 3, Height: 3}}}}}},
	}}

	tree := NewEngine().Layout(el, geometry.RectFromLTWH(0, 0, 33, 5), env)
	if tree.Len() != 5 {
		t.Fatalf("Len = %d, want 5", tree.Len())
	}
	root := tree.Root()
	children := tree.Children(root)
	if len(children) != 3 {
		t.Fatalf("root has %d children", len(children))
	}

	var frames []geometry.Rect
	for _, c := range children {
		frames = append(frames, tree.Node(c).Attributes.Frame())
	}
	want := []geometry.Rect{
		geometry.RectFromLTWH(0, 0, 10, 5),
		geometry.RectFromLTWH(10, 0, 20, 5),
		geometry.RectFromLTWH(30, 0, 3, 5),
	}
	if diff := cmp.Diff(want, frames); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
	if tree.Node(children[0]).Key != "a" {
		t.Errorf("key = %v", tree.Node(children[0]).Key)
	}
	if got := environment.Get(tree.Node(children[1]).Environment, labelKey); got != "adapted" {
		t.Errorf("adapted environment = %q", got)
	}
	if got := environment.Get(tree.Node(children[0]).Environment, labelKey); got != "root" {
		t.Errorf("sibling environment = %q", got)
	}
	if n := len(tree.Children(children[2])); n != 1 {
		t.Errorf("nested row has %d children", n)
	}

	var depths []int
	tree.Walk(func(_, depth int) { depths = append(depths, depth) })
	if diff := cmp.Diff([]int{0, 1, 1, 1, 2}, depths); diff != "" {
		t.Errorf("walk depths (-want +got):\n%s", diff)
	}
}

func TestEnvironmentContentBuildsOncePerPass(t *testing.T) {
	builds := 0
	env := environment.Set(environment.Empty(), labelKey, "hello")
	el := trial{children: []element.Child{{Element: envLeaf{builds: &builds}}}}

	tree := NewEngine().Layout(el, geometry.RectFromLTWH(0, 0, 5, 1), env)
	if builds != 1 {
		t.Errorf("built %d times, want 1", builds)
	}
	if tree.Len() != 3 {
		t.Errorf("Len = %d, want 3", tree.Len())
	}
}

func TestLayoutIntoReusesTree(t *testing.T) {
	e := NewEngine()
	tree := &ResultTree{}
	e.LayoutInto(tree, row{children: []element.Child{{Element: leaf{}}, {Element: leaf{}}}}, geometry.Rect{}, environment.Empty())
	e.LayoutInto(tree, leaf{}, geometry.RectFromLTWH(0, 0, 1, 1), environment.Empty())
	if tree.Len() != 1 || len(tree.Children(0)) != 0 {
		t.Errorf("reset tree has %d nodes, %d children", tree.Len(), len(tree.Children(0)))
	}
	if got := tree.Node(0).Attributes.Frame(); got != geometry.RectFromLTWH(0, 0, 1, 1) {
		t.Errorf("root frame = %v", got)
	}
}

func TestWrongAttributeCountIsFatal(t *testing.T) {
	defer func() {
		if _, ok := recover().(*errors.InvariantError); !ok {
			t.Fatal("expected invariant violation")
		}
	}()
	NewEngine().Layout(broken{}, geometry.RectFromLTWH(0, 0, 10, 10), environment.Empty())
}

// reader is a fixed-size leaf declaring the environment keys it reads.
type reader struct{ keys []environment.AnyKey }

func (r reader) Content() element.Content {
	return element.LeafContent(geometry.Size{Width: 1, Height: 1}).ReadingEnvironment(r.keys...)
}

func (reader) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription { return nil }

func TestDependencies(t *testing.T) {
	widthKey := environment.NewKey("test.width", 0.0)
	children := func(els ...element.Element) []element.Child {
		out := make([]element.Child, len(els))
		for i, el := range els {
			out[i] = element.Child{Element: el}
		}
		return out
	}

	tests := []struct {
		name     string
		el       element.Element
		wantKeys []environment.AnyKey
		wantAll  bool
	}{
		{"fixed leaf", reader{}, nil, false},
		{"declared keys", row{children: children(
			reader{keys: []environment.AnyKey{labelKey}},
			reader{keys: []environment.AnyKey{labelKey, widthKey}},
		)}, []environment.AnyKey{labelKey, widthKey}, false},
		{"measure func", row{children: children(reader{}, leaf{})}, nil, true},
		{"environment builder", envLeaf{builds: new(int)}, nil, true},
		{"adapted child", row{children: []element.Child{{
			Element: reader{},
			Adapt:   func(env environment.Environment) environment.Environment { return env },
		}}}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			e.Measure(tt.el, geometry.UnconstrainedSize, environment.Empty())
			deps := e.LastDependencies()
			if deps.All != tt.wantAll {
				t.Errorf("All = %v, want %v", deps.All, tt.wantAll)
			}
			if tt.wantAll {
				return
			}
			if len(deps.Keys) != len(tt.wantKeys) {
				t.Fatalf("got %d keys, want %d", len(deps.Keys), len(tt.wantKeys))
			}
			for i, k := range tt.wantKeys {
				if deps.Keys[i] != k {
					t.Errorf("key %d = %s, want %s", i, deps.Keys[i].Name(), k.Name())
				}
			}
		})
	}
}

func TestDependenciesUnaffected(t *testing.T) {
	widthKey := environment.NewKey("test.width", 0.0)
	prev := environment.Set(environment.Empty(), labelKey, "a")
	next := environment.Set(prev, widthKey, 2.0)

	declared := Dependencies{Keys: []environment.AnyKey{labelKey}}
	if !declared.Unaffected(prev, next) {
		t.Error("change to an unread key should not affect the pass")
	}
	if declared.Unaffected(prev, environment.Set(prev, labelKey, "b")) {
		t.Error("change to a read key should affect the pass")
	}
	if (Dependencies{All: true}).Unaffected(prev, next) {
		t.Error("opaque reads should be affected by any change")
	}

	var merged Dependencies
	merged.Merge(declared)
	merged.Merge(Dependencies{Keys: []environment.AnyKey{labelKey, widthKey}})
	if len(merged.Keys) != 2 || merged.All {
		t.Errorf("merged = %d keys, all = %v", len(merged.Keys), merged.All)
	}
}
