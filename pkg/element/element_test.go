package element_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/blueprint/pkg/animation"
	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/errors"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/platform"
	"github.com/go-drift/blueprint/pkg/platform/headless"
)

type leaf struct{ size geometry.Size }

func (l leaf) Content() element.Content { return element.LeafContent(l.size) }

func (leaf) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription { return nil }

type wrapper struct{ child element.Element }

func (w *wrapper) Content() element.Content { return element.SingleChildContent(w.child) }

func (*wrapper) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription { return nil }

var nameKey = environment.NewKey("name", "default")

func expectFatal(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if _, ok := recover().(*errors.InvariantError); !ok {
			t.Fatal("expected invariant violation")
		}
	}()
	fn()
}

func TestTypeOf(t *testing.T) {
	a := element.TypeOf(leaf{})
	b := element.TypeOf(leaf{size: geometry.Size{Width: 1}})
	if a != b {
		t.Error("values of one type must share a type identifier")
	}
	if element.TypeOf(&wrapper{}) == a {
		t.Error("distinct types must not share a type identifier")
	}
	if got := element.TypeName(element.TypeOf(&wrapper{})); got != "wrapper" {
		t.Errorf("TypeName = %q", got)
	}
}

func TestContentForms(t *testing.T) {
	env := environment.Empty()
	c := element.LeafContent(geometry.Size{Width: 3, Height: 4})
	if c.Kind() != element.KindLeaf {
		t.Fatalf("Kind = %v", c.Kind())
	}
	if got := c.Measure(geometry.UnconstrainedSize, env); got != (geometry.Size{Width: 3, Height: 4}) {
		t.Errorf("Measure = %v", got)
	}

	container := element.ContainerContent(nil, element.Child{Element: leaf{}}, element.Child{}, element.Child{Element: leaf{}, Key: "k"})
	if container.ChildCount() != 2 {
		t.Errorf("nil children must be dropped, got %d", container.ChildCount())
	}
	if _, ok := container.Layout().(element.PassthroughLayout); !ok {
		t.Errorf("nil layout should default to passthrough, got %T", container.Layout())
	}

	built := element.EnvironmentContent(func(env environment.Environment) element.Element {
		return leaf{size: geometry.Size{Width: float64(len(environment.Get(env, nameKey)))}}
	})
	children := built.Children(environment.Set(env, nameKey, "abcd"))
	if len(children) != 1 || children[0].Element.(leaf).size.Width != 4 {
		t.Errorf("environment content children = %+v", children)
	}

	if element.SingleChildContent(nil).Kind() != element.KindEmpty {
		t.Error("single child content with nil child should be empty")
	}
}

func TestPassthroughLayout(t *testing.T) {
	items := []element.LayoutItem{
		{Content: element.MeasurableFunc(func(geometry.SizeConstraint) geometry.Size { return geometry.Size{Width: 10, Height: 2} })},
		{Content: element.MeasurableFunc(func(geometry.SizeConstraint) geometry.Size { return geometry.Size{Width: 4, Height: 8} })},
	}
	var l element.PassthroughLayout
	if got := l.Measure(items, geometry.UnconstrainedSize); got != (geometry.Size{Width: 10, Height: 8}) {
		t.Errorf("Measure = %v", got)
	}
	attrs := l.Layout(geometry.Size{Width: 20, Height: 30}, items)
	want := geometry.RectFromLTWH(0, 0, 20, 30)
	for i, a := range attrs {
		if a.Frame() != want {
			t.Errorf("item %d frame = %v, want %v", i, a.Frame(), want)
		}
	}
}

func TestLayoutTransitionResolve(t *testing.T) {
	parent := animation.Default().WithDuration(time.Second)
	fallback := animation.Default().WithDuration(2 * time.Second)
	own := animation.Default().WithDuration(3 * time.Second)

	tests := []struct {
		name      string
		t         element.LayoutTransition
		inherited *animation.Animation
		want      *time.Duration
	}{
		{"inherited passes through", element.InheritedLayoutTransition(), &parent, ptr(time.Second)},
		{"inherited of nothing", element.LayoutTransition{}, nil, nil},
		{"none blocks", element.NoLayoutTransition(), &parent, nil},
		{"fallback defers to ancestor", element.InheritedWithFallback(fallback), &parent, ptr(time.Second)},
		{"fallback supplies", element.InheritedWithFallback(fallback), nil, ptr(2 * time.Second)},
		{"specific overrides", element.SpecificLayoutTransition(own), &parent, ptr(3 * time.Second)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.t.Resolve(tt.inherited)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("Resolve = %v, want none", got)
			case tt.want != nil && got == nil:
				t.Errorf("Resolve = none, want %v", *tt.want)
			case tt.want != nil && got.Duration != *tt.want:
				t.Errorf("Resolve duration = %v, want %v", got.Duration, *tt.want)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestViewDescriptionApply(t *testing.T) {
	p := headless.NewPlatform()
	configured := 0
	d := element.NewViewDescription("test.box",
		element.WithProperty("color", "red"),
		element.WithProperty("radius", 4.0),
		element.Configure(func(v *headless.View) { configured++ }),
	)

	view, err := d.Build(p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d.Apply(view)

	got := view.(*headless.View).Properties()
	want := map[string]any{"color": "red", "radius": 4.0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("properties mismatch (-want +got):\n%s", diff)
	}
	if configured != 1 {
		t.Errorf("configure ran %d times", configured)
	}
	if !d.FrameRounding() {
		t.Error("frame rounding should default to on")
	}
}

func TestCanReuseComparesViewTypeOnly(t *testing.T) {
	a := element.NewViewDescription("test.box", element.WithProperty("color", "red"))
	b := element.NewViewDescription("test.box", element.WithProperty("color", "blue"), element.OnAppear(func() {}))
	c := element.NewViewDescription("test.label")

	if !a.CanReuse(b) {
		t.Error("same view type must be reusable regardless of bindings")
	}
	if a.CanReuse(c) {
		t.Error("different view types must not be reusable")
	}
}

func TestApplyToWrongViewTypeIsFatal(t *testing.T) {
	p := headless.NewPlatform()
	view := p.NewView("test.label")
	d := element.NewViewDescription("test.box")
	expectFatal(t, func() { d.Apply(view) })
}

type otherView struct{ platform.View }

func TestConfigureWrongGoTypeIsFatal(t *testing.T) {
	p := headless.NewPlatform()
	d := element.NewViewDescription("test.box", element.Configure(func(*otherView) {}))
	view := p.NewView("test.box")
	expectFatal(t, func() { d.Apply(view) })
}

func TestBuilderReturningWrongTypeIsFatal(t *testing.T) {
	p := headless.NewPlatform()
	d := element.NewViewDescription("test.box", element.WithBuilder(func(platform.Platform) (platform.View, error) {
		return p.NewView("test.label"), nil
	}))
	expectFatal(t, func() { _, _ = d.Build(p) })
}

func TestBuildReportsPlatformErrors(t *testing.T) {
	p := headless.NewPlatform(headless.WithStrictViewTypes())
	_, err := element.NewViewDescription("test.missing").Build(p)
	var be *errors.BlueprintError
	if !errorsAs(err, &be) || be.Kind != errors.KindPlatform {
		t.Fatalf("Build error = %v, want platform error", err)
	}
}

func TestVisibilityTransitionHidden(t *testing.T) {
	attrs := geometry.NewLayoutAttributes(geometry.RectFromLTWH(0, 0, 10, 10))
	attrs.Alpha = 0.5

	hidden := element.Fade().Hidden(attrs)
	if hidden.Alpha != 0 || hidden.Frame() != attrs.Frame() {
		t.Errorf("fade hidden = %+v", hidden)
	}

	scaled := element.ScaleDown().Hidden(attrs)
	if scaled.Transform.IsIdentity() {
		t.Error("scale down should transform the hidden state")
	}

	partial := element.VisibilityTransition{Alpha: 0.5}.Hidden(attrs)
	if partial.Alpha != 0.25 {
		t.Errorf("partial alpha = %v, want 0.25", partial.Alpha)
	}
}
