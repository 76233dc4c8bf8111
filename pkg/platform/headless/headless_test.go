package headless

import (
	"strings"
	"testing"
	"time"

	"github.com/go-drift/blueprint/pkg/animation"
	"github.com/go-drift/blueprint/pkg/errors"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/platform"
)

type switchView struct {
	View
	toggles int
}

type switchFactory struct {
	p *Platform
}

func (f switchFactory) ViewType() string { return "test.switch" }

func (f switchFactory) Create(id int64) (platform.View, error) {
	v := &switchView{}
	f.p.InitView(&v.View, v, f.ViewType(), id)
	return v, nil
}

func TestCreateViewUsesFactory(t *testing.T) {
	p := NewPlatform()
	p.RegisterFactory(switchFactory{p: p})

	view, err := p.CreateView("test.switch")
	if err != nil {
		t.Fatalf("CreateView: %v", err)
	}
	sw, ok := view.(*switchView)
	if !ok {
		t.Fatalf("CreateView returned %T, want *switchView", view)
	}

	root := p.NewView("root")
	root.InsertSubview(sw, 0)
	if got := root.Subviews()[0]; got != platform.View(sw) {
		t.Errorf("Subviews()[0] = %T, want the embedding view", got)
	}
	if got := sw.Superview(); got != platform.View(root) {
		t.Errorf("Superview() = %v, want root", got)
	}
	if p.Created() != 1 || p.CountOps(OpCreate) != 1 {
		t.Errorf("Created = %d, create ops = %d", p.Created(), p.CountOps(OpCreate))
	}
}

func TestCreateViewStrict(t *testing.T) {
	p := NewPlatform(WithStrictViewTypes())
	_, err := p.CreateView("missing")
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("CreateView error = %v, want view type not found", err)
	}
}

func TestInsertMovesBetweenSuperviews(t *testing.T) {
	p := NewPlatform()
	a, b, child := p.NewView("a"), p.NewView("b"), p.NewView("child")

	a.InsertSubview(child, 0)
	b.InsertSubview(child, 5)

	if len(a.Subviews()) != 0 {
		t.Errorf("a still has %d subviews", len(a.Subviews()))
	}
	if len(b.Subviews()) != 1 {
		t.Fatalf("b has %d subviews, want 1", len(b.Subviews()))
	}
	ops := p.OpsOfKind(OpInsert)
	if len(ops) != 2 || ops[1].Index != 0 || ops[1].ParentID != b.ViewID() {
		t.Errorf("insert ops = %v", ops)
	}
}

func TestInsertForeignViewIsFatal(t *testing.T) {
	errors.SetHandler(&errors.LogHandler{})
	defer errors.SetHandler(nil)

	p1, p2 := NewPlatform(), NewPlatform()
	defer func() {
		if _, ok := recover().(*errors.InvariantError); !ok {
			t.Fatal("expected invariant panic")
		}
	}()
	p1.NewView("a").InsertSubview(p2.NewView("b"), 0)
}

func TestSetPropertySkipsUnchangedValues(t *testing.T) {
	p := NewPlatform()
	v := p.NewView("label")
	v.SetProperty("text", "hi")
	v.SetProperty("text", "hi")
	v.SetProperty("text", "bye")
	v.SetProperty("fn", func() {})
	v.SetProperty("fn", func() {})

	if got := p.CountOps(OpSetProperty); got != 4 {
		t.Errorf("set ops = %d, want 4", got)
	}
	if value, _ := v.Property("text"); value != "bye" {
		t.Errorf("text = %v", value)
	}
}

func TestApplyRecordsAnimation(t *testing.T) {
	p := NewPlatform()
	v := p.NewView("box")
	frame := geometry.RectFromLTWH(0, 0, 10, 10)

	v.ApplyLayoutAttributes(geometry.NewLayoutAttributes(frame))
	anim := animation.Default()
	p.Animate(anim, func() {
		v.ApplyLayoutAttributes(geometry.NewLayoutAttributes(frame.Translate(5, 0)))
		p.PerformWithoutAnimation(func() {
			v.ApplyLayoutAttributes(geometry.NewLayoutAttributes(frame.Translate(6, 0)))
		})
	}, nil)
	v.ApplyLayoutAttributes(geometry.NewLayoutAttributes(frame.Translate(6, 0)))

	ops := p.OpsOfKind(OpApply)
	if len(ops) != 3 {
		t.Fatalf("apply ops = %d, want 3", len(ops))
	}
	if ops[0].Animated || !ops[1].Animated || ops[2].Animated {
		t.Errorf("animated flags = %t %t %t", ops[0].Animated, ops[1].Animated, ops[2].Animated)
	}
	if ops[1].Animation.Duration != anim.Duration {
		t.Errorf("recorded duration = %v", ops[1].Animation.Duration)
	}
}

func TestAdvanceDeliversCompletions(t *testing.T) {
	p := NewPlatform()
	var order []string
	p.Animate(animation.Default().WithDuration(100*time.Millisecond), nil, func(bool) { order = append(order, "short") })
	p.Animate(animation.Default().WithDuration(300*time.Millisecond), nil, func(bool) { order = append(order, "long") })

	p.Advance(150 * time.Millisecond)
	if len(order) != 1 || order[0] != "short" {
		t.Fatalf("after 150ms: %v", order)
	}
	if p.PendingAnimations() != 1 {
		t.Errorf("pending = %d, want 1", p.PendingAnimations())
	}
	p.FinishAnimations()
	if len(order) != 2 || order[1] != "long" {
		t.Errorf("after finish: %v", order)
	}
}

func TestRunLayoutDrainsNestedRequests(t *testing.T) {
	p := NewPlatform()
	calls := 0
	p.ScheduleLayout(func() {
		calls++
		p.ScheduleLayout(func() { calls++ })
	})
	if !p.LayoutScheduled() {
		t.Fatal("expected a scheduled layout")
	}
	if ran := p.RunLayout(); ran != 2 || calls != 2 {
		t.Errorf("RunLayout = %d, calls = %d", ran, calls)
	}
}

func TestSnapshotYAML(t *testing.T) {
	p := NewPlatform()
	root := p.NewView("root")
	child := p.NewView("blueprint.label")
	child.SetProperty("text", "hello")
	child.ApplyLayoutAttributes(geometry.NewLayoutAttributes(geometry.RectFromLTWH(1, 2, 3, 4)))
	root.InsertSubview(child, 0)

	snap := TakeSnapshot(root)
	if snap.Count() != 2 {
		t.Errorf("Count = %d", snap.Count())
	}
	if got := snap.Subviews[0].Frame; got != [4]float64{1, 2, 3, 4} {
		t.Errorf("frame = %v", got)
	}
	out, err := snap.YAML()
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	for _, want := range []string{"type: blueprint.label", "text: hello", "frame: [1, 2, 3, 4]"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("YAML missing %q:\n%s", want, out)
		}
	}
}
