// Package reconcile keeps a tree of live native views in step with
// successive flattened element trees.
//
// Each [Controller] owns one view and the controllers of its children,
// keyed by element path. [Controller.Update] matches the new generation of
// children against the previous one by path and view type, reuses matching
// views, builds views for new paths with animation suppressed, removes
// unclaimed views (after their disappearing transition, if any) and moves
// retained views when sibling order changes. Lifecycle callbacks are
// collected and returned rather than run, so the caller can run them after
// the whole tree has been mutated.
package reconcile

import (
	"github.com/go-drift/blueprint/pkg/animation"
	"github.com/go-drift/blueprint/pkg/errors"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/platform"
	"github.com/go-drift/blueprint/pkg/resolve"
)

// UpdateContext carries the state of one update down the tree.
type UpdateContext struct {
	Platform platform.Platform

	// AppearanceTransitionsEnabled allows newly created views to run their
	// appearing transition and queue on-appear callbacks.
	AppearanceTransitionsEnabled bool

	// IsVisible reports whether the hosting view is in a window.
	IsVisible bool

	// InheritedAnimation is the layout animation supplied by ancestors, or
	// nil for none.
	InheritedAnimation *animation.Animation

	// Scale is the device pixel ratio used for frame rounding. Zero
	// disables rounding.
	Scale float64

	// Stats, if set, accumulates mutation counts.
	Stats *Stats

	// origin is the global origin of the parent's content view.
	origin geometry.Point
}

func (ctx *UpdateContext) count(fn func(*Stats)) {
	if ctx.Stats != nil {
		fn(ctx.Stats)
	}
}

type child struct {
	path       resolve.ElementPath
	controller *Controller
}

// removal is a view detached from the tree but kept alive until its
// disappearing transition completes.
type removal struct {
	controller *Controller
}

// Controller owns one live view and the controllers of its children.
type Controller struct {
	path     resolve.ElementPath
	node     *resolve.NativeViewNode
	view     platform.View
	platform platform.Platform
	children []child
	removing map[*removal]struct{}

	attributes geometry.LayoutAttributes // last applied, after rounding
	applied    bool
	visible    bool
}

// NewController builds the view for node. The controller applies nothing
// to the view until its first Update.
func NewController(path resolve.ElementPath, node *resolve.NativeViewNode, p platform.Platform) (*Controller, error) {
	view, err := node.Description.Build(p)
	if err != nil {
		return nil, err
	}
	return &Controller{path: path, node: node, view: view, platform: p}, nil
}

// View returns the controller's view.
func (c *Controller) View() platform.View {
	return c.view
}

// Path returns the controller's path relative to its parent controller.
func (c *Controller) Path() resolve.ElementPath {
	return c.path
}

// Node returns the most recently applied node.
func (c *Controller) Node() *resolve.NativeViewNode {
	return c.node
}

// Visible reports whether the view has appeared and not yet disappeared.
func (c *Controller) Visible() bool {
	return c.visible
}

// Children returns the child controllers in order.
func (c *Controller) Children() []*Controller {
	out := make([]*Controller, len(c.children))
	for i, ch := range c.children {
		out[i] = ch.controller
	}
	return out
}

// Child returns the child controller at path, or nil.
func (c *Controller) Child(path resolve.ElementPath) *Controller {
	for _, ch := range c.children {
		if ch.path.Equal(path) {
			return ch.controller
		}
	}
	return nil
}

// PendingRemovals returns the number of child views still running a
// disappearing transition.
func (c *Controller) PendingRemovals() int {
	return len(c.removing)
}

// Traverse visits c and its descendants depth-first, parents first.
func (c *Controller) Traverse(fn func(c *Controller, depth int)) {
	c.traverse(fn, 0)
}

func (c *Controller) traverse(fn func(*Controller, int), depth int) {
	fn(c, depth)
	for _, ch := range c.children {
		ch.controller.traverse(fn, depth+1)
	}
}

// SetVisible marks c and its descendants visible or not and returns the
// lifecycle callbacks of every node whose visibility changed.
func (c *Controller) SetVisible(visible bool) LifecycleCallbacks {
	var callbacks LifecycleCallbacks
	c.Traverse(func(n *Controller, _ int) {
		if n.visible == visible {
			return
		}
		n.visible = visible
		desc := n.node.Description
		if visible {
			if fn := desc.OnAppearCallback(); fn != nil {
				callbacks.Appear = append(callbacks.Appear, fn)
			}
		} else if fn := desc.OnDisappearCallback(); fn != nil {
			callbacks.Disappear = append(callbacks.Disappear, fn)
		}
	})
	return callbacks
}

// Update applies node to the controller's view and reconciles its
// children. node must describe the same view type as the controller's
// current node.
func (c *Controller) Update(node *resolve.NativeViewNode, ctx UpdateContext) LifecycleCallbacks {
	errors.Precondition(c.node.Description.CanReuse(node.Description), "reconcile.Update",
		"cannot update %q view at %s with a %q description",
		c.node.Description.ViewType(), c.path, node.Description.ViewType())

	ctx.count(func(s *Stats) { s.Updated++ })
	c.node = node
	node.Description.Apply(c.view)

	inherited := c.applyAttributes(node, ctx)

	childCtx := ctx
	childCtx.InheritedAnimation = inherited
	childCtx.origin = ctx.origin.Add(c.view.LayoutAttributes().Frame().Origin())
	return c.updateChildren(node.Children, childCtx)
}

// applyAttributes applies node's attributes under the resolved layout
// transition and returns the animation inherited by the children.
func (c *Controller) applyAttributes(node *resolve.NativeViewNode, ctx UpdateContext) *animation.Animation {
	target := node.Attributes
	rounded := target
	if ctx.Scale > 0 && node.Description.FrameRounding() {
		rounded = target.Rounded(ctx.Scale, ctx.origin)
	}
	apply := func() { c.view.ApplyLayoutAttributes(rounded) }

	if !c.applied {
		c.applied = true
		c.attributes = rounded
		ctx.Platform.PerformWithoutAnimation(apply)
		return nil
	}

	// Rounding depends on the parent's global origin, so an unchanged
	// local target can still land on different pixels.
	if c.attributes.Equal(rounded) {
		return ctx.InheritedAnimation
	}
	c.attributes = rounded

	anim := node.Description.LayoutTransition().Resolve(ctx.InheritedAnimation)
	if anim != nil {
		ctx.Platform.Animate(*anim, apply, nil)
	} else {
		ctx.Platform.PerformWithoutAnimation(apply)
	}
	return anim
}

func (c *Controller) updateChildren(nodes []resolve.PathNode, ctx UpdateContext) LifecycleCallbacks {
	resolve.CheckUnique("reconcile.Update", nodes)

	var callbacks LifecycleCallbacks
	content := c.node.Description.ContentView(c.view)

	previous := make(map[string]int, len(c.children))
	for i, ch := range c.children {
		previous[ch.path.Key()] = i
	}

	orderChanged := len(nodes) != len(c.children)
	claimed := make([]bool, len(c.children))
	reused := make([]*Controller, len(nodes))
	for i, n := range nodes {
		j, ok := previous[n.Path.Key()]
		if ok && c.children[j].controller.node.Description.CanReuse(n.Node.Description) {
			claimed[j] = true
			reused[i] = c.children[j].controller
		}
		if !ok || j != i {
			orderChanged = true
		}
	}

	for j, ch := range c.children {
		if !claimed[j] {
			callbacks.Merge(c.remove(ch.controller, ctx))
		}
	}

	next := make([]child, len(nodes))
	var prev platform.View
	for i, n := range nodes {
		ctrl := reused[i]
		if ctrl == nil {
			ctrl, callbacks = c.insert(n, content, prev, ctx, callbacks)
		} else {
			if orderChanged && placeAfter(content, ctrl.view, prev) {
				ctx.count(func(s *Stats) { s.Moved++ })
			}
			callbacks.Merge(ctrl.Update(n.Node, ctx))
		}
		next[i] = child{path: n.Path, controller: ctrl}
		prev = ctrl.view
	}
	c.children = next
	return callbacks
}

// insert builds a controller for n, performs its first update with
// animation suppressed and inserts its view after prev.
func (c *Controller) insert(n resolve.PathNode, content, prev platform.View, ctx UpdateContext, callbacks LifecycleCallbacks) (*Controller, LifecycleCallbacks) {
	ctrl, err := NewController(n.Path, n.Node, ctx.Platform)
	if err != nil {
		errors.Fatal("reconcile.Update", "building view at %s: %v", n.Path, err)
	}
	ctx.count(func(s *Stats) { s.Created++ })

	nested := ctx
	nested.AppearanceTransitionsEnabled = false
	nested.InheritedAnimation = nil
	ctx.Platform.PerformWithoutAnimation(func() {
		callbacks.Merge(ctrl.Update(n.Node, nested))
		placeAfter(content, ctrl.view, prev)
	})

	if ctx.AppearanceTransitionsEnabled && ctx.IsVisible {
		if t := n.Node.Description.AppearingTransition(); t != nil {
			performAppearing(t, ctx.Platform, ctrl.view, ctrl.view.LayoutAttributes())
		}
		appeared := ctrl.SetVisible(true)
		ctx.count(func(s *Stats) { s.Appeared += len(appeared.Appear) })
		callbacks.Merge(appeared)
	}
	return ctrl, callbacks
}

// remove detaches ctrl's view, after its disappearing transition if one is
// configured, and returns the on-disappear callbacks of its visible nodes.
func (c *Controller) remove(ctrl *Controller, ctx UpdateContext) LifecycleCallbacks {
	ctx.count(func(s *Stats) { s.Removed++ })
	callbacks := ctrl.SetVisible(false)
	ctx.count(func(s *Stats) { s.Disappeared += len(callbacks.Disappear) })

	t := ctrl.node.Description.DisappearingTransition()
	if t == nil {
		ctrl.view.RemoveFromSuperview()
		return callbacks
	}

	r := &removal{controller: ctrl}
	if c.removing == nil {
		c.removing = make(map[*removal]struct{})
	}
	c.removing[r] = struct{}{}
	performDisappearing(t, ctx.Platform, ctrl.view, ctrl.view.LayoutAttributes(), func() {
		r.controller.view.RemoveFromSuperview()
		delete(c.removing, r)
	})
	return callbacks
}

// placeAfter inserts view directly after prev in content, or first when
// prev is nil. It reports whether the view had to be inserted.
func placeAfter(content, view, prev platform.View) bool {
	target := 0
	if prev != nil {
		target = platform.IndexOf(content, prev) + 1
	}
	current := platform.IndexOf(content, view)
	if current == target {
		return false
	}
	if current >= 0 && current < target {
		target--
	}
	content.InsertSubview(view, target)
	return true
}
