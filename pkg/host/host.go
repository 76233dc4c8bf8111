// Package host drives Blueprint from a hosting view.
//
// A [Host] owns the root element, environment and bounds. Changing any of
// them marks the view hierarchy as needing an update and schedules a single
// pass on the platform's run loop, so several changes made in one call stack
// are applied together. A pass lays the element out, flattens it and
// reconciles the root view's subviews, then runs the collected lifecycle
// callbacks. Invalidating the host while a pass is running is a fatal error.
package host

import (
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/go-drift/blueprint/pkg/animation"
	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/errors"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/layout"
	"github.com/go-drift/blueprint/pkg/metrics"
	"github.com/go-drift/blueprint/pkg/platform"
	"github.com/go-drift/blueprint/pkg/reconcile"
	"github.com/go-drift/blueprint/pkg/resolve"
)

// RootViewType is the view type of the host's root view.
const RootViewType = "blueprint.root"

// Host is the entry point that renders an element into a root view.
// All methods must be called from the thread driving the platform.
type Host struct {
	platform platform.Platform
	logger   *slog.Logger
	metrics  *metrics.Collector
	config   Config

	element        element.Element
	env            environment.Environment
	bounds         geometry.Rect
	windowAttached bool

	rootDescription *element.ViewDescription
	root            *reconcile.Controller
	engine          *layout.Engine
	measureEngine   *layout.Engine
	tree            layout.ResultTree
	sizeCache       *lru.Cache[geometry.SizeConstraint, geometry.Size]
	sizeDeps        layout.Dependencies

	needsUpdate bool
	scheduled   bool
	updating    bool
	hasUpdated  bool

	passes int
	last   PassSample
}

// New creates a host and its root view.
func New(p platform.Platform, opts ...Option) (*Host, error) {
	h := &Host{
		platform:        p,
		logger:          slog.New(slog.DiscardHandler),
		config:          DefaultConfig(),
		env:             environment.Empty(),
		rootDescription: element.NewViewDescription(RootViewType, element.WithoutFrameRounding()),
		engine:          layout.NewEngine(),
		measureEngine:   layout.NewEngine(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.config.Validate(); err != nil {
		return nil, configError("host.New", err)
	}
	if h.config.SizeCacheCapacity > 0 {
		cache, err := lru.New[geometry.SizeConstraint, geometry.Size](h.config.SizeCacheCapacity)
		if err != nil {
			return nil, configError("host.New", err)
		}
		h.sizeCache = cache
	}

	root, err := reconcile.NewController(resolve.NewPath(), h.rootNode(nil), p)
	if err != nil {
		return nil, err
	}
	h.root = root
	return h, nil
}

// Element returns the root element.
func (h *Host) Element() element.Element {
	return h.element
}

// SetElement replaces the root element and schedules an update.
func (h *Host) SetElement(el element.Element) {
	h.checkNotUpdating("host.SetElement")
	h.element = el
	h.InvalidateSizeCache()
	h.setNeedsUpdate()
}

// Environment returns the root environment.
func (h *Host) Environment() environment.Environment {
	return h.env
}

// SetEnvironment replaces the root environment. An equal environment is
// ignored. Cached sizes survive when every key their measurement read is
// unchanged.
func (h *Host) SetEnvironment(env environment.Environment) {
	h.checkNotUpdating("host.SetEnvironment")
	if env.Equal(h.env) {
		return
	}
	if !h.sizeDeps.Unaffected(h.env, env) {
		h.InvalidateSizeCache()
	}
	h.env = env
	h.setNeedsUpdate()
}

// Bounds returns the root view's frame.
func (h *Host) Bounds() geometry.Rect {
	return h.bounds
}

// SetBounds resizes the root view and schedules an update.
func (h *Host) SetBounds(bounds geometry.Rect) {
	h.checkNotUpdating("host.SetBounds")
	if bounds == h.bounds {
		return
	}
	h.bounds = bounds
	h.setNeedsUpdate()
}

// WindowAttached reports whether the root view is in a window.
func (h *Host) WindowAttached() bool {
	return h.windowAttached
}

// SetWindowAttached records that the root view entered or left a window.
// Views mounted while detached appear when the root is attached, and every
// visible view disappears when it is detached.
func (h *Host) SetWindowAttached(attached bool) {
	h.checkNotUpdating("host.SetWindowAttached")
	if attached == h.windowAttached {
		return
	}
	h.windowAttached = attached
	if !h.hasUpdated {
		return
	}
	callbacks := h.root.SetVisible(attached)
	h.logger.Debug("window attachment changed",
		"attached", attached,
		"appear", len(callbacks.Appear),
		"disappear", len(callbacks.Disappear))
	callbacks.Run()
}

// NeedsUpdate reports whether an update is pending.
func (h *Host) NeedsUpdate() bool {
	return h.needsUpdate
}

// HasUpdated reports whether at least one pass has completed.
func (h *Host) HasUpdated() bool {
	return h.hasUpdated
}

// RootView returns the host's root view.
func (h *Host) RootView() platform.View {
	return h.root.View()
}

// RootController returns the controller of the root view.
func (h *Host) RootController() *reconcile.Controller {
	return h.root
}

// Passes returns the number of completed passes.
func (h *Host) Passes() int {
	return h.passes
}

// LastPass returns the sample recorded for the most recent pass.
func (h *Host) LastPass() PassSample {
	return h.last
}

// LayoutIfNeeded runs a pending update immediately.
func (h *Host) LayoutIfNeeded() {
	if h.needsUpdate {
		h.update()
	}
}

// SizeThatFits measures the root element within size. A zero extent is
// treated as unconstrained on that axis. Results are cached per constraint
// until the element or environment changes.
func (h *Host) SizeThatFits(size geometry.Size) geometry.Size {
	constraint := geometry.ConstraintFitting(size)
	if h.element == nil {
		return geometry.Size{}
	}
	if h.sizeCache != nil {
		if cached, ok := h.sizeCache.Get(constraint); ok {
			h.metrics.ObserveSizeCache(true)
			return cached
		}
	}
	measured := h.measureEngine.Measure(h.element, constraint, h.env)
	h.metrics.ObserveMeasurements(h.measureEngine.LastPass())
	if h.sizeCache != nil {
		h.metrics.ObserveSizeCache(false)
		h.sizeCache.Add(constraint, measured)
		h.sizeDeps.Merge(h.measureEngine.LastDependencies())
	}
	return measured
}

// SizeCacheLen returns the number of cached sizes.
func (h *Host) SizeCacheLen() int {
	if h.sizeCache == nil {
		return 0
	}
	return h.sizeCache.Len()
}

// InvalidateSizeCache drops every cached size.
func (h *Host) InvalidateSizeCache() {
	if h.sizeCache != nil {
		h.sizeCache.Purge()
	}
	h.sizeDeps = layout.Dependencies{}
}

func (h *Host) checkNotUpdating(op string) {
	errors.Precondition(!h.updating, op, "view hierarchy invalidated during an update pass")
}

func (h *Host) setNeedsUpdate() {
	h.needsUpdate = true
	if h.scheduled {
		return
	}
	h.scheduled = true
	h.platform.ScheduleLayout(func() {
		h.scheduled = false
		h.LayoutIfNeeded()
	})
}

func (h *Host) rootNode(children []resolve.PathNode) *resolve.NativeViewNode {
	return &resolve.NativeViewNode{
		Description: h.rootDescription,
		Attributes:  geometry.NewLayoutAttributes(h.bounds),
		Environment: h.env,
		Children:    children,
	}
}

func (h *Host) scale() float64 {
	if !h.config.RoundToPixels {
		return 0
	}
	if h.config.Scale > 0 {
		return h.config.Scale
	}
	return h.platform.Scale()
}

func (h *Host) update() {
	callbacks := h.performUpdate()

	start := time.Now()
	callbacks.Run()
	h.last.Phases.Callbacks = time.Since(start)
}

func (h *Host) performUpdate() reconcile.LifecycleCallbacks {
	errors.Precondition(!h.updating, "host.Update", "update pass started while another is running")
	h.updating = true
	defer func() { h.updating = false }()
	h.needsUpdate = false

	sample := PassSample{Timestamp: time.Now(), Initial: !h.hasUpdated}
	start := sample.Timestamp

	var nodes []resolve.PathNode
	if h.element != nil {
		h.engine.LayoutInto(&h.tree, h.element, geometry.RectFromOriginSize(geometry.Point{}, h.bounds.Size()), h.env)
		sample.Layout = h.engine.LastPass()
		sample.Phases.Layout = time.Since(start)

		phase := time.Now()
		nodes = resolve.Resolve(&h.tree)
		sample.Phases.Resolve = time.Since(phase)
		sample.FlattenedNodes = resolve.Count(nodes)
		h.tree.Reset()
	}

	ctx := reconcile.UpdateContext{
		Platform:                     h.platform,
		AppearanceTransitionsEnabled: h.hasUpdated,
		IsVisible:                    h.windowAttached,
		Scale:                        h.scale(),
		Stats:                        &sample.Views,
		InheritedAnimation:           h.ambient(),
	}

	phase := time.Now()
	callbacks := h.root.Update(h.rootNode(nodes), ctx)
	if h.windowAttached {
		// Views mounted without appearance transitions are not yet visible.
		// The first-ever pass marks them visible without on-appear.
		appeared := h.root.SetVisible(true)
		if h.hasUpdated {
			sample.Views.Appeared += len(appeared.Appear)
			callbacks.Merge(appeared)
		}
	}
	sample.Phases.Reconcile = time.Since(phase)
	sample.Duration = time.Since(start)
	h.hasUpdated = true

	h.passes++
	h.last = sample
	h.metrics.ObservePass(sample.Duration, sample.Views, sample.Layout)
	h.logger.Debug("update pass",
		"pass", h.passes,
		"element", elementName(h.element),
		"bounds", h.bounds,
		"initial", sample.Initial,
		"animated", ctx.InheritedAnimation != nil,
		"nodes", sample.FlattenedNodes,
		"created", sample.Views.Created,
		"removed", sample.Views.Removed,
		"moved", sample.Views.Moved,
		"duration", sample.Duration)
	return callbacks
}

func elementName(el element.Element) string {
	if el == nil {
		return "<none>"
	}
	return element.TypeName(element.TypeOf(el))
}

// ambient reports the animation the current pass would inherit.
func (h *Host) ambient() *animation.Animation {
	if anim, ok := h.platform.CurrentAnimation(); ok {
		return &anim
	}
	return nil
}
