// Package headless implements platform.Platform entirely in memory.
//
// Views record every mutation as an [Op], animation completions are held
// until virtual time is advanced, and layout requests queue until
// [Platform.RunLayout] drains them, mimicking one turn of a native run loop.
// The package backs Blueprint's own tests and the blueprint CLI.
package headless

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-drift/blueprint/pkg/animation"
	"github.com/go-drift/blueprint/pkg/platform"
)

// Platform is an in-memory platform.Platform.
type Platform struct {
	factories map[string]platform.ViewFactory
	nextID    atomic.Int64
	scale     float64
	strict    bool

	blocks  []animationBlock
	pending []pendingCompletion
	now     time.Duration

	layoutQueue []func()
	ops         []Op
	created     int
}

type animationBlock struct {
	anim     animation.Animation
	disabled bool
}

type pendingCompletion struct {
	deadline time.Duration
	fn       func(finished bool)
}

// Option configures a Platform.
type Option func(*Platform)

// WithScale sets the device pixel ratio reported by Scale.
func WithScale(scale float64) Option {
	return func(p *Platform) {
		p.scale = scale
	}
}

// WithStrictViewTypes makes CreateView fail for types without a registered
// factory instead of creating a generic view.
func WithStrictViewTypes() Option {
	return func(p *Platform) {
		p.strict = true
	}
}

// NewPlatform creates an empty platform with a scale of 1.
func NewPlatform(opts ...Option) *Platform {
	p := &Platform{
		factories: make(map[string]platform.ViewFactory),
		scale:     1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterFactory registers a factory for a view type.
func (p *Platform) RegisterFactory(factory platform.ViewFactory) {
	p.factories[factory.ViewType()] = factory
}

// InitView prepares an embedded View. self is the value reported by
// Subviews and Superview. A zero id allocates a fresh one; factories pass
// the id they were given.
func (p *Platform) InitView(v *View, self platform.View, viewType string, id int64) {
	if id == 0 {
		id = p.nextID.Add(1)
	}
	v.self = self
	v.id = id
	v.viewType = viewType
	v.platform = p
}

// NewView creates a generic view of the given type without recording it.
func (p *Platform) NewView(viewType string) *View {
	v := &View{}
	p.InitView(v, v, viewType, 0)
	return v
}

// CreateView creates a view of the given type through its registered
// factory, or a generic view when none is registered and the platform is
// not strict.
func (p *Platform) CreateView(viewType string) (platform.View, error) {
	var view platform.View
	if factory, ok := p.factories[viewType]; ok {
		v, err := factory.Create(p.nextID.Add(1))
		if err != nil {
			return nil, fmt.Errorf("create %q: %w", viewType, err)
		}
		view = v
	} else if p.strict {
		return nil, fmt.Errorf("create %q: %w", viewType, platform.ErrViewTypeNotFound)
	} else {
		view = p.NewView(viewType)
	}
	p.created++
	p.record(Op{Kind: OpCreate, ViewID: view.ViewID(), ViewType: viewType})
	return view, nil
}

// Created returns the number of views created through CreateView.
func (p *Platform) Created() int {
	return p.created
}

// Scale returns the device pixel ratio.
func (p *Platform) Scale() float64 {
	return p.scale
}

// Animate runs changes inside an animation block. The completion is held
// until virtual time reaches the end of the animation.
func (p *Platform) Animate(anim animation.Animation, changes func(), completion func(finished bool)) {
	p.record(Op{Kind: OpAnimate, Animated: true, Animation: anim})
	p.blocks = append(p.blocks, animationBlock{anim: anim})
	func() {
		defer func() { p.blocks = p.blocks[:len(p.blocks)-1] }()
		if changes != nil {
			changes()
		}
	}()
	if completion != nil {
		p.pending = append(p.pending, pendingCompletion{deadline: p.now + anim.Total(), fn: completion})
	}
}

// PerformWithoutAnimation runs changes with animations suppressed.
func (p *Platform) PerformWithoutAnimation(changes func()) {
	p.blocks = append(p.blocks, animationBlock{disabled: true})
	defer func() { p.blocks = p.blocks[:len(p.blocks)-1] }()
	changes()
}

// CurrentAnimation returns the innermost animation block, unless the
// innermost block suppresses animation.
func (p *Platform) CurrentAnimation() (animation.Animation, bool) {
	if len(p.blocks) == 0 {
		return animation.Animation{}, false
	}
	top := p.blocks[len(p.blocks)-1]
	if top.disabled {
		return animation.Animation{}, false
	}
	return top.anim, true
}

// Now returns the virtual time elapsed since the platform was created.
func (p *Platform) Now() time.Duration {
	return p.now
}

// PendingAnimations returns the number of completions not yet delivered.
func (p *Platform) PendingAnimations() int {
	return len(p.pending)
}

// Advance moves virtual time forward by d and delivers every completion
// whose animation has ended, in the order the animations started.
func (p *Platform) Advance(d time.Duration) {
	p.now += d
	for {
		index := -1
		for i, c := range p.pending {
			if c.deadline <= p.now {
				index = i
				break
			}
		}
		if index < 0 {
			return
		}
		c := p.pending[index]
		p.pending = append(p.pending[:index], p.pending[index+1:]...)
		c.fn(true)
	}
}

// FinishAnimations delivers every pending completion, including those
// scheduled by completions themselves.
func (p *Platform) FinishAnimations() {
	for len(p.pending) > 0 {
		c := p.pending[0]
		p.pending = p.pending[1:]
		c.fn(true)
	}
}

// ScheduleLayout queues fn for the next RunLayout.
func (p *Platform) ScheduleLayout(fn func()) {
	p.layoutQueue = append(p.layoutQueue, fn)
}

// LayoutScheduled reports whether layout requests are queued.
func (p *Platform) LayoutScheduled() bool {
	return len(p.layoutQueue) > 0
}

// RunLayout drains the layout queue, including requests queued while it
// runs, and returns how many requests ran.
func (p *Platform) RunLayout() int {
	ran := 0
	for len(p.layoutQueue) > 0 {
		fn := p.layoutQueue[0]
		p.layoutQueue = p.layoutQueue[1:]
		fn()
		ran++
	}
	return ran
}

var _ platform.Platform = (*Platform)(nil)
