package element

import (
	"github.com/go-drift/blueprint/pkg/animation"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/platform"
)

type layoutTransitionMode int

const (
	inherited layoutTransitionMode = iota
	none
	inheritedWithFallback
	specific
)

// LayoutTransition decides how a view's attribute changes animate. The zero
// value inherits from the nearest ancestor.
type LayoutTransition struct {
	mode layoutTransitionMode
	anim animation.Animation
}

// NoLayoutTransition applies attribute changes without animation and blocks
// inheritance for descendants.
func NoLayoutTransition() LayoutTransition {
	return LayoutTransition{mode: none}
}

// InheritedLayoutTransition uses whatever the ancestors supply.
func InheritedLayoutTransition() LayoutTransition {
	return LayoutTransition{mode: inherited}
}

// InheritedWithFallback uses the ancestors' animation, or anim when they
// supply none.
func InheritedWithFallback(anim animation.Animation) LayoutTransition {
	return LayoutTransition{mode: inheritedWithFallback, anim: anim}
}

// SpecificLayoutTransition always animates with anim.
func SpecificLayoutTransition(anim animation.Animation) LayoutTransition {
	return LayoutTransition{mode: specific, anim: anim}
}

// Resolve returns the animation for this node given the animation its
// ancestors supply. A nil result means no animation.
func (t LayoutTransition) Resolve(inherited *animation.Animation) *animation.Animation {
	switch t.mode {
	case none:
		return nil
	case inheritedWithFallback:
		if inherited != nil {
			return inherited
		}
		anim := t.anim
		return &anim
	case specific:
		anim := t.anim
		return &anim
	default:
		return inherited
	}
}

func (t LayoutTransition) String() string {
	switch t.mode {
	case none:
		return "none"
	case inheritedWithFallback:
		return "inheritedWithFallback(" + t.anim.String() + ")"
	case specific:
		return "specific(" + t.anim.String() + ")"
	default:
		return "inherited"
	}
}

// TransitionContext is passed to custom visibility transitions.
type TransitionContext struct {
	View       platform.View
	Attributes geometry.LayoutAttributes
	Platform   platform.Platform
	Appearing  bool
}

// VisibilityTransition animates a view between its laid-out attributes and
// a hidden state as it is inserted or removed.
type VisibilityTransition struct {
	// Alpha multiplies the view's alpha in the hidden state.
	Alpha float64
	// Transform is applied before the view's own transform in the hidden state.
	Transform geometry.Transform
	// Animation drives the transition.
	Animation animation.Animation
	// Custom, if set, replaces the built-in animation. It must call
	// complete exactly once.
	Custom func(ctx TransitionContext, complete func())
}

// Fade fades the view in or out.
func Fade() VisibilityTransition {
	return VisibilityTransition{Animation: animation.Default()}
}

// ScaleDown fades the view while scaling it towards its center.
func ScaleDown() VisibilityTransition {
	return VisibilityTransition{
		Transform: geometry.ScaleTransform(0.01, 0.01),
		Animation: animation.Default(),
	}
}

// WithAnimation returns a copy of t driven by anim.
func (t VisibilityTransition) WithAnimation(anim animation.Animation) VisibilityTransition {
	t.Animation = anim
	return t
}

// Hidden returns attrs in the transition's hidden state.
func (t VisibilityTransition) Hidden(attrs geometry.LayoutAttributes) geometry.LayoutAttributes {
	attrs.Alpha *= t.Alpha
	attrs.Transform = t.Transform.Then(attrs.Transform)
	return attrs
}
