package reconcile

import (
	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/errors"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/platform"
)

// once wraps fn so that a second call is a fatal error.
func once(op string, fn func()) func() {
	called := false
	return func() {
		errors.Precondition(!called, op, "completion called more than once")
		called = true
		if fn != nil {
			fn()
		}
	}
}

// performAppearing animates view from the transition's hidden state to
// attrs. The view already carries attrs.
func performAppearing(t *element.VisibilityTransition, p platform.Platform, view platform.View, attrs geometry.LayoutAttributes) {
	if t.Custom != nil {
		t.Custom(element.TransitionContext{View: view, Attributes: attrs, Platform: p, Appearing: true},
			once("reconcile.appear", nil))
		return
	}
	p.PerformWithoutAnimation(func() {
		view.ApplyLayoutAttributes(t.Hidden(attrs))
	})
	p.Animate(t.Animation, func() {
		view.ApplyLayoutAttributes(attrs)
	}, nil)
}

// performDisappearing animates view to the transition's hidden state and
// calls complete once the animation ends.
func performDisappearing(t *element.VisibilityTransition, p platform.Platform, view platform.View, attrs geometry.LayoutAttributes, complete func()) {
	done := once("reconcile.disappear", complete)
	if t.Custom != nil {
		t.Custom(element.TransitionContext{View: view, Attributes: attrs, Platform: p, Appearing: false}, done)
		return
	}
	p.Animate(t.Animation, func() {
		view.ApplyLayoutAttributes(t.Hidden(attrs))
	}, func(bool) { done() })
}
