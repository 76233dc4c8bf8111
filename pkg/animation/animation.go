// Package animation describes timed animations that native platforms run
// when Blueprint applies layout or visibility transitions.
//
// An [Animation] is a value: it says how long a change should take and how
// progress is eased. The platform owns the actual animation primitive and
// reports completion through a callback.
package animation

import (
	"fmt"
	"time"
)

// DefaultDuration is the duration used by [Default].
const DefaultDuration = 200 * time.Millisecond

// Curve maps linear progress t in [0, 1] to eased progress.
type Curve func(t float64) float64

// Animation describes how a platform should animate a batch of changes.
type Animation struct {
	// Duration is the length of the animation.
	Duration time.Duration
	// Delay postpones the start of the animation.
	Delay time.Duration
	// Curve eases progress. Nil means EaseInOut.
	Curve Curve
	// BeginFromCurrentState starts from the presented state of an in-flight animation.
	BeginFromCurrentState bool
}

// Default returns the standard animation used by transitions that do not
// specify one.
func Default() Animation {
	return Animation{Duration: DefaultDuration, Curve: EaseInOut, BeginFromCurrentState: true}
}

// WithDuration returns a copy of a with the given duration.
func (a Animation) WithDuration(d time.Duration) Animation {
	a.Duration = d
	return a
}

// Total returns Delay plus Duration.
func (a Animation) Total() time.Duration {
	return a.Delay + a.Duration
}

// Progress returns the eased progress after elapsed time since the
// animation was started, clamped to [0, 1].
func (a Animation) Progress(elapsed time.Duration) float64 {
	elapsed -= a.Delay
	if elapsed <= 0 {
		return 0
	}
	if a.Duration <= 0 || elapsed >= a.Duration {
		return 1
	}
	curve := a.Curve
	if curve == nil {
		curve = EaseInOut
	}
	return curve(float64(elapsed) / float64(a.Duration))
}

func (a Animation) String() string {
	if a.Delay > 0 {
		return fmt.Sprintf("animation(%s after %s)", a.Duration, a.Delay)
	}
	return fmt.Sprintf("animation(%s)", a.Duration)
}
