package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/host"
	"github.com/go-drift/blueprint/pkg/platform/headless"
	"github.com/go-drift/blueprint/pkg/reconcile"
)

const (
	// DefaultTestWidth is the default logical width of the host view.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height of the host view.
	DefaultTestHeight = 600
	// DefaultScale is the default device pixel ratio.
	DefaultScale = 1.0
)

// FrameDuration is how far PumpAndSettle advances virtual time per frame.
const FrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: animations or layout still pending")

// ViewTester renders elements into a host on the headless platform.
// The host is created by the first PumpElement, so SetSize, SetScale and
// SetEnvironment must be called before it.
type ViewTester struct {
	platform *headless.Platform
	host     *host.Host
	size     geometry.Size
	scale    float64
	env      environment.Environment
	attached bool
	options  []host.Option
}

// NewViewTester creates a tester attached to a window, so views receive
// on-appear callbacks as they mount.
func NewViewTester(opts ...host.Option) *ViewTester {
	return &ViewTester{
		size:     geometry.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
		scale:    DefaultScale,
		env:      environment.Empty(),
		attached: true,
		options:  opts,
	}
}

// NewViewTesterWithT creates a tester that detaches its host from the
// window when the test ends.
func NewViewTesterWithT(t *testing.T, opts ...host.Option) *ViewTester {
	tester := NewViewTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup detaches the host, running the on-disappear callbacks of every
// visible view.
func (t *ViewTester) Cleanup() {
	if t.host != nil {
		t.host.SetWindowAttached(false)
	}
}

// SetSize sets the host view size.
func (t *ViewTester) SetSize(size geometry.Size) {
	t.size = size
	if t.host != nil {
		t.host.SetBounds(geometry.RectFromOriginSize(geometry.Point{}, size))
	}
}

// SetScale sets the device pixel ratio. Must be called before PumpElement.
func (t *ViewTester) SetScale(scale float64) {
	t.scale = scale
}

// SetEnvironment replaces the root environment.
func (t *ViewTester) SetEnvironment(env environment.Environment) {
	t.env = env
	if t.host != nil {
		t.host.SetEnvironment(env)
	}
}

// SetWindowAttached attaches or detaches the host view.
func (t *ViewTester) SetWindowAttached(attached bool) {
	t.attached = attached
	if t.host != nil {
		t.host.SetWindowAttached(attached)
	}
}

// PumpElement sets the root element and runs the pending update.
func (t *ViewTester) PumpElement(el element.Element) error {
	if t.host == nil {
		if err := t.mount(); err != nil {
			return err
		}
	}
	t.host.SetElement(el)
	t.Pump()
	return nil
}

func (t *ViewTester) mount() error {
	t.platform = headless.NewPlatform(headless.WithScale(t.scale))
	opts := append([]host.Option{host.WithEnvironment(t.env)}, t.options...)
	h, err := host.New(t.platform, opts...)
	if err != nil {
		return err
	}
	h.SetBounds(geometry.RectFromOriginSize(geometry.Point{}, t.size))
	h.SetWindowAttached(t.attached)
	t.host = h
	return nil
}

// Pump runs every scheduled update and returns how many ran.
func (t *ViewTester) Pump() int {
	if t.platform == nil {
		return 0
	}
	return t.platform.RunLayout()
}

// Advance moves virtual time forward, completing animations that end
// within d, then pumps.
func (t *ViewTester) Advance(d time.Duration) {
	if t.platform == nil {
		return
	}
	t.platform.Advance(d)
	t.Pump()
}

// PumpAndSettle advances frames until no update is scheduled and no
// animation is running, or until timeout of virtual time has passed.
func (t *ViewTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for {
		t.Pump()
		if !t.needsWork() {
			return nil
		}
		if elapsed >= timeout {
			return ErrSettleTimeout
		}
		t.platform.Advance(FrameDuration)
		elapsed += FrameDuration
	}
}

func (t *ViewTester) needsWork() bool {
	if t.platform == nil {
		return false
	}
	return t.platform.LayoutScheduled() || t.platform.PendingAnimations() > 0
}

// Platform returns the headless platform, or nil before the first
// PumpElement.
func (t *ViewTester) Platform() *headless.Platform {
	return t.platform
}

// Host returns the host, or nil before the first PumpElement.
func (t *ViewTester) Host() *host.Host {
	return t.host
}

// RootController returns the controller of the host's root view.
func (t *ViewTester) RootController() *reconcile.Controller {
	if t.host == nil {
		return nil
	}
	return t.host.RootController()
}

// Find evaluates a finder against the current controller tree.
func (t *ViewTester) Find(finder Finder) FinderResult {
	root := t.RootController()
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		controllers: finder.Evaluate(root),
		finder:      finder,
	}
}
