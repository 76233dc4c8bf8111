package reconcile

import "github.com/go-drift/blueprint/pkg/errors"

// LifecycleCallbacks are the on-appear and on-disappear callbacks collected
// during an update, to be run once view mutation is complete.
type LifecycleCallbacks struct {
	Appear    []func()
	Disappear []func()
}

// Merge appends other's callbacks to c.
func (c *LifecycleCallbacks) Merge(other LifecycleCallbacks) {
	c.Appear = append(c.Appear, other.Appear...)
	c.Disappear = append(c.Disappear, other.Disappear...)
}

// IsEmpty reports whether there is nothing to run.
func (c LifecycleCallbacks) IsEmpty() bool {
	return len(c.Appear) == 0 && len(c.Disappear) == 0
}

// Run runs every disappear callback, then every appear callback, each in
// the order they were collected. A callback that panics is reported to the
// error handler and the remaining callbacks still run; invariant violations
// propagate.
func (c LifecycleCallbacks) Run() {
	for _, fn := range c.Disappear {
		runCallback("reconcile.OnDisappear", fn)
	}
	for _, fn := range c.Appear {
		runCallback("reconcile.OnAppear", fn)
	}
}

func runCallback(op string, fn func()) {
	defer errors.Recover(op)
	fn()
}

// Stats counts the mutations made by updates sharing one context.
type Stats struct {
	Created     int
	Updated     int
	Removed     int
	Moved       int
	Appeared    int
	Disappeared int
}

// Add returns the sum of two stats.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Created:     s.Created + other.Created,
		Updated:     s.Updated + other.Updated,
		Removed:     s.Removed + other.Removed,
		Moved:       s.Moved + other.Moved,
		Appeared:    s.Appeared + other.Appeared,
		Disappeared: s.Disappeared + other.Disappeared,
	}
}
