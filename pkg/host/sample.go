package host

import (
	"time"

	"github.com/go-drift/blueprint/pkg/layout"
	"github.com/go-drift/blueprint/pkg/reconcile"
)

// PassPhases is the time spent in each phase of a pass.
type PassPhases struct {
	Layout    time.Duration
	Resolve   time.Duration
	Reconcile time.Duration
	Callbacks time.Duration
}

// PassSample describes one completed pass.
type PassSample struct {
	Timestamp time.Time
	Duration  time.Duration
	Phases    PassPhases
	// Initial is set for the host's first pass, which never runs
	// appearance transitions.
	Initial        bool
	FlattenedNodes int
	Layout         layout.Stats
	Views          reconcile.Stats
}
