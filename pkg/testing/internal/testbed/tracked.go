// Package testbed provides internal test elements for the testing framework.
package testbed

import (
	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// TrackedViewType is the view type backing [Tracked].
const TrackedViewType = "testbed.tracked"

// Recorder collects lifecycle events in the order they fire.
type Recorder struct {
	Events []string
}

// Record appends event.
func (r *Recorder) Record(event string) {
	r.Events = append(r.Events, event)
}

// Reset clears the recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}

// Tracked is a fixed-size view that records "appear:<name>" and
// "disappear:<name>" events.
type Tracked struct {
	Name     string
	Width    float64
	Height   float64
	Recorder *Recorder
	// Fade makes the view fade in and out.
	Fade bool
}

func (t Tracked) Content() element.Content {
	return element.LeafContent(geometry.Size{Width: t.Width, Height: t.Height})
}

func (t Tracked) ViewDescription(element.ViewDescriptionContext) *element.ViewDescription {
	opts := []element.ViewOption{element.WithProperty("name", t.Name)}
	if t.Recorder != nil {
		opts = append(opts,
			element.OnAppear(func() { t.Recorder.Record("appear:" + t.Name) }),
			element.OnDisappear(func() { t.Recorder.Record("disappear:" + t.Name) }),
		)
	}
	if t.Fade {
		opts = append(opts, element.WithTransition(element.Fade()))
	}
	return element.NewViewDescription(TrackedViewType, opts...)
}
