package headless

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/blueprint/pkg/platform"
)

// Snapshot is a serializable copy of a live view tree.
type Snapshot struct {
	ID         int64          `yaml:"id"`
	Type       string         `yaml:"type"`
	Frame      [4]float64     `yaml:"frame,flow"`
	Alpha      float64        `yaml:"alpha"`
	Hidden     bool           `yaml:"hidden,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
	Subviews   []Snapshot     `yaml:"subviews,omitempty"`
}

// TakeSnapshot copies the tree rooted at view. Frames are
// [left, top, width, height] in the superview's coordinate space.
func TakeSnapshot(view platform.View) Snapshot {
	attrs := view.LayoutAttributes()
	frame := attrs.Frame()
	s := Snapshot{
		ID:     view.ViewID(),
		Type:   view.ViewType(),
		Frame:  [4]float64{frame.Left, frame.Top, frame.Width(), frame.Height()},
		Alpha:  attrs.Alpha,
		Hidden: attrs.Hidden,
	}
	if props, ok := view.(interface{ Properties() map[string]any }); ok {
		if p := props.Properties(); len(p) > 0 {
			s.Properties = p
		}
	}
	for _, sub := range view.Subviews() {
		s.Subviews = append(s.Subviews, TakeSnapshot(sub))
	}
	return s
}

// Count returns the number of views in the snapshot.
func (s Snapshot) Count() int {
	n := 1
	for _, sub := range s.Subviews {
		n += sub.Count()
	}
	return n
}

// Types returns the view types in depth-first order.
func (s Snapshot) Types() []string {
	out := []string{s.Type}
	for _, sub := range s.Subviews {
		out = append(out, sub.Types()...)
	}
	return out
}

// PropertyNames returns the sorted names of the snapshot's own properties.
func (s Snapshot) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// YAML encodes the snapshot.
func (s Snapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
