package layout

import (
	"slices"

	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/environment"
)

// Dependencies are the environment keys a pass read.
type Dependencies struct {
	// Keys read by content that declared them.
	Keys []environment.AnyKey
	// All is set when some content may read any key.
	All bool
}

// Add records the keys content reads.
func (d *Dependencies) Add(content element.Content) {
	keys, ok := content.EnvironmentKeys()
	if !ok {
		d.All = true
		return
	}
	for _, k := range keys {
		if !slices.Contains(d.Keys, k) {
			d.Keys = append(d.Keys, k)
		}
	}
}

// Merge adds other's keys to d.
func (d *Dependencies) Merge(other Dependencies) {
	d.All = d.All || other.All
	for _, k := range other.Keys {
		if !slices.Contains(d.Keys, k) {
			d.Keys = append(d.Keys, k)
		}
	}
}

// Unaffected reports whether a pass that read d would produce the same
// result under next as under prev.
func (d Dependencies) Unaffected(prev, next environment.Environment) bool {
	if d.All {
		return prev.Equal(next)
	}
	return prev.Equivalent(next, d.Keys...)
}
