package resolve

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/blueprint/pkg/element"
)

// Identifier names one element among its siblings: its type, the key it
// was declared with, and an ordinal separating unkeyed siblings of the same
// type in declaration order.
type Identifier struct {
	Type  element.Type
	Key   any
	Count int
}

// canonical returns a string that is equal for equal identifiers.
func (id Identifier) canonical() string {
	var b strings.Builder
	b.WriteString(typeKey(id.Type))
	if id.Key != nil {
		fmt.Fprintf(&b, "[%T:%#v]", id.Key, id.Key)
	}
	if id.Count != 0 {
		fmt.Fprintf(&b, "#%d", id.Count)
	}
	return b.String()
}

func (id Identifier) String() string {
	s := element.TypeName(id.Type)
	if id.Key != nil {
		s += fmt.Sprintf("[%v]", id.Key)
	}
	if id.Count != 0 {
		s += fmt.Sprintf("#%d", id.Count)
	}
	return s
}

func typeKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Pointer {
		return "*" + typeKey(t.Elem())
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// ElementPath is the sequence of identifiers from the nearest view-backed
// ancestor down to a view-backed element. Two nodes in consecutive passes
// are the same logical view when their paths are equal and their view types
// match.
type ElementPath struct {
	ids []Identifier
	key string
}

// NewPath returns a path of the given identifiers.
func NewPath(ids ...Identifier) ElementPath {
	var p ElementPath
	for _, id := range ids {
		p = p.Append(id)
	}
	return p
}

// Append returns p extended by id. p is not modified.
func (p ElementPath) Append(id Identifier) ElementPath {
	ids := make([]Identifier, len(p.ids), len(p.ids)+1)
	copy(ids, p.ids)
	key := id.canonical()
	if p.key != "" {
		key = p.key + "/" + key
	}
	return ElementPath{ids: append(ids, id), key: key}
}

// Identifiers returns the identifiers of the path.
func (p ElementPath) Identifiers() []Identifier {
	return p.ids
}

// Len returns the number of identifiers.
func (p ElementPath) Len() int {
	return len(p.ids)
}

// IsEmpty reports whether the path has no identifiers.
func (p ElementPath) IsEmpty() bool {
	return len(p.ids) == 0
}

// Key returns a string that is equal for equal paths, for use as a map key.
func (p ElementPath) Key() string {
	return p.key
}

// Equal reports whether two paths identify the same element.
func (p ElementPath) Equal(other ElementPath) bool {
	return p.key == other.key
}

func (p ElementPath) String() string {
	parts := make([]string, len(p.ids))
	for i, id := range p.ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, "/")
}
