// Package environment provides the cascading, typed key-value store that is
// passed alongside an element tree during measurement, layout and view
// description.
//
// Values are read with [Get] and written with [Set], which returns a new
// Environment; an Environment is never mutated in place, so a subtree can
// adapt the environment for its children without affecting siblings:
//
//	var ThemeColor = environment.NewKey("themeColor", "black")
//
//	env = environment.Set(env, ThemeColor, "teal")
//	color := environment.Get(env, ThemeColor)
package environment

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// AnyKey is implemented by every *Key[V]. It lets heterogeneous keys be
// passed to [Environment.Equivalent].
type AnyKey interface {
	Name() string
	equalValues(a, b any) bool
	defaultAny() any
}

// Key identifies a typed environment value. Keys compare by pointer identity,
// so create each key once, usually as a package-level variable.
type Key[V any] struct {
	name         string
	defaultValue V
	equal        func(a, b V) bool
}

// NewKey creates a key whose unset value is defaultValue. Values are compared
// with reflect.DeepEqual unless [Key.WithEqual] supplies a comparison.
func NewKey[V any](name string, defaultValue V) *Key[V] {
	return &Key[V]{name: name, defaultValue: defaultValue}
}

// WithEqual sets the comparison used by equality checks and returns k.
func (k *Key[V]) WithEqual(equal func(a, b V) bool) *Key[V] {
	k.equal = equal
	return k
}

// Name returns the key's debugging name.
func (k *Key[V]) Name() string {
	return k.name
}

// Default returns the value read when the key is unset.
func (k *Key[V]) Default() V {
	return k.defaultValue
}

func (k *Key[V]) equalValues(a, b any) bool {
	av, aok := a.(V)
	bv, bok := b.(V)
	if !aok || !bok {
		return aok == bok
	}
	if k.equal != nil {
		return k.equal(av, bv)
	}
	return reflect.DeepEqual(av, bv)
}

// Environment is an immutable set of key-value pairs. The zero value is an
// empty environment in which every key reads as its default.
type Environment struct {
	values map[AnyKey]any
}

// Empty returns an environment with no values set.
func Empty() Environment {
	return Environment{}
}

// Get returns the value for key in env, or the key's default when unset.
func Get[V any](env Environment, key *Key[V]) V {
	if v, ok := env.values[key]; ok {
		return v.(V)
	}
	return key.defaultValue
}

// Lookup returns the value for key and whether it was explicitly set.
func Lookup[V any](env Environment, key *Key[V]) (V, bool) {
	v, ok := env.values[key]
	if !ok {
		return key.defaultValue, false
	}
	return v.(V), true
}

// Set returns a copy of env with key set to value.
func Set[V any](env Environment, key *Key[V], value V) Environment {
	values := make(map[AnyKey]any, len(env.values)+1)
	for k, v := range env.values {
		values[k] = v
	}
	values[key] = value
	return Environment{values: values}
}

// Merge returns env with every value set in overrides applied on top.
func (env Environment) Merge(overrides Environment) Environment {
	if len(overrides.values) == 0 {
		return env
	}
	if len(env.values) == 0 {
		return overrides
	}
	values := make(map[AnyKey]any, len(env.values)+len(overrides.values))
	for k, v := range env.values {
		values[k] = v
	}
	for k, v := range overrides.values {
		values[k] = v
	}
	return Environment{values: values}
}

// Len returns the number of explicitly set keys.
func (env Environment) Len() int {
	return len(env.values)
}

// Equal reports whether env and other hold equal values for every key set
// in either of them.
func (env Environment) Equal(other Environment) bool {
	if len(env.values) == 0 && len(other.values) == 0 {
		return true
	}
	keys := make(map[AnyKey]struct{}, len(env.values)+len(other.values))
	for k := range env.values {
		keys[k] = struct{}{}
	}
	for k := range other.values {
		keys[k] = struct{}{}
	}
	for k := range keys {
		if !env.valueEqual(other, k) {
			return false
		}
	}
	return true
}

// Equivalent reports whether env and other agree on the given keys only.
// Keys that are unset on both sides are equal; a key set on one side is
// compared against the other side's default.
func (env Environment) Equivalent(other Environment, keys ...AnyKey) bool {
	for _, k := range keys {
		if !env.valueEqual(other, k) {
			return false
		}
	}
	return true
}

func (env Environment) valueEqual(other Environment, k AnyKey) bool {
	a, aok := env.values[k]
	b, bok := other.values[k]
	switch {
	case !aok && !bok:
		return true
	case !aok:
		a = k.defaultAny()
	case !bok:
		b = k.defaultAny()
	}
	return k.equalValues(a, b)
}

func (k *Key[V]) defaultAny() any {
	return k.defaultValue
}

func (env Environment) String() string {
	parts := make([]string, 0, len(env.values))
	for k, v := range env.values {
		parts = append(parts, fmt.Sprintf("%s=%v", k.Name(), v))
	}
	sort.Strings(parts)
	return "[" + strings.Join(parts, " ") + "]"
}
