package environment

import (
	"strings"
	"testing"
)

var (
	colorKey = NewKey("color", "black")
	scaleKey = NewKey("scale", 1.0)
	tagsKey  = NewKey[[]string]("tags", nil)
)

func TestGetReturnsDefaultWhenUnset(t *testing.T) {
	var env Environment
	if got := Get(env, colorKey); got != "black" {
		t.Errorf("Get = %q, want default", got)
	}
	if _, ok := Lookup(env, colorKey); ok {
		t.Error("Lookup reported unset key as set")
	}
}

func TestSetIsCopyOnWrite(t *testing.T) {
	base := Set(Empty(), colorKey, "red")
	derived := Set(base, colorKey, "blue")

	if got := Get(base, colorKey); got != "red" {
		t.Errorf("base mutated: %q", got)
	}
	if got := Get(derived, colorKey); got != "blue" {
		t.Errorf("derived = %q", got)
	}
}

func TestEqual(t *testing.T) {
	a := Set(Set(Empty(), colorKey, "red"), tagsKey, []string{"x"})
	b := Set(Set(Empty(), tagsKey, []string{"x"}), colorKey, "red")
	if !a.Equal(b) {
		t.Error("expected environments with equal values to be equal")
	}
	if a.Equal(Set(b, scaleKey, 2.0)) {
		t.Error("extra key with non-default value should differ")
	}
	if !a.Equal(Set(b, scaleKey, 1.0)) {
		t.Error("key explicitly set to its default should equal unset")
	}
}

func TestEquivalentComparesOnlyNamedKeys(t *testing.T) {
	a := Set(Set(Empty(), colorKey, "red"), scaleKey, 2.0)
	b := Set(Set(Empty(), colorKey, "red"), scaleKey, 3.0)

	if !a.Equivalent(b, colorKey) {
		t.Error("expected equivalence on color")
	}
	if a.Equivalent(b, colorKey, scaleKey) {
		t.Error("expected difference on scale")
	}
}

func TestCustomEquality(t *testing.T) {
	loose := NewKey("loose", 0.0).WithEqual(func(a, b float64) bool {
		d := a - b
		return d < 0.5 && d > -0.5
	})
	a := Set(Empty(), loose, 1.0)
	b := Set(Empty(), loose, 1.2)
	if !a.Equivalent(b, loose) {
		t.Error("custom equality not used")
	}
}

func TestMerge(t *testing.T) {
	base := Set(Set(Empty(), colorKey, "red"), scaleKey, 2.0)
	merged := base.Merge(Set(Empty(), colorKey, "green"))
	if Get(merged, colorKey) != "green" || Get(merged, scaleKey) != 2.0 {
		t.Errorf("Merge = %s", merged)
	}
	if merged.Len() != 2 {
		t.Errorf("Len = %d", merged.Len())
	}
	if !strings.Contains(merged.String(), "color=green") {
		t.Errorf("String = %s", merged)
	}
}
