// Package element defines the declarative building blocks of Blueprint.
//
// An [Element] is an immutable value describing one node of UI: its
// [Content] (a measured leaf, a container of children placed by a [Layout],
// or content derived from the environment) and an optional
// [ViewDescription] naming the native view that backs it. Element trees are
// rebuilt on every pass; identity across passes comes from element types and
// child keys, never from element values.
package element

import (
	"reflect"

	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// Element is one node of declared UI.
type Element interface {
	// Content returns the element's children and layout, or its leaf measurement.
	Content() Content

	// ViewDescription returns the native view backing the element, or nil
	// when the element only contributes geometry.
	ViewDescription(ctx ViewDescriptionContext) *ViewDescription
}

// ViewDescriptionContext is passed to [Element.ViewDescription] once layout
// has resolved the element's final size.
type ViewDescriptionContext struct {
	// Bounds is the element's local bounds, with its origin at zero.
	Bounds geometry.Rect
	// SubtreeExtent is the union of the element's direct children's frames
	// in local coordinates, or nil for elements without children.
	SubtreeExtent *geometry.Rect
	// Environment is the environment active at the element.
	Environment environment.Environment
}

// Type identifies a concrete element type. It is used only to decide
// whether two elements at the same position are the same logical node.
type Type = reflect.Type

// TypeOf returns the type identifier of el.
func TypeOf(el Element) Type {
	return reflect.TypeOf(el)
}

// TypeName returns a short, human readable name for an element type.
func TypeName(t Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}
