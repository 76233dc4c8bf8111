// Package resolve flattens a laid-out element tree into the view-backed
// nodes the reconciler works with.
//
// Every element contributes geometry, but only elements that return a view
// description survive flattening. The attributes of the elements in between
// fold into their view-backed descendants, and each survivor is identified
// by an [ElementPath] relative to its nearest view-backed ancestor.
package resolve

import (
	"reflect"

	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/errors"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/layout"
)

// NativeViewNode is one view-backed element after flattening.
type NativeViewNode struct {
	// ElementType is the type of the element that described the view.
	ElementType element.Type
	Description *element.ViewDescription
	// Attributes are expressed in the coordinate space of the parent's
	// content view.
	Attributes  geometry.LayoutAttributes
	Environment environment.Environment
	Children    []PathNode
}

// PathNode pairs a flattened node with its path.
type PathNode struct {
	Path ElementPath
	Node *NativeViewNode
}

// Resolve flattens tree. The root element's identifier starts every
// top-level path.
func Resolve(tree *layout.ResultTree) []PathNode {
	if tree.Len() == 0 {
		return nil
	}
	root := tree.Node(tree.Root())
	id := Identifier{Type: element.TypeOf(root.Element), Key: root.Key}
	checkKey(id)
	r := resolver{tree: tree}
	out := r.node(tree.Root(), NewPath(id), root.Attributes)
	CheckUnique("resolve.Resolve", out)
	return out
}

type resolver struct {
	tree *layout.ResultTree
}

func (r resolver) node(i int, path ElementPath, attrs geometry.LayoutAttributes) []PathNode {
	n := r.tree.Node(i)
	children := r.tree.Children(i)
	ids := Identifiers(r.tree, children)

	ctx := element.ViewDescriptionContext{
		Bounds:      geometry.RectFromOriginSize(geometry.Point{}, attrs.Bounds),
		Environment: n.Environment,
	}
	if len(children) > 0 {
		extent := r.tree.Node(children[0]).Attributes.Frame()
		for _, c := range children[1:] {
			extent = extent.Union(r.tree.Node(c).Attributes.Frame())
		}
		ctx.SubtreeExtent = &extent
	}

	desc := n.Element.ViewDescription(ctx)
	if desc == nil {
		var out []PathNode
		for j, c := range children {
			childAttrs := r.tree.Node(c).Attributes.Within(attrs)
			out = append(out, r.node(c, path.Append(ids[j]), childAttrs)...)
		}
		return out
	}

	var flattened []PathNode
	for j, c := range children {
		flattened = append(flattened, r.node(c, NewPath(ids[j]), r.tree.Node(c).Attributes)...)
	}
	CheckUnique("resolve.Resolve", flattened)
	return []PathNode{{
		Path: path,
		Node: &NativeViewNode{
			ElementType: element.TypeOf(n.Element),
			Description: desc,
			Attributes:  attrs,
			Environment: n.Environment,
			Children:    flattened,
		},
	}}
}

// Identifiers returns the identifiers of the given sibling nodes. Unkeyed
// siblings of the same type are numbered in declaration order; keyed
// siblings always have a count of zero.
func Identifiers(tree *layout.ResultTree, siblings []int) []Identifier {
	ids := make([]Identifier, len(siblings))
	var counts map[element.Type]int
	for j, c := range siblings {
		n := tree.Node(c)
		id := Identifier{Type: element.TypeOf(n.Element), Key: n.Key}
		checkKey(id)
		if id.Key == nil {
			if counts == nil {
				counts = make(map[element.Type]int)
			}
			id.Count = counts[id.Type]
			counts[id.Type]++
		}
		ids[j] = id
	}
	return ids
}

func checkKey(id Identifier) {
	if id.Key != nil && !reflect.TypeOf(id.Key).Comparable() {
		errors.Fatal("resolve.Identifier", "key of type %T on %s is not comparable", id.Key, element.TypeName(id.Type))
	}
}

// CheckUnique fails fatally when two siblings share a path.
func CheckUnique(op string, nodes []PathNode) {
	if len(nodes) < 2 {
		return
	}
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if _, dup := seen[n.Path.Key()]; dup {
			errors.Fatal(op, "duplicate element path %s among siblings; keys must be unique", n.Path)
		}
		seen[n.Path.Key()] = struct{}{}
	}
}

// Walk visits every flattened node depth-first, parents first.
func Walk(nodes []PathNode, fn func(n PathNode, depth int)) {
	var walk func(nodes []PathNode, depth int)
	walk = func(nodes []PathNode, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.Node.Children, depth+1)
		}
	}
	walk(nodes, 0)
}

// Count returns the number of flattened nodes.
func Count(nodes []PathNode) int {
	total := 0
	Walk(nodes, func(PathNode, int) { total++ })
	return total
}
