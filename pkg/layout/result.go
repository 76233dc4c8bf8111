package layout

import (
	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// ResultNode is one positioned element.
type ResultNode struct {
	Element element.Element
	// Key is the key the element was declared with by its parent.
	Key any
	// Attributes are expressed in the parent's local coordinate space.
	Attributes  geometry.LayoutAttributes
	Environment environment.Environment

	first int
	count int
}

// ResultTree is the output of a layout pass. Nodes live in one slice and
// each node's children are a contiguous range of indices; the root is at
// index 0.
type ResultTree struct {
	nodes    []ResultNode
	children []int
}

// Root returns the index of the root node.
func (t *ResultTree) Root() int {
	return 0
}

// Len returns the number of nodes.
func (t *ResultTree) Len() int {
	return len(t.nodes)
}

// Node returns node i. The pointer is valid until the tree is reset.
func (t *ResultTree) Node(i int) *ResultNode {
	return &t.nodes[i]
}

// Children returns the indices of node i's children in declaration order.
func (t *ResultTree) Children(i int) []int {
	n := t.nodes[i]
	return t.children[n.first : n.first+n.count]
}

// Reset empties the tree, keeping its storage.
func (t *ResultTree) Reset() {
	clear(t.nodes)
	t.nodes = t.nodes[:0]
	t.children = t.children[:0]
}

// Walk visits every node depth-first, parents before children.
func (t *ResultTree) Walk(fn func(index, depth int)) {
	if len(t.nodes) == 0 {
		return
	}
	var walk func(i, depth int)
	walk = func(i, depth int) {
		fn(i, depth)
		for _, c := range t.Children(i) {
			walk(c, depth+1)
		}
	}
	walk(t.Root(), 0)
}

func (t *ResultTree) add(n ResultNode) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *ResultTree) reserve(parent, count int) int {
	start := len(t.children)
	for range count {
		t.children = append(t.children, -1)
	}
	t.nodes[parent].first = start
	t.nodes[parent].count = count
	return start
}
