// Package layout measures and lays out element trees.
//
// An [Engine] runs one pass at a time. Within a pass every element is
// expanded at most once into an index-based node arena and every
// measurement is memoized per node and constraint, so layouts that measure a
// child under several trial constraints stay linear in tree size. The
// output of [Engine.Layout] is a [ResultTree] of positioned nodes.
package layout

import (
	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/errors"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// Stats counts engine work.
type Stats struct {
	// Nodes is the number of elements expanded.
	Nodes int
	// MeasureCalls is the number of measurements actually computed.
	MeasureCalls int
	// CacheHits is the number of measurements served from the pass cache.
	CacheHits int
}

// Add returns the sum of two stats.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Nodes:        s.Nodes + other.Nodes,
		MeasureCalls: s.MeasureCalls + other.MeasureCalls,
		CacheHits:    s.CacheHits + other.CacheHits,
	}
}

// Engine measures and lays out element trees. It is not safe for
// concurrent use; storage is reused between passes.
type Engine struct {
	pass  pass
	stats Stats
	last  Stats
	deps  Dependencies
}

// NewEngine creates an engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Stats returns the work done since the engine was created or last reset.
func (e *Engine) Stats() Stats {
	return e.stats
}

// LastPass returns the work done by the most recent Measure or Layout.
func (e *Engine) LastPass() Stats {
	return e.last
}

// LastDependencies returns the environment keys read by the most recent
// Measure or Layout.
func (e *Engine) LastDependencies() Dependencies {
	return e.deps
}

// ResetStats clears the accumulated stats.
func (e *Engine) ResetStats() {
	e.stats = Stats{}
	e.last = Stats{}
}

// Measure returns the size el wants under constraint.
func (e *Engine) Measure(el element.Element, constraint geometry.SizeConstraint, env environment.Environment) geometry.Size {
	p := e.begin(el, env)
	size := p.measure(0, constraint)
	e.end()
	return size
}

// Layout lays el out to fill frame and returns the positioned tree. The
// root node's attributes are frame itself.
func (e *Engine) Layout(el element.Element, frame geometry.Rect, env environment.Environment) *ResultTree {
	tree := &ResultTree{}
	e.LayoutInto(tree, el, frame, env)
	return tree
}

// LayoutInto is Layout writing into an existing tree, which is reset first.
func (e *Engine) LayoutInto(tree *ResultTree, el element.Element, frame geometry.Rect, env environment.Environment) {
	tree.Reset()
	p := e.begin(el, env)
	p.layout(tree, 0, geometry.NewLayoutAttributes(frame))
	e.end()
}

func (e *Engine) begin(el element.Element, env environment.Environment) *pass {
	p := &e.pass
	p.reset()
	p.push(element.Child{Element: el}, env)
	return p
}

func (e *Engine) end() {
	e.last = e.pass.stats
	e.stats = e.stats.Add(e.pass.stats)
	e.deps = e.pass.deps
}

type cacheEntry struct {
	constraint geometry.SizeConstraint
	size       geometry.Size
}

// contentNode is one element expanded in the current pass. Children occupy
// the contiguous range [first, first+count) of the pass arena once expanded.
type contentNode struct {
	element  element.Element
	content  element.Content
	key      any
	traits   any
	env      environment.Environment
	expanded bool
	first    int
	count    int
	cache    []cacheEntry
}

type pass struct {
	nodes []contentNode
	stats Stats
	deps  Dependencies
}

func (p *pass) reset() {
	clear(p.nodes)
	p.nodes = p.nodes[:0]
	p.stats = Stats{}
	p.deps = Dependencies{}
}

func (p *pass) push(child element.Child, env environment.Environment) int {
	if child.Adapt != nil {
		env = child.Adapt(env)
	}
	content := child.Element.Content()
	p.deps.Add(content)
	p.nodes = append(p.nodes, contentNode{
		element: child.Element,
		content: content,
		key:     child.Key,
		traits:  child.Traits,
		env:     env,
	})
	p.stats.Nodes++
	return len(p.nodes) - 1
}

// expand appends the children of node i to the arena. Indices stay valid;
// pointers into the arena do not survive an expansion.
func (p *pass) expand(i int) {
	if p.nodes[i].expanded {
		return
	}
	n := p.nodes[i]
	children := n.content.Children(n.env)
	first := len(p.nodes)
	for _, c := range children {
		p.push(c, n.env)
	}
	p.nodes[i].expanded = true
	p.nodes[i].first = first
	p.nodes[i].count = len(children)
}

func (p *pass) items(i int) []element.LayoutItem {
	p.expand(i)
	n := p.nodes[i]
	items := make([]element.LayoutItem, n.count)
	for j := range n.count {
		idx := n.first + j
		items[j] = element.LayoutItem{
			Traits:  p.nodes[idx].traits,
			Content: measurable{pass: p, index: idx},
		}
	}
	return items
}

func (p *pass) measure(i int, constraint geometry.SizeConstraint) geometry.Size {
	for _, entry := range p.nodes[i].cache {
		if entry.constraint == constraint {
			p.stats.CacheHits++
			return entry.size
		}
	}
	p.stats.MeasureCalls++

	var size geometry.Size
	content := p.nodes[i].content
	switch content.Kind() {
	case element.KindLeaf:
		size = content.Measure(constraint, p.nodes[i].env)
	case element.KindContainer, element.KindEnvironment:
		size = content.Layout().Measure(p.items(i), constraint)
	}
	p.nodes[i].cache = append(p.nodes[i].cache, cacheEntry{constraint: constraint, size: size})
	return size
}

func (p *pass) layout(tree *ResultTree, i int, attrs geometry.LayoutAttributes) int {
	n := p.nodes[i]
	index := tree.add(ResultNode{
		Element:     n.element,
		Key:         n.key,
		Attributes:  attrs,
		Environment: n.env,
	})

	switch n.content.Kind() {
	case element.KindContainer, element.KindEnvironment:
	default:
		return index
	}

	items := p.items(i)
	placed := n.content.Layout().Layout(attrs.Bounds, items)
	if len(placed) != len(items) {
		errors.Fatal("layout.Layout", "%T returned %d attributes for %d children of %s",
			n.content.Layout(), len(placed), len(items), element.TypeName(element.TypeOf(n.element)))
	}

	first := p.nodes[i].first
	start := tree.reserve(index, len(items))
	for j := range items {
		child := p.layout(tree, first+j, placed[j])
		tree.children[start+j] = child
	}
	return index
}

// measurable exposes one arena node to a layout.
type measurable struct {
	pass  *pass
	index int
}

func (m measurable) Measure(constraint geometry.SizeConstraint) geometry.Size {
	return m.pass.measure(m.index, constraint)
}
