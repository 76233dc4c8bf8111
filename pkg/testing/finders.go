package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/platform"
	"github.com/go-drift/blueprint/pkg/reconcile"
)

// Finder locates controllers in the reconciled view tree.
type Finder interface {
	// Evaluate returns all matching controllers under root (depth-first pre-order).
	Evaluate(root *reconcile.Controller) []*reconcile.Controller
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	controllers []*reconcile.Controller
	finder      Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *reconcile.Controller {
	if len(r.controllers) == 0 {
		panic(fmt.Sprintf("Finder found no views: %s", r.description()))
	}
	return r.controllers[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *reconcile.Controller {
	if len(r.controllers) == 0 {
		return nil
	}
	return r.controllers[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *reconcile.Controller {
	if index < 0 || index >= len(r.controllers) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.controllers), r.description()))
	}
	return r.controllers[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*reconcile.Controller {
	return r.controllers
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.controllers)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.controllers) > 0
}

// View returns the view of the first match. Panics if no matches.
func (r FinderResult) View() platform.View {
	return r.First().View()
}

// Frame returns the frame of the first match in its superview's
// coordinate space. Panics if no matches.
func (r FinderResult) Frame() geometry.Rect {
	return r.View().LayoutAttributes().Frame()
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// --- Concrete finders ---

// viewTypeFinder matches controllers whose view has the given type.
type viewTypeFinder struct {
	viewType string
}

func (f *viewTypeFinder) Evaluate(root *reconcile.Controller) []*reconcile.Controller {
	return collectMatches(root, func(c *reconcile.Controller) bool {
		return c.View().ViewType() == f.viewType
	})
}

func (f *viewTypeFinder) Description() string {
	return fmt.Sprintf("ByViewType(%s)", f.viewType)
}

// ByViewType returns a finder that matches views of viewType.
func ByViewType(viewType string) Finder {
	return &viewTypeFinder{viewType: viewType}
}

// elementTypeFinder matches controllers described by an element of type T.
type elementTypeFinder struct {
	elementType element.Type
}

func (f *elementTypeFinder) Evaluate(root *reconcile.Controller) []*reconcile.Controller {
	return collectMatches(root, func(c *reconcile.Controller) bool {
		return c.Node().ElementType == f.elementType
	})
}

func (f *elementTypeFinder) Description() string {
	return fmt.Sprintf("ByElementType(%s)", f.elementType)
}

// ByElementType returns a finder that matches views described by an
// element of type T.
func ByElementType[T element.Element]() Finder {
	return &elementTypeFinder{elementType: reflect.TypeFor[T]()}
}

// keyFinder matches controllers whose element was declared with key.
type keyFinder struct {
	key any
}

func (f *keyFinder) Evaluate(root *reconcile.Controller) []*reconcile.Controller {
	return collectMatches(root, func(c *reconcile.Controller) bool {
		ids := c.Path().Identifiers()
		if len(ids) == 0 {
			return false
		}
		k := ids[len(ids)-1].Key
		if k == nil || f.key == nil {
			return k == f.key
		}
		// Guard against non-comparable types (slices, maps, funcs).
		if !reflect.TypeOf(k).Comparable() || !reflect.TypeOf(f.key).Comparable() {
			return reflect.DeepEqual(k, f.key)
		}
		return k == f.key
	})
}

func (f *keyFinder) Description() string {
	return fmt.Sprintf("ByKey(%v)", f.key)
}

// ByKey returns a finder that matches views whose element key equals key.
func ByKey(key any) Finder {
	return &keyFinder{key: key}
}

// propertyFinder matches views whose bound property equals a value.
type propertyFinder struct {
	name  string
	value any
}

func (f *propertyFinder) Evaluate(root *reconcile.Controller) []*reconcile.Controller {
	return collectMatches(root, func(c *reconcile.Controller) bool {
		v, ok := c.View().Property(f.name)
		return ok && reflect.DeepEqual(v, f.value)
	})
}

func (f *propertyFinder) Description() string {
	return fmt.Sprintf("ByProperty(%s=%v)", f.name, f.value)
}

// ByProperty returns a finder that matches views whose property name was
// bound to value.
func ByProperty(name string, value any) Finder {
	return &propertyFinder{name: name, value: value}
}

// ByText returns a finder that matches views whose "text" property is text.
func ByText(text string) Finder {
	return &propertyFinder{name: "text", value: text}
}

// textContainingFinder matches views whose text property contains substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root *reconcile.Controller) []*reconcile.Controller {
	return collectMatches(root, func(c *reconcile.Controller) bool {
		v, ok := c.View().Property("text")
		if !ok {
			return false
		}
		s, ok := v.(string)
		return ok && strings.Contains(s, f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches views whose "text"
// property contains substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// predicateFinder matches controllers satisfying a predicate.
type predicateFinder struct {
	fn   func(*reconcile.Controller) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *reconcile.Controller) []*reconcile.Controller {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches controllers satisfying fn.
func ByPredicate(fn func(*reconcile.Controller) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds controllers matching 'matching' that are
// descendants of controllers matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *reconcile.Controller) []*reconcile.Controller {
	var results []*reconcile.Controller
	seen := make(map[*reconcile.Controller]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		// Search within each ancestor's subtree, skipping the ancestor itself.
		for _, child := range ancestor.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches controllers found by matching
// inside the subtrees of controllers found by of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

func collectMatches(root *reconcile.Controller, pred func(*reconcile.Controller) bool) []*reconcile.Controller {
	var out []*reconcile.Controller
	root.Traverse(func(c *reconcile.Controller, _ int) {
		if pred(c) {
			out = append(out, c)
		}
	})
	return out
}
