package headless

import (
	"fmt"

	"github.com/go-drift/blueprint/pkg/animation"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// OpKind identifies a recorded platform mutation.
type OpKind int

const (
	// OpCreate records a view created by CreateView.
	OpCreate OpKind = iota
	// OpInsert records InsertSubview, including moves within one superview.
	OpInsert
	// OpRemove records RemoveFromSuperview.
	OpRemove
	// OpApply records a change of layout attributes.
	OpApply
	// OpSetProperty records a changed property binding.
	OpSetProperty
	// OpAnimate records the start of an animation block.
	OpAnimate
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpApply:
		return "apply"
	case OpSetProperty:
		return "set"
	case OpAnimate:
		return "animate"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one recorded mutation.
type Op struct {
	Kind       OpKind
	ViewID     int64
	ViewType   string
	ParentID   int64
	Index      int
	Name       string
	Value      any
	Attributes geometry.LayoutAttributes
	Animated   bool
	Animation  animation.Animation
}

func (o Op) String() string {
	switch o.Kind {
	case OpInsert:
		return fmt.Sprintf("insert %s#%d into #%d at %d", o.ViewType, o.ViewID, o.ParentID, o.Index)
	case OpRemove:
		return fmt.Sprintf("remove %s#%d from #%d", o.ViewType, o.ViewID, o.ParentID)
	case OpSetProperty:
		return fmt.Sprintf("set %s#%d %s=%v", o.ViewType, o.ViewID, o.Name, o.Value)
	case OpApply:
		return fmt.Sprintf("apply %s#%d frame=%v animated=%t", o.ViewType, o.ViewID, o.Attributes.Frame(), o.Animated)
	case OpAnimate:
		return fmt.Sprintf("animate %s", o.Animation)
	default:
		return fmt.Sprintf("%s %s#%d", o.Kind, o.ViewType, o.ViewID)
	}
}

func (p *Platform) record(op Op) {
	p.ops = append(p.ops, op)
}

// Ops returns every mutation recorded since the last ResetOps.
func (p *Platform) Ops() []Op {
	return append([]Op(nil), p.ops...)
}

// OpsOfKind returns the recorded mutations of one kind.
func (p *Platform) OpsOfKind(kind OpKind) []Op {
	var out []Op
	for _, op := range p.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// CountOps returns how many mutations of kind were recorded.
func (p *Platform) CountOps(kind OpKind) int {
	n := 0
	for _, op := range p.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// ResetOps clears the mutation log.
func (p *Platform) ResetOps() {
	p.ops = nil
}
