package platform_test

import (
	"testing"

	"github.com/go-drift/blueprint/pkg/platform"
	"github.com/go-drift/blueprint/pkg/platform/headless"
)

func TestIndexOf(t *testing.T) {
	p := headless.NewPlatform()
	parent := p.NewView("parent")
	a := p.NewView("a")
	b := p.NewView("b")
	parent.InsertSubview(a, 0)
	parent.InsertSubview(b, 1)

	if got := platform.IndexOf(parent, b); got != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", got)
	}
	if got := platform.IndexOf(parent, p.NewView("c")); got != -1 {
		t.Errorf("IndexOf(detached) = %d, want -1", got)
	}
	if got := platform.IndexOf(nil, a); got != -1 {
		t.Errorf("IndexOf(nil parent) = %d, want -1", got)
	}
}
