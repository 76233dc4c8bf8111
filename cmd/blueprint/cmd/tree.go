package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/go-drift/blueprint/pkg/platform/headless"
)

var (
	typeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	frameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	propStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hiddenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginRight(1)
)

// renderTree draws the snapshot as an indented tree, one view per line.
func renderTree(s headless.Snapshot) string {
	return viewTree(s).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(branchStyle).
		String()
}

func viewTree(s headless.Snapshot) *tree.Tree {
	t := tree.Root(viewLabel(s))
	for _, sub := range s.Subviews {
		t.Child(viewTree(sub))
	}
	return t
}

// viewLabel formats one view as "type frame props", for example
// "blueprint.label (0,0 64x16) text=Settings".
func viewLabel(s headless.Snapshot) string {
	parts := []string{
		typeStyle.Render(s.Type),
		frameStyle.Render(fmt.Sprintf("(%g,%g %gx%g)", s.Frame[0], s.Frame[1], s.Frame[2], s.Frame[3])),
	}
	if s.Alpha != 1 {
		parts = append(parts, propStyle.Render(fmt.Sprintf("alpha=%g", s.Alpha)))
	}
	if s.Hidden {
		parts = append(parts, hiddenStyle.Render("hidden"))
	}
	for _, name := range s.PropertyNames() {
		parts = append(parts, propStyle.Render(fmt.Sprintf("%s=%v", name, s.Properties[name])))
	}
	return strings.Join(parts, " ")
}
