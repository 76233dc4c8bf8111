// Package scene loads element trees from YAML scene files.
//
// A scene names the window size, optional environment overrides and a root
// node. Each node has a type and the fields that type understands:
//
//	blueprint: v0.1.0
//	width: 320
//	height: 200
//	root:
//	  type: column
//	  spacing: 8
//	  children:
//	    - type: label
//	      key: title
//	      text: Settings
//	    - type: box
//	      flex: 1
//	      background: "#eeeeee"
package scene

import (
	"fmt"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/blueprint/pkg/element"
	"github.com/go-drift/blueprint/pkg/elements"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/geometry"
)

// Scene is a decoded scene file.
type Scene struct {
	// Blueprint is the minimum tool version the scene needs, as a semantic
	// version such as "v0.1.0". Empty means any version.
	Blueprint   string      `yaml:"blueprint"`
	Width       float64     `yaml:"width"`
	Height      float64     `yaml:"height"`
	Environment Environment `yaml:"environment"`
	Root        Node        `yaml:"root"`
}

// Environment overrides the text metrics of the root environment.
type Environment struct {
	CellWidth  float64 `yaml:"cell_width"`
	LineHeight float64 `yaml:"line_height"`
}

// Apply returns env with the overrides set.
func (e Environment) Apply(env environment.Environment) environment.Environment {
	if e.CellWidth > 0 {
		env = environment.Set(env, elements.CellWidth, e.CellWidth)
	}
	if e.LineHeight > 0 {
		env = environment.Set(env, elements.LineHeight, e.LineHeight)
	}
	return env
}

// Node is one element in a scene.
type Node struct {
	Type string `yaml:"type"`
	Key  string `yaml:"key"`
	Flex int    `yaml:"flex"`

	Text     string `yaml:"text"`
	Color    string `yaml:"color"`
	Wrap     bool   `yaml:"wrap"`
	MaxLines int    `yaml:"max_lines"`

	Background string  `yaml:"background"`
	Radius     float64 `yaml:"radius"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Fade       bool    `yaml:"fade"`

	Spacing    float64 `yaml:"spacing"`
	Align      string  `yaml:"align"`
	CrossAlign string  `yaml:"cross_align"`
	Fill       bool    `yaml:"fill"`

	Padding float64 `yaml:"padding"`
	Alpha   float64 `yaml:"alpha"`
	Scale   float64 `yaml:"scale"`
	Hidden  bool    `yaml:"hidden"`

	Child    *Node  `yaml:"child"`
	Children []Node `yaml:"children"`
}

// Load reads and validates a scene file. toolVersion is the running tool's
// version and is compared against the scene's minimum version.
func Load(path, toolVersion string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data, toolVersion)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates scene data.
func Parse(data []byte, toolVersion string) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.checkVersion(toolVersion); err != nil {
		return nil, err
	}
	if s.Width < 0 || s.Height < 0 {
		return nil, fmt.Errorf("scene size must not be negative, got %vx%v", s.Width, s.Height)
	}
	if s.Root.Type == "" {
		return nil, fmt.Errorf("scene has no root node")
	}
	return &s, nil
}

func (s *Scene) checkVersion(toolVersion string) error {
	if s.Blueprint == "" {
		return nil
	}
	if !semver.IsValid(s.Blueprint) {
		return fmt.Errorf("blueprint: %q is not a semantic version", s.Blueprint)
	}
	// Development builds accept every scene.
	if !semver.IsValid(toolVersion) || semver.Prerelease(toolVersion) != "" {
		return nil
	}
	if semver.Compare(s.Blueprint, toolVersion) > 0 {
		return fmt.Errorf("scene requires blueprint %s, running %s", s.Blueprint, toolVersion)
	}
	return nil
}

// Size returns the scene size, or fallback for unset dimensions.
func (s *Scene) Size(fallback geometry.Size) geometry.Size {
	size := geometry.Size{Width: s.Width, Height: s.Height}
	if size.Width == 0 {
		size.Width = fallback.Width
	}
	if size.Height == 0 {
		size.Height = fallback.Height
	}
	return size
}

// Element builds the root element.
func (s *Scene) Element() (element.Element, error) {
	return Build(s.Root)
}

// Build converts n into an element.
func Build(n Node) (element.Element, error) {
	switch n.Type {
	case "box":
		b := elements.Box{
			BackgroundColor: n.Background,
			CornerRadius:    n.Radius,
			Size:            geometry.Size{Width: n.Width, Height: n.Height},
		}
		if n.Fade {
			fade := element.Fade()
			b.Appearing, b.Disappearing = &fade, &fade
		}
		wrapped, err := buildChild(n)
		if err != nil {
			return nil, err
		}
		b.Wrapped = wrapped
		return b, nil
	case "label":
		return elements.Label{Text: n.Text, Color: n.Color, Wrap: n.Wrap, MaxLines: n.MaxLines}, nil
	case "spacer":
		return elements.Spacer{Width: n.Width, Height: n.Height}, nil
	case "row", "column":
		return buildStack(n)
	case "overlay":
		children, err := buildStackChildren(n.Children)
		if err != nil {
			return nil, err
		}
		return elements.Overlay{Children: children}, nil
	case "inset":
		wrapped, err := buildChild(n)
		if err != nil {
			return nil, err
		}
		return elements.Uniform(n.Padding, wrapped), nil
	case "opacity":
		wrapped, err := buildChild(n)
		if err != nil {
			return nil, err
		}
		return elements.Opacity{Wrapped: wrapped, Alpha: n.Alpha}, nil
	case "scale":
		wrapped, err := buildChild(n)
		if err != nil {
			return nil, err
		}
		return elements.Transformed{Wrapped: wrapped, Transform: geometry.ScaleTransform(n.Scale, n.Scale)}, nil
	case "hidden":
		wrapped, err := buildChild(n)
		if err != nil {
			return nil, err
		}
		return elements.Hidden{Wrapped: wrapped, IsHidden: true}, nil
	case "":
		return nil, fmt.Errorf("node has no type")
	default:
		return nil, fmt.Errorf("unknown node type %q", n.Type)
	}
}

func buildChild(n Node) (element.Element, error) {
	if n.Child == nil {
		return nil, nil
	}
	el, err := Build(*n.Child)
	if err != nil {
		return nil, fmt.Errorf("%s.child: %w", n.Type, err)
	}
	return el, nil
}

func buildStack(n Node) (element.Element, error) {
	children, err := buildStackChildren(n.Children)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", n.Type, err)
	}
	main, err := parseMainAlignment(n.Align)
	if err != nil {
		return nil, err
	}
	cross, err := parseCrossAlignment(n.CrossAlign)
	if err != nil {
		return nil, err
	}
	size := elements.MainAxisSizeMin
	if n.Fill {
		size = elements.MainAxisSizeMax
	}
	if n.Type == "row" {
		return elements.Row{Children: children, Spacing: n.Spacing, MainAxisAlignment: main, CrossAxisAlignment: cross, MainAxisSize: size}, nil
	}
	return elements.Column{Children: children, Spacing: n.Spacing, MainAxisAlignment: main, CrossAxisAlignment: cross, MainAxisSize: size}, nil
}

func buildStackChildren(nodes []Node) ([]elements.StackChild, error) {
	out := make([]elements.StackChild, 0, len(nodes))
	for i, c := range nodes {
		el, err := Build(c)
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i, err)
		}
		child := elements.StackChild{Element: el, Flex: c.Flex}
		if c.Key != "" {
			child.Key = c.Key
		}
		out = append(out, child)
	}
	return out, nil
}

func parseMainAlignment(s string) (elements.MainAxisAlignment, error) {
	for _, a := range []elements.MainAxisAlignment{
		elements.MainAxisAlignmentStart,
		elements.MainAxisAlignmentEnd,
		elements.MainAxisAlignmentCenter,
		elements.MainAxisAlignmentSpaceBetween,
		elements.MainAxisAlignmentSpaceAround,
		elements.MainAxisAlignmentSpaceEvenly,
	} {
		if s == a.String() {
			return a, nil
		}
	}
	if s == "" {
		return elements.MainAxisAlignmentStart, nil
	}
	return 0, fmt.Errorf("unknown align %q", s)
}

func parseCrossAlignment(s string) (elements.CrossAxisAlignment, error) {
	for _, a := range []elements.CrossAxisAlignment{
		elements.CrossAxisAlignmentStart,
		elements.CrossAxisAlignmentEnd,
		elements.CrossAxisAlignmentCenter,
		elements.CrossAxisAlignmentStretch,
	} {
		if s == a.String() {
			return a, nil
		}
	}
	if s == "" {
		return elements.CrossAxisAlignmentStart, nil
	}
	return 0, fmt.Errorf("unknown cross_align %q", s)
}
