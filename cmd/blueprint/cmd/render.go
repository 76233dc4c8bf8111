package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/go-drift/blueprint/cmd/blueprint/internal/scene"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/host"
	"github.com/go-drift/blueprint/pkg/metrics"
	"github.com/go-drift/blueprint/pkg/platform/headless"
)

// defaultWindow is the window size used when neither the scene nor the flags
// give one.
var defaultWindow = geometry.Size{Width: 800, Height: 600}

type renderOptions struct {
	*globalOptions
	width    float64
	height   float64
	scale    float64
	format   string
	detached bool
	metrics  bool
}

func newRenderCommand(global *globalOptions) *cobra.Command {
	opts := &renderOptions{globalOptions: global}
	cmd := &cobra.Command{
		Use:   "render <scene.yaml>",
		Short: "Lay out a scene and print the resulting view tree",
		Long: `Render loads a YAML scene, runs one update pass on the headless platform
and prints the native view hierarchy that the reconciler produced.

Animations are finished before printing, so disappearing views are gone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0])
		},
	}
	cmd.Flags().Float64Var(&opts.width, "width", 0, "window width (overrides the scene)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "window height (overrides the scene)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "device pixel ratio (overrides the config)")
	cmd.Flags().StringVar(&opts.format, "format", "tree", "output format: tree or yaml")
	cmd.Flags().BoolVar(&opts.detached, "detached", false, "keep the window detached so no lifecycle callbacks run")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print pass metrics in Prometheus text format after the tree")
	return cmd
}

func (o *renderOptions) run(out, errOut io.Writer, path string) error {
	if o.format != "tree" && o.format != "yaml" {
		return fmt.Errorf("unknown --format %q (use tree or yaml)", o.format)
	}
	s, err := scene.Load(path, Version)
	if err != nil {
		return err
	}
	el, err := s.Element()
	if err != nil {
		return err
	}
	cfg, err := o.hostConfig()
	if err != nil {
		return err
	}
	if o.scale > 0 {
		cfg.Scale = o.scale
	}
	logger, err := o.logger(cfg, errOut)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector("blueprint")
	if err := collector.Register(reg); err != nil {
		return err
	}

	p := headless.NewPlatform()
	h, err := host.New(p,
		host.WithConfig(cfg),
		host.WithLogger(logger),
		host.WithMetrics(collector),
		host.WithEnvironment(s.Environment.Apply(environment.Empty())),
	)
	if err != nil {
		return err
	}
	size := s.Size(defaultWindow)
	if o.width > 0 {
		size.Width = o.width
	}
	if o.height > 0 {
		size.Height = o.height
	}
	h.SetWindowAttached(!o.detached)
	h.SetElement(el)
	h.SetBounds(geometry.RectFromOriginSize(geometry.Point{}, size))
	p.RunLayout()
	p.FinishAnimations()
	logger.Debug("scene rendered", "scene", path, "passes", h.Passes(), "views", p.Created())

	snap := headless.TakeSnapshot(h.RootView())
	switch o.format {
	case "yaml":
		data, err := snap.YAML()
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	default:
		fmt.Fprintln(out, renderTree(snap))
	}
	if o.metrics {
		return writeMetrics(out, reg)
	}
	return nil
}

// writeMetrics encodes every gathered family in the Prometheus text format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
