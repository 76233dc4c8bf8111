package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-drift/blueprint/cmd/blueprint/internal/scene"
	"github.com/go-drift/blueprint/pkg/environment"
	"github.com/go-drift/blueprint/pkg/geometry"
	"github.com/go-drift/blueprint/pkg/host"
	"github.com/go-drift/blueprint/pkg/platform/headless"
)

type measureOptions struct {
	*globalOptions
	width  float64
	height float64
}

func newMeasureCommand(global *globalOptions) *cobra.Command {
	opts := &measureOptions{globalOptions: global}
	cmd := &cobra.Command{
		Use:   "measure <scene.yaml>",
		Short: "Print the size a scene's root element needs",
		Long: `Measure asks the host for the size that fits the given width and height
without building any views. A zero or missing dimension is unconstrained.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0])
		},
	}
	cmd.Flags().Float64Var(&opts.width, "width", 0, "available width (0 is unconstrained)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "available height (0 is unconstrained)")
	return cmd
}

func (o *measureOptions) run(out, errOut io.Writer, path string) error {
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
	logger, err := o.logger(cfg, errOut)
	if err != nil {
		return err
	}
	h, err := host.New(headless.NewPlatform(),
		host.WithConfig(cfg),
		host.WithLogger(logger),
		host.WithEnvironment(s.Environment.Apply(environment.Empty())),
	)
	if err != nil {
		return err
	}
	h.SetElement(el)
	size := h.SizeThatFits(geometry.Size{Width: o.width, Height: o.height})
	fmt.Fprintf(out, "%gx%g\n", size.Width, size.Height)
	return nil
}
