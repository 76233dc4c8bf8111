// Package cmd implements the blueprint CLI commands.
//
// The root command carries the flags shared by every subcommand and
// dispatches to render, measure and version.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-drift/blueprint/pkg/host"
)

// Version information set at build time.
var (
	Version   = "v0.1.0-dev"
	BuildTime = "unknown"
)

// globalOptions are the persistent flags of the root command.
type globalOptions struct {
	configPath string
	logLevel   string
	color      string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "blueprint",
		Short: "Render declarative element scenes into native view trees",
		Long: `blueprint lays out a YAML scene, flattens it into view-backed nodes and
reconciles them into an in-memory view hierarchy, then prints the result.

Use "blueprint <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.applyColor(cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "host config file (YAML)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides the config file)")
	root.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize output: auto, always or never")

	root.AddCommand(newRenderCommand(opts), newMeasureCommand(opts), newVersionCommand())
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// hostConfig loads the config file, if any, and applies --log-level.
func (o *globalOptions) hostConfig() (host.Config, error) {
	cfg := host.DefaultConfig()
	if o.configPath != "" {
		loaded, err := host.LoadConfig(o.configPath)
		if err != nil {
			return host.Config{}, err
		}
		cfg = loaded
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
		if err := cfg.Validate(); err != nil {
			return host.Config{}, err
		}
	}
	return cfg, nil
}

// logger writes leveled text logs to w.
func (o *globalOptions) logger(cfg host.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func (o *globalOptions) applyColor(out io.Writer) error {
	switch o.color {
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "auto":
		if !isTerminal(out) {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	default:
		return fmt.Errorf("unknown --color %q (use auto, always or never)", o.color)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of blueprint",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blueprint version %s (built %s)\n", Version, BuildTime)
		},
	}
}
