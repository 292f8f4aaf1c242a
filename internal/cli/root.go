package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/achimpruben/monte-carlo-sims/internal/geom"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// ConfigPath points at an optional YAML config file.
	ConfigPath string

	// Backend and LogPath override the config file when non-empty.
	Backend string
	LogPath string

	// Seed fixes the random stream when >= 0.
	Seed int64
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the mcsim CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Seed: -1}

	cmd := &cobra.Command{
		Use:   "mcsim",
		Short: "Monte Carlo geometry estimates",
		Long: `Estimate circle and ellipse areas, sphere volumes and π by Monte Carlo sampling.

Every circle estimate appends its π estimate to a convergence log, which
can be listed with "mcsim log show" and cleared with "mcsim log reset".`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				err := fmt.Errorf("invalid format %q: must be one of %v: %w", opts.Format, ValidFormats, geom.ErrInvalidInput)
				return newFormatter(opts, cmd).Fail("invalid arguments", err)
			}
			return nil
		},
	}

	// Malformed flag values ("--radius abc") are invalid input, reported like
	// any other rejected parameter.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newFormatter(opts, c).Fail("invalid arguments", fmt.Errorf("%w: %w", geom.ErrInvalidInput, err))
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "mcsim.yaml", "path to YAML config file (ignored if missing)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "convergence log backend (csv|sqlite|memory)")
	cmd.PersistentFlags().StringVar(&opts.LogPath, "log", "", "convergence log path")
	cmd.PersistentFlags().Int64Var(&opts.Seed, "seed", -1, "random seed (-1 = random)")

	// Add subcommands
	cmd.AddCommand(NewCircleCommand(opts))
	cmd.AddCommand(NewEllipseCommand(opts))
	cmd.AddCommand(NewSphereCommand(opts))
	cmd.AddCommand(NewLogCommand(opts))
	cmd.AddCommand(NewSweepCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// Execute runs the mcsim command tree with args and returns the process
// exit code. Errors that did not go through the output formatter (unknown
// commands, wrong argument counts) are printed to stderr as usage errors.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	return exitErr.Code
}
