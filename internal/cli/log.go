package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/achimpruben/monte-carlo-sims/internal/convergence"
)

// LogView is the JSON payload of "log show".
type LogView struct {
	Count   int                  `json:"count"`
	Records []convergence.Record `json:"records"`
}

// NewLogCommand creates the log command group.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect or reset the π convergence log",
	}

	cmd.AddCommand(newLogShowCommand(rootOpts))
	cmd.AddCommand(newLogResetCommand(rootOpts))
	return cmd
}

func newLogShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List logged π estimates in the order they were made",
		Long: `List every π estimate recorded by "mcsim circle" and "mcsim sweep",
with the sample count it came from and its distance from π.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogShow(rootOpts, cmd)
		},
	}
}

func newLogResetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "reset",
		Short:         "Delete all logged π estimates",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogReset(rootOpts, cmd)
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runLogShow(opts *RootOptions, cmd *cobra.Command) error {
	sess, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer sess.Close()
	formatter := sess.formatter

	records, err := sess.svc.Convergence(commandContext(cmd))
	if err != nil {
		return formatter.Fail("failed to read convergence log", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(LogView{Count: len(records), Records: records})
	}

	outputLogText(formatter, records)
	return nil
}

func outputLogText(f *OutputFormatter, records []convergence.Record) {
	if len(records) == 0 {
		fmt.Fprintln(f.Writer, "Convergence log is empty.")
		return
	}

	fmt.Fprintf(f.Writer, "%-4s %12s  %-20s %s\n", "#", "num_points", "pi_estimate", "abs_error")
	for i, rec := range records {
		fmt.Fprintf(f.Writer, "%-4d %12s  %-20s %.6f\n",
			i+1,
			f.Int(rec.NumPoints),
			strconv.FormatFloat(rec.PiEstimate, 'f', -1, 64),
			math.Abs(rec.PiEstimate-math.Pi),
		)
	}
}

func runLogReset(opts *RootOptions, cmd *cobra.Command) error {
	sess, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer sess.Close()
	formatter := sess.formatter

	if err := sess.svc.ResetLog(commandContext(cmd)); err != nil {
		return formatter.Fail("failed to reset convergence log", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]bool{"reset": true})
	}
	fmt.Fprintln(formatter.Writer, "Convergence log reset.")
	return nil
}
