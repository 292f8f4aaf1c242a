package cli

import (
	"fmt"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/achimpruben/monte-carlo-sims/internal/sweep"
)

// NewSweepCommand creates the sweep command.
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	var progress bool

	cmd := &cobra.Command{
		Use:   "sweep <plan.yaml>",
		Short: "Run circle estimates over a list of sample counts",
		Long: `Run a sweep plan: one circle estimate per listed sample count, each
appended to the convergence log, to show π being approached.

Plan format:
  name: pi-convergence
  radius: 1.0
  points: [100, 1000, 10000, 100000]
  reset: true`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(rootOpts, args[0], progress, cmd)
		},
	}

	cmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar on stderr")
	return cmd
}

func runSweep(opts *RootOptions, planPath string, progress bool, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	plan, err := sweep.LoadPlan(planPath)
	if err != nil {
		_ = formatter.Error(ErrCodeBadConfig, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load plan", err)
	}
	formatter.VerboseLog("Loaded plan %s with %d step(s)", plan.Name, len(plan.Points))

	sess, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	var runOpts []sweep.RunOption
	if progress {
		bar := pb.New(len(plan.Points)).SetWriter(formatter.GetErrWriter()).Start()
		defer bar.Finish()
		runOpts = append(runOpts, sweep.OnStep(func(sweep.Step) { bar.Increment() }))
	}

	report, err := sweep.Run(commandContext(cmd), sess.svc, plan, runOpts...)
	if err != nil {
		return formatter.Fail(fmt.Sprintf("sweep stopped after %d step(s)", len(report.Steps)), err)
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "Sweep %s: %d run(s), radius %v\n", report.Name, len(report.Steps), plan.Radius)
	for _, step := range report.Steps {
		fmt.Fprintf(formatter.Writer, "  %12s points  π ≈ %-10.6f |error| %.6f\n",
			formatter.Int(step.NumPoints), step.PiEstimate, step.PiError)
	}
	return nil
}
