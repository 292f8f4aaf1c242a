package cli

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/achimpruben/monte-carlo-sims/internal/mc"
)

// EstimateOptions holds flags shared by the circle, ellipse and sphere commands.
type EstimateOptions struct {
	*RootOptions
	Points    int
	PointsOut string
}

// EstimationView is the JSON payload of a single estimation.
type EstimationView struct {
	RunID     string   `json:"run_id"`
	Shape     string   `json:"shape"`
	Params    []param  `json:"params"`
	NumPoints int      `json:"num_points"`
	Inside    int      `json:"inside"`
	Estimated float64  `json:"estimated"`
	Actual    float64  `json:"actual"`
	RelError  float64  `json:"rel_error"`
	Pi        *float64 `json:"pi_estimate,omitempty"`
}

type param struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// addEstimateFlags registers --points and --points-out.
func addEstimateFlags(cmd *cobra.Command, opts *EstimateOptions) {
	cmd.Flags().IntVarP(&opts.Points, "points", "n", 0, "number of samples (default from config, 10000)")
	cmd.Flags().StringVar(&opts.PointsOut, "points-out", "", "write classified points as CSV to this file")
}

// estimateFunc runs one estimation on an open service.
type estimateFunc func(ctx context.Context, svc *mc.Service, numPoints int) (mc.Estimation, error)

// runEstimate is the shared body of the shape commands.
func runEstimate(opts *EstimateOptions, cmd *cobra.Command, measure string, params []param, dims int, run estimateFunc) error {
	sess, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer sess.Close()
	formatter := sess.formatter

	numPoints := opts.Points
	if !cmd.Flags().Changed("points") {
		numPoints = sess.cfg.DefaultPoints
	}

	est, err := run(commandContext(cmd), sess.svc, numPoints)
	if err != nil {
		return formatter.Fail("estimation failed", err)
	}
	formatter.VerboseLog("run %s: %d of %d points inside", est.RunID, est.Result.InsideCount, est.Result.SampleCount)

	if opts.PointsOut != "" {
		if err := writePoints(opts.PointsOut, est, dims); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitFailure, "failed to write points", err)
		}
		formatter.VerboseLog("wrote %d points to %s", len(est.Points), opts.PointsOut)
	}

	view := EstimationView{
		RunID:     est.RunID,
		Shape:     est.Result.Shape,
		Params:    params,
		NumPoints: est.Result.SampleCount,
		Inside:    est.Result.InsideCount,
		Estimated: est.Result.Estimated,
		Actual:    est.Result.Actual,
		RelError:  est.Result.RelError(),
		Pi:        est.Pi,
	}
	if formatter.Format == "json" {
		return formatter.Success(view)
	}

	outputEstimationText(formatter, view, measure)
	return nil
}

func writePoints(path string, est mc.Estimation, dims int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := mc.WritePointsCSV(f, est.Points, dims); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func outputEstimationText(f *OutputFormatter, v EstimationView, measure string) {
	fmt.Fprintf(f.Writer, "%s (", v.Shape)
	for i, p := range v.Params {
		if i > 0 {
			fmt.Fprint(f.Writer, ", ")
		}
		fmt.Fprintf(f.Writer, "%s=%v", p.Name, p.Value)
	}
	fmt.Fprintf(f.Writer, ") with %s points\n", f.Int(v.NumPoints))
	fmt.Fprintf(f.Writer, "  Estimated %-7s %.4f\n", measure+":", v.Estimated)
	fmt.Fprintf(f.Writer, "  Actual %-10s %.4f\n", measure+":", v.Actual)
	fmt.Fprintf(f.Writer, "  Error:            %.2f%%\n", v.RelError*100)
	if v.Pi != nil {
		fmt.Fprintf(f.Writer, "  π estimate:       %.4f (π = %.4f)\n", *v.Pi, math.Pi)
	}
}

// NewCircleCommand creates the circle command.
func NewCircleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EstimateOptions{RootOptions: rootOpts}
	var radius float64

	cmd := &cobra.Command{
		Use:   "circle",
		Short: "Estimate a circle's area and π",
		Long: `Estimate the area of a circle by sampling its bounding square, derive
π as area / radius², and append the π estimate to the convergence log.

Example:
  mcsim circle --radius 1 --points 100000
  mcsim circle -n 1000000 --seed 42 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := []param{{"radius", radius}}
			return runEstimate(opts, cmd, "area", params, 2, func(ctx context.Context, svc *mc.Service, n int) (mc.Estimation, error) {
				return svc.Circle(ctx, radius, n)
			})
		},
	}

	cmd.Flags().Float64VarP(&radius, "radius", "r", 1.0, "circle radius")
	addEstimateFlags(cmd, opts)
	return cmd
}

// NewEllipseCommand creates the ellipse command.
func NewEllipseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EstimateOptions{RootOptions: rootOpts}
	var a, b float64

	cmd := &cobra.Command{
		Use:   "ellipse",
		Short: "Estimate an ellipse's area",
		Long: `Estimate the area of an ellipse with semi-axes a and b by sampling
its 2a × 2b bounding rectangle.

Example:
  mcsim ellipse --a 2 --b 1 --points 500000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := []param{{"a", a}, {"b", b}}
			return runEstimate(opts, cmd, "area", params, 2, func(ctx context.Context, svc *mc.Service, n int) (mc.Estimation, error) {
				return svc.Ellipse(ctx, a, b, n)
			})
		},
	}

	cmd.Flags().Float64Var(&a, "a", 2.0, "semi-axis along x")
	cmd.Flags().Float64Var(&b, "b", 1.0, "semi-axis along y")
	addEstimateFlags(cmd, opts)
	return cmd
}

// NewSphereCommand creates the sphere command.
func NewSphereCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EstimateOptions{RootOptions: rootOpts}
	var radius float64

	cmd := &cobra.Command{
		Use:   "sphere",
		Short: "Estimate a sphere's volume",
		Long: `Estimate the volume of a sphere by sampling its bounding cube.

Example:
  mcsim sphere --radius 1 --points 200000 --points-out sphere.csv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := []param{{"radius", radius}}
			return runEstimate(opts, cmd, "volume", params, 3, func(ctx context.Context, svc *mc.Service, n int) (mc.Estimation, error) {
				return svc.Sphere(ctx, radius, n)
			})
		},
	}

	cmd.Flags().Float64VarP(&radius, "radius", "r", 1.0, "sphere radius")
	addEstimateFlags(cmd, opts)
	return cmd
}
