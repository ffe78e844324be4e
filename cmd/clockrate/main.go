package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"clockrate/adapters/display"
	"clockrate/app"
	"clockrate/internal/config"
	"clockrate/internal/errors"
	"clockrate/internal/timer"
	"clockrate/internal/validation"
	"clockrate/ports"

	"github.com/spf13/cobra"
)

const usageLine = "Usage: clockrate <path_to_csv>"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, display.NewViewer()))
}

// run executes the command line and returns the process exit status
func run(ctx context.Context, args []string, stdout io.Writer, viewer ports.ChartViewer) int {
	cfg := config.Default()
	rootCmd := newRootCmd(cfg, stdout, viewer)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stdout)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(stdout, err)
		return 1
	}
	return 0
}

func newRootCmd(cfg *config.Config, stdout io.Writer, viewer ports.ChartViewer) *cobra.Command {
	var noShow bool

	rootCmd := &cobra.Command{
		Use:   "clockrate <path_to_csv>",
		Short: "Report and plot the error between desired and actual clock rates",
		Long: `Read a CSV (or .xlsx) file with Desired and Actual columns, print max, mean
and standard deviation of the absolute and percentage error, and plot the
percentage error against the desired rate.

The chart is written to timer_results.png in the working directory and shown
in a window; the command returns once the window is closed.

Example: clockrate timer_results.csv --view compare`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.Usage(fmt.Sprintf("expected exactly one path argument, got %d", len(args)))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cfg.Verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Plot.Show = !noShow
			if err := cfg.Validate(); err != nil {
				return err
			}
			_, err := app.NewPlotService(cfg.Plot, viewer, stdout).Run(cmd.Context(), args[0])
			return err
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log pipeline progress to stderr")
	rootCmd.Flags().StringVarP(&cfg.Plot.Output, "output", "o", config.DefaultOutput, "Chart image path (.png)")
	rootCmd.Flags().StringVar(&cfg.Plot.View, "view", config.ViewDeviation, "Chart view: deviation|compare")
	rootCmd.Flags().BoolVar(&noShow, "no-show", false, "Save the chart without opening a window")
	rootCmd.Flags().IntVar(&cfg.Plot.Width, "width", cfg.Plot.Width, "Chart width in pixels")
	rootCmd.Flags().IntVar(&cfg.Plot.Height, "height", cfg.Plot.Height, "Chart height in pixels")

	rootCmd.AddCommand(
		newSweepCmd(cfg, stdout),
		newSolveCmd(stdout),
	)
	return rootCmd
}

func newSweepCmd(cfg *config.Config, stdout io.Writer) *cobra.Command {
	var prescalers string
	params := &cfg.Sweep.Params

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Solve timer settings over a range of desired rates and write Desired,Actual",
		Long: `Solve the best prescaler and compare value for every desired rate in
[lower, upper] and write the achieved rate to a measurement table.

Output ending in .xlsx is written as a workbook, anything else as CSV.

Example: clockrate sweep --lower 1 --upper 76000 --source 16000000 --out timer_results.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := config.ParsePrescalers(prescalers)
			if err != nil {
				return err
			}
			params.Prescalers = values
			if err := cfg.ValidateSweep(); err != nil {
				return err
			}
			_, err = app.NewSweepService(stdout).Run(cmd.Context(), cfg.Sweep)
			return err
		},
	}

	cmd.Flags().Uint64Var(&params.Lower, "lower", params.Lower, "Lowest desired rate (Hz)")
	cmd.Flags().Uint64Var(&params.Upper, "upper", params.Upper, "Highest desired rate (Hz)")
	cmd.Flags().Uint64Var(&params.Step, "step", params.Step, "Rate increment (Hz)")
	cmd.Flags().Uint64Var(&params.Source, "source", params.Source, "Source clock (Hz)")
	cmd.Flags().Uint64Var(&params.MaxCompare, "max-compare", params.MaxCompare, "Largest compare register value")
	cmd.Flags().StringVar(&prescalers, "prescalers", "1,8,64,256,1024", "Comma separated prescaler values")
	cmd.Flags().StringVar(&cfg.Sweep.Output, "out", config.DefaultSweepOutput, "Output table (.csv or .xlsx)")

	return cmd
}

func newSolveCmd(stdout io.Writer) *cobra.Command {
	var source, maxCompare uint64
	var skew, prescalers string
	var maxError float64

	cmd := &cobra.Command{
		Use:   "solve <desired_hz>",
		Short: "Print the best timer setting for one desired rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desired, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errors.ConfigInvalid(fmt.Sprintf("invalid desired rate %q", args[0]))
			}
			s, err := timer.ParseSkew(skew)
			if err != nil {
				return errors.WithCode(errors.CodeConfigInvalid, err)
			}
			values, err := config.ParsePrescalers(prescalers)
			if err != nil {
				return err
			}
			return runSolve(stdout, source, desired, s, values, maxCompare, maxError)
		},
	}

	cmd.Flags().Uint64Var(&source, "source", timer.DefaultSource, "Source clock (Hz)")
	cmd.Flags().Uint64Var(&maxCompare, "max-compare", timer.DefaultMaxCompare, "Largest compare register value")
	cmd.Flags().StringVar(&skew, "skew", "none", "Preferred direction when inexact: none|low|high")
	cmd.Flags().StringVar(&prescalers, "prescalers", "1,8,64,256,1024", "Comma separated prescaler values")
	cmd.Flags().Float64Var(&maxError, "max-error", 0, "Accepted relative error, 0.01 is 1%")

	return cmd
}

func runSolve(stdout io.Writer, source, desired uint64, skew timer.Skew, prescalers []uint64, maxCompare uint64, maxError float64) error {
	cfg, err := timer.Solve(source, desired, skew, prescalers, maxCompare, maxError)
	if err != nil && !stderrors.Is(err, timer.ErrErrorRange) {
		return errors.Wrapf(err, "no timer configuration for %d Hz", desired)
	}
	fmt.Fprint(stdout, cfg.String())
	if err != nil {
		fmt.Fprintf(stdout, "Warning: best configuration exceeds max error of %g%%\n", maxError*100)
	}
	return nil
}

// printError writes the diagnostic for err in the form its error code calls for
func printError(w io.Writer, err error) {
	switch errors.GetCode(err) {
	case errors.CodeUsage:
		fmt.Fprintln(w, usageLine)
	case errors.CodeIO:
		fmt.Fprintf(w, "Error reading file: %v\n", err)
	case errors.CodeSchema:
		if colErr, ok := validation.AsColumnError(err); ok {
			fmt.Fprintf(w, "CSV must contain the columns: %q\n", colErr.Expected)
			fmt.Fprintf(w, "Found columns: %q\n", colErr.Found)
			return
		}
		fmt.Fprintf(w, "Error: %v\n", err)
	case "UNKNOWN":
		// cobra flag and argument errors
		fmt.Fprintf(w, "Error: %v\n", err)
		fmt.Fprintln(w, usageLine)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func configureLogging(verbose bool) {
	if verbose {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(io.Discard)
}
