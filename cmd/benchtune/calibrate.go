package main

import (
	"fmt"
	"text/tabwriter"

	"benchtune/pkg/bench"

	"github.com/spf13/cobra"
)

// calibrator allows substituting the process calibration in tests.
var calibrator = bench.ProcessCalibrator

func newCalibrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calibrate",
		Short: "Print the timer characteristics of this machine",
		Long: `Measures the smallest observable clock increment and the fixed cost of one
workload invocation. Both bound how small a trustworthy sample can be; the
tuner grows the repetition count until a sample comfortably exceeds them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cal := calibrator().Calibrate()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintf(w, "clock resolution\t%v\n", cal.Resolution)
			fmt.Fprintf(w, "invocation overhead\t%v\n", cal.Overhead)
			return w.Flush()
		},
	}
}

func init() {
	rootCmd.AddCommand(newCalibrateCmd())
}
