package main

import (
	"fmt"
	"log/slog"

	"benchtune/internal/report"
	"benchtune/internal/store"
	"benchtune/pkg/bench"

	"github.com/spf13/cobra"
)

// loadSnapshot allows mocking snapshot loading in tests.
var loadSnapshot = store.LoadSnapshot

type compareOptions struct {
	tolerance        float64
	markdown         bool
	failOnRegression bool
}

func newCompareCmd() *cobra.Command {
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "compare <old.json> <new.json>",
		Short: "Judge two estimate snapshots against each other",
		Long: `Compares the benchmarks present in both snapshots and classifies each as
regression, improvement or invariant relative to the tolerance band. GC time
ratios are reported but never judged. The new snapshot is the numerator, so a
time ratio above one means the new run is slower.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, "Override the tolerance stored in the snapshots (0 keeps them)")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Render the comparison as markdown")
	cmd.Flags().BoolVar(&opts.failOnRegression, "fail-on-regression", false, "Exit nonzero when any benchmark regressed")

	return cmd
}

func init() {
	rootCmd.AddCommand(newCompareCmd())
}

func runCompare(cmd *cobra.Command, oldPath, newPath string, opts compareOptions) error {
	oldSnap, err := loadSnapshot(oldPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", oldPath, err)
	}
	newSnap, err := loadSnapshot(newPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", newPath, err)
	}

	var compareOpts []bench.CompareOption
	if opts.tolerance > 0 {
		compareOpts = append(compareOpts, bench.WithTolerance(opts.tolerance))
	}

	judgements := make(map[string]bench.Judgement)
	for name, newEst := range newSnap.Estimates {
		oldEst, ok := oldSnap.Estimates[name]
		if !ok {
			slog.Info("skipping benchmark missing from old snapshot", "benchmark", name)
			continue
		}
		judgements[name] = bench.Judge(newEst, oldEst, compareOpts...)
	}
	for name := range oldSnap.Estimates {
		if _, ok := newSnap.Estimates[name]; !ok {
			slog.Info("skipping benchmark missing from new snapshot", "benchmark", name)
		}
	}

	if len(judgements) == 0 {
		return fmt.Errorf("no benchmarks in common between %s and %s", oldPath, newPath)
	}

	if opts.markdown {
		rendered, err := report.RenderMarkdown(report.Markdown(judgements))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
	} else {
		report.WriteJudgements(cmd.OutOrStdout(), judgements)
	}

	if opts.failOnRegression {
		regressed := 0
		for _, j := range judgements {
			if j.HasRegression() {
				regressed++
			}
		}
		if regressed > 0 {
			return fmt.Errorf("%d benchmark(s) regressed", regressed)
		}
	}
	return nil
}
