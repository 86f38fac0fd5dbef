package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"benchtune/internal/config"
	"benchtune/internal/execbench"
	"benchtune/internal/report"
	"benchtune/internal/store"
	"benchtune/internal/telemetry"
	"benchtune/internal/ui"
	"benchtune/pkg/bench"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newCommandWorkload allows mocking the subprocess workload in tests.
var newCommandWorkload = func(name string, args []string) bench.Workload {
	return execbench.New(name, args)
}

type runOptions struct {
	name        string
	tune        bool
	save        string
	progress    bool
	metricsAddr string
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [flags] [-- command [args...]]",
		Short: "Tune and run benchmarks, printing an estimate table",
		Long: `Benchmarks the given command, or every entry of the 'benchmarks' list in
the config file when no command is given. Each benchmark is first tuned so a
single sample is reliably measurable, then sampled until the sample or time
budget is reached. Tuned repetition counts are cached on disk and reused.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "command", "Benchmark name when running a single command")
	cmd.Flags().BoolVar(&opts.tune, "tune", true, "Tune repetitions per sample before running")
	cmd.Flags().StringVar(&opts.save, "save", "", "Write an estimate snapshot to this file")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "Show a live progress view")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address during the run")

	cmd.Flags().Float64("seconds", 5.0, "Wall-clock budget per trial")
	cmd.Flags().Int("samples", 300, "Maximum samples per trial")
	cmd.Flags().Int("evals", 1, "Evaluations per sample (before tuning)")
	cmd.Flags().Float64("tolerance", 0.05, "Relative noise band for judgements")
	cmd.Flags().Bool("gctrial", true, "Force a full collection before each trial")
	cmd.Flags().Bool("gcsample", false, "Force a full collection before each sample")

	viper.BindPFlag("seconds", cmd.Flags().Lookup("seconds"))
	viper.BindPFlag("samples", cmd.Flags().Lookup("samples"))
	viper.BindPFlag("evals", cmd.Flags().Lookup("evals"))
	viper.BindPFlag("tolerance", cmd.Flags().Lookup("tolerance"))
	viper.BindPFlag("gctrial", cmd.Flags().Lookup("gctrial"))
	viper.BindPFlag("gcsample", cmd.Flags().Lookup("gcsample"))

	return cmd
}

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func runRun(cmd *cobra.Command, args []string, opts runOptions) error {
	params, err := config.Params()
	if err != nil {
		return err
	}

	group, err := buildSuite(args, opts, params)
	if err != nil {
		return err
	}

	metrics := telemetry.NewMetrics()
	if opts.metricsAddr != "" {
		go func() {
			if err := telemetry.StartMetricsServer(opts.metricsAddr, metrics); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	// Ctrl-C mid-run keeps whatever samples exist instead of discarding the
	// whole run.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var results map[string]report.TrialRow
	var estimates map[string]bench.Estimate

	execute := func(notify func(tea.Msg)) error {
		results, estimates, err = runSuite(ctx, group, opts, metrics, notify)
		return err
	}

	if opts.progress {
		if err := withProgress(group.Len(), execute); err != nil {
			return err
		}
	} else {
		if err := execute(func(tea.Msg) {}); err != nil {
			return err
		}
	}

	report.WriteTrials(cmd.OutOrStdout(), results)

	if opts.save != "" {
		snap := store.Snapshot{Timestamp: time.Now(), Estimates: estimates}
		if err := store.SaveSnapshot(opts.save, snap); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nSnapshot saved to %s\n", opts.save)
	}

	return nil
}

// buildSuite assembles the benchmark group from the command line or the
// config file.
func buildSuite(args []string, opts runOptions, params bench.Parameters) (*bench.Group, error) {
	group := bench.NewGroup("suite")

	if len(args) > 0 {
		group.Register(opts.name, newCommandWorkload(args[0], args[1:]), params)
		return group, nil
	}

	defs, err := config.Suite()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("nothing to run: pass a command or define 'benchmarks' in the config file")
	}
	for _, def := range defs {
		group.Register(def.Name, newCommandWorkload(def.Command[0], def.Command[1:]), params)
	}
	return group, nil
}

// runSuite tunes (cache-aware) and runs every benchmark, returning the table
// rows and the minimum estimates for snapshots.
func runSuite(ctx context.Context, group *bench.Group, opts runOptions, metrics *telemetry.Metrics, notify func(tea.Msg)) (map[string]report.TrialRow, map[string]bench.Estimate, error) {
	cache, err := store.NewParamsStore(viper.GetString("params_cache"))
	if err != nil {
		return nil, nil, err
	}
	cached, err := cache.Load()
	if err != nil {
		slog.Warn("ignoring unreadable params cache", "error", err)
		cached = map[string]bench.Parameters{}
	}

	if opts.tune {
		err = group.Walk(func(path string, b *bench.Benchmark) error {
			if p, ok := cached[path]; ok {
				if err := b.SetParams(p); err == nil {
					slog.Debug("reusing cached parameters", "benchmark", path, "evals", p.Evals)
					return nil
				}
			}
			start := time.Now()
			if err := b.Tune(ctx); err != nil {
				return err
			}
			metrics.TuningDuration.Observe(time.Since(start).Seconds())
			cached[path] = b.Params()
			slog.Debug("tuned", "benchmark", path, "evals", b.Params().Evals)
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
		if err := cache.Save(cached); err != nil {
			slog.Warn("failed to save params cache", "error", err)
		}
	}

	rows := make(map[string]report.TrialRow)
	estimates := make(map[string]bench.Estimate)

	err = group.Walk(func(path string, b *bench.Benchmark) error {
		notify(ui.BenchStartedMsg{Path: path})
		trial, err := b.Run(ctx)
		if err != nil {
			return err
		}
		metrics.TrialsTotal.Inc()
		metrics.SamplesTotal.Add(float64(trial.Len()))

		rows[path] = report.NewTrialRow(trial)
		estimates[path] = bench.Minimum(trial)
		notify(ui.BenchDoneMsg{Path: path})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return rows, estimates, nil
}

// withProgress runs execute while a bubbletea progress view consumes its
// notifications.
func withProgress(total int, execute func(notify func(tea.Msg)) error) error {
	prog := tea.NewProgram(ui.NewRunModel(total), tea.WithOutput(os.Stderr))

	done := make(chan error, 1)
	go func() {
		err := execute(func(msg tea.Msg) { prog.Send(msg) })
		prog.Send(ui.SuiteDoneMsg{})
		done <- err
	}()

	if _, err := prog.Run(); err != nil {
		// The view failing must not lose the results; drain the run.
		<-done
		return fmt.Errorf("progress view failed: %w", err)
	}
	return <-done
}
