// Package report renders estimates and judgements for humans: tabwriter
// tables with lipgloss-colored verdicts, plus a markdown form rendered
// through glamour. It consumes the engine's output types read-only.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"benchtune/pkg/bench"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// colorEnabled is a test seam; color is off when the environment asks for it.
var colorEnabled = func() bool {
	return !termenv.EnvNoColor()
}

// TrialRow bundles the four point estimates of one trial for table output.
type TrialRow struct {
	Minimum bench.Estimate
	Median  bench.Estimate
	Mean    bench.Estimate
	Maximum bench.Estimate
	Samples int
}

// NewTrialRow reduces a trial to its table row.
func NewTrialRow(t *bench.Trial) TrialRow {
	return TrialRow{
		Minimum: bench.Minimum(t),
		Median:  bench.Median(t),
		Mean:    bench.Mean(t),
		Maximum: bench.Maximum(t),
		Samples: t.Len(),
	}
}

// WriteTrials prints one row per benchmark with min/median/mean/max times,
// memory and allocs, in sorted path order.
func WriteTrials(w io.Writer, rows map[string]TrialRow) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "BENCHMARK\tSAMPLES\tMIN\tMEDIAN\tMEAN\tMAX\tMEMORY\tALLOCS")
	for _, name := range sortedNames(rows) {
		r := rows[name]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
			name, r.Samples,
			formatNanos(r.Minimum.Time), formatNanos(r.Median.Time),
			formatNanos(r.Mean.Time), formatNanos(r.Maximum.Time),
			formatBytes(r.Minimum.Memory), r.Minimum.Allocs)
	}
	tw.Flush()
}

// WriteJudgements prints one row per benchmark with the time/memory/allocs
// ratios and verdicts, plus the gctime ratio for visibility.
func WriteJudgements(w io.Writer, judgements map[string]bench.Judgement) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "BENCHMARK\tTIME\tVERDICT\tMEMORY\tALLOCS\tGCTIME\tTOLERANCE")
	for _, name := range sortedNames(judgements) {
		j := judgements[name]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.0f%%\n",
			name,
			formatRatio(j.Ratio.Time), styledVerdict(j.Time),
			formatRatio(j.Ratio.Memory)+" "+styledVerdict(j.Memory),
			formatRatio(j.Ratio.Allocs)+" "+styledVerdict(j.Allocs),
			formatRatio(j.Ratio.GCTime),
			j.Tolerance*100)
	}
	tw.Flush()
}

// Markdown builds a markdown judgement table, suitable for CI comments.
func Markdown(judgements map[string]bench.Judgement) string {
	var b strings.Builder
	b.WriteString("# Benchmark comparison\n\n")
	b.WriteString("| Benchmark | Time | Verdict | Memory | Allocs | GC time |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, name := range sortedNames(judgements) {
		j := judgements[name]
		fmt.Fprintf(&b, "| %s | %s | %s | %s %s | %s %s | %s |\n",
			name,
			formatRatio(j.Ratio.Time), j.Time,
			formatRatio(j.Ratio.Memory), j.Memory,
			formatRatio(j.Ratio.Allocs), j.Allocs,
			formatRatio(j.Ratio.GCTime))
	}
	return b.String()
}

// RenderMarkdown renders markdown for the terminal.
func RenderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return "", fmt.Errorf("failed to build renderer: %w", err)
	}
	return r.Render(md)
}

// Title styles a section heading.
func Title(s string) string {
	if !colorEnabled() {
		return s
	}
	return titleStyle.Render(s)
}

func styledVerdict(v bench.Verdict) string {
	s := v.String()
	if !colorEnabled() {
		return s
	}
	switch v {
	case bench.Regression:
		return regressionStyle.Render(s)
	case bench.Improvement:
		return improvementStyle.Render(s)
	case bench.NotApplicable:
		return naStyle.Render(s)
	default:
		return invariantStyle.Render(s)
	}
}

func formatRatio(r float64) string {
	if math.IsInf(r, 1) {
		return "+inf"
	}
	return fmt.Sprintf("%.3f", r)
}

// formatNanos renders a nanosecond quantity in the largest unit that keeps
// the value above 1.
func formatNanos(ns float64) string {
	switch {
	case ns >= 1e9:
		return fmt.Sprintf("%.3fs", ns/1e9)
	case ns >= 1e6:
		return fmt.Sprintf("%.3fms", ns/1e6)
	case ns >= 1e3:
		return fmt.Sprintf("%.3fµs", ns/1e3)
	default:
		return fmt.Sprintf("%.0fns", ns)
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.2fGiB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.2fMiB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.2fKiB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%dB", b)
	}
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
