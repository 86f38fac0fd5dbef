package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"benchtune/internal/store"
	"benchtune/pkg/bench"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubWorkload reports a fixed synthetic cost so run tests finish instantly.
type stubWorkload struct {
	perEval time.Duration
	invoked int
}

func (s *stubWorkload) Invoke(ctx context.Context, evals int) (bench.Measurement, error) {
	s.invoked++
	return bench.Measurement{Elapsed: s.perEval * time.Duration(evals)}, nil
}

func setupRunTest(t *testing.T) *stubWorkload {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("seconds", 0.05)
	viper.Set("samples", 5)
	viper.Set("evals", 1)
	viper.Set("gctrial", false)
	viper.Set("gcsample", false)
	viper.Set("tolerance", 0.05)
	viper.Set("params_cache", filepath.Join(t.TempDir(), "params.json"))

	stub := &stubWorkload{perEval: time.Millisecond}
	orig := newCommandWorkload
	newCommandWorkload = func(name string, args []string) bench.Workload { return stub }
	t.Cleanup(func() { newCommandWorkload = orig })

	return stub
}

func TestRunCmdSingleCommand(t *testing.T) {
	stub := setupRunTest(t)

	cmd := newRunCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--tune=false", "--name", "startup", "--", "myprog", "--version"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "startup")
	assert.Contains(t, out.String(), "1.000ms")
	assert.Equal(t, 5, stub.invoked)
}

func TestRunCmdSavesSnapshot(t *testing.T) {
	setupRunTest(t)

	snapPath := filepath.Join(t.TempDir(), "snap.json")

	cmd := newRunCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--tune=false", "--save", snapPath, "--", "myprog"})

	require.NoError(t, cmd.Execute())

	snap, err := store.LoadSnapshot(snapPath)
	require.NoError(t, err)
	require.Contains(t, snap.Estimates, "command")
	assert.Equal(t, 1e6, snap.Estimates["command"].Time) // 1ms per eval
	assert.False(t, snap.Timestamp.IsZero())
}

func TestRunCmdTunesAndCachesParams(t *testing.T) {
	setupRunTest(t)

	cmd := newRunCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--", "myprog"})

	require.NoError(t, cmd.Execute())

	cache, err := store.NewParamsStore(viper.GetString("params_cache"))
	require.NoError(t, err)
	cached, err := cache.Load()
	require.NoError(t, err)
	require.Contains(t, cached, "command")
	assert.GreaterOrEqual(t, cached["command"].Evals, 1)

	// A second run reuses the cache instead of tuning again.
	stub2 := &stubWorkload{perEval: time.Millisecond}
	newCommandWorkload = func(name string, args []string) bench.Workload { return stub2 }

	cmd = newRunCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--", "myprog"})
	require.NoError(t, cmd.Execute())

	// Only trial samples, no warm-up or search invocations.
	assert.Equal(t, 5, stub2.invoked)
}

func TestRunCmdSuiteFromConfig(t *testing.T) {
	setupRunTest(t)
	viper.Set("benchmarks", []map[string]any{
		{"name": "alpha", "command": []string{"a"}},
		{"name": "beta", "command": []string{"b"}},
	})

	cmd := newRunCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--tune=false"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "alpha")
	assert.Contains(t, out.String(), "beta")
}

func TestRunCmdNothingToRun(t *testing.T) {
	setupRunTest(t)

	cmd := newRunCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--tune=false"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to run")
}

func TestRunCmdInvalidParameters(t *testing.T) {
	setupRunTest(t)
	viper.Set("tolerance", 2.0)

	cmd := newRunCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--tune=false", "--", "myprog"})

	err := cmd.Execute()
	require.Error(t, err)

	var cfgErr *bench.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestBuildSuiteFromArgs(t *testing.T) {
	stub := setupRunTest(t)
	_ = stub

	params := bench.DefaultParameters()
	group, err := buildSuite([]string{"myprog", "-x"}, runOptions{name: "n"}, params)
	require.NoError(t, err)
	assert.Equal(t, 1, group.Len())
}
