// Package execbench adapts subprocess invocation to the bench.Workload
// contract, so arbitrary commands can be benchmarked like in-process
// closures.
package execbench

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"benchtune/pkg/bench"
)

// Command is a workload that runs an external command once per evaluation.
// GC time and allocation counters are reported as zero: a subprocess's costs
// are invisible to the host runtime, and the ratio engine treats 0/0 as "no
// change" so those fields stay inert in comparisons.
type Command struct {
	name string
	args []string
	env  []string
	dir  string
}

// CommandOption configures a Command.
type CommandOption func(*Command)

// WithEnv sets the subprocess environment (os/exec semantics: nil inherits).
func WithEnv(env []string) CommandOption { return func(c *Command) { c.env = env } }

// WithDir sets the subprocess working directory.
func WithDir(dir string) CommandOption { return func(c *Command) { c.dir = dir } }

// New creates a command workload.
func New(name string, args []string, opts ...CommandOption) *Command {
	c := &Command{name: name, args: args}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// String returns the command line being benchmarked.
func (c *Command) String() string {
	out := c.name
	for _, a := range c.args {
		out += " " + a
	}
	return out
}

// Invoke implements bench.Workload. Elapsed time covers the full batch of
// launches, so process startup cost is part of what gets measured; that is
// the point for command benchmarking.
func (c *Command) Invoke(ctx context.Context, evals int) (bench.Measurement, error) {
	start := time.Now()
	for i := 0; i < evals; i++ {
		cmd := exec.CommandContext(ctx, c.name, c.args...)
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
		cmd.Env = c.env
		cmd.Dir = c.dir

		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return bench.Measurement{}, ctx.Err()
			}
			return bench.Measurement{}, fmt.Errorf("command %q failed: %w", c.name, err)
		}
	}
	return bench.Measurement{Elapsed: time.Since(start)}, nil
}
