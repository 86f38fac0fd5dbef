package bench

import (
	"context"
	"fmt"
	"sort"
)

// Group is a named collection of benchmarks and nested groups. Results are
// keyed by slash-joined paths ("http/decode/small"), and every walk visits
// entries in sorted order so runs are deterministic.
type Group struct {
	Name string
	Tags []string

	benchmarks map[string]*Benchmark
	children   map[string]*Group
}

// NewGroup creates an empty group.
func NewGroup(name string, tags ...string) *Group {
	return &Group{
		Name:       name,
		Tags:       tags,
		benchmarks: make(map[string]*Benchmark),
		children:   make(map[string]*Group),
	}
}

// HasTag reports whether the group carries the given tag.
func (g *Group) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Group returns the named child group, creating it on first use.
func (g *Group) Group(name string, tags ...string) *Group {
	if child, ok := g.children[name]; ok {
		return child
	}
	child := NewGroup(name, tags...)
	g.children[name] = child
	return child
}

// Register adds a benchmark to this group, replacing any previous benchmark
// with the same name.
func (g *Group) Register(name string, w Workload, p Parameters) *Benchmark {
	b := New(name, w, p)
	g.benchmarks[name] = b
	return b
}

// Len returns the number of benchmarks in this group and all its children.
func (g *Group) Len() int {
	n := len(g.benchmarks)
	for _, child := range g.children {
		n += child.Len()
	}
	return n
}

// Walk visits every benchmark depth-first in sorted order, passing its
// slash-joined path. The walk stops at the first error.
func (g *Group) Walk(fn func(path string, b *Benchmark) error) error {
	return g.walk("", fn)
}

func (g *Group) walk(prefix string, fn func(string, *Benchmark) error) error {
	for _, name := range sortedKeys(g.benchmarks) {
		if err := fn(joinPath(prefix, name), g.benchmarks[name]); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(g.children) {
		if err := g.children[name].walk(joinPath(prefix, name), fn); err != nil {
			return err
		}
	}
	return nil
}

// Tune tunes every benchmark in the tree, stopping at the first failure.
func (g *Group) Tune(ctx context.Context, opts ...TuneOption) error {
	return g.Walk(func(path string, b *Benchmark) error {
		if err := b.Tune(ctx, opts...); err != nil {
			return fmt.Errorf("tuning %s: %w", path, err)
		}
		return nil
	})
}

// Results maps slash-joined benchmark paths to their trials.
type Results map[string]*Trial

// Run executes one trial per benchmark in the tree, stopping at the first
// failure.
func (g *Group) Run(ctx context.Context) (Results, error) {
	results := make(Results, g.Len())
	err := g.Walk(func(path string, b *Benchmark) error {
		trial, err := b.Run(ctx)
		if err != nil {
			return fmt.Errorf("running %s: %w", path, err)
		}
		results[path] = trial
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
