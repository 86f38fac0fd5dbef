// Package store persists tuned parameters and estimate snapshots as JSON
// files. Both are single documents consumed read-only by the engine's
// callers; there is no history, each save replaces the file.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"benchtune/pkg/bench"
)

// ParamsStore caches tuned parameters keyed by benchmark path, so the tuning
// cost is paid once per machine.
type ParamsStore struct {
	path string
}

// NewParamsStore creates the store, ensuring the parent directory exists.
func NewParamsStore(path string) (*ParamsStore, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	return &ParamsStore{path: path}, nil
}

// Save writes the full parameter map, replacing any previous contents.
func (s *ParamsStore) Save(params map[string]bench.Parameters) error {
	return writeJSON(s.path, params)
}

// Load reads the cached parameters. A missing file yields an empty map.
func (s *ParamsStore) Load() (map[string]bench.Parameters, error) {
	params := make(map[string]bench.Parameters)
	if err := readJSON(s.path, &params); err != nil {
		if os.IsNotExist(err) {
			return map[string]bench.Parameters{}, nil
		}
		return nil, err
	}
	return params, nil
}

// Snapshot is the on-disk result of one run: the minimum estimate per
// benchmark path. Snapshots are what `compare` consumes.
type Snapshot struct {
	Timestamp time.Time                 `json:"timestamp"`
	Estimates map[string]bench.Estimate `json:"estimates"`
}

// SaveSnapshot writes a snapshot, replacing any previous file.
func SaveSnapshot(path string, snap Snapshot) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return writeJSON(path, snap)
}

// LoadSnapshot reads a snapshot file.
func LoadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	if err := readJSON(path, &snap); err != nil {
		return Snapshot{}, err
	}
	if snap.Estimates == nil {
		snap.Estimates = map[string]bench.Estimate{}
	}
	return snap, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}
