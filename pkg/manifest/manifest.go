// Package manifest tracks generated optics files across runs so successive
// generations can be diffed against each other.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Run records a single optics generation: the scanned package, the stamp
// it was recorded under, the rendered file and a hash of the configuration
// that produced it.
type Run struct {
	Package    string   `yaml:"package" json:"package"`
	Stamp      string   `yaml:"stamp" json:"stamp"`
	File       string   `yaml:"file" json:"file"`
	Types      []string `yaml:"types,omitempty" json:"types,omitempty"`
	ConfigHash string   `yaml:"config_hash,omitempty" json:"config_hash,omitempty"`
}

// Manifest tracks the lifecycle of generated optics files.
type Manifest struct {
	CurrentStamp  string `yaml:"current_stamp" json:"current_stamp"`
	PreviousStamp string `yaml:"previous_stamp" json:"previous_stamp"`
	Runs          []Run  `yaml:"runs" json:"runs"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// AddRun records a generation run, updating stamp pointers and de-duplicating
// existing entries that share the same package and stamp.
func (m *Manifest) AddRun(r Run) {
	if m.CurrentStamp != "" && m.CurrentStamp != r.Stamp {
		m.PreviousStamp = m.CurrentStamp
	}
	m.CurrentStamp = r.Stamp

	for i := range m.Runs {
		if m.Runs[i].Package == r.Package && m.Runs[i].Stamp == r.Stamp {
			m.Runs[i] = r
			return
		}
	}

	m.Runs = append(m.Runs, r)
}

// RunFile returns the path associated with the provided stamp, if present.
func (m *Manifest) RunFile(stamp string) string {
	for _, r := range m.Runs {
		if r.Stamp == stamp {
			return r.File
		}
	}
	return ""
}
