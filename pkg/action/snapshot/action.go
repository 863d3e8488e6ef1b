// Package snapshot archives generated optics files under a stamp and diffs
// successive runs.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/higher-kinded-j/opticgen/pkg/action/generate"
	"github.com/higher-kinded-j/opticgen/pkg/manifest"
	"github.com/higher-kinded-j/opticgen/pkg/opticgen"
)

// Options extend the generation options with snapshot bookkeeping.
type Options struct {
	Generate     *opticgen.Options
	SnapshotDir  string // archive directory, default ".opticgen/snapshots"
	ManifestPath string // default "<SnapshotDir>/manifest.yaml"
	Stamp        string // default: current time, RFC 3339
}

func (o *Options) normalize() {
	if o.Generate == nil {
		o.Generate = opticgen.NewOptions()
	}
	if o.SnapshotDir == "" {
		o.SnapshotDir = filepath.Join(".opticgen", "snapshots")
	}
	if o.ManifestPath == "" {
		o.ManifestPath = filepath.Join(o.SnapshotDir, "manifest.yaml")
	}
	if o.Stamp == "" {
		o.Stamp = time.Now().UTC().Format(time.RFC3339)
	}
}

// Run generates optics, archives a copy of the rendered file under the
// stamp, records it in the manifest and returns a diff against the previous
// stamp. The diff is empty on a first run or when nothing changed.
func Run(opts *Options) (string, error) {
	opts.normalize()

	outFile, err := generate.Run(opts.Generate)
	if err != nil {
		return "", err
	}

	archived := filepath.Join(opts.SnapshotDir, opts.Stamp, filepath.Base(outFile))
	if err := copyFile(outFile, archived); err != nil {
		return "", fmt.Errorf("archive snapshot: %w", err)
	}

	m, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return "", err
	}

	var typeNames []string
	for _, t := range opts.Generate.Types {
		typeNames = append(typeNames, t.Name)
	}
	m.AddRun(manifest.Run{
		Package:    opts.Generate.InDir,
		Stamp:      opts.Stamp,
		File:       archived,
		Types:      typeNames,
		ConfigHash: configHash(opts.Generate),
	})
	if err := m.Save(opts.ManifestPath); err != nil {
		return "", err
	}
	slog.With("stamp", opts.Stamp, "file", archived).Info("snapshot recorded")

	return diffStamps(m, m.PreviousStamp, m.CurrentStamp)
}

// diffStamps compares the archived files for two stamps line by line.
func diffStamps(m *manifest.Manifest, prev, curr string) (string, error) {
	if prev == "" {
		return "", nil
	}
	before, err := readLines(m.RunFile(prev))
	if err != nil {
		return "", fmt.Errorf("read snapshot %s: %w", prev, err)
	}
	after, err := readLines(m.RunFile(curr))
	if err != nil {
		return "", fmt.Errorf("read snapshot %s: %w", curr, err)
	}
	return cmp.Diff(before, after), nil
}

func readLines(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), nil
}

// configHash fingerprints the generation configuration so a manifest entry
// records what produced it.
func configHash(opts *opticgen.Options) string {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	out, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	_, err = io.Copy(out, in)
	return err
}
