package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// New creates an empty manifest stamped with a fresh run id.
func New(recipeName string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Recipe:      recipeName,
		BasePath:    "./",
		Assets:      make(map[string]Asset),
	}
}

// ComputeStats recalculates aggregate statistics from assets. Failed is a
// run counter, not derivable from assets, so it is kept.
func (m *Manifest) ComputeStats() {
	s := Stats{Failed: m.Stats.Failed}
	s.TotalAssets = len(m.Assets)
	for _, a := range m.Assets {
		s.TotalInputBytes += a.Source.Size
		s.TotalOutputBytes += a.Output.Size
		s.TotalPixels += int64(a.Output.Width) * int64(a.Output.Height)
		if a.Preview != nil {
			s.TotalOutputBytes += a.Preview.Size
		}
		if a.Degenerate {
			s.Degenerate++
		}
	}
	m.Stats = s
}

// WriteJSON serializes the manifest with indentation. Map keys are sorted
// by encoding/json, so output is stable.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Read loads a manifest and checks its version.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if m.Version != SupportedManifestVersion {
		return nil, fmt.Errorf("%s: unsupported manifest version %d (want %d)", path, m.Version, SupportedManifestVersion)
	}
	if m.Assets == nil {
		m.Assets = make(map[string]Asset)
	}
	return &m, nil
}
