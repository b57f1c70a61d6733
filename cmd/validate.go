package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/matstudio/internal/hasher"
	"github.com/AnyUserName/matstudio/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a batch manifest and check referenced files",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]
	out := ui{w: cmd.OutOrStdout()}

	m, err := manifest.Read(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	errs := validateManifest(m, filepath.Dir(manifestPath))
	if len(errs) == 0 {
		out.success("manifest is valid")
		out.success("%d assets, all outputs present and matching their hashes", len(m.Assets))
		return nil
	}

	out.failure("manifest has %d error(s):", len(errs))
	for _, e := range errs {
		out.detail("• %s", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	keys := make([]string, 0, len(m.Assets))
	for k := range m.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seenPaths := map[string]string{}
	for _, key := range keys {
		a := m.Assets[key]
		if a.Source.Width <= 0 || a.Source.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid source dimensions %dx%d", key, a.Source.Width, a.Source.Height))
		}
		for i, v := range a.Matrix {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				errs = append(errs, fmt.Sprintf("asset %q: matrix[%d] is not finite", key, i))
			}
		}

		outputs := []struct {
			label string
			o     *manifest.Output
		}{{"output", &a.Output}, {"preview", a.Preview}}
		for _, o := range outputs {
			if o.o == nil {
				continue
			}
			errs = append(errs, validateOutput(key, o.label, *o.o, baseDir, seenPaths)...)
		}
	}

	var want manifest.Manifest
	want.Assets = m.Assets
	want.Stats.Failed = m.Stats.Failed
	want.ComputeStats()
	if m.Stats != want.Stats {
		errs = append(errs, fmt.Sprintf("stats mismatch: manifest=%+v, computed=%+v", m.Stats, want.Stats))
	}

	return errs
}

func validateOutput(key, label string, o manifest.Output, baseDir string, seen map[string]string) []string {
	var errs []string
	prefix := fmt.Sprintf("asset %q %s", key, label)

	if o.Format == "" {
		errs = append(errs, prefix+": empty format")
	}
	if o.Width <= 0 || o.Height <= 0 {
		errs = append(errs, fmt.Sprintf("%s: invalid dimensions %dx%d", prefix, o.Width, o.Height))
	}
	if o.Hash == "" {
		errs = append(errs, prefix+": missing hash")
	}
	if o.Path == "" {
		return append(errs, prefix+": missing path")
	}
	if other, dup := seen[o.Path]; dup {
		errs = append(errs, fmt.Sprintf("%s: path %q also used by %s", prefix, o.Path, other))
	}
	seen[o.Path] = prefix

	fullPath := filepath.Join(baseDir, filepath.FromSlash(o.Path))
	info, err := os.Stat(fullPath)
	if err != nil {
		return append(errs, fmt.Sprintf("%s: file not found: %s", prefix, o.Path))
	}
	if info.Size() != o.Size {
		errs = append(errs, fmt.Sprintf("%s: size mismatch: manifest=%d, disk=%d", prefix, o.Size, info.Size()))
	}
	if o.Hash != "" {
		sum, err := hasher.SumFile(fullPath, len(o.Hash))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
		} else if sum != o.Hash {
			errs = append(errs, fmt.Sprintf("%s: hash mismatch: manifest=%s, disk=%s", prefix, o.Hash, sum))
		}
	}
	return errs
}
