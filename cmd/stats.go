package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/matstudio/internal/manifest"
	"github.com/AnyUserName/matstudio/internal/matrix"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a batch output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	m, err := manifest.Read(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	printStats(ui{w: cmd.OutOrStdout()}, m)
	return nil
}

func printStats(out ui, m *manifest.Manifest) {
	out.blank()
	out.number("version", m.Version)
	out.keyValue("run", m.RunID)
	out.keyValue("generated", m.GeneratedAt)
	out.keyValue("recipe", m.Recipe)
	if m.RunInfo != nil {
		out.keyValue("workers", fmt.Sprintf("%d x %d bands", m.RunInfo.Workers, max(m.RunInfo.BandWorkers, 1)))
	}
	out.blank()

	t := m.Transform
	if t.Manual != nil {
		out.title("Manual matrix")
		out.block(matrix.Format(matrix.Mat3(*t.Manual)))
	} else {
		out.title("Transform")
		out.keyValue("order", fmt.Sprint(t.Order))
		out.keyValue("scale", fmt.Sprintf("%s x %s", matrix.FormatValue(t.Params.ScaleX), matrix.FormatValue(t.Params.ScaleY)))
		out.keyValue("rotation", matrix.FormatValue(t.Params.Degrees)+"°")
		out.keyValue("shear", fmt.Sprintf("%s x %s", matrix.FormatValue(t.Params.ShearX), matrix.FormatValue(t.Params.ShearY)))
	}
	out.blank()

	s := m.Stats
	out.number("assets", s.TotalAssets)
	out.number("failed", s.Failed)
	out.number("degenerate", s.Degenerate)
	out.keyValue("input size", formatBytes(s.TotalInputBytes))
	out.keyValue("output size", formatBytes(s.TotalOutputBytes))
	out.number("output pixels", s.TotalPixels)
	out.blank()

	formats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range m.Assets {
		fs := formats[a.Source.Format]
		fs.count++
		fs.bytes += a.Source.Size
		formats[a.Source.Format] = fs
	}
	names := make([]string, 0, len(formats))
	for f := range formats {
		names = append(names, f)
	}
	sort.Strings(names)
	out.title("Source formats")
	for _, f := range names {
		out.detail("%-6s %4d files  %s", f, formats[f].count, formatBytes(formats[f].bytes))
	}
	out.blank()

	var warnings []string
	for key, a := range m.Assets {
		if a.Degenerate {
			warnings = append(warnings, fmt.Sprintf("asset %q was warped with a singular matrix", key))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		out.warning("%d warning(s):", len(warnings))
		for _, w := range warnings {
			out.detail("%s", w)
		}
		out.blank()
	}
}
