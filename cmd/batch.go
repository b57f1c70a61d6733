package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/matstudio/internal/encoder"
	"github.com/AnyUserName/matstudio/internal/manifest"
	"github.com/AnyUserName/matstudio/internal/matrix"
	"github.com/AnyUserName/matstudio/internal/pipeline"
	"github.com/AnyUserName/matstudio/internal/warp"
)

var (
	batchOutDir       string
	batchWorkers      int
	batchBandWorkers  int
	batchFormat       string
	batchQuality      int
	batchPreviewWidth int
	batchMaxPixels    int64
	batchPlan         planFlags
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Warp every image in a directory with one transform",
	Long: `Scans the input directory for images (png, jpg, jpeg, webp, gif, bmp, tiff),
warps each one with the same transform composed about its own center, and
writes a manifest describing the run.

Output filenames are content-addressed: <key>.<w>x<h>.<hash>.<ext>`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./matstudio_out", "output directory")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "images processed in parallel (0 = NumCPU)")
	batchCmd.Flags().IntVar(&batchBandWorkers, "band-workers", 1, "goroutines sharing each image's rows")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "png", "output format")
	batchCmd.Flags().IntVarP(&batchQuality, "quality", "q", encoder.DefaultQuality, "quality 1-100 for lossy formats")
	batchCmd.Flags().IntVar(&batchPreviewWidth, "preview-width", 0, "also write copies scaled down to this width")
	batchCmd.Flags().Int64Var(&batchMaxPixels, "max-pixels", 0, "largest output canvas in pixels (0 = 268435456)")
	batchPlan.register(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	name, plan, err := batchPlan.resolve(cmd, logger)
	if err != nil {
		return err
	}
	logger.Debug("batch", "input", absInput, "output", absOutput, "recipe", name, "order", plan.Order)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	workers := batchWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := pipeline.New(pipeline.Config{
		InputDir:     absInput,
		OutputDir:    absOutput,
		RecipeName:   name,
		Plan:         plan,
		Format:       batchFormat,
		Quality:      batchQuality,
		Workers:      workers,
		Engine:       warp.Engine{Workers: batchBandWorkers, MaxPixels: batchMaxPixels},
		PreviewWidth: batchPreviewWidth,
		Logger:       logger,
	})

	m, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBatchReport(ui{w: cmd.OutOrStdout()}, m, manifestPath, time.Since(start))
	return nil
}

func printBatchReport(out ui, m *manifest.Manifest, manifestPath string, elapsed time.Duration) {
	s := m.Stats
	out.blank()
	out.title("matstudio batch complete")
	out.keyValue("recipe", m.Recipe)
	out.keyValue("order", fmt.Sprint(m.Transform.Order))
	out.number("assets", s.TotalAssets)
	if s.Failed > 0 {
		out.warning("%d image(s) failed, see log", s.Failed)
	}
	if s.Degenerate > 0 {
		out.warning("%d image(s) warped with a singular matrix (transparent output)", s.Degenerate)
	}
	out.keyValue("input size", formatBytes(s.TotalInputBytes))
	out.keyValue("output size", formatBytes(s.TotalOutputBytes))
	out.number("output pixels", s.TotalPixels)
	out.keyValue("time", elapsed.Round(time.Millisecond).String())
	if m.RunInfo != nil {
		out.keyValue("workers", fmt.Sprintf("%d x %d bands", m.RunInfo.Workers, max(m.RunInfo.BandWorkers, 1)))
	}
	if m.Transform.Manual != nil {
		out.title("Manual matrix")
		out.block(matrix.Format(matrix.Mat3(*m.Transform.Manual)))
	}
	out.blank()

	type growth struct {
		key   string
		ratio float64
	}
	var items []growth
	for key, a := range m.Assets {
		srcPx := float64(a.Source.Width * a.Source.Height)
		if srcPx == 0 {
			continue
		}
		items = append(items, growth{key, float64(a.Output.Width*a.Output.Height) / srcPx})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ratio != items[j].ratio {
			return items[i].ratio > items[j].ratio
		}
		return items[i].key < items[j].key
	})
	n := min(len(items), 10)
	if n > 0 {
		out.title(fmt.Sprintf("Top %d canvas growth (output / source pixels)", n))
		for _, it := range items[:n] {
			a := m.Assets[it.key]
			out.detail("%-40s %5dx%-5d %s %5dx%-5d  x%.2f",
				truncKey(it.key, 40),
				a.Source.Width, a.Source.Height, iconArrow,
				a.Output.Width, a.Output.Height, it.ratio)
		}
		out.blank()
	}

	out.success("manifest %s", manifestPath)
}
