package cmd

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/matstudio/internal/encoder"
	"github.com/AnyUserName/matstudio/internal/matrix"
	"github.com/AnyUserName/matstudio/internal/pipeline"
	"github.com/AnyUserName/matstudio/internal/warp"
)

var (
	applyOut          string
	applyQuality      int
	applyWorkers      int
	applyPreviewWidth int
	applyMaxPixels    int64
	applyPlan         planFlags
)

var applyCmd = &cobra.Command{
	Use:   "apply <image>",
	Short: "Warp one image and write the result",
	Long: `Composes the transform about the image center, resamples the image onto
a canvas sized to the transformed bounds plus a 25% transparent margin, and
writes it. The output format follows the extension of --out (png, jpg, bmp,
tiff, webp, avif); formats without alpha get a white background.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyOut, "out", "o", "", "output file (default <name>.warped.png)")
	applyCmd.Flags().IntVarP(&applyQuality, "quality", "q", encoder.DefaultQuality, "quality 1-100 for lossy formats")
	applyCmd.Flags().IntVarP(&applyWorkers, "workers", "w", runtime.NumCPU(), "goroutines sharing the resample rows")
	applyCmd.Flags().IntVar(&applyPreviewWidth, "preview-width", 0, "also write a copy scaled down to this width")
	applyCmd.Flags().Int64Var(&applyMaxPixels, "max-pixels", 0, "largest output canvas in pixels (0 = 268435456)")
	applyPlan.register(applyCmd)
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	out := ui{w: cmd.OutOrStdout()}
	in := args[0]

	name, plan, err := applyPlan.resolve(cmd, logger)
	if err != nil {
		return err
	}

	dst := applyOut
	if dst == "" {
		dst = strings.TrimSuffix(in, filepath.Ext(in)) + ".warped.png"
	}
	registry := encoder.NewRegistry()
	enc, err := registry.ForPath(dst)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	img, err := pipeline.Open(in)
	if err != nil {
		return err
	}
	logger.Debug("decoded", "path", in, "size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()), "recipe", name)

	res, err := pipeline.Warp(img, plan, warp.Engine{Workers: applyWorkers, MaxPixels: applyMaxPixels})
	if err != nil {
		return fmt.Errorf("warp %s: %w", in, err)
	}
	prog.done("warped", "canvas", fmt.Sprintf("%dx%d", res.Canvas.Width, res.Canvas.Height))

	if err := writeImage(enc, res.Image.NRGBA(), dst, applyQuality); err != nil {
		return err
	}

	out.title("Centered matrix")
	out.block(matrix.Format(res.Centered))
	out.title("Final matrix")
	out.block(matrix.Format(res.Matrix))
	out.keyValue("recipe", name)
	out.keyValue("order", plan.Order.String())
	out.keyValue("canvas", fmt.Sprintf("%dx%d", res.Canvas.Width, res.Canvas.Height))
	if res.Degenerate {
		out.warning("matrix is not invertible; output is fully transparent")
	}
	out.success("wrote %s", dst)

	if applyPreviewWidth > 0 {
		prev := strings.TrimSuffix(dst, filepath.Ext(dst)) + ".preview" + filepath.Ext(dst)
		if err := writeImage(enc, pipeline.Preview(res.Image, applyPreviewWidth), prev, applyQuality); err != nil {
			return err
		}
		out.file(prev)
	}
	return nil
}
