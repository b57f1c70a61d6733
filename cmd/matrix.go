package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/matstudio/internal/matrix"
	"github.com/AnyUserName/matstudio/internal/recipe"
	"github.com/AnyUserName/matstudio/internal/sample"
	"github.com/AnyUserName/matstudio/internal/transform"
	"github.com/AnyUserName/matstudio/internal/warp"
)

var (
	matrixWidth  int
	matrixHeight int
	matrixPlan   planFlags
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the combined matrix and canvas for an image size",
	Long: `Composes the transform for a width x height image without touching pixels.
Prints each kind's 2x2 matrix with the parameters read back from it, the
centered combined matrix, the output canvas, and the final matrix with the
canvas offset folded in.`,
	Args: cobra.NoArgs,
	RunE: runMatrix,
}

func init() {
	matrixCmd.Flags().IntVar(&matrixWidth, "width", sample.FigureWidth, "source width")
	matrixCmd.Flags().IntVar(&matrixHeight, "height", sample.FigureHeight, "source height")
	matrixPlan.register(matrixCmd)
	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, _ []string) error {
	if matrixWidth < 1 || matrixHeight < 1 {
		return fmt.Errorf("size %dx%d: %w", matrixWidth, matrixHeight, warp.ErrEmptySource)
	}
	_, plan, err := matrixPlan.resolve(cmd, loggerFromContext(cmd.Context()))
	if err != nil {
		return err
	}
	printPlan(ui{w: cmd.OutOrStdout()}, plan, matrixWidth, matrixHeight)
	return nil
}

func printPlan(out ui, plan recipe.Plan, w, h int) {
	if plan.Matrix == nil {
		set := plan.Set()
		for i, k := range plan.Order {
			out.title(fmt.Sprintf("%d. %s", i+1, k))
			m := set[k]
			out.detail("[ %s  %s ]", matrix.FormatValue(m[0][0]), matrix.FormatValue(m[0][1]))
			out.detail("[ %s  %s ]", matrix.FormatValue(m[1][0]), matrix.FormatValue(m[1][1]))
			out.keyValue("params", describeParams(k, m))
		}
		out.blank()
	}

	full := plan.Centered(w, h)
	out.title("Combined matrix")
	out.block(matrix.Format(full))
	out.number("determinant", matrix.FormatValue(full.Determinant()))

	canvas := warp.Bounds(w, h, full)
	out.keyValue("source", fmt.Sprintf("%dx%d", w, h))
	out.keyValue("canvas", fmt.Sprintf("%dx%d", canvas.Width, canvas.Height))

	final := matrix.Multiply(canvas.Offset(), full)
	out.title("Final matrix")
	out.block(matrix.Format(final))

	if _, err := matrix.Invert(final); errors.Is(err, matrix.ErrDegenerate) {
		out.warning("matrix is not invertible; a warp would be fully transparent")
	}
}

// describeParams reads the parameters of kind k back from m, marking
// values that only approximate m.
func describeParams(k transform.Kind, m matrix.Mat2) string {
	p, exact := transform.Params{}.Sync(k, m)
	var s string
	switch k {
	case transform.Scale:
		s = fmt.Sprintf("x=%s y=%s", matrix.FormatValue(p.ScaleX), matrix.FormatValue(p.ScaleY))
	case transform.Rotation:
		s = fmt.Sprintf("%s°", matrix.FormatValue(p.Degrees))
	case transform.Shear:
		s = fmt.Sprintf("x=%s y=%s", matrix.FormatValue(p.ShearX), matrix.FormatValue(p.ShearY))
	}
	if !exact {
		s += " (approximate)"
	}
	return s
}
