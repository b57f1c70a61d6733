package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/matstudio/internal/encoder"
	"github.com/AnyUserName/matstudio/internal/sample"
)

var (
	sampleOut  string
	sampleKind string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a sample image to experiment with",
	Args:  cobra.NoArgs,
	RunE:  runSample,
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "image.png", "output file")
	sampleCmd.Flags().StringVarP(&sampleKind, "kind", "k", "figure", fmt.Sprintf("pattern (%s)", strings.Join(sample.Names, ", ")))
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, _ []string) error {
	img := sample.Named(sampleKind)
	if img == nil {
		return fmt.Errorf("unknown sample %q (known: %s)", sampleKind, strings.Join(sample.Names, ", "))
	}
	enc, err := encoder.NewRegistry().ForPath(sampleOut)
	if err != nil {
		return err
	}
	if err := writeImage(enc, img, sampleOut, encoder.DefaultQuality); err != nil {
		return err
	}
	ui{w: cmd.OutOrStdout()}.success("wrote %s (%dx%d %s)", sampleOut, img.Bounds().Dx(), img.Bounds().Dy(), sampleKind)
	return nil
}
