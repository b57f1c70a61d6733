// Package cmd implements the matstudio command line: warp single images or
// whole directories through a composed affine transform, inspect the
// combined matrix, and check batch output.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "matstudio",
	Short: "Compose scale, rotation and shear into one affine warp",
	Long: `matstudio composes scale, rotation and shear in a chosen order about the
image center, then inverse-maps every output pixel back into the source with
bilinear sampling. The output canvas grows to hold the transformed image plus
a transparent margin.

Transforms come from built-in recipes, TOML recipe files, or flags.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
	},
}

// Execute runs the command tree. An interrupt cancels the context, which
// stops batch runs between images.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"matstudio %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}
