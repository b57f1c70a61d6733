//go:build ignore

// gen_fixtures writes the input tree for the batch smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/AnyUserName/matstudio/internal/sample"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(filepath.Join(dir, "patterns"), 0o755); err != nil {
		panic(err)
	}

	writeJPEG(filepath.Join(dir, "banner.jpg"), sample.Gradient(400, 225))
	writePNG(filepath.Join(dir, "figure.png"), sample.Figure())
	for i, cell := range []int{8, 16, 32} {
		name := fmt.Sprintf("checker-%d.png", i+1)
		writePNG(filepath.Join(dir, "patterns", name), sample.Checker(128, 96, cell))
	}
	writePNG(filepath.Join(dir, "patterns", "alpha.png"), sample.AlphaGradient(100, 100))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
