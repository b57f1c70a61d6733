package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/AnyUserName/matstudio/internal/encoder"
	"github.com/AnyUserName/matstudio/internal/hasher"
	"github.com/AnyUserName/matstudio/internal/manifest"
)

// OutputName builds the content-addressed file name
// <base>.<tag><w>x<h>.<hash>.<ext>.
func OutputName(key, tag string, w, h int, hash, ext string) string {
	return fmt.Sprintf("%s.%s%dx%d.%s.%s", filepath.Base(key), tag, w, h, hash, ext)
}

func writeOutput(cfg Config, enc encoder.Encoder, key, tag string, img image.Image) (manifest.Output, error) {
	data, err := enc.Encode(img, cfg.Quality)
	if err != nil {
		return manifest.Output{}, fmt.Errorf("encode %s as %s: %w", key, enc.Format(), err)
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	hash := hasher.Sum(data, hasher.FilenameLen)
	name := OutputName(key, tag, w, h, hash, enc.Extension())
	relPath := filepath.ToSlash(filepath.Join(filepath.Dir(key), name))

	if err := os.WriteFile(filepath.Join(cfg.OutputDir, relPath), data, 0o644); err != nil {
		return manifest.Output{}, fmt.Errorf("write %s: %w", relPath, err)
	}
	return manifest.Output{
		Format: enc.Format(),
		Width:  w,
		Height: h,
		Size:   int64(len(data)),
		Hash:   hash,
		Path:   relPath,
	}, nil
}
