package pipeline

import (
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/AnyUserName/matstudio/internal/encoder"
	"github.com/AnyUserName/matstudio/internal/hasher"
	"github.com/AnyUserName/matstudio/internal/manifest"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage handles one source: decode, warp, encode, hash, write.
func processImage(src Source, cfg Config, enc encoder.Encoder) processResult {
	result := processResult{key: src.Key}

	img, err := Open(src.AbsPath)
	if err != nil {
		result.err = err
		return result
	}

	srcHash, err := hasher.SumFile(src.AbsPath, 16)
	if err != nil {
		result.err = err
		return result
	}

	res, err := Warp(img, cfg.Plan, cfg.Engine)
	if err != nil {
		result.err = fmt.Errorf("warp %s: %w", src.RelPath, err)
		return result
	}

	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755); err != nil {
			result.err = fmt.Errorf("mkdir %s: %w", keyDir, err)
			return result
		}
	}

	out, err := writeOutput(cfg, enc, src.Key, "", res.Image.NRGBA())
	if err != nil {
		result.err = err
		return result
	}

	b := img.Bounds()
	m := res.Matrix
	result.asset = manifest.Asset{
		Source: manifest.SourceInfo{
			Width:  b.Dx(),
			Height: b.Dy(),
			Format: src.Format,
			Size:   src.Size,
			Hash:   srcHash,
		},
		Output:     out,
		Matrix:     [6]float64(m),
		Degenerate: res.Degenerate,
	}

	if cfg.PreviewWidth > 0 && cfg.PreviewWidth < res.Image.Width {
		prev, err := writeOutput(cfg, enc, src.Key, "preview.", Preview(res.Image, cfg.PreviewWidth))
		if err != nil {
			result.err = err
			return result
		}
		result.asset.Preview = &prev
	}

	return result
}
