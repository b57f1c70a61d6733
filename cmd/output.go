package cmd

import (
	"fmt"
	"image"
	"os"

	"github.com/AnyUserName/matstudio/internal/encoder"
)

func writeImage(enc encoder.Encoder, img image.Image, path string, quality int) error {
	data, err := enc.Encode(img, quality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
