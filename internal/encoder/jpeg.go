package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
)

// JPEGEncoder flattens onto Background before encoding.
type JPEGEncoder struct {
	// Background fills transparent pixels. Nil means white.
	Background color.Color
}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpg" }
func (e *JPEGEncoder) Available() bool   { return true }
func (e *JPEGEncoder) Alpha() bool       { return false }

func (e *JPEGEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	bg := e.Background
	if bg == nil {
		bg = color.White
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Flatten(img, bg), &jpeg.Options{Quality: clampQuality(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
