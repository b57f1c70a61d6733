package sample

import (
	"image"
	"image/color"
)

// Gradient is opaque, red rising left to right and green top to bottom.
func Gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

// Checker alternates black and white cells of cell pixels. Warping it
// shows shear and rotation clearly.
func Checker(w, h, cell int) *image.NRGBA {
	if cell < 1 {
		cell = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{255, 255, 255, 255}
			if (x/cell+y/cell)%2 == 1 {
				c = color.NRGBA{0, 0, 0, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// AlphaGradient is a flat color whose alpha rises left to right.
func AlphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 220, G: 60, B: 30, A: uint8(x * 255 / w)})
		}
	}
	return img
}

// Named returns the pattern registered under name at its default size,
// or nil.
func Named(name string) *image.NRGBA {
	switch name {
	case "figure":
		return Figure()
	case "gradient":
		return Gradient(400, 225)
	case "checker":
		return Checker(256, 256, 32)
	case "alpha":
		return AlphaGradient(100, 100)
	}
	return nil
}

// Names lists the patterns Named accepts.
var Names = []string{"figure", "gradient", "checker", "alpha"}
