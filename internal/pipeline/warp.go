package pipeline

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/matstudio/internal/recipe"
	"github.com/AnyUserName/matstudio/internal/warp"
)

// Warp runs one decoded image through plan: composition about the image
// center, or the plan's manual matrix when it has one.
func Warp(img image.Image, plan recipe.Plan, eng warp.Engine) (*warp.Result, error) {
	src := warp.FromImage(img)
	if plan.Matrix != nil {
		return eng.ApplyMatrix(src, *plan.Matrix)
	}
	return eng.Apply(src, plan.Order, plan.Set())
}

// Preview returns a copy of img scaled down to width, keeping the aspect
// ratio. Images already narrower than width are returned as is.
func Preview(img *warp.Image, width int) image.Image {
	nrgba := img.NRGBA()
	if width <= 0 || width >= img.Width {
		return nrgba
	}
	return imaging.Resize(nrgba, width, 0, imaging.Lanczos)
}

// Open decodes the image at path, applying EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
