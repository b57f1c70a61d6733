package warp

import (
	"fmt"
	"math"
	"sync"

	"github.com/AnyUserName/matstudio/internal/matrix"
)

// minRowsPerBand keeps tiny canvases from being split across goroutines.
const minRowsPerBand = 16

// Resample inverse-maps every pixel of an outW x outH canvas through m
// into src. degenerate is true when m cannot be inverted, in which case the
// returned image is fully transparent. A malformed src or an empty canvas
// is an error.
func Resample(src *Image, m matrix.Mat3, outW, outH int) (dst *Image, degenerate bool, err error) {
	return Engine{}.Resample(src, m, outW, outH)
}

// Resample is the package-level Resample spread over e.Workers goroutines.
// Rows are independent, so the output is identical for any worker count.
func (e Engine) Resample(src *Image, m matrix.Mat3, outW, outH int) (dst *Image, degenerate bool, err error) {
	if err := src.Validate(); err != nil {
		return nil, false, err
	}
	if outW < 1 || outH < 1 {
		return nil, false, fmt.Errorf("%w: got %dx%d", ErrInvalidCanvas, outW, outH)
	}

	dst = NewImage(outW, outH)
	inv, err := matrix.Invert(m)
	if err != nil {
		return dst, true, nil
	}

	bands := e.workers()
	if maxBands := outH / minRowsPerBand; bands > maxBands {
		bands = maxBands
	}
	if bands <= 1 {
		resampleRows(dst, src, inv, 0, outH)
		return dst, false, nil
	}

	var wg sync.WaitGroup
	rows := (outH + bands - 1) / bands
	for y0 := 0; y0 < outH; y0 += rows {
		y1 := min(y0+rows, outH)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			resampleRows(dst, src, inv, y0, y1)
		}(y0, y1)
	}
	wg.Wait()
	return dst, false, nil
}

// resampleRows fills rows [from, to) of dst. A pixel is sampled only when its
// whole 2x2 neighbourhood lies inside src; everything else stays
// transparent.
func resampleRows(dst, src *Image, inv matrix.Mat3, from, to int) {
	sw := src.Width
	maxX, maxY := float64(src.Width-2), float64(src.Height-2)
	spix, dpix := src.Pix, dst.Pix
	stride := sw * 4

	for dy := from; dy < to; dy++ {
		fdy := float64(dy)
		o := dy * dst.Width * 4
		for dx := 0; dx < dst.Width; dx, o = dx+1, o+4 {
			sx, sy := inv.Apply(float64(dx), fdy)
			x0, y0 := math.Floor(sx), math.Floor(sy)
			if !(x0 >= 0 && x0 <= maxX && y0 >= 0 && y0 <= maxY) {
				continue
			}
			fx, fy := sx-x0, sy-y0
			w00 := (1 - fx) * (1 - fy)
			w10 := fx * (1 - fy)
			w01 := (1 - fx) * fy
			w11 := fx * fy

			i00 := int(y0)*stride + int(x0)*4
			i10 := i00 + 4
			i01 := i00 + stride
			i11 := i01 + 4
			for ch := 0; ch < 4; ch++ {
				v := float64(spix[i00+ch])*w00 +
					float64(spix[i10+ch])*w10 +
					float64(spix[i01+ch])*w01 +
					float64(spix[i11+ch])*w11
				dpix[o+ch] = uint8(math.Round(v))
			}
		}
	}
}
