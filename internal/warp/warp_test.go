package warp

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/AnyUserName/matstudio/internal/matrix"
	"github.com/AnyUserName/matstudio/internal/transform"
)

var (
	red         = [4]uint8{255, 0, 0, 255}
	green       = [4]uint8{0, 255, 0, 255}
	blue        = [4]uint8{0, 0, 255, 255}
	white       = [4]uint8{255, 255, 255, 255}
	transparent = [4]uint8{}
)

func cornerImage() *Image {
	im := NewImage(2, 2)
	im.Set(0, 0, red)
	im.Set(1, 0, green)
	im.Set(0, 1, blue)
	im.Set(1, 1, white)
	return im
}

func gradientImage(w, h int) *Image {
	im := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			im.Set(x, y, [4]uint8{uint8(x * 255 / w), uint8(y * 255 / h), uint8((x + y) % 256), 255})
		}
	}
	return im
}

func neutral() (transform.Order, transform.Set) {
	return transform.DefaultOrder(), transform.DefaultParams().Set()
}

func TestIdentityReproducesSource(t *testing.T) {
	src := gradientImage(8, 8)
	o, s := neutral()
	res, err := Apply(src, o, s)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !res.Matrix.IsTranslation(1e-12) {
		t.Fatalf("combined matrix is not a pure translation: %v", res.Matrix)
	}
	// pad = 8 * 0.25 = 2 on every side.
	if res.Canvas.Width != 12 || res.Canvas.Height != 12 {
		t.Fatalf("canvas = %dx%d, want 12x12", res.Canvas.Width, res.Canvas.Height)
	}
	if res.Matrix[2] != 2 || res.Matrix[5] != 2 {
		t.Errorf("translation = (%v,%v), want (2,2)", res.Matrix[2], res.Matrix[5])
	}

	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			sx, sy := x-2, y-2
			got := res.Image.At(x, y)
			// The last source row and column have no full 2x2 neighbourhood.
			if sx >= 0 && sx <= 6 && sy >= 0 && sy <= 6 {
				if want := src.At(sx, sy); got != want {
					t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
				}
			} else if got != transparent {
				t.Errorf("pixel (%d,%d) = %v, want transparent", x, y, got)
			}
		}
	}
}

func TestCornerImageNeutral(t *testing.T) {
	o, s := neutral()
	res, err := Apply(cornerImage(), o, s)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// pad = 0.5 per side.
	if res.Image.Width != 3 || res.Image.Height != 3 {
		t.Fatalf("output = %dx%d, want 3x3", res.Image.Width, res.Image.Height)
	}
	if !res.Matrix.ApproxEqual(matrix.Translate(0.5, 0.5), 1e-12) {
		t.Errorf("matrix = %v, want translate(0.5,0.5)", res.Matrix)
	}
	// The center maps to source (0.5,0.5) and blends all four corners
	// equally; every other pixel falls outside the sampleable interior.
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			got := res.Image.At(x, y)
			want := transparent
			if x == 1 && y == 1 {
				want = [4]uint8{128, 128, 128, 255}
			}
			if got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBilinearWeights(t *testing.T) {
	src := NewImage(3, 2)
	for x := 0; x < 3; x++ {
		src.Set(x, 0, [4]uint8{uint8(x * 100), 0, 0, 255})
		src.Set(x, 1, [4]uint8{uint8(x * 100), 200, 0, 255})
	}
	// dst(x,y) samples src(x+0.5, y+0.25).
	dst, degenerate, err := Resample(src, matrix.Translate(-0.5, -0.25), 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if degenerate {
		t.Fatal("translation reported degenerate")
	}
	if got, want := dst.At(0, 0), [4]uint8{50, 50, 0, 255}; got != want {
		t.Errorf("(0,0) = %v, want %v", got, want)
	}
	if got, want := dst.At(1, 0), [4]uint8{150, 50, 0, 255}; got != want {
		t.Errorf("(1,0) = %v, want %v", got, want)
	}
	if got := dst.At(2, 0); got != transparent {
		t.Errorf("(2,0) = %v, want transparent", got)
	}
	if got := dst.At(0, 1); got != transparent {
		t.Errorf("(0,1) = %v, want transparent", got)
	}
}

func TestAlphaNotPremultiplied(t *testing.T) {
	src := NewImage(2, 2)
	src.Set(0, 0, [4]uint8{200, 0, 0, 0})
	src.Set(1, 0, [4]uint8{200, 0, 0, 255})
	src.Set(0, 1, [4]uint8{200, 0, 0, 0})
	src.Set(1, 1, [4]uint8{200, 0, 0, 255})
	dst, _, err := Resample(src, matrix.Translate(-0.5, 0), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := dst.At(0, 0), [4]uint8{200, 0, 0, 128}; got != want {
		t.Errorf("blend = %v, want %v", got, want)
	}
}

func TestDegenerateZeroScale(t *testing.T) {
	s := transform.IdentitySet().With(transform.Scale, transform.ScaleMatrix(0, 1))
	full := transform.Compose(transform.DefaultOrder(), s, 8, 8)
	if _, err := matrix.Invert(full); !errors.Is(err, matrix.ErrDegenerate) {
		t.Fatalf("Invert err = %v, want ErrDegenerate", err)
	}

	res, err := Apply(gradientImage(8, 8), transform.DefaultOrder(), s)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !res.Degenerate {
		t.Error("Degenerate not set")
	}
	// x collapses to the center line; only the padding remains.
	if res.Image.Width != 4 || res.Image.Height != 12 {
		t.Errorf("canvas = %dx%d, want 4x12", res.Image.Width, res.Image.Height)
	}
	if len(res.Image.Pix) != 4*12*4 {
		t.Fatalf("buffer length = %d", len(res.Image.Pix))
	}
	for i, v := range res.Image.Pix {
		if v != 0 {
			t.Fatalf("byte %d = %d, want 0", i, v)
		}
	}
}

func TestResampleDegenerateDirect(t *testing.T) {
	dst, degenerate, err := Resample(gradientImage(4, 4), matrix.Mat3{}, 5, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !degenerate {
		t.Error("zero matrix not reported degenerate")
	}
	if dst.Width != 5 || dst.Height != 7 || len(dst.Pix) != 5*7*4 {
		t.Errorf("dst = %dx%d (%d bytes)", dst.Width, dst.Height, len(dst.Pix))
	}
}

func TestBoundsGrowWithRotation(t *testing.T) {
	prev := int64(-1)
	for _, deg := range []float64{0, 15, 30, 45} {
		s := transform.IdentitySet().With(transform.Rotation, transform.RotationMatrix(deg))
		full := transform.Compose(transform.DefaultOrder(), s, 100, 100)
		area := Bounds(100, 100, full).Pixels()
		if area <= prev {
			t.Errorf("area at %v° = %d, not larger than %d", deg, area, prev)
		}
		prev = area
	}
}

func TestBoundsPadding(t *testing.T) {
	c := Bounds(40, 20, matrix.Identity())
	if c.Width != 60 || c.Height != 40 {
		t.Errorf("canvas = %dx%d, want 60x40", c.Width, c.Height)
	}
	if c.MinX != -10 || c.MinY != -10 {
		t.Errorf("min = (%v,%v), want (-10,-10)", c.MinX, c.MinY)
	}
	x, y := c.Offset().Apply(c.MinX, c.MinY)
	if x != 0 || y != 0 {
		t.Errorf("offset maps min corner to (%v,%v)", x, y)
	}
}

func TestTransformedContentInsideCanvas(t *testing.T) {
	p := transform.DefaultParams()
	p.Degrees = 33
	p.ShearX = 0.4
	p.ScaleY = 1.7
	src := gradientImage(30, 20)
	res, err := Apply(src, transform.Order{transform.Shear, transform.Rotation, transform.Scale}, p.Set())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for _, c := range [][2]float64{{0, 0}, {30, 0}, {30, 20}, {0, 20}} {
		x, y := res.Matrix.Apply(c[0], c[1])
		if x < 0 || y < 0 || x > float64(res.Canvas.Width) || y > float64(res.Canvas.Height) {
			t.Errorf("corner %v lands outside canvas at (%v,%v)", c, x, y)
		}
	}
	// Borders are padding only.
	w, h := res.Image.Width, res.Image.Height
	for x := 0; x < w; x++ {
		if res.Image.At(x, 0) != transparent || res.Image.At(x, h-1) != transparent {
			t.Fatalf("border pixel in column %d not transparent", x)
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	src := gradientImage(120, 90)
	p := transform.DefaultParams()
	p.Degrees = 21
	p.ScaleX = 1.3
	o := transform.DefaultOrder()

	seq, err := Engine{}.Apply(src, o, p.Set())
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	par, err := Engine{Workers: 7}.Apply(src, o, p.Set())
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if !bytes.Equal(seq.Image.Pix, par.Image.Pix) {
		t.Error("parallel output differs from sequential")
	}
}

func TestApplyMatrixManual(t *testing.T) {
	src := gradientImage(4, 4)
	res, err := ApplyMatrix(src, matrix.Mat3{2, 0, 0, 0, 2, 0})
	if err != nil {
		t.Fatalf("ApplyMatrix: %v", err)
	}
	// Corners span 0..8, pad 1.
	if res.Canvas.Width != 10 || res.Canvas.Height != 10 {
		t.Errorf("canvas = %dx%d, want 10x10", res.Canvas.Width, res.Canvas.Height)
	}
	if want := (matrix.Mat3{2, 0, 1, 0, 2, 1}); !res.Matrix.ApproxEqual(want, 1e-12) {
		t.Errorf("matrix = %v, want %v", res.Matrix, want)
	}
	if res.Centered != (matrix.Mat3{2, 0, 0, 0, 2, 0}) {
		t.Errorf("centered = %v", res.Centered)
	}
}

func TestApplyErrors(t *testing.T) {
	o, s := neutral()
	if _, err := Apply(&Image{}, o, s); !errors.Is(err, ErrEmptySource) {
		t.Errorf("empty source err = %v", err)
	}
	if _, err := Apply(&Image{Width: 2, Height: 2, Pix: make([]uint8, 3)}, o, s); !errors.Is(err, ErrEmptySource) {
		t.Errorf("short buffer err = %v", err)
	}
	if _, err := Apply(cornerImage(), transform.Order{transform.Scale, transform.Scale, transform.Shear}, s); !errors.Is(err, transform.ErrInvalidOrder) {
		t.Errorf("bad order err = %v", err)
	}
	if _, err := ApplyMatrix(cornerImage(), matrix.Mat3{math.NaN(), 0, 0, 0, 1, 0}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("NaN matrix err = %v", err)
	}
	if _, err := (Engine{MaxPixels: 100}).ApplyMatrix(gradientImage(10, 10), matrix.Mat3{10, 0, 0, 0, 10, 0}); !errors.Is(err, ErrCanvasTooLarge) {
		t.Errorf("huge canvas err = %v", err)
	}
}

func TestResampleRejectsBadInput(t *testing.T) {
	id := matrix.Identity()
	tests := []struct {
		name       string
		src        *Image
		outW, outH int
		want       error
	}{
		{"nil source", nil, 2, 2, ErrEmptySource},
		{"short buffer", &Image{Width: 4, Height: 4, Pix: make([]uint8, 10)}, 2, 2, ErrEmptySource},
		{"zero width", cornerImage(), 0, 2, ErrInvalidCanvas},
		{"negative height", cornerImage(), 2, -3, ErrInvalidCanvas},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, _, err := Resample(tt.src, id, tt.outW, tt.outH)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if dst != nil {
				t.Error("dst returned alongside an error")
			}
		})
	}
}

func TestCanvasAdmitsLargePhotos(t *testing.T) {
	var e Engine
	o := transform.DefaultOrder()

	// Identity on a 5500x5500 source pads to 8250x8250.
	c, err := e.Canvas(5500, 5500, transform.Compose(o, transform.IdentitySet(), 5500, 5500))
	if err != nil {
		t.Fatalf("identity 5500x5500: %v", err)
	}
	if c.Width != 8250 || c.Height != 8250 {
		t.Errorf("canvas = %dx%d, want 8250x8250", c.Width, c.Height)
	}

	// A 24 MP photo rotated 45 degrees.
	p := transform.DefaultParams()
	p.Degrees = 45
	if _, err := e.Canvas(6000, 4000, transform.Compose(o, p.Set(), 6000, 4000)); err != nil {
		t.Errorf("rotated 6000x4000: %v", err)
	}

	// A near-singular blow-up is still refused.
	huge := matrix.Mat3{1e4, 0, 0, 0, 1e4, 0}
	if _, err := e.Canvas(6000, 4000, huge); !errors.Is(err, ErrCanvasTooLarge) {
		t.Errorf("huge canvas err = %v", err)
	}

	if _, err := (Engine{MaxPixels: 1 << 20}).Canvas(5500, 5500, matrix.Identity()); !errors.Is(err, ErrCanvasTooLarge) {
		t.Errorf("custom limit err = %v", err)
	}
}

func TestSourceUntouched(t *testing.T) {
	src := gradientImage(16, 16)
	before := append([]uint8(nil), src.Pix...)
	p := transform.DefaultParams()
	p.Degrees = 10
	if _, err := Apply(src, transform.DefaultOrder(), p.Set()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !bytes.Equal(before, src.Pix) {
		t.Error("Apply modified the source buffer")
	}
}

func TestFromImageSubImage(t *testing.T) {
	n := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			n.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 9, A: 255})
		}
	}
	im := FromImage(n.SubImage(image.Rect(1, 2, 3, 4)))
	if im.Width != 2 || im.Height != 2 {
		t.Fatalf("size = %dx%d", im.Width, im.Height)
	}
	if got, want := im.At(0, 0), [4]uint8{1, 2, 9, 255}; got != want {
		t.Errorf("(0,0) = %v, want %v", got, want)
	}
	if got, want := im.At(1, 1), [4]uint8{2, 3, 9, 255}; got != want {
		t.Errorf("(1,1) = %v, want %v", got, want)
	}
	if !im.Opaque() {
		t.Error("opaque image reported transparent")
	}
	if im.NRGBA().NRGBAAt(1, 0) != (color.NRGBA{R: 2, G: 2, B: 9, A: 255}) {
		t.Errorf("NRGBA view = %v", im.NRGBA().NRGBAAt(1, 0))
	}
}

func BenchmarkResample(b *testing.B) {
	src := gradientImage(512, 512)
	p := transform.DefaultParams()
	p.Degrees = 30
	full := transform.Compose(transform.DefaultOrder(), p.Set(), 512, 512)
	c := Bounds(512, 512, full)
	m := matrix.Multiply(c.Offset(), full)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, _ = Resample(src, m, c.Width, c.Height)
	}
}
