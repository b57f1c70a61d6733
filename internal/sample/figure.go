// Package sample generates demo and fixture images: a stick figure to
// warp interactively, and flat patterns for tests and smoke runs.
package sample

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Figure dimensions.
const (
	FigureWidth  = 600
	FigureHeight = 400
)

// arcSteps is the number of segments per full turn when flattening
// ellipses into polygons.
const arcSteps = 96

// Figure draws a black stick figure, pointing left with two exclamation
// marks, on an opaque white canvas.
func Figure() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, FigureWidth, FigureHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	p := newPen(FigureWidth, FigureHeight)

	// Head.
	p.ring(350, 200, 40, 40, 8)
	// Eyes.
	p.ellipse(335, 195, 5, 5)
	p.ellipse(365, 195, 5, 5)
	// Mouth and hair, as arcs of their bounding boxes.
	p.arc(350, 217.5, 20, 7.5, 0, 180, 5)
	p.arc(350, 170, 30, 10, 0, 180, 8)
	p.arc(345, 162.5, 15, 7.5, 30, 150, 6)

	// Body.
	p.line(350, 240, 350, 340, 10)
	// Pointing arm and hand.
	p.line(350, 260, 280, 230, 10)
	p.line(280, 230, 250, 240, 8)
	// Other arm.
	p.line(350, 260, 380, 300, 10)
	// Legs.
	p.line(350, 340, 330, 390, 10)
	p.line(350, 340, 370, 390, 10)

	// Exclamation marks.
	for _, y := range []float32{250, 270} {
		p.rect(381, y+1, 2, 7)
		p.rect(381, y+9, 2, 2)
	}

	p.z.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{})
	return img
}

// pen accumulates filled shapes into one coverage mask.
type pen struct {
	z *vector.Rasterizer
}

func newPen(w, h int) *pen {
	return &pen{z: vector.NewRasterizer(w, h)}
}

func (p *pen) polygon(pts [][2]float64) {
	if len(pts) < 3 {
		return
	}
	p.z.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, pt := range pts[1:] {
		p.z.LineTo(float32(pt[0]), float32(pt[1]))
	}
	p.z.ClosePath()
}

// ellipsePoints walks an ellipse from a0 to a1 degrees, clockwise on
// screen (y down), starting at three o'clock.
func ellipsePoints(cx, cy, rx, ry, a0, a1 float64) [][2]float64 {
	n := int(math.Ceil(math.Abs(a1-a0) / 360 * arcSteps))
	if n < 2 {
		n = 2
	}
	pts := make([][2]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		a := (a0 + (a1-a0)*float64(i)/float64(n)) * math.Pi / 180
		s, c := math.Sincos(a)
		pts = append(pts, [2]float64{cx + rx*c, cy + ry*s})
	}
	return pts
}

func (p *pen) ellipse(cx, cy, rx, ry float64) {
	p.polygon(ellipsePoints(cx, cy, rx, ry, 0, 360))
}

// ring strokes an ellipse outline of the given width inside its box.
func (p *pen) ring(cx, cy, rx, ry, width float64) {
	p.ellipse(cx, cy, rx, ry)
	// Reverse winding cuts the hole.
	p.polygon(ellipsePoints(cx, cy, rx-width, ry-width, 360, 0))
}

// arc strokes part of an ellipse outline, inset like ring.
func (p *pen) arc(cx, cy, rx, ry, a0, a1, width float64) {
	outer := ellipsePoints(cx, cy, rx, ry, a0, a1)
	inner := ellipsePoints(cx, cy, math.Max(rx-width, 0), math.Max(ry-width, 0), a1, a0)
	p.polygon(append(outer, inner...))
}

// line strokes a segment with square ends at the endpoints.
func (p *pen) line(x0, y0, x1, y1, width float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	// Same winding as ellipsePoints so overlapping shapes add up.
	p.polygon([][2]float64{
		{x0 - nx, y0 - ny},
		{x1 - nx, y1 - ny},
		{x1 + nx, y1 + ny},
		{x0 + nx, y0 + ny},
	})
}

func (p *pen) rect(x, y, w, h float32) {
	p.z.MoveTo(x, y)
	p.z.LineTo(x+w, y)
	p.z.LineTo(x+w, y+h)
	p.z.LineTo(x, y+h)
	p.z.ClosePath()
}
