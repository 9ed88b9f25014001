package canvas

import (
	"image"
	"image/draw"
	"math"

	"github.com/example/doodle/internal/render"
	"golang.org/x/image/vector"
)

// PreviewOpacity is the opacity of a shape while it is being dragged.
const PreviewOpacity = 0.7

// Stroke outlines paths on dst with round caps and joins using style. Only
// pixels under the outline change. Zero length segments draw nothing.
func Stroke(dst *image.RGBA, paths []Subpath, style Style, opacity float64) {
	if dst == nil || len(paths) == 0 || style.Width <= 0 {
		return
	}
	half := style.Width / 2
	var polys [][]Point
	for _, p := range paths {
		polys = appendOutline(polys, p, half)
	}
	if len(polys) == 0 {
		return
	}
	r := polyBounds(polys).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	mask := rasterize(polys, r)
	switch style.Mode {
	case ModeErase:
		render.Erase(dst, r, mask, opacity)
	default:
		render.Paint(dst, r, mask, style.Color, opacity)
	}
}

// StrokeSegment strokes the single segment a to b.
func StrokeSegment(dst *image.RGBA, a, b Point, style Style) {
	Stroke(dst, LinePath(a, b), style, 1)
}

// appendOutline converts each non-degenerate segment of p into a quad plus
// a disc at either end. The discs give round caps and round joins.
func appendOutline(polys [][]Point, p Subpath, half float64) [][]Point {
	n := len(p.Points)
	if n < 2 {
		return polys
	}
	segs := n - 1
	if p.Closed {
		segs = n
	}
	discs := circleSegments(half)
	for i := 0; i < segs; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		l := a.Dist(b)
		if l == 0 {
			continue
		}
		nx := -(b.Y - a.Y) / l * half
		ny := (b.X - a.X) / l * half
		polys = append(polys,
			[]Point{{a.X + nx, a.Y + ny}, {b.X + nx, b.Y + ny}, {b.X - nx, b.Y - ny}, {a.X - nx, a.Y - ny}},
			arc(a, half, discs),
			arc(b, half, discs),
		)
	}
	return polys
}

func polyBounds(polys [][]Point) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
}

// rasterize accumulates coverage of polys inside r into a zero based mask.
// Every polygon is fed with the same winding so overlaps saturate instead
// of cancelling.
func rasterize(polys [][]Point, r image.Rectangle) *image.Alpha {
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Src
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, poly := range polys {
		reverse := signedArea(poly) < 0
		for i := range poly {
			p := poly[i]
			if reverse {
				p = poly[len(poly)-1-i]
			}
			x, y := float32(p.X-ox), float32(p.Y-oy)
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

func signedArea(poly []Point) float64 {
	var s float64
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		s += a.X*b.Y - b.X*a.Y
	}
	return s / 2
}
