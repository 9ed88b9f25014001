package canvas

import (
	"image"
	"math"
)

// Point is a location in backing-pixel space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Pixel floors p to the integer pixel that contains it.
func (p Point) Pixel() image.Point {
	return image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// Rect is the on-screen bounding rectangle of the drawing element in client
// coordinates.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// RectFrom converts an integer rectangle into a Rect.
func RectFrom(r image.Rectangle) Rect {
	return Rect{
		Left:   float64(r.Min.X),
		Top:    float64(r.Min.Y),
		Width:  float64(r.Dx()),
		Height: float64(r.Dy()),
	}
}

// Empty reports whether the rectangle has no area, which is how an
// unmounted element measures.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the client point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && y >= r.Top && x < r.Left+r.Width && y < r.Top+r.Height
}

// MapPoint converts client coordinates into backing-pixel coordinates for an
// element laid out at rect whose raster is backing pixels in size. The
// element may be displayed at any scale. An unmounted element maps every
// point to the origin.
func MapPoint(clientX, clientY float64, rect Rect, backing image.Point) Point {
	if rect.Empty() || backing.X <= 0 || backing.Y <= 0 {
		return Point{}
	}
	return Point{
		X: (clientX - rect.Left) * float64(backing.X) / rect.Width,
		Y: (clientY - rect.Top) * float64(backing.Y) / rect.Height,
	}
}
