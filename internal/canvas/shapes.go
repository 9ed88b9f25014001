package canvas

import "math"

// ArrowHeadLength is the length of each arrowhead stroke in pixels.
const ArrowHeadLength = 10

// Subpath is a polyline that the stroker outlines.
type Subpath struct {
	Points []Point
	Closed bool
}

// LinePath is a single segment from a to b.
func LinePath(a, b Point) []Subpath {
	return []Subpath{{Points: []Point{a, b}}}
}

// RectanglePath is the axis-aligned box with opposite corners a and b.
func RectanglePath(a, b Point) []Subpath {
	return []Subpath{{
		Points: []Point{a, {X: b.X, Y: a.Y}, b, {X: a.X, Y: b.Y}},
		Closed: true,
	}}
}

// CirclePath approximates the circle centered at center passing through edge.
func CirclePath(center, edge Point) []Subpath {
	r := center.Dist(edge)
	if r == 0 {
		return []Subpath{{Points: []Point{center}}}
	}
	return []Subpath{{Points: arc(center, r, circleSegments(r)), Closed: true}}
}

// circleSegments picks a segment count whose sagitta stays under a tenth of
// a pixel.
func circleSegments(r float64) int {
	n := 8
	if r > 0.1 {
		n = int(math.Ceil(math.Pi / math.Acos(1-0.1/r)))
	}
	if n < 8 {
		n = 8
	}
	if n > 1024 {
		n = 1024
	}
	return n
}

func arc(center Point, r float64, n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	return pts
}

// PolygonVertices returns the vertices of a regular polygon with its first
// vertex straight above center. It returns nil for unsupported side counts.
func PolygonVertices(center Point, radius float64, sides int) []Point {
	if !ValidSides(sides) {
		return nil
	}
	pts := make([]Point, sides)
	step := 2 * math.Pi / float64(sides)
	for i := range pts {
		a := float64(i)*step - math.Pi/2
		pts[i] = Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	return pts
}

// PolygonPath is the closed regular polygon centered at center whose
// circumradius reaches edge.
func PolygonPath(center, edge Point, sides int) []Subpath {
	pts := PolygonVertices(center, center.Dist(edge), sides)
	if pts == nil {
		return nil
	}
	return []Subpath{{Points: pts, Closed: true}}
}

// StarVertices returns the ten alternating outer and inner vertices of a
// five point star. The inner radius is half the outer.
func StarVertices(center Point, outer float64) []Point {
	const points = 5
	pts := make([]Point, points*2)
	step := math.Pi / points
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = outer / 2
		}
		a := float64(i)*step - math.Pi/2
		pts[i] = Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	return pts
}

// StarPath is the closed star centered at center whose outer points reach
// edge.
func StarPath(center, edge Point) []Subpath {
	return []Subpath{{Points: StarVertices(center, center.Dist(edge)), Closed: true}}
}

// ArrowPath is a shaft from a to b with two head strokes meeting at b.
func ArrowPath(a, b Point) []Subpath {
	angle := math.Atan2(b.Y-a.Y, b.X-a.X)
	head := func(off float64) Point {
		return Point{
			X: b.X - ArrowHeadLength*math.Cos(angle+off),
			Y: b.Y - ArrowHeadLength*math.Sin(angle+off),
		}
	}
	return []Subpath{
		{Points: []Point{a, b, head(-math.Pi / 6)}},
		{Points: []Point{b, head(math.Pi / 6)}},
	}
}

// ShapePath builds the outline for a shape tool dragged from anchor to
// current. The boolean is false when the tool draws no shape, including a
// polygon whose side count is not yet valid.
func ShapePath(tool Tool, sides int, anchor, current Point) ([]Subpath, bool) {
	var p []Subpath
	switch tool {
	case ToolLine:
		p = LinePath(anchor, current)
	case ToolRectangle:
		p = RectanglePath(anchor, current)
	case ToolCircle:
		p = CirclePath(anchor, current)
	case ToolPolygon:
		p = PolygonPath(anchor, current, sides)
	case ToolStar:
		p = StarPath(anchor, current)
	case ToolArrow:
		p = ArrowPath(anchor, current)
	}
	return p, p != nil
}
