package canvas

import (
	"image"
	"image/color"
)

// FloodFill recolors the 4-connected region of dst containing (x, y) whose
// pixels share the seed pixel's RGB. Alpha is ignored when matching and
// filled pixels become opaque. It reports whether any pixel changed; seeds
// outside dst and fills with the seed's own RGB are no-ops.
func FloodFill(dst *image.RGBA, x, y int, c color.RGBA) bool {
	if dst == nil || !image.Pt(x, y).In(dst.Bounds()) {
		return false
	}
	seed := dst.Pix[dst.PixOffset(x, y):]
	or, og, ob := seed[0], seed[1], seed[2]
	if or == c.R && og == c.G && ob == c.B {
		return false
	}
	b := dst.Bounds()
	stack := []image.Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !p.In(b) {
			continue
		}
		i := dst.PixOffset(p.X, p.Y)
		px := dst.Pix[i : i+4 : i+4]
		if px[0] != or || px[1] != og || px[2] != ob {
			continue
		}
		px[0], px[1], px[2], px[3] = c.R, c.G, c.B, 0xff
		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}
	return true
}
