package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Paint blends col over dst through mask. mask is zero based and covers the
// destination rectangle r. opacity scales the color's alpha and is clamped
// to [0,1].
func Paint(dst *image.RGBA, r image.Rectangle, mask *image.Alpha, col color.RGBA, opacity float64) {
	if dst == nil || mask == nil {
		return
	}
	a := scaleAlpha(col.A, opacity)
	if a == 0 {
		return
	}
	src := image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: a})
	draw.DrawMask(dst, r, src, image.Point{}, mask, mask.Bounds().Min, draw.Over)
}

// Erase removes alpha from dst wherever mask has coverage, the way a
// destination-out composite does. Color channels are scaled with alpha so the
// surface stays premultiplied.
func Erase(dst *image.RGBA, r image.Rectangle, mask *image.Alpha, opacity float64) {
	if dst == nil || mask == nil {
		return
	}
	op := uint32(scaleAlpha(255, opacity))
	if op == 0 {
		return
	}
	clip := r.Intersect(dst.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		my := y - r.Min.Y + mask.Rect.Min.Y
		for x := clip.Min.X; x < clip.Max.X; x++ {
			cov := uint32(mask.Pix[mask.PixOffset(x-r.Min.X+mask.Rect.Min.X, my)])
			if cov == 0 {
				continue
			}
			keep := 255 - (cov*op+127)/255
			i := dst.PixOffset(x, y)
			px := dst.Pix[i : i+4 : i+4]
			for c := range px {
				px[c] = uint8((uint32(px[c])*keep + 127) / 255)
			}
		}
	}
}

// Clear sets every pixel of dst to transparent.
func Clear(dst *image.RGBA) {
	if dst == nil {
		return
	}
	clear(dst.Pix)
}

// Checkerboard fills r in dst with alternating size-pixel squares, used as
// a backdrop that makes transparent pixels visible.
func Checkerboard(dst draw.Image, r image.Rectangle, light, dark color.Color, size int) {
	if size <= 0 {
		size = 8
	}
	l := image.NewUniform(light)
	d := image.NewUniform(dark)
	for y := r.Min.Y; y < r.Max.Y; y += size {
		for x := r.Min.X; x < r.Max.X; x += size {
			cell := image.Rect(x, y, x+size, y+size).Intersect(r)
			src := l
			if ((x-r.Min.X)/size+(y-r.Min.Y)/size)%2 == 1 {
				src = d
			}
			draw.Draw(dst, cell, src, image.Point{}, draw.Src)
		}
	}
}

func scaleAlpha(a uint8, opacity float64) uint8 {
	if opacity <= 0 {
		return 0
	}
	if opacity >= 1 {
		return a
	}
	return uint8(float64(a)*opacity + 0.5)
}
