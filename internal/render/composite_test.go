package render

import (
	"image"
	"image/color"
	"testing"
)

func fullMask(w, h int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	return m
}

func TestPaintFullCoverage(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	r := image.Rect(1, 1, 3, 3)
	Paint(dst, r, fullMask(2, 2), color.RGBA{R: 255, A: 255}, 1)
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("painted pixel = %+v", got)
	}
	if got := dst.RGBAAt(0, 0); got.A != 0 {
		t.Fatalf("pixel outside mask changed: %+v", got)
	}
}

func TestPaintOpacityScalesAlpha(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	Paint(dst, dst.Bounds(), fullMask(1, 1), color.RGBA{B: 255, A: 255}, 0.7)
	got := dst.RGBAAt(0, 0)
	if got.A < 177 || got.A > 180 {
		t.Fatalf("alpha = %d, want about 178", got.A)
	}
	if got.B != got.A {
		t.Fatalf("expected premultiplied blue to equal alpha, got %+v", got)
	}
}

func TestEraseClearsCoveredPixels(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 3, 1))
	for x := 0; x < 3; x++ {
		dst.SetRGBA(x, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	}
	mask := image.NewAlpha(image.Rect(0, 0, 2, 1))
	mask.Pix[0] = 0xff
	mask.Pix[1] = 0x80
	Erase(dst, image.Rect(1, 0, 3, 1), mask, 1)
	if got := dst.RGBAAt(0, 0); got.A != 255 {
		t.Fatalf("uncovered pixel erased: %+v", got)
	}
	if got := dst.RGBAAt(1, 0); got != (color.RGBA{}) {
		t.Fatalf("fully covered pixel = %+v, want transparent", got)
	}
	got := dst.RGBAAt(2, 0)
	if got.A == 0 || got.A == 255 {
		t.Fatalf("partially covered pixel alpha = %d", got.A)
	}
	if got.R > got.A || got.G > got.A || got.B > got.A {
		t.Fatalf("pixel no longer premultiplied: %+v", got)
	}
}

func TestEraseZeroOpacityNoop(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	dst.SetRGBA(0, 0, color.RGBA{R: 1, A: 255})
	Erase(dst, dst.Bounds(), fullMask(1, 1), 0)
	if got := dst.RGBAAt(0, 0); got.A != 255 {
		t.Fatalf("erase with zero opacity changed pixel: %+v", got)
	}
}

func TestCheckerboardAlternates(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 2))
	light := color.RGBA{200, 200, 200, 255}
	dark := color.RGBA{100, 100, 100, 255}
	Checkerboard(dst, dst.Bounds(), light, dark, 2)
	if got := dst.RGBAAt(0, 0); got != light {
		t.Fatalf("first cell = %+v", got)
	}
	if got := dst.RGBAAt(2, 0); got != dark {
		t.Fatalf("second cell = %+v", got)
	}
}
