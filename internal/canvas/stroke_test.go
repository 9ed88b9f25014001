package canvas

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestStrokeSegmentPaintsOnlyAlongSegment(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	style := Style{Color: red, Width: 5}
	StrokeSegment(img, Pt(10, 10), Pt(50, 50), style)
	if got := img.RGBAAt(30, 30); got != red {
		t.Fatalf("centre of stroke = %+v, want red", got)
	}
	if got := img.RGBAAt(10, 10); got.A == 0 {
		t.Fatal("round cap missing at start")
	}
	if got := img.RGBAAt(50, 10); got.A != 0 {
		t.Fatalf("pixel far from stroke painted: %+v", got)
	}
}

func TestStrokeIsDeterministic(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 40, 40))
	b := image.NewRGBA(image.Rect(0, 0, 40, 40))
	path := StarPath(Pt(20, 20), Pt(20, 5))
	style := Style{Color: blue, Width: 3}
	Stroke(a, path, style, 1)
	Stroke(b, path, style, 1)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("identical strokes produced different pixels")
	}
	if got := a.RGBAAt(20, 20); got.A != 0 {
		t.Fatalf("star outline filled its centre: %+v", got)
	}
}

func TestStrokeZeroLengthDrawsNothing(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	StrokeSegment(img, Pt(10, 10), Pt(10, 10), Style{Color: red, Width: 8})
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatal("zero length segment painted pixels")
		}
	}
}

func TestStrokeEraseClearsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []byte{0, 0, 255, 255})
	}
	StrokeSegment(img, Pt(5, 20), Pt(35, 20), Style{Color: red, Width: 6, Mode: ModeErase})
	if got := img.RGBAAt(20, 20); got != (color.RGBA{}) {
		t.Fatalf("erased pixel = %+v, want transparent", got)
	}
	if got := img.RGBAAt(20, 5); got != blue {
		t.Fatalf("pixel away from eraser = %+v", got)
	}
}

func TestStrokeClipsToSurface(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	StrokeSegment(img, Pt(-20, 5), Pt(30, 5), Style{Color: red, Width: 2})
	if got := img.RGBAAt(0, 5); got.A == 0 {
		t.Fatal("stroke crossing the surface should cover the left edge")
	}
	if got := img.RGBAAt(9, 5); got.A == 0 {
		t.Fatal("stroke crossing the surface should cover the right edge")
	}
}
