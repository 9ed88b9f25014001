package canvas

import (
	"image"
	"testing"
)

func TestMapPointScalesToBacking(t *testing.T) {
	rect := Rect{Left: 10, Top: 20, Width: 200, Height: 100}
	got := MapPoint(110, 70, rect, image.Pt(400, 400))
	if got != Pt(200, 200) {
		t.Fatalf("MapPoint = %+v, want (200,200)", got)
	}
}

func TestMapPointIdentity(t *testing.T) {
	rect := Rect{Width: 100, Height: 100}
	if got := MapPoint(37, 52, rect, image.Pt(100, 100)); got != Pt(37, 52) {
		t.Fatalf("MapPoint = %+v", got)
	}
}

func TestMapPointUnmountedIsOrigin(t *testing.T) {
	if got := MapPoint(50, 50, Rect{}, image.Pt(100, 100)); got != (Point{}) {
		t.Fatalf("expected origin for empty rect, got %+v", got)
	}
	if got := MapPoint(50, 50, Rect{Width: 10, Height: 10}, image.Point{}); got != (Point{}) {
		t.Fatalf("expected origin for empty backing, got %+v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := RectFrom(image.Rect(10, 10, 20, 20))
	if !r.Contains(10, 10) || r.Contains(20, 15) || r.Contains(5, 15) {
		t.Fatalf("Contains gave unexpected results for %+v", r)
	}
}
