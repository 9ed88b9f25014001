package canvas

import (
	"bytes"
	"image"
	"testing"
)

func paintedSurface() *Surface {
	sf := NewSurface(image.Pt(120, 120))
	StrokeSegment(sf.Backing, Pt(10, 60), Pt(110, 60), Style{Color: blue, Width: 4})
	return sf
}

func TestSessionShapePreviewIsNonDestructive(t *testing.T) {
	sf := paintedSurface()
	before := bytes.Clone(sf.Backing.Pix)
	var s Session
	in := Input{Tool: ToolLine, Style: Style{Color: red, Width: 5}}
	anchor := Pt(40, 40)
	if s.Down(sf, anchor, in) {
		t.Fatal("shape down should not commit")
	}
	if s.State() != StateShaping {
		t.Fatalf("state = %v", s.State())
	}
	for i := 0; i < 120; i++ {
		s.Move(sf, Pt(float64(i%100), float64(100-i%100)), in)
	}
	if !s.Up(sf, anchor, in) {
		t.Fatal("shape up should commit")
	}
	if !bytes.Equal(before, sf.Backing.Pix) {
		t.Fatal("zero length shape after previews changed the surface")
	}
	if s.Active() {
		t.Fatal("session still active after release")
	}
}

func TestSessionPreviewUsesReducedOpacity(t *testing.T) {
	sf := NewSurface(image.Pt(60, 60))
	var s Session
	in := Input{Tool: ToolRectangle, Style: Style{Color: red, Width: 6}}
	s.Down(sf, Pt(10, 10), in)
	s.Move(sf, Pt(50, 50), in)
	preview := sf.Backing.RGBAAt(10, 30)
	if preview.A == 0 || preview.A == 255 {
		t.Fatalf("preview alpha = %d, want translucent", preview.A)
	}
	s.Up(sf, Pt(50, 50), in)
	if got := sf.Backing.RGBAAt(10, 30); got != red {
		t.Fatalf("final outline = %+v, want opaque red", got)
	}
	if got := sf.Backing.RGBAAt(30, 30); got.A != 0 {
		t.Fatalf("rectangle interior painted: %+v", got)
	}
}

func TestSessionBrushStrokes(t *testing.T) {
	sf := NewSurface(image.Pt(60, 60))
	var s Session
	in := Input{Tool: ToolBrush, Style: Style{Color: red, Width: 5}}
	s.Down(sf, Pt(10, 10), in)
	if s.State() != StateStroking {
		t.Fatalf("state = %v", s.State())
	}
	s.Move(sf, Pt(30, 10), in)
	s.Move(sf, Pt(30, 40), in)
	if got := sf.Backing.RGBAAt(20, 10); got != red {
		t.Fatalf("first segment pixel = %+v", got)
	}
	if got := sf.Backing.RGBAAt(30, 25); got != red {
		t.Fatalf("second segment pixel = %+v", got)
	}
	if !s.Leave(sf, Pt(30, 40), in) {
		t.Fatal("leave should commit a stroke")
	}
}

func TestSessionEraserOverridesShapeTool(t *testing.T) {
	sf := paintedSurface()
	var s Session
	in := Input{Tool: ToolStar, Style: Style{Color: red, Width: 8, Mode: ModeErase}}
	s.Down(sf, Pt(60, 50), in)
	if s.State() != StateStroking {
		t.Fatalf("eraser with a shape tool should stroke, state = %v", s.State())
	}
	s.Move(sf, Pt(60, 70), in)
	if got := sf.Backing.RGBAAt(60, 60); got.A != 0 {
		t.Fatalf("eraser left pixel %+v", got)
	}
}

func TestSessionFillCommitsImmediately(t *testing.T) {
	sf := NewSurface(image.Pt(10, 10))
	var s Session
	if !s.Down(sf, Pt(4.7, 4.2), Input{Tool: ToolFill, Style: Style{Color: red}}) {
		t.Fatal("fill should commit")
	}
	if s.Active() {
		t.Fatal("fill left the session active")
	}
	if got := sf.Backing.RGBAAt(9, 9); got != red {
		t.Fatalf("fill did not cover surface: %+v", got)
	}
}

func TestSessionIdleMovesAreNoops(t *testing.T) {
	sf := paintedSurface()
	before := bytes.Clone(sf.Backing.Pix)
	var s Session
	in := Input{Tool: ToolBrush, Style: Style{Color: red, Width: 5}}
	s.Move(sf, Pt(5, 5), in)
	if s.Up(sf, Pt(5, 5), in) {
		t.Fatal("idle release committed")
	}
	if !bytes.Equal(before, sf.Backing.Pix) {
		t.Fatal("idle events changed pixels")
	}
}

func TestSessionWithoutSurface(t *testing.T) {
	var s Session
	in := Input{Tool: ToolFill}
	if s.Down(nil, Pt(1, 1), in) || s.Up(&Surface{}, Pt(1, 1), in) {
		t.Fatal("uninitialized surface should be a no-op")
	}
	s.Move(nil, Pt(1, 1), in)
}

func TestSessionInvalidPolygonDrawsNothing(t *testing.T) {
	sf := paintedSurface()
	before := bytes.Clone(sf.Backing.Pix)
	var s Session
	in := Input{Tool: ToolPolygon, Sides: 0, Style: Style{Color: red, Width: 5}}
	s.Down(sf, Pt(60, 60), in)
	s.Move(sf, Pt(90, 60), in)
	if !s.Up(sf, Pt(90, 60), in) {
		t.Fatal("release should still commit")
	}
	if !bytes.Equal(before, sf.Backing.Pix) {
		t.Fatal("polygon without sides drew pixels")
	}
}
