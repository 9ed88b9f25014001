package canvas

import (
	"image"
	"image/draw"

	"github.com/example/doodle/internal/render"
)

// State is the phase of the gesture in progress.
type State int

const (
	StateIdle State = iota
	// StateStroking is a freehand brush or eraser drag.
	StateStroking
	// StateShaping is a shape drag with a live preview.
	StateShaping
)

func (s State) String() string {
	switch s {
	case StateStroking:
		return "stroking"
	case StateShaping:
		return "shaping"
	}
	return "idle"
}

// Surface is the persistent backing raster plus the scratch raster that
// holds the pre-drag pixels while a shape is previewed.
type Surface struct {
	Backing *image.RGBA
	Scratch *image.RGBA
}

// NewSurface allocates a transparent surface of the given size.
func NewSurface(size image.Point) *Surface {
	r := image.Rectangle{Max: size}
	return &Surface{Backing: image.NewRGBA(r), Scratch: image.NewRGBA(r)}
}

func (s *Surface) ready() bool {
	return s != nil && s.Backing != nil && s.Scratch != nil
}

// snapshot copies the backing raster into scratch.
func (s *Surface) snapshot() {
	copy(s.Scratch.Pix, s.Backing.Pix)
}

// restore copies scratch back over the backing raster.
func (s *Surface) restore() {
	copy(s.Backing.Pix, s.Scratch.Pix)
}

// Replace clears the backing raster and draws img over it.
func (s *Surface) Replace(img image.Image) {
	render.Clear(s.Backing)
	draw.Draw(s.Backing, s.Backing.Bounds(), img, img.Bounds().Min, draw.Src)
}

// Input is the tool and style in effect for a pointer event.
type Input struct {
	Tool    Tool
	Sides   int
	Style   Style
	Preview float64
}

// Session tracks a single pointer gesture from press to release.
type Session struct {
	state  State
	anchor Point
	last   Point
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}

// Active reports whether a gesture is in progress.
func (s *Session) Active() bool {
	return s.state != StateIdle
}

// Down starts a gesture at p. A fill completes immediately. The result
// reports whether the surface now holds a change that should be committed
// to history.
func (s *Session) Down(sf *Surface, p Point, in Input) bool {
	if !sf.ready() {
		return false
	}
	switch {
	case in.Tool == ToolFill:
		px := p.Pixel()
		FloodFill(sf.Backing, px.X, px.Y, in.Style.Color)
		s.state = StateIdle
		return true
	case in.Tool == ToolBrush || in.Style.Mode == ModeErase:
		s.state = StateStroking
		s.last = p
	default:
		sf.snapshot()
		s.state = StateShaping
		s.anchor = p
	}
	return false
}

// Move extends a stroke or redraws the shape preview. It does nothing while
// idle.
func (s *Session) Move(sf *Surface, p Point, in Input) {
	if !sf.ready() {
		return
	}
	switch s.state {
	case StateStroking:
		StrokeSegment(sf.Backing, s.last, p, in.Style)
		s.last = p
	case StateShaping:
		sf.restore()
		if path, ok := ShapePath(in.Tool, in.Sides, s.anchor, p); ok {
			opacity := in.Preview
			if opacity <= 0 {
				opacity = PreviewOpacity
			}
			Stroke(sf.Backing, path, in.Style, opacity)
		}
	}
}

// Up ends the gesture at p, drawing the final shape if one is being
// dragged. It reports whether a change should be committed.
func (s *Session) Up(sf *Surface, p Point, in Input) bool {
	if !sf.ready() {
		return false
	}
	switch s.state {
	case StateStroking:
		s.state = StateIdle
		return true
	case StateShaping:
		sf.restore()
		if path, ok := ShapePath(in.Tool, in.Sides, s.anchor, p); ok {
			Stroke(sf.Backing, path, in.Style, 1)
		}
		s.anchor = Point{}
		s.state = StateIdle
		return true
	}
	return false
}

// Leave treats the pointer leaving the surface as a release at p.
func (s *Session) Leave(sf *Surface, p Point, in Input) bool {
	return s.Up(sf, p, in)
}

// Reset abandons any gesture without touching pixels.
func (s *Session) Reset() {
	*s = Session{}
}
