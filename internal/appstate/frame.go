package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strings"
	"time"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/render"
	"github.com/example/doodle/internal/theme"

	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	margin       = 8
	bottomHeight = 24
	swatchSize   = 16
	checkerSize  = 8
)

const (
	fallbackTitle  = "Something went wrong with the canvas"
	fallbackDetail = "Please restart to try again."
)

var (
	noticeFace font.Face
	detailFace font.Face
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	noticeFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 28, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	detailFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// fitZoom returns the largest scale at which size fits in availW x availH.
func fitZoom(size image.Point, availW, availH int) float64 {
	zx := float64(availW) / float64(size.X)
	zy := float64(availH) / float64(size.Y)
	if zx < zy {
		return zx
	}
	return zy
}

// canvasRect returns where the canvas is shown in a winW x winH window: the
// largest rectangle with the canvas aspect that fits above the status bar,
// centred in the remaining space.
func canvasRect(size image.Point, winW, winH int) image.Rectangle {
	availW := winW - 2*margin
	availH := winH - bottomHeight - 2*margin
	if size.X <= 0 || size.Y <= 0 || availW <= 0 || availH <= 0 {
		return image.Rectangle{}
	}
	zoom := fitZoom(size, availW, availH)
	w := int(float64(size.X) * zoom)
	h := int(float64(size.Y) * zoom)
	x0 := margin + (availW-w)/2
	y0 := margin + (availH-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// swatchRects lays the palette out right-aligned in the status bar.
func swatchRects(width, height, n int) []image.Rectangle {
	out := make([]image.Rectangle, n)
	y := height - bottomHeight + (bottomHeight-swatchSize)/2
	x := width - margin - n*(swatchSize+4) + 4
	for i := range out {
		out[i] = image.Rect(x, y, x+swatchSize, y+swatchSize)
		x += swatchSize + 4
	}
	return out
}

// paletteIndex returns the palette position of hex, or -1.
func paletteIndex(hex string) int {
	c, err := canvas.ParseColor(hex)
	if err != nil {
		return -1
	}
	for i, e := range canvas.Palette() {
		if e.Color == c {
			return i
		}
	}
	return -1
}

// statusText summarises the active props for the status bar.
func statusText(p canvas.Props, canUndo bool) string {
	var sb strings.Builder
	sb.WriteString(p.Tool.String())
	if p.Tool == canvas.ToolPolygon {
		fmt.Fprintf(&sb, "(%d)", p.PolygonSides)
	}
	fmt.Fprintf(&sb, "  %s  size %d", p.Color, p.BrushSize)
	if p.Erasing {
		sb.WriteString("  eraser")
	}
	if canUndo {
		sb.WriteString("  ^Z:undo")
	}
	sb.WriteString("  ^S:save ^C:copy Q:quit")
	return sb.String()
}

type paintState struct {
	width, height int
	rect          image.Rectangle
	img           *image.RGBA
	props         canvas.Props
	canUndo       bool
	failed        bool
	message       string
	messageUntil  time.Time
	theme         *theme.Theme
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	renderFrame(ctx, b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// renderFrame composes the whole window into dst.
func renderFrame(ctx context.Context, dst *image.RGBA, st paintState) {
	th := st.theme
	if st.failed {
		drawFallback(dst, th)
		return
	}
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)

	if !st.rect.Empty() && st.img != nil {
		render.Checkerboard(dst, st.rect, th.CheckerLight, th.CheckerDark, checkerSize)
		if ctx.Err() != nil {
			return
		}
		xdraw.NearestNeighbor.Scale(dst, st.rect, st.img, st.img.Bounds(), draw.Over, nil)
		drawRect(dst, st.rect.Inset(-1), th.CanvasBorder, 1)
	}
	if ctx.Err() != nil {
		return
	}

	drawStatus(dst, st)

	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawMessage(dst, st.message, th)
	}
}

func drawStatus(dst *image.RGBA, st paintState) {
	th := st.theme
	bar := image.Rect(0, st.height-bottomHeight, st.width, st.height)
	draw.Draw(dst, bar, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(margin, st.height-bottomHeight+16)}
	d.DrawString(statusText(st.props, st.canUndo))

	pal := canvas.Palette()
	sel := paletteIndex(st.props.Color)
	for i, r := range swatchRects(st.width, st.height, len(pal)) {
		draw.Draw(dst, r, &image.Uniform{pal[i].Color}, image.Point{}, draw.Src)
		if i == sel {
			drawRect(dst, r.Inset(-2), th.Accent, 2)
		} else {
			drawRect(dst, r, th.CanvasBorder, 1)
		}
	}
}

func drawMessage(dst *image.RGBA, msg string, th *theme.Theme) {
	b := dst.Bounds()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: detailFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := detailFace.Metrics().Ascent.Ceil()
	descent := detailFace.Metrics().Descent.Ceil()
	px := (b.Dx() - wmsg) / 2
	py := (b.Dy()-bottomHeight-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	bg := th.StatusBackground
	bg.A = 230
	draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Over)
	drawRect(dst, rect, th.CanvasBorder, 1)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

// drawFallback replaces the whole window with the static failure notice.
func drawFallback(dst *image.RGBA, th *theme.Theme) {
	b := dst.Bounds()
	draw.Draw(dst, b, &image.Uniform{th.ErrorBackground}, image.Point{}, draw.Src)
	src := image.NewUniform(th.ErrorText)
	lines := []struct {
		text string
		face font.Face
	}{
		{fallbackTitle, noticeFace},
		{fallbackDetail, detailFace},
	}
	y := b.Dy()/2 - noticeFace.Metrics().Height.Ceil()/2
	for _, l := range lines {
		d := &font.Drawer{Dst: dst, Src: src, Face: l.face}
		x := (b.Dx() - d.MeasureString(l.text).Ceil()) / 2
		if x < margin {
			x = margin
		}
		d.Dot = fixed.P(x, y)
		d.DrawString(l.text)
		y += l.face.Metrics().Height.Ceil() + margin
	}
}

// drawRect outlines r with the given thickness.
func drawRect(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
