package appstate

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/theme"

	"golang.org/x/mobile/event/key"
)

func TestCanvasRectFitsAndCentres(t *testing.T) {
	size := image.Pt(100, 50)
	r := canvasRect(size, 100+2*margin, 50+bottomHeight+2*margin)
	if r != image.Rect(margin, margin, margin+100, margin+50) {
		t.Fatalf("unscaled rect = %v", r)
	}

	r = canvasRect(size, 416, 300+bottomHeight)
	if r.Dx() != 400 || r.Dy() != 200 {
		t.Fatalf("scaled rect size = %v", r.Size())
	}
	if top, bottom := r.Min.Y-margin, 300+bottomHeight-bottomHeight-margin-r.Max.Y; top != bottom {
		t.Fatalf("not centred vertically: %d vs %d", top, bottom)
	}

	if r := canvasRect(size, 4, 4); !r.Empty() {
		t.Fatalf("expected empty rect, got %v", r)
	}
}

func TestKeymapLookup(t *testing.T) {
	k := newKeymap()
	var got []string
	k.register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, func() { got = append(got, "undo") })
	k.register("more", shortcutList{{Rune: '='}, {Rune: '+'}}, func() { got = append(got, "more") })
	k.register("clear", shortcutList{{Code: key.CodeDeleteForward, Modifiers: key.ModControl}}, func() { got = append(got, "clear") })

	cases := []struct {
		ev   key.Event
		want string
	}{
		{key.Event{Rune: 'Z', Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift}, "undo"},
		{key.Event{Rune: '+', Code: key.CodeEqualSign, Modifiers: key.ModShift}, "more"},
		{key.Event{Rune: -1, Code: key.CodeDeleteForward, Modifiers: key.ModControl}, "clear"},
		{key.Event{Rune: 'z', Code: key.CodeZ}, ""},
		{key.Event{Rune: -1, Code: key.CodeDeleteForward}, ""},
	}
	for _, c := range cases {
		name, ok := k.lookup(c.ev)
		if c.want == "" {
			if ok {
				t.Fatalf("%+v: unexpected action %q", c.ev, name)
			}
			continue
		}
		if !ok || name != c.want {
			t.Fatalf("%+v: got %q, want %q", c.ev, name, c.want)
		}
		k.trigger(name)
	}
	if strings.Join(got, ",") != "undo,more,clear" {
		t.Fatalf("triggered %v", got)
	}
	if k.trigger("missing") {
		t.Fatal("trigger of unknown action reported success")
	}
}

func TestToolKeysCoverEveryTool(t *testing.T) {
	if len(toolKeys) != len(canvas.Tools()) {
		t.Fatalf("%d tool keys for %d tools", len(toolKeys), len(canvas.Tools()))
	}
	seen := map[canvas.Tool]bool{}
	for _, tool := range toolKeys {
		if seen[tool] {
			t.Fatalf("tool %v bound twice", tool)
		}
		seen[tool] = true
	}
	if toolKeys[4] != canvas.ToolFill {
		t.Fatalf("key 5 = %v, want fill", toolKeys[4])
	}
}

func TestNextPaletteColor(t *testing.T) {
	pal := canvas.Palette()
	first := canvas.HexColor(pal[0].Color)
	last := canvas.HexColor(pal[len(pal)-1].Color)
	if got := nextPaletteColor(first, -1); got != last {
		t.Fatalf("wrap backwards = %s, want %s", got, last)
	}
	if got := nextPaletteColor(last, 1); got != first {
		t.Fatalf("wrap forwards = %s, want %s", got, first)
	}
	if got := nextPaletteColor("#123456", 1); got != first {
		t.Fatalf("off palette = %s, want %s", got, first)
	}
	if got := nextPaletteColor("crimson", 1); got != canvas.HexColor(pal[3].Color) {
		t.Fatalf("after crimson = %s", got)
	}
}

func TestStepSides(t *testing.T) {
	cases := []struct{ sides, delta, fallback, want int }{
		{5, 1, 5, 6},
		{3, -1, 5, 3},
		{12, 1, 5, 12},
		{0, 1, 5, 5},
		{0, -1, 0, canvas.MinPolygonSides},
	}
	for _, c := range cases {
		if got := stepSides(c.sides, c.delta, c.fallback); got != c.want {
			t.Fatalf("stepSides(%d, %d, %d) = %d, want %d", c.sides, c.delta, c.fallback, got, c.want)
		}
	}
}

func TestGuardRecoversPanic(t *testing.T) {
	if err := guard("ok", func() {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := guard("boom", func() { panic(errors.New("broken")) })
	if err == nil || !strings.Contains(err.Error(), "boom") || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("guard error = %v", err)
	}
}

func TestOutputName(t *testing.T) {
	if got := outputName("", ""); got != "doodle-canvas.png" {
		t.Fatalf("defaults = %q", got)
	}
	if got := outputName("art", "jpg"); got != "art.jpeg" {
		t.Fatalf("jpg = %q", got)
	}
}

func TestStatusText(t *testing.T) {
	p := canvas.Props{Color: "#ff0000", BrushSize: 7, Tool: canvas.ToolPolygon, PolygonSides: 6, Erasing: true}
	s := statusText(p, true)
	for _, want := range []string{"polygon(6)", "#ff0000", "size 7", "eraser", "^Z:undo"} {
		if !strings.Contains(s, want) {
			t.Fatalf("status %q missing %q", s, want)
		}
	}
	if strings.Contains(statusText(canvas.DefaultProps(), false), "^Z") {
		t.Fatal("undo hint shown without history")
	}
}

func TestRenderFrameFallback(t *testing.T) {
	th := theme.Default()
	dst := image.NewRGBA(image.Rect(0, 0, 400, 200))
	renderFrame(context.Background(), dst, paintState{width: 400, height: 200, failed: true, theme: th})
	if got := dst.RGBAAt(0, 0); got != th.ErrorBackground {
		t.Fatalf("corner = %+v, want %+v", got, th.ErrorBackground)
	}
	found := false
	for i := 0; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] == th.ErrorText.R && dst.Pix[i+1] == th.ErrorText.G && dst.Pix[i+2] == th.ErrorText.B {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("fallback notice text not drawn")
	}
}

func TestRenderFrameShowsCanvasAndSelectedSwatch(t *testing.T) {
	th := theme.Default()
	w, h := 300, 200
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	rect := canvasRect(img.Bounds().Size(), w, h)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	props := canvas.DefaultProps()
	renderFrame(context.Background(), dst, paintState{
		width: w, height: h, rect: rect, img: img, props: props, theme: th,
	})
	c := rect.Min.Add(rect.Size().Div(2))
	if got := dst.RGBAAt(c.X, c.Y); got.R != 0xff || got.G != 0xff || got.B != 0xff {
		t.Fatalf("canvas centre = %+v", got)
	}
	sw := swatchRects(w, h, len(canvas.Palette()))[0]
	if got := dst.RGBAAt(sw.Min.X-1, sw.Min.Y-1); got != th.Accent {
		t.Fatalf("selected swatch outline = %+v, want %+v", got, th.Accent)
	}
	if got := dst.RGBAAt(0, 0); got != th.Background {
		t.Fatalf("background = %+v", got)
	}
}
