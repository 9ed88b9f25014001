package canvas

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := map[string]color.RGBA{
		"#ff0000":  {255, 0, 0, 255},
		"#F00":     {255, 0, 0, 255},
		" #0808b8": {8, 8, 0xb8, 255},
		"crimson":  {0xb6, 0x16, 0x16, 255},
		"orange":   {255, 165, 0, 255},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", in, got, want)
		}
	}
	for _, bad := range []string{"", "#12", "#gggggg", "notacolor", "#ff000080"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("ParseColor(%q) succeeded", bad)
		}
	}
}

func TestNewStyle(t *testing.T) {
	s, err := NewStyle(Props{Color: "#00ff00", BrushSize: 50, Erasing: true})
	if err != nil {
		t.Fatalf("NewStyle: %v", err)
	}
	if s.Width != MaxBrushSize {
		t.Fatalf("width = %v, want clamped %d", s.Width, MaxBrushSize)
	}
	if s.Mode != ModeErase {
		t.Fatalf("mode = %v, want erase", s.Mode)
	}
	if s.Color != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("color = %+v", s.Color)
	}
	if s, _ := NewStyle(Props{Color: "#000", BrushSize: 0}); s.Width != MinBrushSize {
		t.Fatalf("width = %v, want %d", s.Width, MinBrushSize)
	}
}

func TestParseTool(t *testing.T) {
	for _, tool := range Tools() {
		got, err := ParseTool(tool.String())
		if err != nil || got != tool {
			t.Fatalf("ParseTool(%q) = %v, %v", tool.String(), got, err)
		}
	}
	aliases := map[string]Tool{"Rect": ToolRectangle, "bucket": ToolFill, "pen": ToolBrush, " Pencil ": ToolBrush}
	for name, want := range aliases {
		if got, err := ParseTool(name); err != nil || got != want {
			t.Fatalf("alias %q = %v, %v", name, got, err)
		}
	}
	if _, err := ParseTool("lasso"); !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
	if ToolBrush.Shape() || ToolFill.Shape() || !ToolStar.Shape() {
		t.Fatal("Shape classification is wrong")
	}
}
