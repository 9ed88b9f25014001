package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/doodles
export_format = JPEG
width = 640

[drawing]
color = "#b61616"
brush_size = 10
tool = Star
polygon_sides = 6
history_size = 30
preview_opacity = 0.5

[notify]
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/doodles" {
		t.Errorf("Expected save_dir '/tmp/doodles', got '%s'", cfg.SaveDir)
	}
	if cfg.ExportFormat != "jpeg" {
		t.Errorf("Expected export_format 'jpeg', got %q", cfg.ExportFormat)
	}
	if cfg.Width != 640 || cfg.Height != 600 {
		t.Errorf("Unexpected size %dx%d", cfg.Width, cfg.Height)
	}
	want := Drawing{Color: "#b61616", BrushSize: 10, Tool: "star", PolygonSides: 6, HistorySize: 30, PreviewOpacity: 0.5}
	if cfg.Drawing != want {
		t.Errorf("Drawing = %+v, want %+v", cfg.Drawing, want)
	}
	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"[notify]\nsave = maybe\n",
		"[drawing]\nbrush_size = 0\n",
		"[drawing]\npreview_opacity = 1.5\n",
		"[drawing]\npreview_opacity = faint\n",
		"width = wide\n",
		"[theme.x]\nAccent = red\n",
	}
	for _, in := range cases {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/doodles

[drawing]
color = #0808b8
brush_size = 2
tool = polygon
polygon_sides = 8
preview_opacity = 0.35

[notify]
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Drawing != cfg2.Drawing {
		t.Errorf("Drawing mismatch: %+v vs %+v", cfg.Drawing, cfg2.Drawing)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderOverrideAndSave(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "doodle.rc")
	l := NewLoader("v1", path)

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("load without file: %v", err)
	}
	if cfg.Drawing.BrushSize != 5 {
		t.Fatalf("expected defaults, got %+v", cfg.Drawing)
	}

	cfg.Drawing.Color = "#15ba15"
	written, err := l.Save(cfg)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if written != path {
		t.Fatalf("saved to %q, want %q", written, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}

	again, err := l.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Drawing.Color != "#15ba15" {
		t.Fatalf("color = %q", again.Drawing.Color)
	}
}
