package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/doodle/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Drawing holds the defaults a new canvas starts with.
type Drawing struct {
	Color          string
	BrushSize      int
	Tool           string
	PolygonSides   int
	HistorySize    int
	PreviewOpacity float64 // applied to shapes while they are dragged
}

// Config holds the application configuration.
type Config struct {
	Theme        string
	SaveDir      string
	ExportFormat string
	Width        int
	Height       int
	Drawing      Drawing
	Notify       Notify
	Themes       map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:        "", // empty lets the environment or built-in theme apply
		ExportFormat: "png",
		Width:        800,
		Height:       600,
		Drawing: Drawing{
			Color:          "#000000",
			BrushSize:      5,
			Tool:           "brush",
			PolygonSides:   5,
			HistorySize:    20,
			PreviewOpacity: 0.7,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "export_format = %s\n", c.ExportFormat)
	fmt.Fprintf(&sb, "width = %d\n", c.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Height)
	sb.WriteString("\n")

	sb.WriteString("[drawing]\n")
	fmt.Fprintf(&sb, "color = %s\n", c.Drawing.Color)
	fmt.Fprintf(&sb, "brush_size = %d\n", c.Drawing.BrushSize)
	fmt.Fprintf(&sb, "tool = %s\n", c.Drawing.Tool)
	fmt.Fprintf(&sb, "polygon_sides = %d\n", c.Drawing.PolygonSides)
	fmt.Fprintf(&sb, "history_size = %d\n", c.Drawing.HistorySize)
	fmt.Fprintf(&sb, "preview_opacity = %s\n", strconv.FormatFloat(c.Drawing.PreviewOpacity, 'g', -1, 64))
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.FormatColor(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
