package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// CompositeMode selects how a stroke combines with the surface.
type CompositeMode int

const (
	// ModePaint blends the stroke color over the surface.
	ModePaint CompositeMode = iota
	// ModeErase removes surface alpha under the stroke regardless of color.
	ModeErase
)

func (m CompositeMode) String() string {
	if m == ModeErase {
		return "erase"
	}
	return "paint"
}

const (
	DefaultColor     = "#000000"
	DefaultBrushSize = 5
	MinBrushSize     = 1
	MaxBrushSize     = 20
	MinPolygonSides  = 3
	MaxPolygonSides  = 12
)

// Style is the stroke state applied to every rasterization call.
type Style struct {
	Color color.RGBA
	Width float64
	Mode  CompositeMode
}

// Props are the inbound parameters set by whoever owns the drawing surface.
type Props struct {
	Color        string
	BrushSize    int
	Erasing      bool
	Tool         Tool
	PolygonSides int
}

// DefaultProps returns a black brush of the default size.
func DefaultProps() Props {
	return Props{Color: DefaultColor, BrushSize: DefaultBrushSize, Tool: ToolBrush}
}

// NewStyle derives a Style from props. The brush size is clamped to the
// supported range.
func NewStyle(p Props) (Style, error) {
	c, err := ParseColor(p.Color)
	if err != nil {
		return Style{}, err
	}
	s := Style{Color: c, Width: float64(ClampBrushSize(p.BrushSize))}
	if p.Erasing {
		s.Mode = ModeErase
	}
	return s, nil
}

// ClampBrushSize limits n to MinBrushSize..MaxBrushSize.
func ClampBrushSize(n int) int {
	if n < MinBrushSize {
		return MinBrushSize
	}
	if n > MaxBrushSize {
		return MaxBrushSize
	}
	return n
}

// ValidSides reports whether n is a polygon side count that can be drawn.
func ValidSides(n int) bool {
	return n >= MinPolygonSides && n <= MaxPolygonSides
}

// PaletteEntry names one of the preset colors.
type PaletteEntry struct {
	Name  string
	Color color.RGBA
}

var palette = []PaletteEntry{
	{"black", color.RGBA{0, 0, 0, 255}},
	{"charcoal", color.RGBA{0x1e, 0x1e, 0x1e, 255}},
	{"crimson", color.RGBA{0xb6, 0x16, 0x16, 255}},
	{"green", color.RGBA{0x15, 0xba, 0x15, 255}},
	{"blue", color.RGBA{0x08, 0x08, 0xb8, 255}},
	{"yellow", color.RGBA{0xe4, 0xe4, 0x22, 255}},
	{"white", color.RGBA{0xf0, 0xf0, 0xf0, 255}},
}

// Palette returns the preset colors in display order.
func Palette() []PaletteEntry {
	out := make([]PaletteEntry, len(palette))
	copy(out, palette)
	return out
}

// ParseColor accepts a palette name, an SVG color name, or an opaque hex
// color in #RGB or #RRGGBB form. The result is always opaque.
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	for _, e := range palette {
		if e.Name == name {
			return e.Color, nil
		}
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(name, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// HexColor formats c as #rrggbb.
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
