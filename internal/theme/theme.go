package theme

import (
	"image/color"
)

// Theme defines the colors of the drawing window.
type Theme struct {
	Name string

	Background color.RGBA // Window area around the canvas
	Foreground color.RGBA // Status text

	StatusBackground color.RGBA
	Accent           color.RGBA // Outline of the selected swatch
	CanvasBorder     color.RGBA

	// Canvas backdrop shown through transparent pixels
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Fallback notice after a drawing failure
	ErrorBackground color.RGBA
	ErrorText       color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{220, 220, 220, 255},
		Foreground:       color.RGBA{0, 0, 0, 255},
		StatusBackground: color.RGBA{200, 200, 200, 255},
		Accent:           color.RGBA{0x25, 0x63, 0xeb, 255},
		CanvasBorder:     color.RGBA{120, 120, 120, 255},
		CheckerLight:     color.RGBA{255, 255, 255, 255},
		CheckerDark:      color.RGBA{230, 230, 230, 255},
		ErrorBackground:  color.RGBA{0xfe, 0xe2, 0xe2, 255},
		ErrorText:        color.RGBA{0x99, 0x1b, 0x1b, 255},
	}
}
