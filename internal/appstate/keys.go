package appstate

import (
	"unicode"

	"github.com/example/doodle/internal/canvas"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut describes a keyboard combination that triggers an action.
// Either Rune or Code is set.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// toolKeys maps the digit keys to tools in status bar order.
var toolKeys = []canvas.Tool{
	canvas.ToolBrush,
	canvas.ToolLine,
	canvas.ToolRectangle,
	canvas.ToolCircle,
	canvas.ToolFill,
	canvas.ToolPolygon,
	canvas.ToolStar,
	canvas.ToolArrow,
}

// keymap binds named actions to shortcuts.
type keymap struct {
	actions map[string]func()
	keys    map[KeyShortcut]string
}

func newKeymap() *keymap {
	return &keymap{actions: map[string]func(){}, keys: map[KeyShortcut]string{}}
}

func (k *keymap) register(name string, keys KeyboardShortcuts, fn func()) {
	k.actions[name] = fn
	if keys == nil {
		return
	}
	for _, sc := range keys.KeyboardShortcuts() {
		if sc.Rune != 0 {
			sc.Rune = unicode.ToLower(sc.Rune)
		}
		k.keys[sc] = name
	}
}

// lookup finds the action bound to a key press. Runes are matched case
// insensitively and Shift is ignored so '+' and '=' behave alike.
func (k *keymap) lookup(e key.Event) (string, bool) {
	mods := e.Modifiers &^ key.ModShift
	if e.Rune > 0 {
		if name, ok := k.keys[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
			return name, true
		}
	}
	if e.Code == key.CodeUnknown {
		return "", false
	}
	name, ok := k.keys[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return name, ok
}

// trigger runs the named action and reports whether one was registered.
func (k *keymap) trigger(name string) bool {
	fn, ok := k.actions[name]
	if ok {
		fn()
	}
	return ok
}

// nextPaletteColor steps delta places through the palette from hex. A color
// outside the palette starts from the first entry.
func nextPaletteColor(hex string, delta int) string {
	pal := canvas.Palette()
	i := paletteIndex(hex)
	if i < 0 {
		return canvas.HexColor(pal[0].Color)
	}
	n := len(pal)
	i = ((i+delta)%n + n) % n
	return canvas.HexColor(pal[i].Color)
}

// stepSides moves the polygon side count by delta within the drawable
// range. An unset count starts from fallback.
func stepSides(sides, delta, fallback int) int {
	if !canvas.ValidSides(sides) {
		sides = fallback
		if !canvas.ValidSides(sides) {
			sides = canvas.MinPolygonSides
		}
		return sides
	}
	sides += delta
	if sides < canvas.MinPolygonSides {
		return canvas.MinPolygonSides
	}
	if sides > canvas.MaxPolygonSides {
		return canvas.MaxPolygonSides
	}
	return sides
}
