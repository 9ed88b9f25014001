package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"maps"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/example/doodle/internal/platform"
)

// Event identifies what the user just did with a drawing.
type Event string

const (
	EventSave Event = "save"
	EventCopy Event = "copy"
)

// thumbSize bounds the longest side of a copy preview icon.
const thumbSize = 128

// Preferences holds the notification title and one body template per
// event. Each template takes a single %s for the file or detail.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in wording.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Templates: map[Event]string{
			EventSave: "Saved %s",
			EventCopy: "Copied %s to clipboard",
		},
	}
}

var envTemplates = map[string]Event{
	"DOODLE_NOTIFY_SAVE_TEXT": EventSave,
	"DOODLE_NOTIFY_COPY_TEXT": EventCopy,
}

// LoadPreferences applies DOODLE_NOTIFY_* overrides to the defaults. Blank
// values are ignored.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("DOODLE_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for key, event := range envTemplates {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// Notifier posts desktop notifications for the events switched on with
// Enable. A nil Notifier does nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

func New(prefs Preferences) *Notifier {
	return &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: maps.Clone(prefs.Templates)},
		enabled: make(map[Event]bool),
	}
}

func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[event] = on
}

func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Save announces a written file, using the file itself as the icon.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	var opts platform.Options
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.post(EventSave, path, opts)
}

// Copy announces a clipboard copy. A thumbnail of img, when given, becomes
// the icon for as long as the notification call takes.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "drawing"
	}
	var opts platform.Options
	if img != nil {
		path, err := writeThumbnail(img)
		if err != nil {
			log.Printf("notification thumbnail: %v", err)
		} else {
			defer os.Remove(path)
			opts.IconPath = path
		}
	}
	n.post(EventCopy, detail, opts)
}

func (n *Notifier) template(event Event) string {
	return strings.TrimSpace(n.prefs.Templates[event])
}

func (n *Notifier) post(event Event, detail string, opts platform.Options) {
	tmpl := n.template(event)
	if tmpl == "" {
		return
	}
	body := fmt.Sprintf(tmpl, strings.TrimSpace(detail))
	if err := platform.Notify(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// thumbnail scales img down to fit thumbSize, keeping its aspect ratio.
func thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= thumbSize && h <= thumbSize {
		return img
	}
	if w >= h {
		h = max(1, h*thumbSize/w)
		w = thumbSize
	} else {
		w = max(1, w*thumbSize/h)
		h = thumbSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func writeThumbnail(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "doodle-thumb-*.png")
	if err != nil {
		return "", err
	}
	err = png.Encode(f, thumbnail(img))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
