package notify

import (
	"image"
	"testing"
)

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("DOODLE_NOTIFY_TITLE", "Sketch")
	t.Setenv("DOODLE_NOTIFY_SAVE_TEXT", "wrote %s")
	t.Setenv("DOODLE_NOTIFY_COPY_TEXT", "  ")

	prefs := LoadPreferences()
	if prefs.Title != "Sketch" {
		t.Fatalf("title = %q", prefs.Title)
	}
	if got := prefs.Templates[EventSave]; got != "wrote %s" {
		t.Fatalf("save template = %q", got)
	}
	if got := prefs.Templates[EventCopy]; got != DefaultPreferences().Templates[EventCopy] {
		t.Fatalf("blank override replaced copy template: %q", got)
	}
}

func TestNewClonesPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	n := New(prefs)
	prefs.Templates[EventSave] = "changed"
	if got := n.template(EventSave); got != "Saved %s" {
		t.Fatalf("template = %q", got)
	}
}

func TestEnableToggles(t *testing.T) {
	n := New(DefaultPreferences())
	if n.Enabled(EventSave) {
		t.Fatal("save enabled by default")
	}
	n.Enable(EventSave, true)
	if !n.Enabled(EventSave) || n.Enabled(EventCopy) {
		t.Fatalf("save=%v copy=%v", n.Enabled(EventSave), n.Enabled(EventCopy))
	}
	n.Enable(EventSave, false)
	if n.Enabled(EventSave) {
		t.Fatal("save still enabled")
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.Enable(EventSave, true)
	n.Save("x.png")
	n.Copy("x", nil)
	if n.Enabled(EventCopy) {
		t.Fatal("nil notifier reports enabled")
	}
}

func TestThumbnailKeepsAspect(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 40, 30))
	if thumbnail(small) != image.Image(small) {
		t.Fatal("small image was rescaled")
	}
	wide := image.NewRGBA(image.Rect(0, 0, 800, 200))
	if got := thumbnail(wide).Bounds().Size(); got != image.Pt(128, 32) {
		t.Fatalf("wide thumbnail = %v", got)
	}
	tall := image.NewRGBA(image.Rect(0, 0, 100, 1000))
	if got := thumbnail(tall).Bounds().Size(); got != image.Pt(12, 128) {
		t.Fatalf("tall thumbnail = %v", got)
	}
}
