package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/doodle/internal/clipboard"
	"github.com/example/doodle/internal/notify"
)

// Sink delivers an encoded file. It returns a description of where the
// data went, such as a path.
type Sink interface {
	Download(name string, data []byte) (string, error)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(name string, data []byte) (string, error)

// Download calls f.
func (f SinkFunc) Download(name string, data []byte) (string, error) {
	return f(name, data)
}

// DirSink writes files into a directory, creating it when needed.
type DirSink struct {
	Dir string
}

// Download writes data to Dir/name and returns the absolute path.
func (s DirSink) Download(name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(name))
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func(out *os.File) {
		if err := out.Close(); err != nil {
			log.Printf("error closing %q: %v", out.Name(), err)
		}
	}(out)
	if _, err := out.Write(data); err != nil {
		return "", err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}

// ErrClipboardFormat is returned when a non-PNG file is sent to the
// clipboard.
var ErrClipboardFormat = errors.New("clipboard accepts png only")

// ClipboardSink places PNG data on the system clipboard.
type ClipboardSink struct {
	// Write defaults to clipboard.WritePNG.
	Write func([]byte) error
}

// Download publishes data to the clipboard.
func (s ClipboardSink) Download(name string, data []byte) (string, error) {
	if !strings.EqualFold(filepath.Ext(name), "."+PNG.Ext()) {
		return "", fmt.Errorf("%w: %s", ErrClipboardFormat, name)
	}
	write := s.Write
	if write == nil {
		write = clipboard.WritePNG
	}
	if err := write(data); err != nil {
		return "", fmt.Errorf("copy PNG to clipboard: %w", err)
	}
	return "clipboard", nil
}

// NotifyingSink forwards to Sink and then raises a desktop notification
// for Event.
type NotifyingSink struct {
	Sink     Sink
	Notifier *notify.Notifier
	Event    notify.Event
}

// Download implements Sink.
func (s NotifyingSink) Download(name string, data []byte) (string, error) {
	where, err := s.Sink.Download(name, data)
	if err != nil {
		return "", err
	}
	switch s.Event {
	case notify.EventSave:
		s.Notifier.Save(where)
	case notify.EventCopy:
		var preview image.Image
		if s.Notifier.Enabled(notify.EventCopy) {
			if img, err := png.Decode(bytes.NewReader(data)); err == nil {
				preview = img
			}
		}
		s.Notifier.Copy(name, preview)
	}
	return where, nil
}
