package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/doodle/internal/notify"
)

func TestDirSinkWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := DirSink{Dir: dir}.Download("a.png", []byte("data"))
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "data" {
		t.Fatalf("file contents = %q", got)
	}
	if filepath.Base(path) != "a.png" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestClipboardSinkRejectsNonPNG(t *testing.T) {
	called := false
	s := ClipboardSink{Write: func([]byte) error { called = true; return nil }}
	if _, err := s.Download("a.jpeg", []byte("x")); !errors.Is(err, ErrClipboardFormat) {
		t.Fatalf("expected ErrClipboardFormat, got %v", err)
	}
	if called {
		t.Fatal("writer called for non-PNG data")
	}
	where, err := s.Download("a.png", []byte("x"))
	if err != nil || !called {
		t.Fatalf("png download failed: %v called=%v", err, called)
	}
	if where != "clipboard" {
		t.Fatalf("where = %q", where)
	}
}

func TestNotifyingSinkPassesThroughErrors(t *testing.T) {
	boom := errors.New("boom")
	s := NotifyingSink{
		Sink:     SinkFunc(func(string, []byte) (string, error) { return "", boom }),
		Notifier: notify.New(notify.DefaultPreferences()),
		Event:    notify.EventSave,
	}
	if _, err := s.Download("a.png", nil); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
