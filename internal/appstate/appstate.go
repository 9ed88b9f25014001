package appstate

import (
	"image"
	"log"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/export"
	"github.com/example/doodle/internal/notify"
	"github.com/example/doodle/internal/theme"

	"golang.org/x/exp/shiny/driver"
)

const (
	// DefaultWidth is the canvas width used when none is configured.
	DefaultWidth = 800
	// DefaultHeight is the canvas height used when none is configured.
	DefaultHeight = 600
)

// AppState holds application configuration for the drawing window.
type AppState struct {
	Width, Height int

	Props        canvas.Props
	HistoryLimit int
	Preview      float64
	Theme        *theme.Theme

	// Sink receives Ctrl+S saves. Defaults to the working directory.
	Sink     export.Sink
	Filename string
	Format   string

	Notifier *notify.Notifier
	// Initial is drawn onto the canvas once it is mounted.
	Initial image.Image

	onClose func()
}

// Option configures an AppState.
type Option func(*AppState)

// WithSize sets the canvas resolution.
func WithSize(width, height int) Option {
	return func(a *AppState) {
		a.Width = width
		a.Height = height
	}
}

// WithProps sets the initial drawing props.
func WithProps(p canvas.Props) Option {
	return func(a *AppState) { a.Props = p }
}

// WithHistoryLimit caps the undo depth.
func WithHistoryLimit(n int) Option {
	return func(a *AppState) { a.HistoryLimit = n }
}

// WithPreviewOpacity sets the opacity of shapes while they are dragged.
func WithPreviewOpacity(f float64) Option {
	return func(a *AppState) { a.Preview = f }
}

// WithTheme sets the window colors.
func WithTheme(t *theme.Theme) Option {
	return func(a *AppState) { a.Theme = t }
}

// WithSink sets where saves are written.
func WithSink(s export.Sink) Option {
	return func(a *AppState) { a.Sink = s }
}

// WithOutput sets the filename and format used by save.
func WithOutput(filename, format string) Option {
	return func(a *AppState) {
		a.Filename = filename
		a.Format = format
	}
}

// WithNotifier sets the desktop notifier used after save and copy.
func WithNotifier(n *notify.Notifier) Option {
	return func(a *AppState) { a.Notifier = n }
}

// WithImage preloads img onto the canvas.
func WithImage(img image.Image) Option {
	return func(a *AppState) { a.Initial = img }
}

// WithOnClose registers a callback invoked when the window exits.
func WithOnClose(fn func()) Option {
	return func(a *AppState) { a.onClose = fn }
}

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Props:  canvas.DefaultProps(),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Width <= 0 || a.Height <= 0 {
		log.Printf("invalid canvas size %dx%d, using %dx%d", a.Width, a.Height, DefaultWidth, DefaultHeight)
		a.Width, a.Height = DefaultWidth, DefaultHeight
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.Sink == nil {
		a.Sink = export.DirSink{Dir: "."}
	}
	return a
}

// Run opens the window and blocks until it closes.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) notifyClose() {
	if a.onClose != nil {
		a.onClose()
	}
}

// saveSink wraps the configured sink so saves raise a desktop notification.
func (a *AppState) saveSink() export.Sink {
	return export.NotifyingSink{Sink: a.Sink, Notifier: a.Notifier, Event: notify.EventSave}
}

// copySink places PNG data on the clipboard and raises a notification.
func (a *AppState) copySink() export.Sink {
	return export.NotifyingSink{Sink: export.ClipboardSink{}, Notifier: a.Notifier, Event: notify.EventCopy}
}

func (a *AppState) controllerOptions(sched canvas.Scheduler, onUndo func(bool), onSurface func()) []canvas.Option {
	return []canvas.Option{
		canvas.WithScheduler(sched),
		canvas.WithProps(a.Props),
		canvas.WithHistoryLimit(a.HistoryLimit),
		canvas.WithPreviewOpacity(a.Preview),
		canvas.WithSink(a.saveSink()),
		canvas.WithUndoListener(onUndo),
		canvas.WithSurfaceListener(onSurface),
	}
}
