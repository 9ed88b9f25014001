package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/example/doodle/internal/export"
)

const (
	// DefaultFilename is the export name used when none is given.
	DefaultFilename = "doodle-canvas"
	// DefaultFormat is the export format used when none is given.
	DefaultFormat = "png"
)

var (
	// ErrEmptyLayout is returned when mounting onto a rectangle with no area.
	ErrEmptyLayout = errors.New("canvas layout has no area")
	// ErrMounted is returned by a second Mount.
	ErrMounted = errors.New("canvas already mounted")
)

// PointerEvent is a pointer position in client coordinates.
type PointerEvent struct {
	ClientX, ClientY float64
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler sets where deferred work such as listener calls and the
// initial history snapshot runs.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithUndoListener registers fn to learn when undo availability may have
// changed.
func WithUndoListener(fn func(canUndo bool)) Option {
	return func(c *Controller) { c.onUndo = fn }
}

// WithSurfaceListener registers fn to be called after the pixels change.
func WithSurfaceListener(fn func()) Option {
	return func(c *Controller) { c.onSurface = fn }
}

// WithHistoryLimit caps the number of undo snapshots.
func WithHistoryLimit(n int) Option {
	return func(c *Controller) { c.limit = n }
}

// WithSink sets where SaveAsImage delivers files.
func WithSink(s export.Sink) Option {
	return func(c *Controller) { c.sink = s }
}

// WithPreviewOpacity sets the opacity of shape previews. Values outside
// (0, 1] keep the default.
func WithPreviewOpacity(f float64) Option {
	return func(c *Controller) {
		if f > 0 && f <= 1 {
			c.preview = f
		}
	}
}

// WithProps sets the initial props. Invalid values fall back to defaults.
func WithProps(p Props) Option {
	return func(c *Controller) { c.props = p }
}

// Controller owns the drawing surface and exposes the commands a host
// needs: pointer input, clear, undo and export. All methods are safe for
// concurrent use. Before Mount every command is a no-op.
type Controller struct {
	mu        sync.Mutex
	rect      Rect
	surface   *Surface
	session   Session
	history   *History
	props     Props
	style     Style
	sched     Scheduler
	sink      export.Sink
	limit     int
	preview   float64
	onUndo    func(bool)
	onSurface func()
	restoring chan struct{}
	seeded    bool
}

// New returns an unmounted controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		props:   DefaultProps(),
		sched:   Deferred{},
		sink:    export.DirSink{Dir: "."},
		preview: PreviewOpacity,
	}
	for _, o := range opts {
		o(c)
	}
	if err := c.applyProps(c.props); err != nil {
		Logger().Warn("initial props", "err", err)
		c.applyProps(DefaultProps())
	}
	c.history = NewHistory(HistoryConfig{
		Limit:     c.limit,
		Scheduler: c.sched,
		OnChange:  c.onUndo,
	})
	return c
}

// Mount fixes the backing resolution to the measured rect and creates the
// surfaces. The blank surface becomes the first history entry one
// scheduler tick later, or earlier if a command changes the pixels first.
func (c *Controller) Mount(rect Rect) error {
	if rect.Empty() {
		return ErrEmptyLayout
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface != nil {
		return ErrMounted
	}
	size := image.Pt(int(math.Round(rect.Width)), int(math.Round(rect.Height)))
	c.surface = NewSurface(size)
	c.rect = rect
	Logger().Info("canvas mounted", "width", size.X, "height", size.Y)
	c.sched.Post(c.initHistory)
	return nil
}

func (c *Controller) initHistory() {
	c.lockIdle()
	defer c.mu.Unlock()
	c.seed()
}

// seed records the current surface as the base entry. Callers hold mu and
// call it before changing pixels.
func (c *Controller) seed() {
	if c.seeded || c.surface == nil {
		return
	}
	c.seeded = true
	if err := c.history.Initialize(c.surface.Backing); err != nil {
		Logger().Error("history init", "err", err)
	}
}

// SetLayout records where the element is now displayed. The backing
// resolution does not change.
func (c *Controller) SetLayout(rect Rect) {
	c.mu.Lock()
	c.rect = rect
	c.mu.Unlock()
}

// Layout returns the current on-screen rectangle.
func (c *Controller) Layout() Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rect
}

// SetProps replaces the inbound parameters and recomputes the style. An
// invalid color is reported and the previous color kept.
func (c *Controller) SetProps(p Props) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.applyProps(p); err != nil {
		p.Color = c.props.Color
		if err2 := c.applyProps(p); err2 != nil {
			return err2
		}
		return err
	}
	return nil
}

func (c *Controller) applyProps(p Props) error {
	s, err := NewStyle(p)
	if err != nil {
		return err
	}
	p.BrushSize = ClampBrushSize(p.BrushSize)
	c.props = p
	c.style = s
	return nil
}

// Props returns the current inbound parameters.
func (c *Controller) Props() Props {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.props
}

// Style returns the style derived from the current props.
func (c *Controller) Style() Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.style
}

func (c *Controller) input() Input {
	return Input{Tool: c.props.Tool, Sides: c.props.PolygonSides, Style: c.style, Preview: c.preview}
}

func (c *Controller) point(ev PointerEvent) Point {
	return MapPoint(ev.ClientX, ev.ClientY, c.rect, c.surface.Backing.Bounds().Size())
}

// PointerDown starts a gesture.
func (c *Controller) PointerDown(ev PointerEvent) {
	c.pointer(ev, func(p Point) bool { return c.session.Down(c.surface, p, c.input()) }, true)
}

// PointerMove continues a gesture.
func (c *Controller) PointerMove(ev PointerEvent) {
	c.pointer(ev, func(p Point) bool {
		if !c.session.Active() {
			return false
		}
		c.session.Move(c.surface, p, c.input())
		return false
	}, false)
}

// PointerUp ends a gesture at the release point.
func (c *Controller) PointerUp(ev PointerEvent) {
	c.pointer(ev, func(p Point) bool { return c.session.Up(c.surface, p, c.input()) }, false)
}

// PointerLeave ends a gesture where the pointer left the element.
func (c *Controller) PointerLeave(ev PointerEvent) {
	c.pointer(ev, func(p Point) bool { return c.session.Leave(c.surface, p, c.input()) }, false)
}

func (c *Controller) pointer(ev PointerEvent, step func(Point) bool, down bool) {
	c.lockIdle()
	if c.surface == nil {
		c.mu.Unlock()
		return
	}
	c.seed()
	active := c.session.Active()
	commit := step(c.point(ev))
	if commit {
		c.commit()
	}
	changed := commit || active || c.session.Active()
	c.mu.Unlock()
	if changed || down {
		c.changed()
	}
}

// Drawing reports whether a gesture is in progress.
func (c *Controller) Drawing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Active()
}

// ClearCanvas wipes the surface to transparent and records it in history.
func (c *Controller) ClearCanvas() {
	c.lockIdle()
	if c.surface == nil {
		c.mu.Unlock()
		return
	}
	c.seed()
	c.session.Reset()
	clear(c.surface.Backing.Pix)
	c.commit()
	c.mu.Unlock()
	c.changed()
}

// Load replaces the surface with img drawn at the origin and records it in
// history. Loaded before anything else, img becomes the base entry.
func (c *Controller) Load(img image.Image) {
	c.lockIdle()
	if c.surface == nil {
		c.mu.Unlock()
		return
	}
	c.session.Reset()
	c.surface.Replace(img)
	if c.seeded {
		c.commit()
	} else {
		c.seed()
	}
	c.mu.Unlock()
	c.changed()
}

// Undo steps back one history entry. The previous surface is decoded in
// the background; commands issued before it lands wait for it.
func (c *Controller) Undo() {
	c.lockIdle()
	r, ok := c.history.Undo()
	if !ok {
		c.mu.Unlock()
		return
	}
	done := make(chan struct{})
	c.restoring = done
	c.mu.Unlock()
	go c.apply(r, done)
}

func (c *Controller) apply(r *Restore, done chan struct{}) {
	img, err := r.Wait()
	c.mu.Lock()
	if err != nil {
		Logger().Error("undo restore", "id", r.Entry.ID, "err", err)
	} else if c.surface != nil {
		c.session.Reset()
		c.surface.Replace(img)
	}
	c.restoring = nil
	c.mu.Unlock()
	close(done)
	c.changed()
}

// Wait blocks until any undo in flight has been applied.
func (c *Controller) Wait() {
	c.lockIdle()
	c.mu.Unlock()
}

// CanUndo reports whether an earlier snapshot exists.
func (c *Controller) CanUndo() bool {
	return c.history.CanUndo()
}

// History exposes the snapshot log.
func (c *Controller) History() *History {
	return c.history
}

// Size returns the backing resolution, zero before Mount.
func (c *Controller) Size() image.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return image.Point{}
	}
	return c.surface.Backing.Bounds().Size()
}

// Snapshot returns a copy of the backing surface, or nil before Mount.
func (c *Controller) Snapshot() *image.RGBA {
	c.lockIdle()
	defer c.mu.Unlock()
	if c.surface == nil {
		return nil
	}
	out := image.NewRGBA(c.surface.Backing.Bounds())
	draw.Draw(out, out.Bounds(), c.surface.Backing, image.Point{}, draw.Src)
	return out
}

// SaveAsImage encodes the surface as format and hands it to the sink as
// filename.format. Empty arguments take the defaults. Before Mount it does
// nothing.
func (c *Controller) SaveAsImage(filename, format string) error {
	return c.ExportTo(c.sink, filename, format)
}

// ExportTo is SaveAsImage with an explicit sink.
func (c *Controller) ExportTo(sink export.Sink, filename, format string) error {
	img := c.Snapshot()
	if img == nil {
		return nil
	}
	if filename == "" {
		filename = DefaultFilename
	}
	if format == "" {
		format = DefaultFormat
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.Encode(&buf, img, f); err != nil {
		return err
	}
	name := export.Filename(filename, f)
	where, err := sink.Download(name, buf.Bytes())
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	Logger().Info("canvas saved", "name", name, "to", where, "bytes", buf.Len())
	return nil
}

// lockIdle takes the lock once no undo restore is pending.
func (c *Controller) lockIdle() {
	c.mu.Lock()
	for c.restoring != nil {
		done := c.restoring
		c.mu.Unlock()
		<-done
		c.mu.Lock()
	}
}

func (c *Controller) commit() {
	if _, err := c.history.Save(c.surface.Backing); err != nil {
		Logger().Error("history save", "err", err)
	}
}

func (c *Controller) changed() {
	if c.onSurface == nil {
		return
	}
	c.sched.Post(c.onSurface)
}
