package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"sync"

	"github.com/google/uuid"
)

// MaxHistorySize is the default number of snapshots kept for undo.
const MaxHistorySize = 20

// Entry is one encoded snapshot of the whole surface.
type Entry struct {
	ID   uuid.UUID
	Data []byte
	Size image.Point
}

// Codec turns surfaces into snapshot bytes and back without loss.
type Codec interface {
	Encode(img *image.RGBA) ([]byte, error)
	Decode(data []byte) (*image.RGBA, error)
}

// PNGCodec stores the premultiplied pixel bytes of a surface verbatim in a
// PNG container so a decoded snapshot is byte-identical to the original.
// The data is a private snapshot format, not an export.
type PNGCodec struct {
	Level png.CompressionLevel
}

// Encode implements Codec.
func (c PNGCodec) Encode(img *image.RGBA) ([]byte, error) {
	raw := &image.NRGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: c.Level}
	if err := enc.Encode(&buf, raw); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode implements Codec.
func (PNGCodec) Decode(data []byte) (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	switch m := img.(type) {
	case *image.NRGBA:
		return &image.RGBA{Pix: m.Pix, Stride: m.Stride, Rect: m.Rect}, nil
	case *image.RGBA:
		return m, nil
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out, nil
}

// HistoryConfig configures a History.
type HistoryConfig struct {
	// Limit caps the number of entries. Zero means MaxHistorySize.
	Limit int
	// Codec defaults to PNGCodec at best speed.
	Codec Codec
	// Scheduler receives change notifications. Defaults to Deferred.
	Scheduler Scheduler
	// OnChange is told whether undo is available after every save and undo.
	OnChange func(canUndo bool)
}

// History is a bounded log of surface snapshots with a cursor marking the
// snapshot currently shown. Saving discards anything after the cursor and
// the oldest entries beyond the limit.
type History struct {
	mu       sync.Mutex
	entries  []Entry
	cursor   int
	limit    int
	codec    Codec
	sched    Scheduler
	onChange func(bool)
}

// NewHistory returns an empty history.
func NewHistory(cfg HistoryConfig) *History {
	h := &History{
		limit:    cfg.Limit,
		codec:    cfg.Codec,
		sched:    cfg.Scheduler,
		onChange: cfg.OnChange,
	}
	if h.limit <= 0 {
		h.limit = MaxHistorySize
	}
	if h.codec == nil {
		h.codec = PNGCodec{Level: png.BestSpeed}
	}
	if h.sched == nil {
		h.sched = Deferred{}
	}
	return h
}

// Initialize seeds the log with img as entry 0. It does nothing once the
// log holds any entry.
func (h *History) Initialize(img *image.RGBA) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) > 0 {
		return nil
	}
	e, err := h.encode(img)
	if err != nil {
		return err
	}
	h.entries = []Entry{e}
	h.cursor = 0
	Logger().Debug("history initialized", "id", e.ID, "bytes", len(e.Data))
	return nil
}

// Save appends a snapshot of img after the cursor and moves the cursor to
// it. On error the log is left unchanged.
func (h *History) Save(img *image.RGBA) (Entry, error) {
	e, err := h.encode(img)
	if err != nil {
		return Entry{}, err
	}
	h.mu.Lock()
	if len(h.entries) > 0 {
		h.entries = h.entries[:h.cursor+1]
	}
	h.entries = append(h.entries, e)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append(h.entries[:0:0], h.entries[over:]...)
	}
	h.cursor = len(h.entries) - 1
	n := len(h.entries)
	h.mu.Unlock()
	Logger().Debug("history saved", "id", e.ID, "entries", n)
	h.notify()
	return e, nil
}

// Undo moves the cursor back one entry and starts decoding it. It reports
// false when there is nothing to undo.
func (h *History) Undo() (*Restore, bool) {
	h.mu.Lock()
	if h.cursor <= 0 {
		h.mu.Unlock()
		return nil, false
	}
	h.cursor--
	e := h.entries[h.cursor]
	h.mu.Unlock()
	r := newRestore(e, h.codec)
	Logger().Debug("history undo", "id", e.ID, "cursor", h.Cursor())
	h.notify()
	return r, true
}

// CanUndo reports whether an entry precedes the cursor.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor > 0
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Cursor returns the index of the current entry.
func (h *History) Cursor() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// Limit returns the maximum number of entries kept.
func (h *History) Limit() int {
	return h.limit
}

// IDs returns the entry identifiers oldest first.
func (h *History) IDs() []uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]uuid.UUID, len(h.entries))
	for i, e := range h.entries {
		ids[i] = e.ID
	}
	return ids
}

// Current returns the entry at the cursor.
func (h *History) Current() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[h.cursor], true
}

func (h *History) encode(img *image.RGBA) (Entry, error) {
	if img == nil {
		return Entry{}, fmt.Errorf("encode snapshot: nil surface")
	}
	data, err := h.codec.Encode(img)
	if err != nil {
		return Entry{}, err
	}
	return Entry{ID: uuid.New(), Data: data, Size: img.Bounds().Size()}, nil
}

func (h *History) notify() {
	if h.onChange == nil {
		return
	}
	h.sched.Post(func() { h.onChange(h.CanUndo()) })
}

// Restore is the pending decode of an undo target.
type Restore struct {
	Entry Entry
	done  chan struct{}
	img   *image.RGBA
	err   error
}

func newRestore(e Entry, codec Codec) *Restore {
	r := &Restore{Entry: e, done: make(chan struct{})}
	go func() {
		defer close(r.done)
		r.img, r.err = codec.Decode(e.Data)
	}()
	return r
}

// Done is closed once decoding has finished.
func (r *Restore) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until decoding has finished and returns the result.
func (r *Restore) Wait() (*image.RGBA, error) {
	<-r.done
	return r.img, r.err
}
