package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/clipboard"
	"github.com/example/doodle/internal/config"
	"github.com/example/doodle/internal/export"
	"github.com/example/doodle/internal/notify"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// canvasFlags are the drawing options shared by the headless commands.
type canvasFlags struct {
	size          string
	input         string
	fromClipboard bool
	toClipboard   bool
	color         string
	brush         int
	sides         int
	eraser        bool
	output        string
	format        string
	dir           string
	history       int
	preview       float64
	defaultTool   string
}

func (c *canvasFlags) register(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&c.size, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "canvas size as WIDTHxHEIGHT")
	fs.StringVar(&c.input, "input", "", "start from this image; its size overrides -size")
	fs.BoolVar(&c.fromClipboard, "from-clipboard", false, "start from the image on the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "also copy the result to the clipboard")
	fs.StringVar(&c.color, "color", cfg.Drawing.Color, "stroke or fill color name or hex value")
	fs.IntVar(&c.brush, "brush", cfg.Drawing.BrushSize, "brush size in pixels (1-20)")
	fs.IntVar(&c.sides, "sides", cfg.Drawing.PolygonSides, "polygon side count (3-12)")
	fs.BoolVar(&c.eraser, "eraser", false, "erase instead of paint")
	fs.StringVar(&c.output, "output", canvas.DefaultFilename, "output file name without extension")
	fs.StringVar(&c.format, "format", cfg.ExportFormat, "output format ("+formatNames()+")")
	fs.StringVar(&c.dir, "dir", cfg.SaveDir, "directory to write the output to")
	fs.IntVar(&c.history, "history", cfg.Drawing.HistorySize, "number of undo steps kept")
	fs.Float64Var(&c.preview, "preview-opacity", cfg.Drawing.PreviewOpacity, "opacity of shapes while they are dragged (0-1]")
	c.defaultTool = cfg.Drawing.Tool
}

// initialTool is the configured starting tool, brush when unset or unknown.
func (c *canvasFlags) initialTool() canvas.Tool {
	t, err := canvas.ParseTool(c.defaultTool)
	if err != nil {
		return canvas.ToolBrush
	}
	return t
}

// validate checks the flag values that can be checked before drawing.
func (c *canvasFlags) validate() error {
	if c.input != "" && c.fromClipboard {
		return fmt.Errorf("-input and -from-clipboard cannot be combined")
	}
	if _, err := parseSize(c.size); err != nil {
		return err
	}
	if _, err := canvas.ParseColor(c.color); err != nil {
		return err
	}
	if _, err := export.ParseFormat(c.format); err != nil {
		return err
	}
	if strings.TrimSpace(c.output) == "" {
		return fmt.Errorf("output name cannot be empty")
	}
	if c.preview <= 0 || c.preview > 1 {
		return fmt.Errorf("preview opacity must be in (0, 1], got %v", c.preview)
	}
	return nil
}

func (c *canvasFlags) props(tool canvas.Tool) canvas.Props {
	return canvas.Props{
		Color:        c.color,
		BrushSize:    c.brush,
		Erasing:      c.eraser,
		Tool:         tool,
		PolygonSides: c.sides,
	}
}

// source returns the starting image, or nil for a blank canvas.
func (c *canvasFlags) source() (image.Image, error) {
	if c.fromClipboard {
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return img, nil
	}
	if c.input == "" {
		return nil, nil
	}
	return loadImage(c.input)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(f)
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing %q: %v", f.Name(), cerr)
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		log.Printf("error closing %q: %v", f.Name(), err)
	}
	return img, nil
}

// parseSize reads WIDTHxHEIGHT.
func parseSize(s string) (image.Point, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid width %q", ws)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid height %q", hs)
	}
	if w <= 0 || h <= 0 {
		return image.Point{}, fmt.Errorf("size must be positive, got %dx%d", w, h)
	}
	return image.Pt(w, h), nil
}

func formatNames() string {
	var names []string
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// headless drives a controller without a window. Callbacks are queued and
// drained after every command so the run is deterministic.
type headless struct {
	ctl   *canvas.Controller
	queue *canvas.Queue
	r     *root
}

// newHeadless mounts a canvas sized to the source image, or to -size when
// there is none.
func (c *canvasFlags) newHeadless(r *root, props canvas.Props) (*headless, error) {
	src, err := c.source()
	if err != nil {
		return nil, err
	}
	size, err := parseSize(c.size)
	if err != nil {
		return nil, err
	}
	if src != nil {
		size = src.Bounds().Size()
	}
	q := &canvas.Queue{}
	h := &headless{queue: q, r: r}
	h.ctl = canvas.New(
		canvas.WithScheduler(q),
		canvas.WithProps(props),
		canvas.WithHistoryLimit(c.history),
		canvas.WithPreviewOpacity(c.preview),
		canvas.WithSink(r.saveSink(c.dir)),
	)
	if err := h.ctl.Mount(canvas.Rect{Width: float64(size.X), Height: float64(size.Y)}); err != nil {
		return nil, err
	}
	h.flush()
	if src != nil {
		h.ctl.Load(src)
		h.flush()
	}
	return h, nil
}

func (h *headless) flush() {
	h.ctl.Wait()
	h.queue.Flush()
}

// gesture presses at the first point, drags through the rest and releases
// at the last.
func (h *headless) gesture(points []canvas.Point) {
	if len(points) == 0 {
		return
	}
	ev := func(p canvas.Point) canvas.PointerEvent { return canvas.PointerEvent{ClientX: p.X, ClientY: p.Y} }
	h.ctl.PointerDown(ev(points[0]))
	for _, p := range points[1:] {
		h.ctl.PointerMove(ev(p))
	}
	h.ctl.PointerUp(ev(points[len(points)-1]))
	h.flush()
}

// finish saves the result and optionally copies it to the clipboard.
func (h *headless) finish(c *canvasFlags) error {
	if err := h.ctl.SaveAsImage(c.output, c.format); err != nil {
		return err
	}
	if c.toClipboard {
		if err := h.ctl.ExportTo(h.r.copySink(), c.output, string(export.PNG)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", c.output)
	}
	return nil
}

// reportingSink writes into dir and reports the path on stderr.
func reportingSink(dir string) export.Sink {
	if dir == "" {
		dir = "."
	}
	base := export.DirSink{Dir: dir}
	return export.SinkFunc(func(name string, data []byte) (string, error) {
		where, err := base.Download(name, data)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", where)
		return where, nil
	})
}

// saveSink is reportingSink followed by a save notification.
func (r *root) saveSink(dir string) export.Sink {
	return export.NotifyingSink{Sink: reportingSink(dir), Notifier: r.notifications(), Event: notify.EventSave}
}

func (r *root) copySink() export.Sink {
	return export.NotifyingSink{Sink: export.ClipboardSink{}, Notifier: r.notifications(), Event: notify.EventCopy}
}
