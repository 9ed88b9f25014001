package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/example/doodle/internal/appstate"
	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/clipboard"
)

// paintCmd opens the drawing window.
type paintCmd struct {
	canvasFlags
	width, height int
	*root
	fs *flag.FlagSet
}

func (p *paintCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePaintCmd(args []string, r *root) (*paintCmd, error) {
	fs := flag.NewFlagSet("paint", flag.ExitOnError)
	p := &paintCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	cfg := r.cfg()
	fs.IntVar(&p.width, "width", cfg.Width, "canvas width in pixels")
	fs.IntVar(&p.height, "height", cfg.Height, "canvas height in pixels")
	fs.StringVar(&p.input, "input", "", "open this image; its size overrides -width and -height")
	fs.BoolVar(&p.fromClipboard, "from-clipboard", false, "open the image on the clipboard")
	fs.StringVar(&p.color, "color", cfg.Drawing.Color, "initial color name or hex value")
	fs.IntVar(&p.brush, "brush", cfg.Drawing.BrushSize, "initial brush size in pixels (1-20)")
	fs.IntVar(&p.sides, "sides", cfg.Drawing.PolygonSides, "initial polygon side count (3-12)")
	fs.StringVar(&p.output, "output", canvas.DefaultFilename, "file name used by Ctrl+S, without extension")
	fs.StringVar(&p.format, "format", cfg.ExportFormat, "format used by Ctrl+S ("+formatNames()+")")
	fs.StringVar(&p.dir, "dir", cfg.SaveDir, "directory Ctrl+S writes to")
	fs.IntVar(&p.history, "history", cfg.Drawing.HistorySize, "number of undo steps kept")
	fs.Float64Var(&p.preview, "preview-opacity", cfg.Drawing.PreviewOpacity, "opacity of shapes while they are dragged (0-1]")
	p.defaultTool = cfg.Drawing.Tool
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: p}
	}
	if p.width <= 0 || p.height <= 0 {
		return nil, fmt.Errorf("size must be positive, got %dx%d", p.width, p.height)
	}
	p.size = fmt.Sprintf("%dx%d", p.width, p.height)
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *paintCmd) Run() error {
	src, err := p.source()
	if err != nil {
		if !p.fromClipboard || !isEmptyClipboard(err) {
			return err
		}
		fmt.Fprintln(os.Stderr, "clipboard has no image, starting blank")
	}
	w, h := p.width, p.height
	if src != nil {
		w, h = src.Bounds().Dx(), src.Bounds().Dy()
	}
	opts := []appstate.Option{
		appstate.WithSize(w, h),
		appstate.WithProps(p.props(p.initialTool())),
		appstate.WithHistoryLimit(p.history),
		appstate.WithPreviewOpacity(p.preview),
		appstate.WithTheme(p.currentTheme()),
		appstate.WithSink(reportingSink(p.dir)),
		appstate.WithOutput(p.output, p.format),
		appstate.WithNotifier(p.notifications()),
	}
	if src != nil {
		opts = append(opts, appstate.WithImage(src))
	}
	appstate.New(opts...).Run()
	return nil
}

func isEmptyClipboard(err error) bool {
	return errors.Is(err, clipboard.ErrEmpty)
}
