package appstate

import (
	"context"
	"fmt"
	"image"
	"log"
	"runtime/debug"
	"sync"
	"time"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/clipboard"
	"github.com/example/doodle/internal/export"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

const frameDropThreshold = 10

const messageDuration = 2 * time.Second

// taskEvent carries a callback posted by the canvas into the event loop.
type taskEvent struct{ fn func() }

// failEvent reports a failure raised outside the event loop.
type failEvent struct{ err error }

// loopScheduler runs canvas callbacks on the window event loop.
type loopScheduler struct{ w screen.Window }

func (s loopScheduler) Post(fn func()) { s.w.Send(taskEvent{fn}) }

// guard runs fn and turns a panic into an error.
func guard(op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", op, r)
			log.Printf("%v\n%s", err, debug.Stack())
		}
	}()
	fn()
	return nil
}

// outputName is the file name a save with filename and format produces.
func outputName(filename, format string) string {
	if filename == "" {
		filename = canvas.DefaultFilename
	}
	if format == "" {
		format = canvas.DefaultFormat
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return filename
	}
	return export.Filename(filename, f)
}

func (a *AppState) Main(s screen.Screen) {
	backing := image.Pt(a.Width, a.Height)
	width := a.Width + 2*margin
	height := a.Height + bottomHeight + 2*margin
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Doodle"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	defer a.notifyClose()

	var canUndo bool
	ctl := canvas.New(a.controllerOptions(loopScheduler{w},
		func(v bool) {
			canUndo = v
			w.Send(paint.Event{})
		},
		func() { w.Send(paint.Event{}) },
	)...)

	rect := canvasRect(backing, width, height)
	if err := ctl.Mount(canvas.Rect{
		Left:   float64(rect.Min.X),
		Top:    float64(rect.Min.Y),
		Width:  float64(a.Width),
		Height: float64(a.Height),
	}); err != nil {
		log.Fatalf("mount canvas: %v", err)
	}
	if a.Initial != nil {
		ctl.Load(a.Initial)
	}

	var (
		failed       bool
		pressed      bool
		quit         bool
		message      string
		messageUntil time.Time
	)

	showMessage := func(msg string) {
		message = msg
		log.Print(message)
		messageUntil = time.Now().Add(messageDuration)
		w.Send(paint.Event{})
	}

	fail := func(err error) {
		if failed {
			return
		}
		failed = true
		pressed = false
		log.Printf("canvas disabled: %v", err)
		w.Send(paint.Event{})
	}

	run := func(op string, fn func()) {
		if failed {
			return
		}
		if err := guard(op, fn); err != nil {
			fail(err)
		}
	}

	update := func(fn func(p *canvas.Props)) {
		p := ctl.Props()
		fn(&p)
		if err := ctl.SetProps(p); err != nil {
			log.Printf("props: %v", err)
		}
		w.Send(paint.Event{})
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			if err := guard("paint", func() { drawFrame(ctx, s, w, st) }); err != nil {
				w.Send(failEvent{err})
			}
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	keys := newKeymap()
	keys.register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, func() {
		ctl.Undo()
	})
	keys.register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() {
		if err := ctl.SaveAsImage(a.Filename, a.Format); err != nil {
			log.Printf("save: %v", err)
			showMessage("save failed")
			return
		}
		showMessage(fmt.Sprintf("saved %s", outputName(a.Filename, a.Format)))
	})
	keys.register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		if err := ctl.ExportTo(a.copySink(), a.Filename, export.PNG.Ext()); err != nil {
			log.Printf("copy: %v", err)
			showMessage("copy failed")
			return
		}
		showMessage("image copied to clipboard")
	})
	keys.register("paste", shortcutList{{Rune: 'v', Modifiers: key.ModControl}}, func() {
		img, err := clipboard.ReadImage()
		if err != nil {
			log.Printf("paste: %v", err)
			showMessage("nothing to paste")
			return
		}
		ctl.Load(img)
	})
	keys.register("clear", shortcutList{
		{Code: key.CodeDeleteForward, Modifiers: key.ModControl},
		{Code: key.CodeDeleteBackspace, Modifiers: key.ModControl},
	}, func() {
		ctl.ClearCanvas()
	})
	keys.register("quit", shortcutList{{Rune: 'q'}}, func() { quit = true })
	keys.register("eraser", shortcutList{{Rune: 'e'}}, func() {
		update(func(p *canvas.Props) { p.Erasing = !p.Erasing })
	})
	keys.register("smaller", shortcutList{{Rune: '['}}, func() {
		update(func(p *canvas.Props) { p.BrushSize = canvas.ClampBrushSize(p.BrushSize - 1) })
	})
	keys.register("larger", shortcutList{{Rune: ']'}}, func() {
		update(func(p *canvas.Props) { p.BrushSize = canvas.ClampBrushSize(p.BrushSize + 1) })
	})
	keys.register("prevcolor", shortcutList{{Rune: ','}}, func() {
		update(func(p *canvas.Props) { p.Color = nextPaletteColor(p.Color, -1) })
	})
	keys.register("nextcolor", shortcutList{{Rune: '.'}}, func() {
		update(func(p *canvas.Props) { p.Color = nextPaletteColor(p.Color, 1) })
	})
	keys.register("fewer", shortcutList{{Rune: '-'}}, func() {
		update(func(p *canvas.Props) { p.PolygonSides = stepSides(p.PolygonSides, -1, a.Props.PolygonSides) })
	})
	keys.register("more", shortcutList{{Rune: '='}, {Rune: '+'}}, func() {
		update(func(p *canvas.Props) { p.PolygonSides = stepSides(p.PolygonSides, 1, a.Props.PolygonSides) })
	})
	for i, t := range toolKeys {
		tool := t
		keys.register("tool:"+tool.String(), shortcutList{{Rune: rune('1' + i)}}, func() {
			update(func(p *canvas.Props) { p.Tool = tool })
		})
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case taskEvent:
			run("task", e.fn)
		case failEvent:
			fail(e.err)
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			rect = canvasRect(backing, width, height)
			if !rect.Empty() {
				ctl.SetLayout(canvas.RectFrom(rect))
			}
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			st := paintState{
				width:        width,
				height:       height,
				rect:         rect,
				props:        ctl.Props(),
				canUndo:      canUndo,
				failed:       failed,
				message:      message,
				messageUntil: messageUntil,
				theme:        a.Theme,
			}
			if !failed {
				st.img = ctl.Snapshot()
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if failed {
				continue
			}
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
			}
			x, y := float64(e.X), float64(e.Y)
			inside := !rect.Empty() && ctl.Layout().Contains(x, y)
			ev := canvas.PointerEvent{ClientX: x, ClientY: y}
			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				if inside {
					pressed = true
					run("pointer down", func() { ctl.PointerDown(ev) })
					continue
				}
				pt := image.Pt(int(e.X), int(e.Y))
				for i, r := range swatchRects(width, height, len(canvas.Palette())) {
					if pt.In(r) {
						col := canvas.HexColor(canvas.Palette()[i].Color)
						update(func(p *canvas.Props) { p.Color = col })
						break
					}
				}
			case e.Direction == mouse.DirNone && pressed:
				if inside {
					run("pointer move", func() { ctl.PointerMove(ev) })
				} else {
					pressed = false
					run("pointer leave", func() { ctl.PointerLeave(ev) })
				}
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease && pressed:
				pressed = false
				run("pointer up", func() { ctl.PointerUp(ev) })
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			name, ok := keys.lookup(e)
			if !ok {
				continue
			}
			if name == "quit" {
				keys.trigger(name)
			} else {
				run(name, func() { keys.trigger(name) })
			}
			if quit {
				stopPaint()
				return
			}
		}
	}
}
