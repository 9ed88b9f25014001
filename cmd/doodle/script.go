package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/export"
)

const (
	fallbackTitle  = "Something went wrong with the canvas"
	fallbackDetail = "Please restart to try again."
)

// errCanvasFailed is returned once a command has panicked; the session
// accepts no further drawing.
var errCanvasFailed = errors.New(strings.ToLower(fallbackTitle))

// script executes line commands against a headless canvas.
type script struct {
	h      *headless
	flags  *canvasFlags
	out    io.Writer
	failed bool
}

func newScript(h *headless, flags *canvasFlags, out io.Writer) *script {
	return &script{h: h, flags: flags, out: out}
}

// runAll executes every line from r until EOF or exit.
func (s *script) runAll(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		done, err := s.exec(scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}

// exec runs one command. It reports done for exit and quit. A panic while
// drawing is logged and disables the session.
func (s *script) exec(line string) (done bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false, nil
	}
	if s.failed {
		return false, errCanvasFailed
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("%s: panic: %v\n%s", fields[0], r, debug.Stack())
			s.failed = true
			fmt.Fprintln(s.out, fallbackTitle)
			fmt.Fprintln(s.out, fallbackDetail)
			done, err = false, errCanvasFailed
		}
	}()
	defer s.h.flush()
	return s.dispatch(strings.ToLower(fields[0]), fields[1:])
}

func (s *script) dispatch(name string, args []string) (bool, error) {
	ctl := s.h.ctl
	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, scriptHelp)
	case "tool":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: tool NAME")
		}
		t, err := canvas.ParseTool(args[0])
		if err != nil {
			return false, err
		}
		return false, s.setProps(func(p *canvas.Props) { p.Tool = t })
	case "color":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: color NAME|#RRGGBB")
		}
		return false, s.setProps(func(p *canvas.Props) { p.Color = args[0] })
	case "brush", "sides":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: %s N", name)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("invalid number %q", args[0])
		}
		if name == "brush" {
			return false, s.setProps(func(p *canvas.Props) { p.BrushSize = n })
		}
		return false, s.setProps(func(p *canvas.Props) { p.PolygonSides = n })
	case "eraser":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return false, fmt.Errorf("usage: eraser on|off")
		}
		on := args[0] == "on"
		return false, s.setProps(func(p *canvas.Props) { p.Erasing = on })
	case "down", "move", "up", "leave":
		pts, err := expectPoints(args, 2, name)
		if err != nil {
			return false, err
		}
		if len(pts) != 1 {
			return false, fmt.Errorf("usage: %s X Y", name)
		}
		ev := canvas.PointerEvent{ClientX: pts[0].X, ClientY: pts[0].Y}
		switch name {
		case "down":
			ctl.PointerDown(ev)
		case "move":
			ctl.PointerMove(ev)
		case "up":
			ctl.PointerUp(ev)
		default:
			ctl.PointerLeave(ev)
		}
	case "undo":
		ctl.Undo()
	case "clear":
		ctl.ClearCanvas()
	case "canundo":
		s.h.flush()
		fmt.Fprintln(s.out, ctl.CanUndo())
	case "save":
		filename, format := s.flags.output, s.flags.format
		if len(args) > 0 {
			filename = args[0]
		}
		if len(args) > 1 {
			format = args[1]
		}
		return false, ctl.SaveAsImage(filename, format)
	case "copy":
		if err := ctl.ExportTo(s.h.r.copySink(), s.flags.output, string(export.PNG)); err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, "copied to clipboard")
	case "status":
		p := ctl.Props()
		entry := "none"
		if e, ok := ctl.History().Current(); ok {
			entry = e.ID.String()
		}
		fmt.Fprintf(s.out, "tool=%s color=%s brush=%d sides=%d eraser=%t history=%d entry=%s drawing=%t\n",
			p.Tool, p.Color, p.BrushSize, p.PolygonSides, p.Erasing, ctl.History().Len(), entry, ctl.Drawing())
	default:
		return false, fmt.Errorf("unknown command %q", name)
	}
	return false, nil
}

func (s *script) setProps(fn func(p *canvas.Props)) error {
	p := s.h.ctl.Props()
	fn(&p)
	return s.h.ctl.SetProps(p)
}

const scriptHelp = `commands:
  tool NAME            select brush, line, rectangle, circle, polygon, star, arrow or fill
  color C              set the color by name or #RRGGBB
  brush N              set the brush size (1-20)
  sides N              set the polygon side count (3-12)
  eraser on|off        toggle erasing
  down|move|up X Y     pointer input in canvas pixels
  leave X Y            pointer left the canvas
  undo | clear         history commands
  canundo              print whether undo is available
  save [NAME] [FMT]    export the canvas
  copy                 copy the canvas to the clipboard
  status               print the current props and history position
  exit                 stop`
