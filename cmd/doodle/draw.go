package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/doodle/internal/canvas"
)

// drawCmd replays one pointer gesture with the given tool and saves the
// result.
type drawCmd struct {
	canvasFlags
	tool   canvas.Tool
	points []canvas.Point
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	d.register(fs, r.cfg())

	flagArgs, positionals, err := splitFlagArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.tool, err = canvas.ParseTool(positionals[0])
	if err != nil {
		return nil, err
	}
	want := 4
	if d.tool == canvas.ToolFill {
		want = 2
	}
	d.points, err = expectPoints(positionals[1:], want, d.tool.String())
	if err != nil {
		return nil, err
	}
	if d.tool == canvas.ToolFill && len(d.points) != 1 {
		return nil, fmt.Errorf("fill takes a single x y point")
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	h, err := d.newHeadless(d.root, d.props(d.tool))
	if err != nil {
		return err
	}
	h.gesture(d.points)
	return h.finish(&d.canvasFlags)
}

// expectPoints parses x y pairs. At least min values are required.
func expectPoints(args []string, min int, tool string) ([]canvas.Point, error) {
	if len(args) < min {
		return nil, fmt.Errorf("%s requires at least %d coordinates", tool, min)
	}
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("%s coordinates must come in x y pairs", tool)
	}
	pts := make([]canvas.Point, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", args[i])
		}
		y, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", args[i+1])
		}
		pts = append(pts, canvas.Pt(x, y))
	}
	return pts, nil
}

// splitFlagArgs separates flags known to fs from positional arguments so
// flags may follow the coordinates. Negative numbers stay positional.
func splitFlagArgs(fs *flag.FlagSet, args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		f := fs.Lookup(base)
		if name == "" || f == nil {
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
