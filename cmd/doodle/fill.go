package main

import (
	"flag"

	"github.com/example/doodle/internal/canvas"
)

// fillCmd flood fills the region under one point.
type fillCmd struct {
	canvasFlags
	at canvas.Point
	*root
	fs *flag.FlagSet
}

func (f *fillCmd) FlagSet() *flag.FlagSet {
	return f.fs
}

func parseFillCmd(args []string, r *root) (*fillCmd, error) {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	f := &fillCmd{root: r, fs: fs}
	fs.Usage = usageFunc(f)
	f.register(fs, r.cfg())

	flagArgs, positionals, err := splitFlagArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) != 2 {
		return nil, &UsageError{of: f}
	}
	pts, err := expectPoints(positionals, 2, "fill")
	if err != nil {
		return nil, err
	}
	f.at = pts[0]
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *fillCmd) Run() error {
	h, err := f.newHeadless(f.root, f.props(canvas.ToolFill))
	if err != nil {
		return err
	}
	h.gesture([]canvas.Point{f.at})
	return h.finish(&f.canvasFlags)
}
