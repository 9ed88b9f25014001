package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/export"
)

// listCmd prints one of the fixed catalogues: formats, tools or colors.
type listCmd struct {
	*root
	fs       *flag.FlagSet
	name     string
	template string
	print    func(w io.Writer)
}

func parseListCmd(name string, args []string, r *root, print func(w io.Writer)) (*listCmd, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cmd := &listCmd{root: r, fs: fs, name: name, template: name + ".txt", print: print}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func parseFormatsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("formats", args, r, printFormats)
}

func parseToolsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("tools", args, r, printTools)
}

func parseColorsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("colors", args, r, printColors)
}

func (c *listCmd) Run() error {
	c.print(os.Stdout)
	return nil
}

func (c *listCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *listCmd) Template() string {
	return c.template
}

func printFormats(w io.Writer) {
	fmt.Fprintln(w, "available export formats (* marks the default):")
	for _, f := range export.Formats() {
		marker := " "
		if string(f) == canvas.DefaultFormat {
			marker = "*"
		}
		note := ""
		if f.Opaque() {
			note = " (flattened onto white)"
		}
		fmt.Fprintf(w, "%s %-5s %s%s\n", marker, f, f.MIME(), note)
	}
}

func printTools(w io.Writer) {
	fmt.Fprintln(w, "available tools:")
	for _, t := range canvas.Tools() {
		var usage string
		switch {
		case t == canvas.ToolFill:
			usage = "x y"
		case t == canvas.ToolBrush:
			usage = "x0 y0 x1 y1 [x y ...]"
		case t.Shape():
			usage = "anchor-x anchor-y x y"
		}
		fmt.Fprintf(w, "  %-10s %s\n", t, usage)
	}
}

func printColors(w io.Writer) {
	fmt.Fprintln(w, "available palette colors (* marks the default color):")
	for idx, entry := range canvas.Palette() {
		marker := " "
		hex := strings.ToUpper(canvas.HexColor(entry.Color))
		if strings.EqualFold(hex, canvas.DefaultColor) {
			marker = "*"
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(w, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, hex, block)
	}
}
