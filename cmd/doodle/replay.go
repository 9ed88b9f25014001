package main

import (
	"flag"
	"io"
	"log"
	"os"
)

// replayCmd runs a file of line commands against a blank or loaded canvas.
type replayCmd struct {
	canvasFlags
	script string
	stdin  io.Reader
	stdout io.Writer
	*root
	fs *flag.FlagSet
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs, stdin: os.Stdin, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	c.register(fs, r.cfg())
	fs.StringVar(&c.script, "script", "-", "command file to replay, - for stdin")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *replayCmd) Run() error {
	h, err := c.newHeadless(c.root, c.props(c.initialTool()))
	if err != nil {
		return err
	}
	in := c.stdin
	if c.script != "-" {
		f, err := os.Open(c.script)
		if err != nil {
			return err
		}
		defer func(f *os.File) {
			if err := f.Close(); err != nil {
				log.Printf("error closing %q: %v", f.Name(), err)
			}
		}(f)
		in = f
	}
	return newScript(h, &c.canvasFlags, c.stdout).runAll(in)
}
