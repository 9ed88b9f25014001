package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, "; ")
}

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

type interactiveCmd struct {
	canvasFlags
	execs  commandList
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	*root
	fs *flag.FlagSet
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{root: r, fs: fs, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	fs.Usage = usageFunc(i)
	i.register(fs, r.cfg())
	fs.Var(&i.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	if err := i.validate(); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	h, err := i.newHeadless(i.root, i.props(i.initialTool()))
	if err != nil {
		return err
	}
	s := newScript(h, &i.canvasFlags, i.stdout)
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := s.exec(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := s.exec(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.stderr, err)
			if errors.Is(err, errCanvasFailed) {
				return err
			}
		}
		if done {
			break
		}
	}
	return scanner.Err()
}
