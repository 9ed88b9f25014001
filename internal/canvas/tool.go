package canvas

import (
	"errors"
	"fmt"
	"strings"
)

// Tool is the active drawing tool.
type Tool int

const (
	ToolBrush Tool = iota
	ToolLine
	ToolRectangle
	ToolCircle
	ToolPolygon
	ToolStar
	ToolArrow
	ToolFill
)

// ErrUnknownTool is returned by ParseTool for names it does not recognise.
var ErrUnknownTool = errors.New("unknown tool")

var toolNames = []string{"brush", "line", "rectangle", "circle", "polygon", "star", "arrow", "fill"}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("tool(%d)", int(t))
	}
	return toolNames[t]
}

// Shape reports whether t drags out a shape from an anchor point.
func (t Tool) Shape() bool {
	return t > ToolBrush && t < ToolFill
}

// Tools lists every tool in declaration order.
func Tools() []Tool {
	out := make([]Tool, len(toolNames))
	for i := range out {
		out[i] = Tool(i)
	}
	return out
}

// ParseTool resolves a tool name. "rect", "bucket", "pen" and "pencil" are
// accepted as aliases.
func ParseTool(s string) (Tool, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "rect":
		return ToolRectangle, nil
	case "bucket":
		return ToolFill, nil
	case "pen", "pencil":
		return ToolBrush, nil
	}
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownTool, s)
}
