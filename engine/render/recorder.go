package render

import (
	"fmt"

	"wireboids/engine/geom"
)

// Op names a recorded sink call.
type Op uint8

const (
	OpClear Op = iota + 1
	OpMoveTo
	OpLineTo
	OpStroke
	OpText
)

func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpMoveTo:
		return "move"
	case OpLineTo:
		return "line"
	case OpStroke:
		return "stroke"
	case OpText:
		return "text"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// Command is one recorded sink call.
type Command struct {
	Op   Op
	P    geom.Vec2
	Text string
	Size int
}

func (c Command) String() string {
	switch c.Op {
	case OpMoveTo, OpLineTo:
		return fmt.Sprintf("%s %s", c.Op, c.P)
	case OpText:
		return fmt.Sprintf("text %q @%s size=%d", c.Text, c.P, c.Size)
	default:
		return c.Op.String()
	}
}

// Recorder is a Sink that keeps every command. It backs tests and the batch
// simulator, where nothing is shown.
type Recorder struct {
	cmds []Command

	// KeepFrames keeps commands across Clear. When false, Clear starts a new
	// recording holding only the clear itself.
	KeepFrames bool
}

func (r *Recorder) Clear() {
	if !r.KeepFrames {
		r.cmds = r.cmds[:0]
	}
	r.cmds = append(r.cmds, Command{Op: OpClear})
}

func (r *Recorder) MoveTo(p geom.Vec2) { r.cmds = append(r.cmds, Command{Op: OpMoveTo, P: p}) }
func (r *Recorder) LineTo(p geom.Vec2) { r.cmds = append(r.cmds, Command{Op: OpLineTo, P: p}) }
func (r *Recorder) Stroke()            { r.cmds = append(r.cmds, Command{Op: OpStroke}) }

func (r *Recorder) WriteText(text string, p geom.Vec2, size int) {
	if size <= 0 {
		size = DefaultTextSize
	}
	r.cmds = append(r.cmds, Command{Op: OpText, P: p, Text: text, Size: size})
}

// Commands returns the recorded commands.
func (r *Recorder) Commands() []Command { return r.cmds }

// Texts returns the recorded text strings in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.cmds {
		if c.Op == OpText {
			out = append(out, c.Text)
		}
	}
	return out
}

// Count returns how many commands of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.cmds {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Segments returns every stroked line segment as start/end pairs.
func (r *Recorder) Segments() [][2]geom.Vec2 {
	var out [][2]geom.Vec2
	var pen geom.Vec2
	for _, c := range r.cmds {
		switch c.Op {
		case OpMoveTo:
			pen = c.P
		case OpLineTo:
			out = append(out, [2]geom.Vec2{pen, c.P})
			pen = c.P
		}
	}
	return out
}

// Reset drops every recorded command.
func (r *Recorder) Reset() { r.cmds = r.cmds[:0] }
