// Package render draws the projected world and text overlays onto a Sink.
//
// Sinks work in a logical space of LogicalWidth x LogicalHeight with the
// origin at the bottom left and Y pointing up. Mapping to device pixels is the
// sink's job.
package render

import "wireboids/engine/geom"

const (
	LogicalWidth  = 1920
	LogicalHeight = 1080

	// DefaultTextSize is used when WriteText is given a size of zero.
	DefaultTextSize = 12
)

// Sink receives draw commands. MoveTo starts a new path, LineTo extends it and
// Stroke draws it.
type Sink interface {
	Clear()
	MoveTo(p geom.Vec2)
	LineTo(p geom.Vec2)
	Stroke()
	WriteText(text string, p geom.Vec2, size int)
}
