package render

import (
	"wireboids/engine/geom"
	"wireboids/engine/world"
)

// ObjectSource resolves tracked handles to live objects.
type ObjectSource interface {
	Lookup(h world.Handle) (world.Object, bool)
}

// Projector maps world points to logical screen points.
type Projector interface {
	MapPoint(p geom.Vec3) geom.Vec2
}

// cuboidPaths is the stroke wiring over the cuboid corner order: front face,
// back face, then the four connecting edges.
var cuboidPaths = [][]int{
	{0, 1, 3, 2, 0},
	{4, 5, 7, 6, 4},
	{0, 4},
	{1, 5},
	{2, 6},
	{3, 7},
}

// Renderer tracks which world objects are drawn and strokes them each frame.
// Projected points live in a per-frame map keyed by handle; world objects
// carry no render state.
type Renderer struct {
	sink      Sink
	tracked   []world.Handle
	index     map[world.Handle]int
	projected map[world.Handle][]geom.Vec2
}

func NewRenderer(sink Sink) *Renderer {
	return &Renderer{
		sink:      sink,
		index:     make(map[world.Handle]int),
		projected: make(map[world.Handle][]geom.Vec2),
	}
}

// Sink returns the sink the renderer draws on.
func (r *Renderer) Sink() Sink { return r.sink }

// Track adds h to the draw set. Tracking twice is harmless.
func (r *Renderer) Track(h world.Handle) {
	if _, ok := r.index[h]; ok {
		return
	}
	r.index[h] = len(r.tracked)
	r.tracked = append(r.tracked, h)
}

// Untrack removes h from the draw set and reports whether it was tracked.
func (r *Renderer) Untrack(h world.Handle) bool {
	i, ok := r.index[h]
	if !ok {
		return false
	}
	last := len(r.tracked) - 1
	if i != last {
		moved := r.tracked[last]
		r.tracked[i] = moved
		r.index[moved] = i
	}
	r.tracked = r.tracked[:last]
	delete(r.index, h)
	delete(r.projected, h)
	return true
}

// Tracked reports whether h is in the draw set.
func (r *Renderer) Tracked(h world.Handle) bool {
	_, ok := r.index[h]
	return ok
}

// Len returns the number of tracked handles.
func (r *Renderer) Len() int { return len(r.tracked) }

// Reset forgets every tracked handle.
func (r *Renderer) Reset() {
	r.tracked = r.tracked[:0]
	clear(r.index)
	clear(r.projected)
}

// Render clears the sink, projects every tracked object and strokes it.
// Handles that no longer resolve are skipped.
func (r *Renderer) Render(src ObjectSource, proj Projector) {
	r.sink.Clear()
	clear(r.projected)

	for _, h := range r.tracked {
		obj, ok := src.Lookup(h)
		if !ok {
			continue
		}
		pts := obj.Points()
		out := make([]geom.Vec2, len(pts))
		for i, p := range pts {
			out[i] = proj.MapPoint(p)
		}
		r.projected[h] = out

		switch obj.Kind() {
		case world.KindCuboid:
			r.strokeCuboid(out)
		case world.KindPolyline:
			// Accepted but not drawn.
		}
	}
}

func (r *Renderer) strokeCuboid(p []geom.Vec2) {
	if len(p) < 8 {
		return
	}
	for _, path := range cuboidPaths {
		r.sink.MoveTo(p[path[0]])
		for _, i := range path[1:] {
			r.sink.LineTo(p[i])
		}
		r.sink.Stroke()
	}
}

// Projected returns the points of h projected by the last Render.
func (r *Renderer) Projected(h world.Handle) ([]geom.Vec2, bool) {
	pts, ok := r.projected[h]
	return pts, ok
}

// Text writes an overlay at logical position p, bypassing projection.
func (r *Renderer) Text(text string, p geom.Vec2, size int) {
	r.sink.WriteText(text, p, size)
}

// Clear wipes the sink without drawing anything.
func (r *Renderer) Clear() {
	r.sink.Clear()
}
