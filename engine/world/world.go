// Package world models the game space: axis-aligned boxes, the player position,
// the boundary volume and the set of active objects.
package world

import "wireboids/engine/geom"

// World owns the player position, the boundary box and the active objects. The
// boundary is always present in the object set.
type World struct {
	player   geom.Vec3
	boundary *Cuboid
	boundH   Handle
	objects  *Registry
}

func New(boundary *Cuboid) *World {
	w := &World{
		boundary: boundary,
		objects:  NewRegistry(32),
	}
	w.boundH = w.objects.Add(boundary)
	return w
}

// Reset moves the boundary's near face back to z=1, drops every other object and
// puts the player at the origin.
func (w *World) Reset() {
	w.boundary.Translate(geom.V3(0, 0, 1-w.boundary.Corner(0).Z))
	w.objects.Clear()
	w.boundH = w.objects.Add(w.boundary)
	w.player = geom.Vec3{}
}

func (w *World) Player() geom.Vec3      { return w.player }
func (w *World) SetPlayer(p geom.Vec3)  { w.player = p }
func (w *World) Boundary() *Cuboid      { return w.boundary }
func (w *World) BoundaryHandle() Handle { return w.boundH }
func (w *World) Objects() *Registry     { return w.objects }

func (w *World) AddObject(obj Object) Handle { return w.objects.Add(obj) }

// RemoveObject drops an object. The boundary cannot be removed.
func (w *World) RemoveObject(h Handle) bool {
	if h == w.boundH {
		return false
	}
	return w.objects.Remove(h)
}

// Lookup resolves a handle; it satisfies the renderer's object source.
func (w *World) Lookup(h Handle) (Object, bool) { return w.objects.Get(h) }

// Len counts active objects, the boundary included.
func (w *World) Len() int { return w.objects.Len() }
