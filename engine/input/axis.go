package input

import "wireboids/engine/geom"

// Dir is one of the four steering directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight

	// DirAll addresses every direction at once; only a release is meaningful.
	DirAll
)

func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirAll:
		return "all"
	default:
		return "unknown"
	}
}

// Event is a press or release of one direction.
type Event struct {
	Dir     Dir
	Pressed bool
}

// Axis keeps a held flag per direction. A repeated press of a held direction
// changes nothing, so OS key repeat contributes at most once, and the derived
// vector never leaves [-1, 1] on either axis.
type Axis struct {
	held [4]bool
}

// Apply records ev and reports whether the held state changed.
func (a *Axis) Apply(ev Event) bool {
	if ev.Dir == DirAll {
		if ev.Pressed {
			return false
		}
		return a.ReleaseAll()
	}
	if int(ev.Dir) >= len(a.held) || a.held[ev.Dir] == ev.Pressed {
		return false
	}
	a.held[ev.Dir] = ev.Pressed
	return true
}

// Held reports whether d is currently pressed.
func (a Axis) Held(d Dir) bool {
	return int(d) < len(a.held) && a.held[d]
}

// ReleaseAll drops every held direction, as after a focus loss where release
// edges never arrive. It reports whether anything was held.
func (a *Axis) ReleaseAll() bool {
	changed := a.held != [4]bool{}
	a.held = [4]bool{}
	return changed
}

// Vector returns (right-left, up-down).
func (a Axis) Vector() geom.Vec2 {
	var v geom.Vec2
	if a.held[DirRight] {
		v.X++
	}
	if a.held[DirLeft] {
		v.X--
	}
	if a.held[DirUp] {
		v.Y++
	}
	if a.held[DirDown] {
		v.Y--
	}
	return v
}
