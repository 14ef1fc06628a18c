package main

import (
	"math"

	"wireboids/engine/input"
	"wireboids/engine/world"
)

// pilot steers away from the nearest obstacle ahead that would hit the
// player. It holds at most one direction and sends only edges.
type pilot struct {
	inbox *input.Inbox[input.Event]
	held  input.Dir
	on    bool
}

func newPilot(inbox *input.Inbox[input.Event]) *pilot {
	return &pilot{inbox: inbox}
}

// steer picks a direction for w and queues the edges that get there.
func (p *pilot) steer(w *world.World) {
	dir, ok := escape(w)
	if p.on && (!ok || dir != p.held) {
		p.inbox.TrySend(input.Event{Dir: p.held, Pressed: false})
		p.on = false
	}
	if ok && !p.on {
		p.inbox.TrySend(input.Event{Dir: dir, Pressed: true})
		p.held, p.on = dir, true
	}
}

// release lets go of whatever is held.
func (p *pilot) release() {
	if p.on {
		p.inbox.TrySend(input.Event{Dir: input.DirAll, Pressed: false})
		p.on = false
	}
}

// escape returns the shortest way out of the nearest threatening obstacle.
// It reports false when nothing threatens or no side is reachable.
func escape(w *world.World) (input.Dir, bool) {
	player := w.Player()
	boundary := w.BoundaryHandle()

	var threat *world.Cuboid
	w.Objects().Each(func(h world.Handle, obj world.Object) {
		if h == boundary {
			return
		}
		c, ok := obj.(*world.Cuboid)
		if !ok || c.Depth() < player.Z || !c.ContainsXY(player) {
			return
		}
		if threat == nil || c.Depth() < threat.Depth() {
			threat = c
		}
	})
	if threat == nil {
		return 0, false
	}

	b := w.Boundary()
	best, bestDist := input.Dir(0), math.Inf(1)
	try := func(d input.Dir, dist float64, open bool) {
		if open && dist < bestDist {
			best, bestDist = d, dist
		}
	}
	try(input.DirUp, threat.HigherY()-player.Y, threat.HigherY() < b.HigherY())
	try(input.DirDown, player.Y-threat.LowerY(), threat.LowerY() > b.LowerY())
	try(input.DirLeft, player.X-threat.LowerX(), threat.LowerX() > b.LowerX())
	try(input.DirRight, threat.HigherX()-player.X, threat.HigherX() < b.HigherX())
	if math.IsInf(bestDist, 1) {
		return 0, false
	}
	return best, true
}
