package game

import (
	"math"

	"wireboids/engine/geom"
	"wireboids/engine/world"
)

// Spawn describes one generated obstacle and how far it pushed the next
// generation threshold.
type Spawn struct {
	Cuboid *world.Cuboid

	// Advance is the cuboid's depth extent plus Gap.
	Advance  float64
	Gap      float64
	GroupEnd bool
}

// Generator places obstacles ahead of the player in clusters. Inside a
// cluster obstacles follow each other with a short colleague gap; a longer
// group gap separates clusters.
type Generator struct {
	cfg *Config
	rng Source

	nextZ     float64
	groupLeft int
}

func NewGenerator(cfg *Config, rng Source) *Generator {
	g := &Generator{cfg: cfg, rng: rng}
	g.Reset()
	return g
}

// Reset rewinds the threshold to zero and draws a fresh cluster size.
func (g *Generator) Reset() {
	g.nextZ = 0
	g.groupLeft = between(g.rng, g.cfg.MinGroupSize, g.cfg.MaxGroupSize)
}

// NextZ is the player depth past which the next obstacle is generated.
func (g *Generator) NextZ() float64 { return g.nextZ }

// GroupLeft is the number of obstacles left in the current cluster.
func (g *Generator) GroupLeft() int { return g.groupLeft }

// Due reports whether a player at depth z has passed the threshold.
func (g *Generator) Due(z float64) bool { return z > g.nextZ }

// Generate builds the next obstacle inside boundary's lateral extents and
// advances the threshold.
func (g *Generator) Generate(boundary *world.Cuboid) Spawn {
	cx := between(g.rng, int(math.Ceil(boundary.LowerX())), int(math.Floor(boundary.HigherX())))
	cy := between(g.rng, int(math.Ceil(boundary.LowerY())), int(math.Floor(boundary.HigherY())))

	lo, hi := g.cfg.MinCuboidDims, g.cfg.MaxCuboidDims
	dims := geom.V3(
		float64(between(g.rng, int(lo.X), int(hi.X))),
		float64(between(g.rng, int(lo.Y), int(hi.Y))),
		float64(between(g.rng, int(lo.Z), int(hi.Z))),
	)

	near := g.nextZ + g.cfg.GenerationDistance
	origin := geom.V3(float64(cx)-dims.X/2, float64(cy)-dims.Y/2, near)
	diagonal := geom.V3(float64(cx)+dims.X/2, float64(cy)+dims.Y/2, near+dims.Z)

	c := world.NewCuboid(origin, diagonal)
	c.Translate(geom.V3(
		shiftInside(origin.X, diagonal.X, boundary.LowerX(), boundary.HigherX()),
		shiftInside(origin.Y, diagonal.Y, boundary.LowerY(), boundary.HigherY()),
		0,
	))

	s := Spawn{Cuboid: c}
	g.groupLeft--
	if g.groupLeft <= 0 {
		g.groupLeft = between(g.rng, g.cfg.MinGroupSize, g.cfg.MaxGroupSize)
		s.Gap = float64(between(g.rng, g.cfg.MinGroupGap, g.cfg.MaxGroupGap))
		s.GroupEnd = true
	} else {
		s.Gap = float64(between(g.rng, g.cfg.MinColleagueGap, g.cfg.MaxColleagueGap))
	}
	s.Advance = c.Size().Z + s.Gap
	g.nextZ += s.Advance
	return s
}

// shiftInside returns the offset that moves [lo, hi] back inside [min, max]
// without resizing it.
func shiftInside(lo, hi, minV, maxV float64) float64 {
	switch {
	case lo < minV:
		return minV - lo
	case hi > maxV:
		return maxV - hi
	default:
		return 0
	}
}
