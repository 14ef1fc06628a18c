package world

import "wireboids/engine/geom"

// Cuboid is an axis-aligned box with its 8 corners stored eagerly.
//
// Corner order, o = origin and d = diagonal:
//
//	0 (o.x,o.y,o.z)  1 (o.x,o.y,d.z)  2 (o.x,d.y,o.z)  3 (o.x,d.y,d.z)
//	4 (d.x,o.y,o.z)  5 (d.x,o.y,d.z)  6 (d.x,d.y,o.z)  7 (d.x,d.y,d.z)
//
// Corners 0 and 7 are always the two extremal corners, so every extent is
// derived from them alone.
type Cuboid struct {
	corners [8]geom.Vec3
}

func NewCuboid(origin, diagonal geom.Vec3) *Cuboid {
	o, d := origin, diagonal
	return &Cuboid{corners: [8]geom.Vec3{
		o,
		{X: o.X, Y: o.Y, Z: d.Z},
		{X: o.X, Y: d.Y, Z: o.Z},
		{X: o.X, Y: d.Y, Z: d.Z},
		{X: d.X, Y: o.Y, Z: o.Z},
		{X: d.X, Y: o.Y, Z: d.Z},
		{X: d.X, Y: d.Y, Z: o.Z},
		d,
	}}
}

func (c *Cuboid) Kind() Kind { return KindCuboid }

// Points returns the corners in their fixed order. The slice aliases internal
// storage and must not be modified.
func (c *Cuboid) Points() []geom.Vec3 { return c.corners[:] }

func (c *Cuboid) Corner(i int) geom.Vec3 { return c.corners[i] }

// Translate moves every corner by v.
func (c *Cuboid) Translate(v geom.Vec3) {
	for i := range c.corners {
		c.corners[i] = c.corners[i].Add(v)
	}
}

// Depth is the near face position along the travel axis.
func (c *Cuboid) Depth() float64 {
	return min(c.corners[0].Z, c.corners[1].Z)
}

func (c *Cuboid) LowerX() float64  { return min(c.corners[0].X, c.corners[7].X) }
func (c *Cuboid) HigherX() float64 { return max(c.corners[0].X, c.corners[7].X) }
func (c *Cuboid) LowerY() float64  { return min(c.corners[0].Y, c.corners[7].Y) }
func (c *Cuboid) HigherY() float64 { return max(c.corners[0].Y, c.corners[7].Y) }
func (c *Cuboid) LowerZ() float64  { return min(c.corners[0].Z, c.corners[7].Z) }
func (c *Cuboid) HigherZ() float64 { return max(c.corners[0].Z, c.corners[7].Z) }

// ContainsXY is the inclusive lateral containment test used for collisions.
func (c *Cuboid) ContainsXY(p geom.Vec3) bool {
	return p.X >= c.LowerX() && p.X <= c.HigherX() &&
		p.Y >= c.LowerY() && p.Y <= c.HigherY()
}

// Size returns the extent along each axis.
func (c *Cuboid) Size() geom.Vec3 {
	return geom.V3(c.HigherX()-c.LowerX(), c.HigherY()-c.LowerY(), c.HigherZ()-c.LowerZ())
}
