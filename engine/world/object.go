package world

import "wireboids/engine/geom"

// Kind selects how the renderer wires an object's points.
type Kind uint8

const (
	KindCuboid Kind = iota + 1
	KindPolyline
)

func (k Kind) String() string {
	switch k {
	case KindCuboid:
		return "cuboid"
	case KindPolyline:
		return "polyline"
	default:
		return "unknown"
	}
}

// Object is anything stored in the world and drawable by the renderer.
type Object interface {
	Kind() Kind
	Points() []geom.Vec3
}

// Polyline is an ordered list of points. The renderer accepts it but draws
// nothing yet.
type Polyline struct {
	points []geom.Vec3
}

func NewPolyline(points ...geom.Vec3) *Polyline {
	return &Polyline{points: append([]geom.Vec3(nil), points...)}
}

func (l *Polyline) Kind() Kind           { return KindPolyline }
func (l *Polyline) Points() []geom.Vec3  { return l.points }
func (l *Polyline) AddPoint(p geom.Vec3) { l.points = append(l.points, p) }
