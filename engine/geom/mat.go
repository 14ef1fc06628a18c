package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat3 is a 3x3 matrix described by its rows.
//
// Storage is mgl64's column-major layout; callers only ever see rows.
type Mat3 struct {
	m mgl64.Mat3
}

// NewMat3 builds a matrix from three row vectors.
func NewMat3(r1, r2, r3 Vec3) Mat3 {
	return Mat3{m: mgl64.Mat3FromRows(r1.mgl(), r2.mgl(), r3.mgl())}
}

func Identity3() Mat3 { return Mat3{m: mgl64.Ident3()} }

// Row returns row i (0-based).
func (m Mat3) Row(i int) Vec3 {
	return fromMgl(m.m.Row(i))
}

// MulVec3 returns (r1·v, r2·v, r3·v).
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return fromMgl(m.m.Mul3x1(v.mgl()))
}

// RotationZ, RotationY and RotationX build the camera rotation matrices. The
// sign convention matches the projection pipeline and differs from mgl64's
// Rotate3D helpers.
func RotationZ(rad float64) Mat3 {
	c, s := math.Cos(rad), math.Sin(rad)
	return NewMat3(
		V3(c, s, 0),
		V3(-s, c, 0),
		V3(0, 0, 1),
	)
}

func RotationY(rad float64) Mat3 {
	c, s := math.Cos(rad), math.Sin(rad)
	return NewMat3(
		V3(c, 0, -s),
		V3(0, 1, 0),
		V3(s, 0, c),
	)
}

func RotationX(rad float64) Mat3 {
	c, s := math.Cos(rad), math.Sin(rad)
	return NewMat3(
		V3(1, 0, 0),
		V3(0, c, s),
		V3(0, -s, c),
	)
}

func (m Mat3) String() string {
	out := ""
	for i := 0; i < 3; i++ {
		r := m.Row(i)
		if i > 0 {
			out += "\n"
		}
		out += "[" + fmtFloat(r.X) + " " + fmtFloat(r.Y) + " " + fmtFloat(r.Z) + "]"
	}
	return out
}

func (v Vec3) mgl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func fromMgl(v mgl64.Vec3) Vec3 { return Vec3{X: v[0], Y: v[1], Z: v[2]} }
