// Package geom holds the small linear algebra used by the simulation: 3D and 2D
// vectors and a 3x3 matrix.
//
// All operations are plain IEEE-754 float64 arithmetic. There is no epsilon
// anywhere, including IsZero and Equal.
package geom

import "strconv"

// Vec3 is a world-space point or direction.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 is a point on the logical drawing plane.
type Vec2 struct {
	X, Y float64
}

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }
func V2(x, y float64) Vec2    { return Vec2{X: x, Y: y} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Negate() Vec3    { return Vec3{-v.X, -v.Y, -v.Z} }

// Sub is defined as v + (-o).
func (v Vec3) Sub(o Vec3) Vec3 { return v.Add(o.Negate()) }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// IsZero reports whether all three components are exactly zero.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

func (v Vec3) Equal(o Vec3) bool { return v == o }

// XY drops the z component.
func (v Vec3) XY() Vec2 { return Vec2{X: v.X, Y: v.Y} }

func (v Vec3) String() string {
	return "(" + fmtFloat(v.X) + ", " + fmtFloat(v.Y) + ", " + fmtFloat(v.Z) + ")"
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Equal(o Vec2) bool    { return v == o }

func (v Vec2) String() string {
	return "(" + fmtFloat(v.X) + ", " + fmtFloat(v.Y) + ")"
}

func fmtFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
