// Package projection maps world-space points onto the logical drawing plane.
//
// Pipeline (fixed):
//
//	world point → camera-relative → rotation (z, then y, then x) → map matrix → perspective divide.
//
// The display surface is a fixed offset ahead of the camera. Its z component must
// be non-zero; New rejects a degenerate surface once instead of every MapPoint
// guarding the divide.
package projection

import (
	"errors"
	"fmt"

	"wireboids/engine/geom"
)

// ErrDegenerateSurface is returned when the display surface has zero depth.
var ErrDegenerateSurface = errors.New("projection: display surface z must be non-zero")

// DefaultSurface centers the surface on the 1920x1080 logical plane, 300 units
// ahead of the camera.
var DefaultSurface = geom.V3(960, 540, 300)

// Context holds the camera and the derived map matrix.
type Context struct {
	cameraPosition geom.Vec3
	cameraRotation geom.Vec3 // radians per axis

	surface geom.Vec3
	mapM    geom.Mat3
}

// New creates a context for a display surface position.
func New(surface geom.Vec3) (*Context, error) {
	if surface.Z == 0 {
		return nil, fmt.Errorf("%w: surface=%s", ErrDegenerateSurface, surface)
	}
	return &Context{
		surface: surface,
		mapM: geom.NewMat3(
			geom.V3(1, 0, surface.X/surface.Z),
			geom.V3(0, 1, surface.Y/surface.Z),
			geom.V3(0, 0, 1/surface.Z),
		),
	}, nil
}

// MustNew is New for surfaces known at compile time.
func MustNew(surface geom.Vec3) *Context {
	c, err := New(surface)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Context) Surface() geom.Vec3            { return c.surface }
func (c *Context) MapMatrix() geom.Mat3          { return c.mapM }
func (c *Context) CameraPosition() geom.Vec3     { return c.cameraPosition }
func (c *Context) CameraRotation() geom.Vec3     { return c.cameraRotation }
func (c *Context) SetCameraPosition(p geom.Vec3) { c.cameraPosition = p }
func (c *Context) SetCameraRotation(r geom.Vec3) { c.cameraRotation = r }

// MapPoint projects a world point.
//
// Points at the camera depth produce infinities; the caller's sink is expected
// to clip.
func (c *Context) MapPoint(p geom.Vec3) geom.Vec2 {
	d := p.Sub(c.cameraPosition)
	if !c.cameraRotation.IsZero() {
		d = geom.RotationZ(c.cameraRotation.Z).MulVec3(d)
		d = geom.RotationY(c.cameraRotation.Y).MulVec3(d)
		d = geom.RotationX(c.cameraRotation.X).MulVec3(d)
	}

	f := c.mapM.MulVec3(d)
	return geom.V2(f.X/f.Z, f.Y/f.Z)
}

// Reset zeroes camera position and rotation. The surface is kept.
func (c *Context) Reset() {
	c.cameraPosition = geom.Vec3{}
	c.cameraRotation = geom.Vec3{}
}
