package scene

import "github.com/go-gl/mathgl/mgl32"

// CameraType selects camera projection.
type CameraType uint8

const (
	CameraPerspective CameraType = iota
	CameraOrtho
)

// Camera describes the viewing transform.
type Camera struct {
	Type CameraType

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// Perspective.
	FOVYRad float32

	// Orthographic (half-height).
	OrthoSize float32

	Near float32
	Far  float32
}

// DefaultCamera looks down -Z at the origin from z=10 with a 60° field of
// view, which frames the full line span on a landscape viewport.
func DefaultCamera() Camera {
	return Camera{
		Type:      CameraPerspective,
		Position:  mgl32.Vec3{0, 0, 10},
		Target:    mgl32.Vec3{0, 0, 0},
		Up:        mgl32.Vec3{0, 1, 0},
		FOVYRad:   mgl32.DegToRad(60),
		OrthoSize: 6,
		Near:      0.1,
		Far:       100,
	}
}

// View returns the camera view matrix.
func (c Camera) View() mgl32.Mat4 {
	up := c.Up
	if up == (mgl32.Vec3{}) {
		up = mgl32.Vec3{0, 1, 0}
	}
	return mgl32.LookAtV(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	switch c.Type {
	case CameraOrtho:
		size := c.OrthoSize
		if size == 0 {
			size = 1
		}
		right := size * aspect
		return mgl32.Ortho(-right, right, -size, size, c.Near, c.Far)
	default:
		fov := c.FOVYRad
		if fov == 0 {
			fov = 1
		}
		return mgl32.Perspective(fov, aspect, c.Near, c.Far)
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

// clipToNDC divides by w. Points on or behind the eye plane are rejected.
func clipToNDC(p mgl32.Vec4) (ndcPoint, bool) {
	w := p.W()
	if w <= 0 {
		return ndcPoint{}, false
	}
	inv := 1 / w
	return ndcPoint{X: p.X() * inv, Y: p.Y() * inv, Z: p.Z() * inv}, true
}

func ndcToScreen(p ndcPoint, w, h int) (x, y float32) {
	x = (p.X*0.5 + 0.5) * float32(w-1)
	y = (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return x, y
}
