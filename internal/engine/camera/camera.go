// Package camera provides the orbit camera of the viewer.
package camera

import (
	"github.com/chewxy/math32"

	gm "github.com/Faultbox/geosim/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	FovY float32 // radians
}

// NewOrbitCamera creates an orbit camera framing a figure of a few units.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        12,
		RotationX:       0.45,
		RotationY:       0.6,
		MinDistance:     1,
		MaxDistance:     100,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            math32.Pi / 4,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() gm.Vec3 {
	x := c.Distance * math32.Cos(c.RotationX) * math32.Sin(c.RotationY)
	y := c.Distance * math32.Sin(c.RotationX)
	z := c.Distance * math32.Cos(c.RotationX) * math32.Cos(c.RotationY)

	return gm.Vec3{
		X: float64(c.CenterX + x),
		Y: float64(c.CenterY + y),
		Z: float64(c.CenterZ + z),
	}
}

// Center returns the orbit center.
func (c *OrbitCamera) Center() gm.Vec3 {
	return gm.Vec3{X: float64(c.CenterX), Y: float64(c.CenterY), Z: float64(c.CenterZ)}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() gm.Mat4 {
	return gm.LookAt(c.Position(), c.Center(), gm.UnitY)
}

// ProjectionMatrix returns a perspective projection whose clip planes
// follow the orbit distance.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) gm.Mat4 {
	near := math32.Max(c.Distance*0.01, 0.01)
	far := c.Distance * 10
	return gm.Perspective(float64(c.FovY), float64(aspect), float64(near), float64(far))
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(x, y, z float32) {
	c.CenterX = x
	c.CenterY = y
	c.CenterZ = z
}

// FitToBounds centers the camera on the box and backs off until its
// bounding sphere fits the vertical field of view. The angles are kept.
func (c *OrbitCamera) FitToBounds(lo, hi gm.Vec3) {
	mid := lo.Add(hi).Scale(0.5)
	c.SetCenter(float32(mid.X), float32(mid.Y), float32(mid.Z))

	radius := float32(hi.Sub(lo).Length() / 2)
	d := radius / math32.Sin(c.FovY/2) * 1.1
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
