// Package camera provides the viewport camera and its orbit controls.
package camera

import (
	gomath "math"

	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// Perspective is a perspective camera. FOV is vertical, in degrees.
type Perspective struct {
	Position   math.Vec3
	Quaternion math.Quat
	Up         math.Vec3

	FOV    float32
	Aspect float32
	Near   float32
	Far    float32
}

// NewPerspective returns a camera at (0, 1.5, 3) looking at the origin.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	c := &Perspective{
		Position:   math.Vec3{X: 0, Y: 1.5, Z: 3},
		Quaternion: math.QuatIdentity(),
		Up:         math.Vec3{X: 0, Y: 1, Z: 0},
		FOV:        fov,
		Aspect:     aspect,
		Near:       near,
		Far:        far,
	}
	c.LookAt(math.Vec3{})
	return c
}

// SetAspect sets the aspect ratio from canvas dimensions. Degenerate sizes are ignored.
func (c *Perspective) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// LookAt orients the camera toward target.
func (c *Perspective) LookAt(target math.Vec3) {
	if target == c.Position {
		return
	}
	view := math.LookAt(c.Position, target, c.Up)
	// The camera's world rotation is the transpose of the view rotation.
	rot := math.Mat4{
		view[0], view[4], view[8], 0,
		view[1], view[5], view[9], 0,
		view[2], view[6], view[10], 0,
		0, 0, 0, 1,
	}
	c.Quaternion = math.QuatFromRotationMatrix(rot).Normalize()
}

// Forward returns the world-space view direction (local -Z).
func (c *Perspective) Forward() math.Vec3 {
	return c.Quaternion.Rotate(math.Vec3{Z: -1}).Normalize()
}

// WorldMatrix returns the camera transform.
func (c *Perspective) WorldMatrix() math.Mat4 {
	return math.Compose(c.Position, c.Quaternion, math.Vec3{X: 1, Y: 1, Z: 1})
}

// ViewMatrix returns the inverse of the camera transform.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return c.WorldMatrix().Inverse()
}

// ProjectionMatrix returns the perspective projection.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FOV*gomath.Pi/180, c.Aspect, c.Near, c.Far)
}

// FitDistance returns the distance at which a cube of edge maxDim fills the
// vertical field of view, times margin.
func FitDistance(maxDim, fovDeg, margin float32) float32 {
	half := float64(fovDeg) * gomath.Pi / 360
	return maxDim / (2 * float32(gomath.Tan(half))) * margin
}
