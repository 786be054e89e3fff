package camera

import (
	gomath "math"

	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// OrbitControls orbits a Perspective camera around Target. The camera is
// mutated in place, never replaced.
type OrbitControls struct {
	Camera *Perspective
	Target math.Vec3

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32
	// Damping in (0, 1] eases motion over several frames; 0 applies it at once.
	Damping float32

	MinDistance float32
	MaxDistance float32
	MinPolar    float32
	MaxPolar    float32

	// Pending input accumulated between updates.
	deltaTheta float32
	deltaPhi   float32
	scale      float32
	panOffset  math.Vec3

	// ViewportHeight in pixels converts drag distances into angles.
	ViewportHeight int
}

// NewOrbitControls attaches controls to cam with default tuning.
func NewOrbitControls(cam *Perspective) *OrbitControls {
	return &OrbitControls{
		Camera:         cam,
		RotateSpeed:    1,
		ZoomSpeed:      1,
		PanSpeed:       1,
		MinDistance:    0,
		MaxDistance:    float32(gomath.Inf(1)),
		MinPolar:       0,
		MaxPolar:       gomath.Pi,
		scale:          1,
		ViewportHeight: 600,
	}
}

// HandleDrag rotates around the target. Deltas are in pixels.
func (o *OrbitControls) HandleDrag(dx, dy float32) {
	h := float32(o.ViewportHeight)
	if h <= 0 {
		h = 1
	}
	o.deltaTheta -= 2 * gomath.Pi * dx / h * o.RotateSpeed
	o.deltaPhi -= 2 * gomath.Pi * dy / h * o.RotateSpeed
}

// HandlePan moves the target in the camera plane. Deltas are in pixels.
func (o *OrbitControls) HandlePan(dx, dy float32) {
	cam := o.Camera
	h := float32(o.ViewportHeight)
	if h <= 0 {
		h = 1
	}
	dist := cam.Position.Sub(o.Target).Length()
	// Distance covered by one pixel at the target plane.
	perPixel := 2 * dist * float32(gomath.Tan(float64(cam.FOV)*gomath.Pi/360)) / h * o.PanSpeed

	right := cam.Quaternion.Rotate(math.Vec3{X: 1})
	up := cam.Quaternion.Rotate(math.Vec3{Y: 1})
	o.panOffset = o.panOffset.Add(right.Scale(-dx * perPixel)).Add(up.Scale(dy * perPixel))
}

// HandleZoom dollies toward the target for positive wheel deltas.
func (o *OrbitControls) HandleZoom(delta float32) {
	step := float32(gomath.Pow(0.95, float64(o.ZoomSpeed)))
	switch {
	case delta > 0:
		o.scale *= step
	case delta < 0:
		o.scale /= step
	}
}

// SetTarget replaces the orbit target and drops pending motion.
func (o *OrbitControls) SetTarget(t math.Vec3) {
	o.Target = t
	o.deltaTheta, o.deltaPhi = 0, 0
	o.scale = 1
	o.panOffset = math.Vec3{}
}

// Update applies pending input and re-aims the camera at the target. It
// reports whether the camera moved.
func (o *OrbitControls) Update() bool {
	if o.idle() {
		return false
	}
	cam := o.Camera
	offset := cam.Position.Sub(o.Target)

	radius := float64(offset.Length())
	theta := gomath.Atan2(float64(offset.X), float64(offset.Z))
	phi := 0.0
	if radius > 0 {
		phi = gomath.Acos(clamp(float64(offset.Y)/radius, -1, 1))
	}

	f := float32(1)
	if o.Damping > 0 {
		f = o.Damping
	}

	theta += float64(o.deltaTheta * f)
	phi += float64(o.deltaPhi * f)
	const eps = 1e-6
	phi = clamp(phi, float64(o.MinPolar)+eps, float64(o.MaxPolar)-eps)

	radius *= float64(o.scale)
	radius = clamp(radius, float64(o.MinDistance), float64(o.MaxDistance))

	o.Target = o.Target.Add(o.panOffset.Scale(f))

	sinPhi := gomath.Sin(phi)
	next := o.Target.Add(math.Vec3{
		X: float32(radius * sinPhi * gomath.Sin(theta)),
		Y: float32(radius * gomath.Cos(phi)),
		Z: float32(radius * sinPhi * gomath.Cos(theta)),
	})
	moved := next.Distance(cam.Position) > eps
	cam.Position = next
	cam.LookAt(o.Target)

	if o.Damping > 0 {
		o.deltaTheta *= 1 - o.Damping
		o.deltaPhi *= 1 - o.Damping
		o.panOffset = o.panOffset.Scale(1 - o.Damping)
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
		o.panOffset = math.Vec3{}
	}
	o.scale = 1
	return moved
}

// idle reports whether no input is pending, so Update can leave the camera untouched.
func (o *OrbitControls) idle() bool {
	const eps = 1e-7
	return gomath.Abs(float64(o.deltaTheta)) < eps && gomath.Abs(float64(o.deltaPhi)) < eps &&
		o.scale == 1 && o.panOffset.Length() < eps
}

func clamp(v, lo, hi float64) float64 {
	return gomath.Max(lo, gomath.Min(hi, v))
}
