package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/engine/camera"
	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// fitMargin leaves room around the model when auto-fitting.
const fitMargin = 1.5

// FitCamera frames the whole model: the camera sits in front of the box
// center, slightly raised, far enough for the largest extent to fit the
// vertical field of view.
func (v *Viewer) FitCamera() {
	if v.model == nil {
		return
	}
	g := v.model.Graph
	g.UpdateWorld()
	box := g.WorldBounds(v.model.Root)
	if box.IsEmpty() {
		v.log.Debug("model has no geometry, camera left in place")
		return
	}

	center := box.Center()
	maxDim := box.Size().MaxComponent()
	distance := camera.FitDistance(maxDim, v.Camera.FOV, fitMargin)

	v.Camera.Position = math.Vec3{X: center.X, Y: center.Y + maxDim*0.2, Z: center.Z + distance}
	v.Camera.LookAt(center)
	v.Controls.SetTarget(center)
}

// SelectCamera copies embedded camera i onto the viewport camera and makes
// it the active camera. Selecting the same camera twice yields the same state.
func (v *Viewer) SelectCamera(i int) error {
	if v.model == nil || i < 0 || i >= len(v.cameras) {
		return ErrNoSuchCamera
	}
	n := v.model.Graph.Node(v.cameras[i])
	pos, rot, _ := n.World.Decompose()
	rot = rot.Normalize()

	cam := v.Camera
	cam.Position = pos
	cam.Quaternion = rot
	if p := n.Camera; p != nil {
		if n.Kind == scene.KindPerspectiveCamera && p.FOV > 0 {
			cam.FOV = p.FOV
		}
		if p.Near > 0 {
			cam.Near = p.Near
		}
		if p.Far > 0 {
			cam.Far = p.Far
		}
	}
	// The stored aspect belongs to the authoring tool, not this canvas.
	cam.SetAspect(v.UI.CanvasWidth, v.UI.CanvasHeight)

	target := pos.Add(rot.Rotate(math.Vec3{Z: -1}).Normalize())
	if n.Camera != nil && n.Camera.Target != nil {
		target = *n.Camera.Target
	}
	v.Controls.SetTarget(target)
	v.UI.ActiveCamera = i

	v.log.Debug("embedded camera selected",
		zap.Int("camera", i),
		zap.String("name", n.Name),
		zap.Float32("fov", cam.FOV))
	return nil
}
