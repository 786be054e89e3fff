package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/engine/picking"
	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// Pick selects the nearest visible mesh under canvas pixel (x, y), measured
// from the canvas top left, and returns it. A miss clears the selection.
func (v *Viewer) Pick(x, y float32) scene.NodeID {
	v.UI.Selected = scene.NoNode
	if v.model == nil || v.UI.CanvasWidth <= 0 || v.UI.CanvasHeight <= 0 {
		return scene.NoNode
	}

	viewProj := v.Camera.ProjectionMatrix().Mul(v.Camera.ViewMatrix())
	ray := picking.ScreenToRay(x, y, float32(v.UI.CanvasWidth), float32(v.UI.CanvasHeight), viewProj.Inverse())

	best := float32(-1)
	g := v.model.Graph
	g.Walk(v.model.Root, func(n *scene.Node, _ int) bool {
		if !n.Visible {
			return false
		}
		if !n.Kind.IsMesh() || n.Mesh == nil || n.Mesh.Geometry == nil {
			return true
		}
		t, hit := ray.IntersectBox(n.Mesh.Geometry.Bounds.ApplyMat4(n.World))
		if hit && (best < 0 || t < best) {
			best = t
			v.UI.Selected = n.ID
		}
		return true
	})

	if v.UI.Selected != scene.NoNode {
		v.log.Debug("node picked", zap.String("node", g.Node(v.UI.Selected).Label()), zap.Float32("distance", best))
	}
	return v.UI.Selected
}

// SelectedBounds returns the world box of the selected node's subtree. It is
// empty when nothing is selected.
func (v *Viewer) SelectedBounds() math.Box3 {
	if v.model == nil || v.UI.Selected == scene.NoNode {
		return math.EmptyBox3()
	}
	return v.model.Graph.WorldBounds(v.UI.Selected)
}
