package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/assets"
	"github.com/Faultbox/gltf-viewer/internal/engine/animation"
	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
)

// Clear releases the live model and resets the UI to the drop prompt.
// It is safe to call with nothing loaded.
func (v *Viewer) Clear() {
	if v.model != nil {
		v.renderGraph.Detach(v.model.Graph)
		v.model.Graph.Dispose()
		v.log.Debug("model cleared", zap.String("file", v.model.Name()))
		v.model = nil
	}
	if v.mixer != nil {
		v.mixer.StopAllAction()
		v.mixer = nil
	}
	v.clips = nil
	v.cameras = nil
	v.UI.clear()
}

// Load replaces the live model with asset. An asset without a scene root
// leaves the viewer cleared and returns ErrInvalidAsset.
func (v *Viewer) Load(asset *assets.Asset) error {
	v.Clear()

	if asset.Root() == scene.NoNode {
		v.log.Error("Loaded model is not a valid scene root")
		asset.Dispose()
		return ErrInvalidAsset
	}

	g := asset.Graph
	stripLights(g)
	g.UpdateWorld()
	g.Each(func(n *scene.Node) { n.Snapshot() })

	v.model = &Model{Asset: asset, Graph: g, Root: g.Root}
	v.mixer = animation.NewMixer(g)
	v.clips = asset.Clips
	v.renderGraph.Attach(g)
	v.UI.OverlayVisible = false

	v.cameras = v.cameras[:0]
	g.Each(func(n *scene.Node) {
		if n.Kind.IsCamera() {
			v.cameras = append(v.cameras, n.ID)
		}
	})

	if len(v.cameras) > 0 {
		if err := v.SelectCamera(0); err != nil {
			return err
		}
	} else {
		v.FitCamera()
	}
	v.populateUI()

	v.log.Info("model loaded",
		zap.String("file", asset.Name),
		zap.String("asset_id", asset.ID),
		zap.Int("nodes", g.Len()),
		zap.Int("clips", len(v.clips)),
		zap.Int("cameras", len(v.cameras)))
	return nil
}

// stripLights detaches every light node together with its subtree.
func stripLights(g *scene.Graph) {
	var lights []scene.NodeID
	g.Walk(g.Root, func(n *scene.Node, _ int) bool {
		if n.Kind == scene.KindLight && n.ID != g.Root {
			lights = append(lights, n.ID)
			return false
		}
		return true
	})
	for _, id := range lights {
		g.Remove(id)
	}
}

func (v *Viewer) populateUI() {
	for i, clip := range v.clips {
		v.UI.Animations = append(v.UI.Animations, Button{ID: i, Label: AnimationLabel(i, clip.Name)})
	}
	for i, id := range v.cameras {
		v.UI.Cameras = append(v.UI.Cameras, Button{ID: i, Label: CameraLabel(i, v.model.Graph.Node(id).Name)})
	}
	v.UI.Tree = v.StructureTree()
}
