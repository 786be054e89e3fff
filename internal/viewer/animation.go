package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
)

// PlayAnimation stops whatever is playing and starts clip i from its beginning.
func (v *Viewer) PlayAnimation(i int) error {
	if v.mixer == nil || i < 0 || i >= len(v.clips) {
		return ErrNoSuchAnimation
	}
	v.mixer.StopAllAction()
	clip := v.clips[i]
	v.mixer.ClipAction(clip).Reset().Play()
	v.UI.ActiveAnimation = i
	v.log.Debug("animation started", zap.Int("clip", i), zap.String("name", clip.Name))
	return nil
}

// Reset stops playback, restores mesh and bone nodes to their load-time
// pose and re-frames the model.
func (v *Viewer) Reset() {
	if v.model == nil {
		return
	}
	if v.mixer != nil {
		v.mixer.StopAllAction()
	}
	v.UI.ActiveAnimation = NoSelection
	// Reset always auto-fits, so no embedded camera view is showing afterwards.
	v.UI.ActiveCamera = NoSelection

	restored := 0
	g := v.model.Graph
	g.Each(func(n *scene.Node) {
		if n.Kind.IsMesh() || n.Kind == scene.KindBone {
			if n.RestoreSnapshot() {
				restored++
			}
		}
	})
	g.UpdateWorld()
	v.FitCamera()
	v.log.Debug("pose reset", zap.Int("restored", restored))
}
