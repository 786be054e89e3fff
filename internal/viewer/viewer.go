// Package viewer owns the state of one model viewer: the loaded model, its
// animation mixer, the viewport camera and the UI-state model the panels draw.
package viewer

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/assets"
	"github.com/Faultbox/gltf-viewer/internal/engine/animation"
	"github.com/Faultbox/gltf-viewer/internal/engine/camera"
	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/internal/logger"
)

var (
	// ErrInvalidAsset is returned by Load when the asset has no scene root.
	ErrInvalidAsset = errors.New("loaded model is not a valid scene root")
	// ErrNoSuchAnimation is returned for an out-of-range clip id.
	ErrNoSuchAnimation = errors.New("no such animation")
	// ErrNoSuchCamera is returned for an out-of-range camera id.
	ErrNoSuchCamera = errors.New("no such camera")
)

// Model is the live loaded asset: its graph and root.
type Model struct {
	Asset *assets.Asset
	Graph *scene.Graph
	Root  scene.NodeID
}

// Name returns the source file name of the model.
func (m *Model) Name() string {
	if m == nil || m.Asset == nil {
		return ""
	}
	return m.Asset.Name
}

// Options configure a Viewer.
type Options struct {
	FOV  float32
	Near float32
	Far  float32

	FixedWidth  int
	FixedHeight int
	Fluid       bool
}

// DefaultOptions returns the stock camera and canvas settings.
func DefaultOptions() Options {
	return Options{
		FOV:         75,
		Near:        0.1,
		Far:         1000,
		FixedWidth:  1024,
		FixedHeight: 600,
	}
}

// Viewer is the single owner of model, mixer, camera and UI state. All of
// its methods must be called from the main thread.
type Viewer struct {
	ID  string
	log *zap.Logger

	Camera   *camera.Perspective
	Controls *camera.OrbitControls
	UI       UIState

	renderGraph scene.RenderGraph
	model       *Model
	mixer       *animation.Mixer
	clips       []*animation.Clip
	cameras     []scene.NodeID

	fixedW, fixedH int
}

// New creates a cleared viewer showing the drop overlay.
func New(opts Options) *Viewer {
	if opts.FixedWidth <= 0 || opts.FixedHeight <= 0 {
		opts.FixedWidth, opts.FixedHeight = 1024, 600
	}
	id := uuid.NewString()
	cam := camera.NewPerspective(opts.FOV, float32(opts.FixedWidth)/float32(opts.FixedHeight), opts.Near, opts.Far)
	v := &Viewer{
		ID:       id,
		log:      logger.Named("viewer").With(zap.String("viewer_id", id)),
		Camera:   cam,
		Controls: camera.NewOrbitControls(cam),
		fixedW:   opts.FixedWidth,
		fixedH:   opts.FixedHeight,
	}
	v.UI.clear()
	v.UI.Fluid = opts.Fluid
	v.SetCanvasSize(opts.FixedWidth, opts.FixedHeight)
	return v
}

// Model returns the live model, or nil.
func (v *Viewer) Model() *Model {
	return v.model
}

// Mixer returns the live model's mixer, or nil.
func (v *Viewer) Mixer() *animation.Mixer {
	return v.mixer
}

// Clips returns the clips of the live model.
func (v *Viewer) Clips() []*animation.Clip {
	return v.clips
}

// Cameras returns the embedded camera nodes of the live model in pre-order.
func (v *Viewer) Cameras() []scene.NodeID {
	return v.cameras
}

// RenderGraph returns the graphs to draw.
func (v *Viewer) RenderGraph() *scene.RenderGraph {
	return &v.renderGraph
}

// SetCanvasSize records the drawable canvas size and updates the camera aspect.
func (v *Viewer) SetCanvasSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.UI.CanvasWidth, v.UI.CanvasHeight = width, height
	v.Camera.SetAspect(width, height)
	v.Controls.ViewportHeight = height
}

// Layout sizes the canvas for the space available to it: the fixed size, or
// all of it in fluid mode. It returns the resulting canvas size.
func (v *Viewer) Layout(availW, availH int) (int, int) {
	w, h := v.fixedW, v.fixedH
	if v.UI.Fluid {
		w, h = availW, availH
	}
	v.SetCanvasSize(w, h)
	return v.UI.CanvasWidth, v.UI.CanvasHeight
}

// ToggleCanvasMode switches between the fixed and fluid canvas.
func (v *Viewer) ToggleCanvasMode() {
	v.UI.Fluid = !v.UI.Fluid
	v.log.Debug("canvas mode changed", zap.Bool("fluid", v.UI.Fluid))
}

// Tick advances animation by dt seconds, applies orbit input and refreshes
// world matrices.
func (v *Viewer) Tick(dt float32) {
	if v.mixer != nil {
		v.mixer.Update(dt)
	}
	if v.model != nil {
		v.model.Graph.UpdateWorld()
	}
	v.Controls.Update()
}
