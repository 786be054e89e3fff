package viewer

import (
	"fmt"

	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
)

// NoSelection marks that no animation or camera is active.
const NoSelection = -1

// DropPrompt is shown over the canvas while nothing is loaded.
const DropPrompt = "Drag and drop a .glb or .gltf file to load"

// Button is one clickable panel entry.
type Button struct {
	ID    int
	Label string
}

// UIState is everything the panels draw. The panels only read it; all
// changes go through Viewer methods.
type UIState struct {
	Animations []Button
	Cameras    []Button
	Tree       []TreeEntry

	ActiveAnimation int
	ActiveCamera    int

	// Selected is the node picked on the canvas, or scene.NoNode.
	Selected scene.NodeID

	OverlayVisible bool

	Fluid        bool
	CanvasWidth  int
	CanvasHeight int
}

func (u *UIState) clear() {
	u.Animations = nil
	u.Cameras = nil
	u.Tree = nil
	u.ActiveAnimation = NoSelection
	u.ActiveCamera = NoSelection
	u.Selected = scene.NoNode
	u.OverlayVisible = true
}

// CanvasLabel describes the canvas mode and size.
func (u *UIState) CanvasLabel() string {
	if u.Fluid {
		return fmt.Sprintf("Canvas: fluid %d×%d", u.CanvasWidth, u.CanvasHeight)
	}
	return fmt.Sprintf("Canvas: %d×%d (fixed)", u.CanvasWidth, u.CanvasHeight)
}

// AnimationLabel names clip i, falling back to a 1-based number.
func AnimationLabel(i int, name string) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("Animation %d", i+1)
}

// CameraLabel names camera i, falling back to a 1-based number.
func CameraLabel(i int, name string) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("Camera %d", i+1)
}
