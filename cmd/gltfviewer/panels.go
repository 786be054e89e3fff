package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/engine/ui2d"
	"github.com/Faultbox/gltf-viewer/internal/viewer"
)

const animatedTooltip = "Has animation"

// drawPanels draws the sidebar, the drop overlay and the status line from
// the viewer's UI state. Clicks call back into the viewer.
func (a *App) drawPanels() {
	ui := a.ui
	v := a.viewer
	sb := a.layout.sidebar

	ui.BeginWindow("sidebar", sb.X, sb.Y, sb.W, sb.H, appTitle)

	ui.Row(26)
	if ui.Button("open", 0, "Open...") {
		a.openDialog()
	}
	ui.Row(26)
	if ui.Button("reset", 0, "Reset") {
		v.Reset()
	}
	ui.Row(26)
	if ui.Button("canvas", 0, v.UI.CanvasLabel()) {
		v.ToggleCanvasMode()
	}
	ui.Row(18)
	a.showBounds = ui.Checkbox("bounds", "Bounding box (F2)", a.showBounds)

	ui.Separator()
	ui.Heading("Animations")
	if len(v.UI.Animations) == 0 {
		ui.Row(16)
		ui.LabelColored("none", ui2d.ColorTextDim)
	}
	for _, b := range v.UI.Animations {
		ui.Row(24)
		if ui.ButtonActive(fmt.Sprintf("anim%d", b.ID), 0, b.Label, b.ID == v.UI.ActiveAnimation) {
			if err := v.PlayAnimation(b.ID); err != nil {
				a.log.Warn("play animation failed", zap.Int("clip", b.ID), zap.Error(err))
			}
		}
	}

	ui.Heading("Cameras")
	if len(v.UI.Cameras) == 0 {
		ui.Row(16)
		ui.LabelColored("none", ui2d.ColorTextDim)
	}
	for _, b := range v.UI.Cameras {
		ui.Row(24)
		if ui.ButtonActive(fmt.Sprintf("cam%d", b.ID), 0, b.Label, b.ID == v.UI.ActiveCamera) {
			if err := v.SelectCamera(b.ID); err != nil {
				a.log.Warn("select camera failed", zap.Int("camera", b.ID), zap.Error(err))
			}
		}
	}

	ui.Heading("Structure")
	ui.BeginListBox("tree", 0, ui.Remaining())
	for _, e := range v.UI.Tree {
		color, tip := ui2d.ColorText, ""
		if e.Animated {
			color, tip = ui2d.ColorAnimated, animatedTooltip
		}
		if e.ID == v.UI.Selected {
			color = ui2d.ColorHighlight
		}
		ui.TreeItem(e.Label, e.Depth, color, tip)
	}
	ui.EndListBox()

	ui.EndWindow()

	if v.UI.OverlayVisible {
		ui.Overlay(a.canvas, viewer.DropPrompt)
	}

	st := a.layout.status
	ui.StatusText(st.X+8, st.Y+4, a.status().String(), ui2d.ColorTextDim)
}
