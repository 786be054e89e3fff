package main

import (
	"fmt"
	"strings"

	"github.com/Faultbox/gltf-viewer/internal/engine/ui2d"
)

const statusBarH = 22

// frameLayout splits the window into the sidebar, the canvas area and the
// status bar. All values are window coordinates.
type frameLayout struct {
	sidebar ui2d.Rect
	area    ui2d.Rect
	status  ui2d.Rect
}

func computeLayout(winW, winH, sidebarW int) frameLayout {
	w, h := float32(winW), float32(winH)
	sw := min(float32(sidebarW), w)
	body := max(h-statusBarH, 0)
	return frameLayout{
		sidebar: ui2d.Rect{X: 0, Y: 0, W: sw, H: body},
		area:    ui2d.Rect{X: sw, Y: 0, W: max(w-sw, 0), H: body},
		status:  ui2d.Rect{X: 0, Y: body, W: w, H: h - body},
	}
}

// placeCanvas centers a w x h canvas in area. A canvas larger than the area
// is pinned to the area's top left corner and overflows to the right and bottom.
func placeCanvas(area ui2d.Rect, w, h int) ui2d.Rect {
	cw, ch := float32(w), float32(h)
	return ui2d.Rect{
		X: area.X + max((area.W-cw)/2, 0),
		Y: area.Y + max((area.H-ch)/2, 0),
		W: cw,
		H: ch,
	}
}

// status is the text of the bottom status line.
type status struct {
	File    string
	Nodes   int
	Clips   int
	Cameras int
	FPS     int
	Loading string
	Message string
}

func (s status) String() string {
	var parts []string
	if s.Loading != "" {
		parts = append(parts, fmt.Sprintf("Loading %s...", s.Loading))
	}
	if s.File == "" {
		parts = append(parts, "No model")
	} else {
		parts = append(parts, s.File,
			fmt.Sprintf("%d nodes, %d clips, %d cameras", s.Nodes, s.Clips, s.Cameras))
	}
	parts = append(parts, fmt.Sprintf("%d FPS", s.FPS))
	if s.Message != "" {
		parts = append(parts, s.Message)
	}
	return strings.Join(parts, " | ")
}

// fpsCounter averages frames over one second windows.
type fpsCounter struct {
	frames  int
	elapsed float64
	value   int
}

// tick records one frame of dt seconds and reports whether a new value is ready.
func (f *fpsCounter) tick(dt float64) bool {
	f.frames++
	f.elapsed += dt
	if f.elapsed < 1 {
		return false
	}
	f.value = int(float64(f.frames)/f.elapsed + 0.5)
	f.frames = 0
	f.elapsed = 0
	return true
}
