package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/assets"
	"github.com/Faultbox/gltf-viewer/internal/config"
	"github.com/Faultbox/gltf-viewer/internal/engine/debug"
	"github.com/Faultbox/gltf-viewer/internal/engine/framebuffer"
	"github.com/Faultbox/gltf-viewer/internal/engine/input"
	"github.com/Faultbox/gltf-viewer/internal/engine/lighting"
	"github.com/Faultbox/gltf-viewer/internal/engine/renderer"
	"github.com/Faultbox/gltf-viewer/internal/engine/ui2d"
	"github.com/Faultbox/gltf-viewer/internal/engine/window"
	"github.com/Faultbox/gltf-viewer/internal/logger"
	"github.com/Faultbox/gltf-viewer/internal/viewer"
)

const appTitle = "glTF Viewer"

var (
	boundsColor   = [3]float32{1, 0.8, 0.2}
	selectedColor = [3]float32{0.2, 0.6, 0.9}
)

// clickSlop is how far, in window units, the mouse may move between press
// and release for the release to count as a pick.
const clickSlop = 4

// App owns the window, the GL resources and the viewer.
type App struct {
	cfg *config.Config
	log *zap.Logger

	running bool

	window   *window.Window
	renderer *renderer.Renderer
	ui       *ui2d.Context
	input    *input.Input
	canvasFB *framebuffer.Framebuffer

	viewer *viewer.Viewer
	loader *viewer.Loader
	assets *assets.Manager
	light  lighting.Hemisphere

	screenshots     *debug.ScreenshotCapture
	captureNext     bool
	showBounds      bool
	message         string
	messageDeadline time.Time

	// Base name of the newest requested file.
	loading string

	layout frameLayout
	canvas ui2d.Rect

	dragLeft  bool
	dragRight bool
	pressX    float32
	pressY    float32

	// Paths picked in the native open dialog, applied on the main thread.
	picked chan string

	fps fpsCounter
}

// NewApp creates the window, the renderers and an empty viewer.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:        cfg,
		log:        logger.Named("app"),
		input:      input.New(),
		assets:     assets.NewManager(),
		light:      lighting.DefaultHemisphere(),
		showBounds: cfg.Viewer.ShowBounds,
		picked:     make(chan string, 1),
		screenshots: debug.NewScreenshotCapture(
			cfg.Screenshot.Dir, cfg.Screenshot.Prefix),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:   appTitle,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		VSync:   cfg.Window.VSync,
		HighDPI: cfg.Window.HighDPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// GL functions load only after the context exists.
	if err := gl.Init(); err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	if a.renderer, err = renderer.New(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	winW, winH := a.window.GetSize()
	if a.ui, err = ui2d.NewContext(winW, winH); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create UI: %w", err)
	}

	if a.canvasFB, err = framebuffer.New(int32(cfg.Viewer.FixedWidth), int32(cfg.Viewer.FixedHeight)); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}

	a.viewer = viewer.New(viewer.Options{
		FOV:         cfg.Viewer.FOV,
		Near:        cfg.Viewer.Near,
		Far:         cfg.Viewer.Far,
		FixedWidth:  cfg.Viewer.FixedWidth,
		FixedHeight: cfg.Viewer.FixedHeight,
		Fluid:       cfg.Viewer.StartFluid,
	})
	controls := a.viewer.Controls
	controls.RotateSpeed = cfg.Controls.RotateSpeed
	controls.ZoomSpeed = cfg.Controls.ZoomSpeed
	controls.PanSpeed = cfg.Controls.PanSpeed
	controls.Damping = cfg.Controls.Damping

	a.loader = viewer.NewLoader(a.assets.Load)

	a.log.Info("viewer ready", zap.String("viewer_id", a.viewer.ID))
	return a, nil
}

// Run runs the main loop until the window is closed.
func (a *App) Run() {
	a.running = true
	lastTime := time.Now()

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.applyPicked()
		a.pollLoader()

		a.updateLayout()
		a.viewer.Tick(float32(dt))

		a.render()
		a.window.SwapBuffers()

		if a.fps.tick(dt) {
			a.log.Debug("fps", zap.Int("fps", a.fps.value), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
		}
	}
}

// Close releases everything in reverse creation order.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.loader != nil {
		a.loader.Close()
	}
	if a.viewer != nil {
		a.viewer.Clear()
	}
	if a.assets != nil {
		a.assets.Close()
	}
	if a.canvasFB != nil {
		a.canvasFB.Destroy()
	}
	if a.ui != nil {
		a.ui.Close()
	}
	if a.renderer != nil {
		a.renderer.Destroy()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvents() {
	in := a.ui.Input()
	for _, ev := range a.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			a.ui.Resize(ev.Width, ev.Height)

		case input.EventKeyDown:
			if ev.Repeat {
				continue
			}
			switch ev.Key {
			case sdl.SCANCODE_F2:
				a.showBounds = !a.showBounds
			case sdl.SCANCODE_F12:
				a.captureNext = true
			}

		case input.EventMouseMove:
			in.MouseX, in.MouseY = float32(ev.MouseX), float32(ev.MouseY)
			if a.dragLeft {
				a.viewer.Controls.HandleDrag(float32(ev.DeltaX), float32(ev.DeltaY))
			}
			if a.dragRight {
				a.viewer.Controls.HandlePan(float32(ev.DeltaX), float32(ev.DeltaY))
			}

		case input.EventMouseDown:
			in.MouseX, in.MouseY = float32(ev.MouseX), float32(ev.MouseY)
			onCanvas := a.pointerOnCanvas()
			switch ev.Button {
			case sdl.BUTTON_LEFT:
				in.MouseLeftDown = true
				a.dragLeft = onCanvas
				a.pressX, a.pressY = in.MouseX, in.MouseY
			case sdl.BUTTON_RIGHT:
				in.MouseRightDown = true
				a.dragRight = onCanvas
			}

		case input.EventMouseUp:
			switch ev.Button {
			case sdl.BUTTON_LEFT:
				in.MouseLeftDown = false
				in.MouseLeftClicked = true
				if a.dragLeft && a.isClick(float32(ev.MouseX), float32(ev.MouseY)) {
					a.viewer.Pick(float32(ev.MouseX)-a.canvas.X, float32(ev.MouseY)-a.canvas.Y)
				}
				a.dragLeft = false
			case sdl.BUTTON_RIGHT:
				in.MouseRightDown = false
				in.MouseRightClicked = true
				a.dragRight = false
			}

		case input.EventMouseWheel:
			in.ScrollY += ev.Wheel
			if a.pointerOnCanvas() {
				a.viewer.Controls.HandleZoom(ev.Wheel)
			}

		case input.EventDropFile:
			a.requestLoad(ev.Path)
		}
	}
}

// pointerOnCanvas reports whether the mouse is over the canvas and not over a panel.
func (a *App) pointerOnCanvas() bool {
	in := a.ui.Input()
	return a.canvas.Contains(in.MouseX, in.MouseY) && !a.ui.MouseOverUI()
}

func (a *App) isClick(x, y float32) bool {
	dx, dy := x-a.pressX, y-a.pressY
	return dx*dx+dy*dy <= clickSlop*clickSlop
}

// requestLoad routes a dropped, picked or startup path into the loader.
func (a *App) requestLoad(path string) {
	if err := a.loader.Request(path); err != nil {
		a.log.Warn("load rejected", zap.String("path", path), zap.Error(err))
		a.alert(assets.UserMessage(err))
		return
	}
	a.loading = filepath.Base(path)
}

func (a *App) pollLoader() {
	r, ok := a.loader.Poll()
	if !ok {
		return
	}
	if msg := a.viewer.Apply(r); msg != "" {
		a.alert(msg)
		return
	}
	if m := a.viewer.Model(); m != nil {
		a.window.SetTitle(fmt.Sprintf("%s - %s", appTitle, m.Name()))
	} else {
		a.window.SetTitle(appTitle)
	}
}

// alert shows a blocking native message box.
func (a *App) alert(msg string) {
	dialog.Message("%s", msg).Title(appTitle).Error()
}

// openDialog asks for a model file without blocking the frame loop.
func (a *App) openDialog() {
	go func() {
		path, err := dialog.File().
			Filter("glTF models", "glb", "gltf").
			Title("Open model").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				a.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case a.picked <- path:
		default:
		}
	}()
}

func (a *App) applyPicked() {
	select {
	case path := <-a.picked:
		a.requestLoad(path)
	default:
	}
}

// updateLayout sizes the canvas for this frame and keeps the framebuffer in step.
func (a *App) updateLayout() {
	winW, winH := a.window.GetSize()
	a.layout = computeLayout(winW, winH, a.cfg.Viewer.SidebarWidth)
	cw, ch := a.viewer.Layout(int(a.layout.area.W), int(a.layout.area.H))
	a.canvas = placeCanvas(a.layout.area, cw, ch)

	scale := a.pixelScale()
	a.canvasFB.Resize(int32(float32(cw)*scale), int32(float32(ch)*scale))
}

// pixelScale is drawable pixels per window unit, above 1 on high-DPI displays.
func (a *App) pixelScale() float32 {
	winW, _ := a.window.GetSize()
	drawW, _ := a.window.DrawableSize()
	if winW <= 0 || drawW <= 0 {
		return 1
	}
	return float32(drawW) / float32(winW)
}

func (a *App) render() {
	restore := a.canvasFB.BindWithViewport()
	a.canvasFB.Clear(a.cfg.Viewer.Background)
	a.renderer.Draw(a.viewer.RenderGraph(), a.viewer.Camera, a.light)
	if a.showBounds {
		if m := a.viewer.Model(); m != nil {
			box := m.Graph.WorldBounds(m.Root)
			a.renderer.DrawLines(debug.BoxLines(box, debug.DefaultBoxPadding), boundsColor, a.viewer.Camera)
		}
	}
	if box := a.viewer.SelectedBounds(); !box.IsEmpty() {
		a.renderer.DrawLines(debug.BoxLines(box, 2*debug.DefaultBoxPadding), selectedColor, a.viewer.Camera)
	}
	restore()

	if a.captureNext {
		a.captureNext = false
		a.capture()
	}

	drawW, drawH := a.window.DrawableSize()
	gl.Viewport(0, 0, int32(drawW), int32(drawH))
	gl.ClearColor(0.1, 0.1, 0.12, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	a.ui.Renderer().DrawSceneTexture(a.canvas.X, a.canvas.Y, a.canvas.W, a.canvas.H, a.canvasFB.ColorTexture())

	a.ui.Begin()
	a.drawPanels()
	a.ui.End()
}

func (a *App) capture() {
	path, err := a.screenshots.Capture(a.canvasFB.Image())
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		a.flash("Screenshot failed")
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
	a.flash("Saved " + filepath.Base(path))
}

// flash shows msg on the status line for a few seconds.
func (a *App) flash(msg string) {
	a.message = msg
	a.messageDeadline = time.Now().Add(3 * time.Second)
}

func (a *App) status() status {
	s := status{FPS: a.fps.value}
	if m := a.viewer.Model(); m != nil {
		s.File = m.Name()
		s.Nodes = m.Graph.Len()
		s.Clips = len(a.viewer.Clips())
		s.Cameras = len(a.viewer.Cameras())
	}
	if a.loader.Pending() {
		s.Loading = a.loading
	}
	if a.message != "" && time.Now().Before(a.messageDeadline) {
		s.Message = a.message
	}
	return s
}
