package viewer

import (
	"context"
	"errors"
	gomath "math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/gltf-viewer/internal/assets"
	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/internal/logger"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

func TestNewViewerShowsDropPrompt(t *testing.T) {
	v := New(DefaultOptions())

	if !v.UI.OverlayVisible {
		t.Error("expected overlay visible before any load")
	}
	if v.Model() != nil {
		t.Error("expected no model")
	}
	if v.UI.ActiveAnimation != NoSelection || v.UI.ActiveCamera != NoSelection {
		t.Errorf("expected no active selection, got %d/%d", v.UI.ActiveAnimation, v.UI.ActiveCamera)
	}
	if v.Camera.FOV != 75 || v.Camera.Near != 0.1 || v.Camera.Far != 1000 {
		t.Errorf("unexpected camera defaults: %+v", v.Camera)
	}
	if !near(v.Camera.Aspect, 1024.0/600.0) {
		t.Errorf("expected aspect of the fixed canvas, got %v", v.Camera.Aspect)
	}
}

func TestLoadSingleModel(t *testing.T) {
	v := New(DefaultOptions())
	asset := rigAsset(t, "a.glb", math.Vec3{})

	if err := v.Load(asset); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if v.UI.OverlayVisible {
		t.Error("expected overlay hidden after load")
	}
	graphs := v.RenderGraph().Graphs()
	if len(graphs) != 1 || graphs[0] != asset.Graph {
		t.Fatalf("expected exactly the loaded graph attached, got %d graphs", len(graphs))
	}
	if v.Model().Root != asset.Graph.Root {
		t.Errorf("expected model root %d, got %d", asset.Graph.Root, v.Model().Root)
	}
	if v.Mixer() == nil {
		t.Error("expected a mixer for the live model")
	}
	if got := v.Model().Name(); got != "a.glb" {
		t.Errorf("expected model name a.glb, got %s", got)
	}
}

func TestLoadStripsLights(t *testing.T) {
	v := New(DefaultOptions())
	asset := rigAsset(t, "a.glb", math.Vec3{})
	if err := v.Load(asset); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	g := v.Model().Graph
	for _, name := range []string{"Lamp", "LampChild"} {
		if g.FindByName(name) != scene.NoNode {
			t.Errorf("expected %s removed from the graph", name)
		}
	}
	// Root, Body, Arm.
	if g.Len() != 3 {
		t.Errorf("expected 3 nodes after stripping lights, got %d", g.Len())
	}
}

func TestLoadSnapshotsEveryNode(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.Load(rigAsset(t, "a.glb", math.Vec3{Y: 2})); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	v.Model().Graph.Each(func(n *scene.Node) {
		if !n.HasSnapshot {
			t.Errorf("expected snapshot on %s", n.Label())
		}
		if n.OriginalMatrix != n.Matrix {
			t.Errorf("expected snapshot of %s to equal its load-time matrix", n.Label())
		}
	})
}

func TestLoadReplacesPreviousModel(t *testing.T) {
	v := New(DefaultOptions())
	a := rigAsset(t, "a.glb", math.Vec3{})
	b := rigAsset(t, "b.glb", math.Vec3{X: 4})

	if err := v.Load(a); err != nil {
		t.Fatalf("load A failed: %v", err)
	}
	if err := v.PlayAnimation(0); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	var aGeometry []*scene.Geometry
	a.Graph.Each(func(n *scene.Node) {
		if n.Mesh != nil {
			aGeometry = append(aGeometry, n.Mesh.Geometry)
		}
	})

	if err := v.Load(b); err != nil {
		t.Fatalf("load B failed: %v", err)
	}

	graphs := v.RenderGraph().Graphs()
	if len(graphs) != 1 || graphs[0] != b.Graph {
		t.Fatalf("expected only B attached, got %d graphs", len(graphs))
	}
	if got, want := v.RenderGraph().NodeCount(), b.Graph.Len(); got != want {
		t.Errorf("expected %d render nodes, got %d", want, got)
	}
	for _, geo := range aGeometry {
		if !geo.Disposed() {
			t.Error("expected A geometry disposed")
		}
	}
	if v.UI.ActiveAnimation != NoSelection {
		t.Errorf("expected no active animation after reload, got %d", v.UI.ActiveAnimation)
	}
	if len(v.Mixer().ActiveActions()) != 0 {
		t.Error("expected fresh mixer with nothing playing")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	v := New(DefaultOptions())
	v.Clear()
	if err := v.Load(rigAsset(t, "a.glb", math.Vec3{})); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	v.Clear()
	v.Clear()

	if v.Model() != nil || v.Mixer() != nil {
		t.Error("expected model and mixer released")
	}
	if len(v.RenderGraph().Graphs()) != 0 {
		t.Error("expected empty render graph")
	}
	if !v.UI.OverlayVisible {
		t.Error("expected overlay visible after clear")
	}
	if len(v.UI.Animations) != 0 || len(v.UI.Cameras) != 0 || len(v.UI.Tree) != 0 {
		t.Error("expected empty panels after clear")
	}
}

func TestLoadInvalidAsset(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger.Set(zap.New(core))
	defer logger.Set(zap.NewNop())

	v := New(DefaultOptions())
	if err := v.Load(rigAsset(t, "a.glb", math.Vec3{})); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	empty := &assets.Asset{Name: "empty.gltf", Graph: scene.NewGraph()}
	err := v.Load(empty)
	if !errors.Is(err, ErrInvalidAsset) {
		t.Fatalf("expected ErrInvalidAsset, got %v", err)
	}
	if v.Model() != nil {
		t.Error("expected viewer cleared")
	}
	if !v.UI.OverlayVisible {
		t.Error("expected overlay shown")
	}
	if logs.FilterMessage("Loaded model is not a valid scene root").Len() != 1 {
		t.Errorf("expected one error log, got %v", logs.All())
	}
}

func TestPlayAnimationSingleActive(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.Load(rigAsset(t, "a.glb", math.Vec3{})); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := v.PlayAnimation(0); err != nil {
		t.Fatalf("play X failed: %v", err)
	}
	v.Tick(0.25)
	if err := v.PlayAnimation(1); err != nil {
		t.Fatalf("play Y failed: %v", err)
	}

	active := v.Mixer().ActiveActions()
	if len(active) != 1 || active[0].Clip() != v.Clips()[1] {
		t.Fatalf("expected only clip Y active, got %d actions", len(active))
	}
	if v.UI.ActiveAnimation != 1 {
		t.Errorf("expected active animation 1, got %d", v.UI.ActiveAnimation)
	}
	if err := v.PlayAnimation(5); !errors.Is(err, ErrNoSuchAnimation) {
		t.Errorf("expected ErrNoSuchAnimation, got %v", err)
	}
}

func TestPlayAnimationWithoutModel(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.PlayAnimation(0); !errors.Is(err, ErrNoSuchAnimation) {
		t.Errorf("expected ErrNoSuchAnimation, got %v", err)
	}
	// Must not panic.
	v.Reset()
	v.Tick(0.016)
}

func TestTickAnimatesNodes(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.Load(rigAsset(t, "a.glb", math.Vec3{})); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := v.PlayAnimation(0); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	v.Tick(0.5)

	arm := v.Model().Graph.Node(v.Model().Graph.FindByName("Arm"))
	if !near(arm.Position.Y, 1.5) {
		t.Errorf("expected arm y=1.5 at t=0.5, got %v", arm.Position.Y)
	}
	if !near(arm.World.Translation().Y, 1.5) {
		t.Errorf("expected world y=1.5, got %v", arm.World.Translation().Y)
	}
}

func TestAutoFitDistance(t *testing.T) {
	tests := []struct {
		name   string
		offset math.Vec3
		fov    float32
	}{
		{"origin", math.Vec3{}, 75},
		{"shifted", math.Vec3{X: 10, Y: -3, Z: 40}, 75},
		{"narrow", math.Vec3{X: -2, Y: 5}, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.FOV = tt.fov
			v := New(opts)
			if err := v.Load(rigAsset(t, "a.glb", tt.offset)); err != nil {
				t.Fatalf("load failed: %v", err)
			}

			// The body cube is 2 units on every side, centered on the offset.
			const maxDim = 2
			want := float32(1.5 * maxDim / (2 * gomath.Tan(float64(tt.fov)*gomath.Pi/360)))

			pos := v.Camera.Position
			if !near(pos.Z-tt.offset.Z, want) {
				t.Errorf("expected distance %v along the view axis, got %v", want, pos.Z-tt.offset.Z)
			}
			if !near(pos.X, tt.offset.X) {
				t.Errorf("expected camera x %v, got %v", tt.offset.X, pos.X)
			}
			if !near(pos.Y, tt.offset.Y+maxDim*0.2) {
				t.Errorf("expected camera raised by 0.2·maxDim, got y=%v", pos.Y)
			}
			if v.Controls.Target != tt.offset {
				t.Errorf("expected orbit target %v, got %v", tt.offset, v.Controls.Target)
			}
		})
	}
}

func TestResetRestoresSnapshots(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.Load(rigAsset(t, "a.glb", math.Vec3{X: 0.3, Y: 1.7, Z: -2.1})); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	g := v.Model().Graph
	body := g.Node(g.FindByName("Body"))
	arm := g.Node(g.FindByName("Arm"))
	wantBody, wantArm := body.Matrix, arm.Matrix

	if err := v.PlayAnimation(1); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	v.Tick(0.4)
	if body.Matrix == wantBody {
		t.Fatal("expected animation to move the body")
	}
	v.Controls.HandleZoom(1)
	v.Tick(0.1)

	v.Reset()

	if body.Matrix != wantBody {
		t.Errorf("expected body matrix restored exactly, got %v", body.Matrix)
	}
	if arm.Matrix != wantArm {
		t.Errorf("expected arm matrix restored exactly, got %v", arm.Matrix)
	}
	if _, rot, _ := body.Matrix.Decompose(); body.Rotation != rot {
		t.Errorf("expected rotation re-derived from the matrix, got %v", body.Rotation)
	}
	if v.UI.ActiveAnimation != NoSelection {
		t.Errorf("expected no active animation, got %d", v.UI.ActiveAnimation)
	}
	if len(v.Mixer().ActiveActions()) != 0 {
		t.Error("expected nothing playing after reset")
	}

	// Later ticks must not disturb the restored pose.
	v.Tick(0.5)
	if body.Matrix != wantBody {
		t.Error("expected restored pose to survive the next tick")
	}
}

func TestResetClearsActiveCamera(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.Load(cameraAsset(t)); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if v.UI.ActiveCamera != 0 {
		t.Fatalf("expected first camera active, got %d", v.UI.ActiveCamera)
	}

	v.Reset()

	if v.UI.ActiveCamera != NoSelection {
		t.Errorf("expected no active camera after reset, got %d", v.UI.ActiveCamera)
	}
	if v.Camera.Position == (math.Vec3{Z: 10}) {
		t.Error("expected reset to auto-fit away from the embedded camera")
	}

	if err := v.SelectCamera(0); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if v.UI.ActiveCamera != 0 {
		t.Errorf("expected camera 0 active again, got %d", v.UI.ActiveCamera)
	}
}

func TestEmbeddedCameraSelectedOnLoad(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.Load(cameraAsset(t)); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(v.Cameras()) != 2 {
		t.Fatalf("expected 2 cameras, got %d", len(v.Cameras()))
	}
	if v.UI.ActiveCamera != 0 {
		t.Errorf("expected first camera active, got %d", v.UI.ActiveCamera)
	}
	if v.UI.Cameras[0].Label != "Front" || v.UI.Cameras[1].Label != "Camera 2" {
		t.Errorf("unexpected camera labels: %+v", v.UI.Cameras)
	}

	cam := v.Camera
	if cam.Position != (math.Vec3{Z: 10}) {
		t.Errorf("expected camera at (0,0,10), got %v", cam.Position)
	}
	if cam.FOV != 40 || cam.Near != 0.5 || cam.Far != 200 {
		t.Errorf("expected fov/near/far 40/0.5/200, got %v/%v/%v", cam.FOV, cam.Near, cam.Far)
	}
	if !near(cam.Aspect, 1024.0/600.0) {
		t.Errorf("expected aspect from the canvas, got %v", cam.Aspect)
	}
	// No explicit target: one unit along -Z.
	if want := (math.Vec3{Z: 9}); !near(v.Controls.Target.Z, want.Z) || !near(v.Controls.Target.X, 0) {
		t.Errorf("expected target %v, got %v", want, v.Controls.Target)
	}
}

func TestSelectCameraExplicitTarget(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.Load(cameraAsset(t)); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := v.SelectCamera(1); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if v.Controls.Target != (math.Vec3{Y: 1}) {
		t.Errorf("expected explicit target (0,1,0), got %v", v.Controls.Target)
	}
	if v.Camera.FOV != 60 {
		t.Errorf("expected fov 60, got %v", v.Camera.FOV)
	}
	if err := v.SelectCamera(2); !errors.Is(err, ErrNoSuchCamera) {
		t.Errorf("expected ErrNoSuchCamera, got %v", err)
	}
}

func TestSelectCameraIdempotent(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.Load(cameraAsset(t)); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := v.SelectCamera(1); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	first := *v.Camera
	firstTarget := v.Controls.Target

	if err := v.SelectCamera(1); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if *v.Camera != first {
		t.Errorf("expected identical camera state, got %+v vs %+v", *v.Camera, first)
	}
	if v.Controls.Target != firstTarget {
		t.Errorf("expected identical target, got %v vs %v", v.Controls.Target, firstTarget)
	}
}

func TestCanvasLayout(t *testing.T) {
	v := New(DefaultOptions())

	w, h := v.Layout(1600, 900)
	if w != 1024 || h != 600 {
		t.Errorf("expected fixed 1024x600, got %dx%d", w, h)
	}
	if got := v.UI.CanvasLabel(); got != "Canvas: 1024×600 (fixed)" {
		t.Errorf("unexpected label %q", got)
	}

	v.ToggleCanvasMode()
	w, h = v.Layout(1600, 900)
	if w != 1600 || h != 900 {
		t.Errorf("expected fluid 1600x900, got %dx%d", w, h)
	}
	if got := v.UI.CanvasLabel(); got != "Canvas: fluid 1600×900" {
		t.Errorf("unexpected label %q", got)
	}
	if !near(v.Camera.Aspect, 1600.0/900.0) {
		t.Errorf("expected aspect to follow the canvas, got %v", v.Camera.Aspect)
	}
	if v.Controls.ViewportHeight != 900 {
		t.Errorf("expected controls viewport height 900, got %d", v.Controls.ViewportHeight)
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		got, expected string
	}{
		{AnimationLabel(0, "Walk"), "Walk"},
		{AnimationLabel(2, ""), "Animation 3"},
		{CameraLabel(0, ""), "Camera 1"},
		{CameraLabel(1, "Top"), "Top"},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, tt.got)
		}
	}
}

func TestApplyResult(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.Load(rigAsset(t, "a.glb", math.Vec3{})); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	live := v.Model()

	tests := []struct {
		name     string
		result   Result
		expected string
	}{
		{"cancelled", Result{Err: context.Canceled}, ""},
		{"parse failure", Result{Err: &assets.ParseError{Kind: assets.KindBinary, Msg: "bad magic"}}, "Failed to load GLB: bad magic"},
		{"unsupported", Result{Err: assets.ErrUnsupportedExtension}, assets.UnsupportedMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Apply(tt.result); got != tt.expected {
				t.Errorf("expected alert %q, got %q", tt.expected, got)
			}
			if v.Model() != live {
				t.Error("expected failed load to leave the model untouched")
			}
		})
	}

	if got := v.Apply(Result{Asset: rigAsset(t, "b.glb", math.Vec3{})}); got != "" {
		t.Errorf("expected no alert, got %q", got)
	}
	if v.Model().Name() != "b.glb" {
		t.Errorf("expected b.glb live, got %s", v.Model().Name())
	}
}
