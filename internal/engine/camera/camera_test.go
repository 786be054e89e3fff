package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/gltf-viewer/pkg/math"
)

func approx(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) < float64(eps)
}

func TestNewPerspectiveLooksAtOrigin(t *testing.T) {
	c := NewPerspective(75, 1024.0/600.0, 0.1, 1000)

	if c.Position != (math.Vec3{X: 0, Y: 1.5, Z: 3}) {
		t.Errorf("expected position (0,1.5,3), got %v", c.Position)
	}
	expected := math.Vec3{}.Sub(c.Position).Normalize()
	got := c.Forward()
	if got.Distance(expected) > 1e-4 {
		t.Errorf("expected forward %v, got %v", expected, got)
	}
}

func TestSetAspect(t *testing.T) {
	c := NewPerspective(75, 1, 0.1, 1000)

	c.SetAspect(1024, 600)
	if !approx(c.Aspect, 1024.0/600.0, 1e-6) {
		t.Errorf("expected aspect %v, got %v", 1024.0/600.0, c.Aspect)
	}

	c.SetAspect(0, 600)
	if !approx(c.Aspect, 1024.0/600.0, 1e-6) {
		t.Errorf("expected degenerate size to be ignored, got %v", c.Aspect)
	}
}

func TestFitDistance(t *testing.T) {
	tests := []struct {
		maxDim, fov float32
		expected    float32
	}{
		{2, 90, 1.5},
		{4, 60, 4 / (2 * float32(gomath.Tan(gomath.Pi/6))) * 1.5},
		{0, 75, 0},
	}
	for _, tt := range tests {
		got := FitDistance(tt.maxDim, tt.fov, 1.5)
		if !approx(got, tt.expected, 1e-4) {
			t.Errorf("maxDim=%v fov=%v: expected %v, got %v", tt.maxDim, tt.fov, tt.expected, got)
		}
	}
}

func TestViewMatrixInvertsWorld(t *testing.T) {
	c := NewPerspective(75, 1, 0.1, 1000)
	c.Position = math.Vec3{X: 3, Y: 2, Z: 5}
	c.LookAt(math.Vec3{X: 1})

	p := c.ViewMatrix().TransformVec3(c.Position)
	if p.Length() > 1e-4 {
		t.Errorf("expected camera position at view-space origin, got %v", p)
	}
}

func TestOrbitKeepsDistance(t *testing.T) {
	c := NewPerspective(75, 1, 0.1, 1000)
	o := NewOrbitControls(c)
	before := c.Position.Distance(o.Target)

	o.HandleDrag(120, 40)
	if !o.Update() {
		t.Error("expected camera to move after drag")
	}

	after := c.Position.Distance(o.Target)
	if !approx(before, after, 1e-4) {
		t.Errorf("expected orbit distance %v, got %v", before, after)
	}
	forward := c.Forward()
	toTarget := o.Target.Sub(c.Position).Normalize()
	if forward.Distance(toTarget) > 1e-3 {
		t.Errorf("expected camera to face target, forward %v vs %v", forward, toTarget)
	}
}

func TestOrbitZoom(t *testing.T) {
	c := NewPerspective(75, 1, 0.1, 1000)
	o := NewOrbitControls(c)
	before := c.Position.Distance(o.Target)

	o.HandleZoom(1)
	o.Update()
	if after := c.Position.Distance(o.Target); after >= before {
		t.Errorf("expected zoom in to shorten distance, %v -> %v", before, after)
	}
}

func TestOrbitPanMovesTarget(t *testing.T) {
	c := NewPerspective(75, 1, 0.1, 1000)
	o := NewOrbitControls(c)

	o.HandlePan(50, 0)
	o.Update()
	if o.Target == (math.Vec3{}) {
		t.Error("expected pan to move the target")
	}
}

func TestSetTargetDropsPendingInput(t *testing.T) {
	c := NewPerspective(75, 1, 0.1, 1000)
	o := NewOrbitControls(c)
	o.HandleDrag(300, 0)

	o.SetTarget(math.Vec3{Y: 1.5})
	pos := c.Position
	o.Update()
	if c.Position.Distance(pos) > 1e-4 {
		t.Errorf("expected no motion after SetTarget, moved %v -> %v", pos, c.Position)
	}
}
