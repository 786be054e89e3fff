package viewer

import (
	"testing"

	"github.com/Faultbox/gltf-viewer/internal/assets"
	"github.com/Faultbox/gltf-viewer/internal/engine/animation"
	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// box returns a mesh spanning min..max in local space.
func box(min, max math.Vec3) *scene.Mesh {
	geo := &scene.Geometry{Positions: [][3]float32{min.Array(), max.Array()}}
	geo.ComputeBounds()
	return &scene.Mesh{Geometry: geo, Materials: []*scene.Material{scene.DefaultMaterial()}}
}

// rigAsset builds Root -> Body (mesh) -> Arm (bone), plus a light under the
// root and two clips: "Wave" moves Arm, "Spin" rotates Body.
func rigAsset(t *testing.T, name string, offset math.Vec3) *assets.Asset {
	t.Helper()
	g := scene.NewGraph()
	root := g.Add(scene.Node{Name: "Root_Scene"}, scene.NoNode)
	body := g.Add(scene.Node{
		Name:     "Body",
		Kind:     scene.KindMesh,
		Position: offset,
		Mesh:     box(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1}),
	}, root)
	g.Add(scene.Node{Name: "Arm", Kind: scene.KindBone, Position: math.Vec3{X: 1}}, body)
	lamp := g.Add(scene.Node{Name: "Lamp", Kind: scene.KindLight}, root)
	g.Add(scene.Node{Name: "LampChild"}, lamp)

	wave, err := animation.NewTrack("Arm", animation.PropertyPosition,
		[]float32{0, 1}, []float32{1, 0, 0, 1, 3, 0}, animation.InterpolationLinear)
	if err != nil {
		t.Fatalf("failed to build track: %v", err)
	}
	spin, err := animation.NewTrack("Body", animation.PropertyQuaternion,
		[]float32{0, 1}, []float32{0, 0, 0, 1, 0, 0.7071068, 0, 0.7071068}, animation.InterpolationLinear)
	if err != nil {
		t.Fatalf("failed to build track: %v", err)
	}
	return &assets.Asset{
		ID:    name + "-id",
		Name:  name,
		Graph: g,
		Clips: []*animation.Clip{
			animation.NewClip("Wave", []*animation.Track{wave}),
			animation.NewClip("", []*animation.Track{spin}),
		},
	}
}

// cameraAsset builds a scene with a mesh and two embedded cameras.
func cameraAsset(t *testing.T) *assets.Asset {
	t.Helper()
	g := scene.NewGraph()
	root := g.Add(scene.Node{Name: "Root_Scene"}, scene.NoNode)
	g.Add(scene.Node{Name: "Body", Kind: scene.KindMesh, Mesh: box(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})}, root)
	target := math.Vec3{X: 0, Y: 1, Z: 0}
	g.Add(scene.Node{
		Name:     "Front",
		Kind:     scene.KindPerspectiveCamera,
		Position: math.Vec3{Z: 10},
		Camera:   &scene.CameraParams{FOV: 40, Aspect: 3, Near: 0.5, Far: 200},
	}, root)
	g.Add(scene.Node{
		Kind:     scene.KindPerspectiveCamera,
		Position: math.Vec3{X: 5, Y: 2},
		Camera:   &scene.CameraParams{FOV: 60, Aspect: 1, Near: 0.1, Far: 50, Target: &target},
	}, root)
	return &assets.Asset{ID: "cams-id", Name: "cams.glb", Graph: g}
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}
