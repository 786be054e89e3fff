package viewer

import (
	"testing"

	"github.com/Faultbox/gltf-viewer/internal/assets"
	"github.com/Faultbox/gltf-viewer/internal/engine/animation"
	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

func armsAsset(tracks ...string) *assets.Asset {
	g := scene.NewGraph()
	root := g.Add(scene.Node{Name: "Root_Scene"}, scene.NoNode)
	g.Add(scene.Node{Name: "Arm_L", Kind: scene.KindBone}, root)
	g.Add(scene.Node{Name: "Arm", Kind: scene.KindBone}, root)
	g.Add(scene.Node{Kind: scene.KindObject3D}, root)
	g.Add(scene.Node{}, root)

	var clip []*animation.Track
	for _, name := range tracks {
		clip = append(clip, &animation.Track{Name: name})
	}
	return &assets.Asset{Name: "arms.glb", Graph: g, Clips: []*animation.Clip{animation.NewClip("c", clip)}}
}

func TestStructureTreeAnimatedFlag(t *testing.T) {
	tests := []struct {
		name     string
		tracks   []string
		animated map[string]bool
	}{
		{"exact prefix", []string{"Arm_L.position"}, map[string]bool{"Arm_L": true, "Arm": false}},
		{"longer name", []string{"Arm_Left.x"}, map[string]bool{"Arm_L": false, "Arm": false}},
		{"both", []string{"Arm.quaternion", "Arm_L.scale"}, map[string]bool{"Arm_L": true, "Arm": true}},
		{"none", nil, map[string]bool{"Arm_L": false, "Arm": false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(DefaultOptions())
			if err := v.Load(armsAsset(tt.tracks...)); err != nil {
				t.Fatalf("load failed: %v", err)
			}
			for _, e := range v.UI.Tree {
				want, ok := tt.animated[e.Label]
				if !ok {
					if e.Animated {
						t.Errorf("expected %s not animated", e.Label)
					}
					continue
				}
				if e.Animated != want {
					t.Errorf("%s: expected animated=%v, got %v", e.Label, want, e.Animated)
				}
			}
		})
	}
}

func TestStructureTreeOrderAndLabels(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.Load(rigAsset(t, "a.glb", math.Vec3{})); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	expected := []TreeEntry{
		{Label: "Root_Scene", Depth: 0},
		{Label: "Body", Depth: 1, Animated: true},
		{Label: "Arm", Depth: 2, Animated: true},
	}
	tree := v.UI.Tree
	if len(tree) != len(expected) {
		t.Fatalf("expected %d entries, got %d: %+v", len(expected), len(tree), tree)
	}
	for i, e := range expected {
		got := tree[i]
		if got.Label != e.Label || got.Depth != e.Depth || got.Animated != e.Animated {
			t.Errorf("entry %d: expected %+v, got %+v", i, e, got)
		}
	}
}

func TestStructureTreeUnnamedNodes(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.Load(armsAsset()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	tree := v.UI.Tree
	if len(tree) != 5 {
		t.Fatalf("expected 5 entries, got %d: %+v", len(tree), tree)
	}
	if tree[3].Label != "Object3D" {
		t.Errorf("expected type tag label Object3D, got %s", tree[3].Label)
	}
	if tree[4].Label != "Group" {
		t.Errorf("expected type tag label Group, got %s", tree[4].Label)
	}
}

func TestAnimationButtons(t *testing.T) {
	v := New(DefaultOptions())
	if err := v.Load(rigAsset(t, "a.glb", math.Vec3{})); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(v.UI.Animations) != 2 {
		t.Fatalf("expected 2 animation buttons, got %d", len(v.UI.Animations))
	}
	if v.UI.Animations[0].Label != "Wave" || v.UI.Animations[1].Label != "Animation 2" {
		t.Errorf("unexpected labels: %+v", v.UI.Animations)
	}
	if len(v.UI.Cameras) != 0 {
		t.Errorf("expected no camera buttons, got %d", len(v.UI.Cameras))
	}
}
