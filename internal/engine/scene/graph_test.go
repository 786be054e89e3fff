package scene

import (
	"testing"

	"github.com/Faultbox/gltf-viewer/pkg/math"
)

type countingReleaser struct{ n int }

func (c *countingReleaser) Release() { c.n++ }

// buildTree creates root -> (a -> (a1, a2), b).
func buildTree() (*Graph, map[string]NodeID) {
	g := NewGraph()
	ids := map[string]NodeID{}
	ids["root"] = g.Add(Node{Name: "root", Kind: KindGroup}, NoNode)
	ids["a"] = g.Add(Node{Name: "a", Kind: KindObject3D}, ids["root"])
	ids["a1"] = g.Add(Node{Name: "a1", Kind: KindMesh}, ids["a"])
	ids["a2"] = g.Add(Node{Name: "a2", Kind: KindBone}, ids["a"])
	ids["b"] = g.Add(Node{Name: "b", Kind: KindObject3D}, ids["root"])
	return g, ids
}

func TestWalkPreOrder(t *testing.T) {
	g, _ := buildTree()

	var order []string
	var depths []int
	g.Walk(g.Root, func(n *Node, depth int) bool {
		order = append(order, n.Name)
		depths = append(depths, depth)
		return true
	})

	expected := []string{"root", "a", "a1", "a2", "b"}
	expectedDepths := []int{0, 1, 2, 2, 1}
	if len(order) != len(expected) {
		t.Fatalf("expected %d nodes, got %d", len(expected), len(order))
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], order[i])
		}
		if depths[i] != expectedDepths[i] {
			t.Errorf("%s: expected depth %d, got %d", order[i], expectedDepths[i], depths[i])
		}
	}
}

func TestWalkSkipChildren(t *testing.T) {
	g, _ := buildTree()

	var visited []string
	g.Walk(g.Root, func(n *Node, _ int) bool {
		visited = append(visited, n.Name)
		return n.Name != "a"
	})
	if len(visited) != 3 {
		t.Errorf("expected root, a, b; got %v", visited)
	}
}

func TestRemoveSubtree(t *testing.T) {
	g, ids := buildTree()

	g.Remove(ids["a"])

	if g.Len() != 2 {
		t.Errorf("expected 2 reachable nodes after removal, got %d", g.Len())
	}
	if g.FindByName("a1") != NoNode {
		t.Error("expected a1 to be unreachable after removing its parent")
	}
	if got := len(g.Node(ids["root"]).Children); got != 1 {
		t.Errorf("expected root to keep 1 child, got %d", got)
	}
}

func TestUpdateWorld(t *testing.T) {
	g := NewGraph()
	root := g.Add(Node{Name: "root", Position: math.Vec3{X: 1}}, NoNode)
	child := g.Add(Node{Name: "child", Position: math.Vec3{Y: 2}}, root)

	g.UpdateWorld()
	got := g.Node(child).World.Translation()
	if got != (math.Vec3{X: 1, Y: 2}) {
		t.Errorf("expected child world (1,2,0), got %v", got)
	}

	g.Node(root).SetPosition(math.Vec3{X: 5})
	g.UpdateWorld()
	got = g.Node(child).World.Translation()
	if got != (math.Vec3{X: 5, Y: 2}) {
		t.Errorf("expected child world (5,2,0) after moving root, got %v", got)
	}
}

func TestAddMatrixDerivesTRS(t *testing.T) {
	g := NewGraph()
	m := math.Compose(math.Vec3{X: 1, Y: 2, Z: 3}, math.QuatIdentity(), math.Vec3{X: 2, Y: 2, Z: 2})
	id := g.Add(Node{Matrix: m}, NoNode)

	n := g.Node(id)
	if n.Matrix != m {
		t.Error("expected explicit matrix to be kept as-is")
	}
	if n.Position != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("expected position (1,2,3), got %v", n.Position)
	}
	if n.Scale != (math.Vec3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("expected scale (2,2,2), got %v", n.Scale)
	}
}

func TestWorldBounds(t *testing.T) {
	g := NewGraph()
	root := g.Add(Node{Name: "root"}, NoNode)
	geo := &Geometry{Positions: [][3]float32{{-1, -1, -1}, {1, 1, 1}}}
	geo.ComputeBounds()
	g.Add(Node{Name: "box", Kind: KindMesh, Position: math.Vec3{X: 10}, Mesh: &Mesh{Geometry: geo}}, root)
	g.UpdateWorld()

	box := g.WorldBounds(g.Root)
	if box.Min != (math.Vec3{X: 9, Y: -1, Z: -1}) || box.Max != (math.Vec3{X: 11, Y: 1, Z: 1}) {
		t.Errorf("expected box (9,-1,-1)-(11,1,1), got %v-%v", box.Min, box.Max)
	}
}

func TestWorldBoundsEmpty(t *testing.T) {
	g := NewGraph()
	g.Add(Node{Name: "root"}, NoNode)
	if !g.WorldBounds(g.Root).IsEmpty() {
		t.Error("expected empty box for a graph without meshes")
	}
}

func TestDisposeSharedMaterialOnce(t *testing.T) {
	g := NewGraph()
	root := g.Add(Node{Name: "root"}, NoNode)

	matGPU := &countingReleaser{}
	texGPU := &countingReleaser{}
	shared := &Material{GPU: matGPU, BaseTexture: &Texture{GPU: texGPU}}
	geoGPU1, geoGPU2 := &countingReleaser{}, &countingReleaser{}
	other := &Material{GPU: &countingReleaser{}}

	g.Add(Node{Kind: KindMesh, Mesh: &Mesh{Geometry: &Geometry{GPU: geoGPU1}, Materials: []*Material{shared}}}, root)
	g.Add(Node{Kind: KindMesh, Mesh: &Mesh{Geometry: &Geometry{GPU: geoGPU2}, Materials: []*Material{shared, other}}}, root)

	g.Dispose()
	g.Dispose()

	if matGPU.n != 1 {
		t.Errorf("expected shared material released once, got %d", matGPU.n)
	}
	if texGPU.n != 1 {
		t.Errorf("expected texture released once, got %d", texGPU.n)
	}
	if geoGPU1.n != 1 || geoGPU2.n != 1 {
		t.Errorf("expected each geometry released once, got %d and %d", geoGPU1.n, geoGPU2.n)
	}
	if !other.Disposed() {
		t.Error("expected second material in the list to be disposed")
	}
}

func TestSnapshotRestoreExact(t *testing.T) {
	g := NewGraph()
	rot := math.QuatFromAxisAngle(math.Vec3{X: 0.267, Y: 0.535, Z: 0.802}.Normalize(), 0.73)
	id := g.Add(Node{Position: math.Vec3{X: 0.1, Y: 0.2, Z: 0.3}, Rotation: rot, Scale: math.Vec3{X: 1.5, Y: 1.5, Z: 1.5}}, NoNode)
	n := g.Node(id)
	n.Snapshot()
	original := n.Matrix

	n.SetRotation(math.QuatFromAxisAngle(math.Vec3{Y: 1}, 2))
	n.SetPosition(math.Vec3{X: 9})
	g.UpdateWorld()
	if n.Matrix == original {
		t.Fatal("expected matrix to change after animation-style update")
	}

	if !n.RestoreSnapshot() {
		t.Fatal("expected snapshot to exist")
	}
	g.UpdateWorld()
	if n.Matrix != original {
		t.Errorf("expected matrix restored bit-for-bit, got %v want %v", n.Matrix, original)
	}
}

func TestJointMatrices(t *testing.T) {
	g := NewGraph()
	root := g.Add(Node{Name: "root"}, NoNode)
	joint := g.Add(Node{Name: "joint", Kind: KindBone, Position: math.Vec3{Y: 1}}, root)
	ibm := math.Translate(0, -1, 0)
	mesh := g.Add(Node{Name: "skinned", Kind: KindSkinnedMesh, Skin: &Skin{Joints: []NodeID{joint}, InverseBind: []math.Mat4{ibm}}}, root)
	g.UpdateWorld()

	mats := g.JointMatrices(g.Node(mesh), nil)
	if len(mats) != 1 {
		t.Fatalf("expected 1 joint matrix, got %d", len(mats))
	}
	// Joint at its bind pose yields identity.
	for i, v := range mats[0] {
		if abs(v-math.Identity()[i]) > 1e-6 {
			t.Fatalf("expected identity joint matrix, got %v", mats[0])
		}
	}
}

func TestRenderGraph(t *testing.T) {
	a, _ := buildTree()
	b := NewGraph()
	b.Add(Node{Name: "b"}, NoNode)

	var rg RenderGraph
	rg.Attach(a)
	rg.Attach(a)
	if len(rg.Graphs()) != 1 {
		t.Errorf("expected attach to be idempotent, got %d graphs", len(rg.Graphs()))
	}
	if !rg.Detach(a) {
		t.Error("expected detach of attached graph to succeed")
	}
	rg.Attach(b)
	if rg.NodeCount() != 1 {
		t.Errorf("expected 1 node after swap, got %d", rg.NodeCount())
	}
	if rg.Detach(a) {
		t.Error("expected detach of absent graph to report false")
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		node     Node
		expected string
	}{
		{Node{Name: "Arm_L", Kind: KindBone}, "Arm_L"},
		{Node{Kind: KindSkinnedMesh}, "SkinnedMesh"},
		{Node{Kind: KindPerspectiveCamera}, "PerspectiveCamera"},
		{Node{Kind: KindGroup}, "Group"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.node.Label(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestFindByNameOrUUID(t *testing.T) {
	g := NewGraph()
	root := g.Add(Node{Name: "root"}, NoNode)
	named := g.Add(Node{Name: "Hip"}, root)
	anon := g.Add(Node{UUID: "6c1f0f3e-anon"}, root)

	if got := g.Find("Hip"); got != named {
		t.Errorf("expected %d, got %d", named, got)
	}
	if got := g.Find("6c1f0f3e-anon"); got != anon {
		t.Errorf("expected %d, got %d", anon, got)
	}
	if got := g.Find(""); got != NoNode {
		t.Errorf("expected empty key to match nothing, got %d", got)
	}
}
