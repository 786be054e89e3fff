package scene

import "github.com/Faultbox/gltf-viewer/pkg/math"

// Graph is an arena of nodes. Removed subtrees stay in the arena but are no
// longer reachable from Root.
type Graph struct {
	nodes []Node
	Root  NodeID
}

// NewGraph returns an empty graph with no root.
func NewGraph() *Graph {
	return &Graph{Root: NoNode}
}

// Add appends a node under parent and returns its id. A non-zero Matrix wins
// over the TRS fields. With parent NoNode and no root yet, the node becomes
// the root.
func (g *Graph) Add(n Node, parent NodeID) NodeID {
	id := NodeID(len(g.nodes))
	n.ID = id
	n.Parent = parent
	n.Children = nil
	n.Visible = true
	if n.Matrix != (math.Mat4{}) {
		n.Position, n.Rotation, n.Scale = n.Matrix.Decompose()
	} else {
		if n.Scale == (math.Vec3{}) {
			n.Scale = math.Vec3{X: 1, Y: 1, Z: 1}
		}
		if n.Rotation == (math.Quat{}) {
			n.Rotation = math.QuatIdentity()
		}
		n.Matrix = math.Compose(n.Position, n.Rotation, n.Scale)
	}
	n.dirty = false
	n.World = n.Matrix
	g.nodes = append(g.nodes, n)

	if parent != NoNode {
		p := &g.nodes[parent]
		p.Children = append(p.Children, id)
	} else if g.Root == NoNode {
		g.Root = id
	}
	return id
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return &g.nodes[id]
}

// Remove detaches id and its subtree from its parent.
func (g *Graph) Remove(id NodeID) {
	n := g.Node(id)
	if n == nil {
		return
	}
	if n.Parent == NoNode {
		if g.Root == id {
			g.Root = NoNode
		}
		return
	}
	p := &g.nodes[n.Parent]
	for i, c := range p.Children {
		if c == id {
			p.Children = append(p.Children[:i:i], p.Children[i+1:]...)
			break
		}
	}
	n.Parent = NoNode
}

// Walk visits the subtree at from in pre-order. Returning false from fn skips
// the node's children.
func (g *Graph) Walk(from NodeID, fn func(n *Node, depth int) bool) {
	if g.Node(from) == nil {
		return
	}
	type item struct {
		id    NodeID
		depth int
	}
	stack := []item{{from, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &g.nodes[it.id]
		if !fn(n, it.depth) {
			continue
		}
		// Push in reverse so the first child is visited first.
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{n.Children[i], it.depth + 1})
		}
	}
}

// Each visits every node reachable from Root in pre-order.
func (g *Graph) Each(fn func(n *Node)) {
	g.Walk(g.Root, func(n *Node, _ int) bool {
		fn(n)
		return true
	})
}

// Len returns the number of nodes reachable from Root.
func (g *Graph) Len() int {
	count := 0
	g.Each(func(*Node) { count++ })
	return count
}

// FindByName returns the first node in pre-order with the given name.
func (g *Graph) FindByName(name string) NodeID {
	found := NoNode
	g.Walk(g.Root, func(n *Node, _ int) bool {
		if found != NoNode {
			return false
		}
		if n.Name == name {
			found = n.ID
			return false
		}
		return true
	})
	return found
}

// Find returns the first node in pre-order whose name or UUID equals key.
func (g *Graph) Find(key string) NodeID {
	if key == "" {
		return NoNode
	}
	found := NoNode
	g.Walk(g.Root, func(n *Node, _ int) bool {
		if found != NoNode {
			return false
		}
		if n.Name == key || n.UUID == key {
			found = n.ID
			return false
		}
		return true
	})
	return found
}

// UpdateWorld recomposes dirty local matrices and propagates world matrices
// from the root down.
func (g *Graph) UpdateWorld() {
	g.Walk(g.Root, func(n *Node, _ int) bool {
		if n.dirty {
			n.Matrix = math.Compose(n.Position, n.Rotation, n.Scale)
			n.dirty = false
		}
		if n.Parent == NoNode {
			n.World = n.Matrix
		} else {
			n.World = g.nodes[n.Parent].World.Mul(n.Matrix)
		}
		return true
	})
}

// WorldBounds returns the world-space box of every mesh under from. Each
// geometry's local box is transformed by its node's world matrix.
func (g *Graph) WorldBounds(from NodeID) math.Box3 {
	box := math.EmptyBox3()
	g.Walk(from, func(n *Node, _ int) bool {
		if n.Mesh != nil && n.Mesh.Geometry != nil {
			box = box.Union(n.Mesh.Geometry.Bounds.ApplyMat4(n.World))
		}
		return true
	})
	return box
}

// Dispose releases every geometry and material reachable from Root. Shared
// materials are released once.
func (g *Graph) Dispose() {
	seen := make(map[*Material]bool)
	g.Each(func(n *Node) {
		if n.Mesh == nil {
			return
		}
		if n.Mesh.Geometry != nil {
			n.Mesh.Geometry.Dispose()
		}
		for _, m := range n.Mesh.Materials {
			if m == nil || seen[m] {
				continue
			}
			seen[m] = true
			m.Dispose()
		}
	})
}

// JointMatrices returns, for a skinned node, the bone matrices in the node's
// local space: inverse(meshWorld) * jointWorld * inverseBind.
func (g *Graph) JointMatrices(n *Node, dst []math.Mat4) []math.Mat4 {
	dst = dst[:0]
	if n.Skin == nil {
		return dst
	}
	invMesh := n.World.Inverse()
	for i, j := range n.Skin.Joints {
		joint := g.Node(j)
		if joint == nil {
			dst = append(dst, math.Identity())
			continue
		}
		ibm := math.Identity()
		if i < len(n.Skin.InverseBind) {
			ibm = n.Skin.InverseBind[i]
		}
		dst = append(dst, invMesh.Mul(joint.World).Mul(ibm))
	}
	return dst
}
