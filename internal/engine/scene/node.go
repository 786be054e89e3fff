// Package scene holds the in-memory scene graph of a loaded model: an arena of
// nodes indexed by NodeID, their meshes and materials, and the render graph
// the viewer draws each frame.
package scene

import "github.com/Faultbox/gltf-viewer/pkg/math"

// NodeID indexes a node in its Graph.
type NodeID int32

// NoNode marks a missing parent or an unset id.
const NoNode NodeID = -1

// Kind is the type tag of a node.
type Kind uint8

// Node kinds. Their String values double as labels for unnamed nodes.
const (
	KindGroup Kind = iota
	KindObject3D
	KindMesh
	KindSkinnedMesh
	KindBone
	KindPerspectiveCamera
	KindOrthographicCamera
	KindLight
)

var kindNames = [...]string{
	KindGroup:              "Group",
	KindObject3D:           "Object3D",
	KindMesh:               "Mesh",
	KindSkinnedMesh:        "SkinnedMesh",
	KindBone:               "Bone",
	KindPerspectiveCamera:  "PerspectiveCamera",
	KindOrthographicCamera: "OrthographicCamera",
	KindLight:              "Light",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Object3D"
}

// IsCamera reports whether the node carries a camera.
func (k Kind) IsCamera() bool {
	return k == KindPerspectiveCamera || k == KindOrthographicCamera
}

// IsMesh reports whether the node draws geometry.
func (k Kind) IsMesh() bool {
	return k == KindMesh || k == KindSkinnedMesh
}

// CameraParams describes an embedded camera. Angles are in degrees.
type CameraParams struct {
	FOV    float32 // vertical, perspective only
	Aspect float32 // as stored in the asset; the viewer never trusts it
	Near   float32
	Far    float32

	// Orthographic half extents.
	XMag, YMag float32

	// Target is an explicit world-space look-at point, if the asset declares one.
	Target *math.Vec3
}

// Node is one entry in the scene graph.
type Node struct {
	ID       NodeID
	Name     string
	UUID     string // binding key for tracks on unnamed nodes
	Kind     Kind
	Parent   NodeID
	Children []NodeID

	// Local transform. Matrix is authoritative; the TRS fields mirror it and
	// are recomposed into Matrix on the next UpdateWorld after a Set* call.
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
	Matrix   math.Mat4
	World    math.Mat4

	// OriginalMatrix is the local matrix captured right after load.
	OriginalMatrix math.Mat4
	HasSnapshot    bool

	Mesh         *Mesh
	Skin         *Skin
	Camera       *CameraParams
	MorphWeights []float32

	Visible bool

	dirty bool
}

// SetPosition updates the local translation.
func (n *Node) SetPosition(p math.Vec3) {
	n.Position = p
	n.dirty = true
}

// SetRotation updates the local rotation.
func (n *Node) SetRotation(q math.Quat) {
	n.Rotation = q
	n.dirty = true
}

// SetScale updates the local scale.
func (n *Node) SetScale(s math.Vec3) {
	n.Scale = s
	n.dirty = true
}

// SetMatrix replaces the local matrix and re-derives TRS from it.
func (n *Node) SetMatrix(m math.Mat4) {
	n.Matrix = m
	n.Position, n.Rotation, n.Scale = m.Decompose()
	n.dirty = false
}

// Snapshot stores the current local matrix as the original pose.
func (n *Node) Snapshot() {
	n.OriginalMatrix = n.Matrix
	n.HasSnapshot = true
}

// RestoreSnapshot copies the original pose back into the local matrix.
func (n *Node) RestoreSnapshot() bool {
	if !n.HasSnapshot {
		return false
	}
	n.SetMatrix(n.OriginalMatrix)
	return true
}

// Label returns the node name, falling back to its type tag.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Kind.String()
}

// Skin binds a skinned mesh to its joints.
type Skin struct {
	Joints      []NodeID
	InverseBind []math.Mat4
}
