package scene

import "github.com/Faultbox/gltf-viewer/pkg/math"

// Releaser frees GPU-side state owned by a geometry, material or texture.
type Releaser interface {
	Release()
}

// Geometry is CPU-side vertex data for one primitive.
type Geometry struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Joints    [][4]uint16
	Weights   [][4]float32
	Indices   []uint32
	Bounds    math.Box3

	// GPU is attached by the renderer on first draw.
	GPU Releaser

	disposed bool
}

// ComputeBounds recalculates the local bounding box from positions.
func (g *Geometry) ComputeBounds() {
	b := math.EmptyBox3()
	for _, p := range g.Positions {
		b = b.ExpandByPoint(math.Vec3FromArray(p))
	}
	g.Bounds = b
}

// Skinned reports whether the geometry carries joint influences.
func (g *Geometry) Skinned() bool {
	return len(g.Joints) > 0 && len(g.Joints) == len(g.Weights)
}

// Dispose releases GPU state. Safe to call more than once.
func (g *Geometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	if g.GPU != nil {
		g.GPU.Release()
		g.GPU = nil
	}
}

// Disposed reports whether Dispose has run.
func (g *Geometry) Disposed() bool { return g.disposed }

// AlphaMode mirrors the glTF material alpha modes.
type AlphaMode uint8

const (
	AlphaOpaque AlphaMode = iota
	AlphaMask
	AlphaBlend
)

// Texture is an encoded image referenced by a material.
type Texture struct {
	Key      string // cache key, unique per asset image
	MimeType string
	Data     []byte

	GPU Releaser

	disposed bool
}

// Dispose releases GPU state. Safe to call more than once.
func (t *Texture) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	if t.GPU != nil {
		t.GPU.Release()
		t.GPU = nil
	}
}

// Material holds the surface parameters the renderer understands.
type Material struct {
	Name        string
	BaseColor   [4]float32
	BaseTexture *Texture
	AlphaMode   AlphaMode
	AlphaCutoff float32
	DoubleSided bool

	GPU Releaser

	disposed bool
}

// DefaultMaterial returns the material used by primitives without one.
func DefaultMaterial() *Material {
	return &Material{
		Name:        "default",
		BaseColor:   [4]float32{1, 1, 1, 1},
		AlphaCutoff: 0.5,
	}
}

// Dispose releases GPU state and the base color texture. Safe to call more than once.
func (m *Material) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.BaseTexture != nil {
		m.BaseTexture.Dispose()
	}
	if m.GPU != nil {
		m.GPU.Release()
		m.GPU = nil
	}
}

// Disposed reports whether Dispose has run.
func (m *Material) Disposed() bool { return m.disposed }

// Mesh is the drawable payload of a mesh node. A mesh uses a single material
// or, when its geometry is split into groups, a list of them.
type Mesh struct {
	Geometry  *Geometry
	Materials []*Material
}

// Material returns the first material, or nil.
func (m *Mesh) Material() *Material {
	if len(m.Materials) == 0 {
		return nil
	}
	return m.Materials[0]
}
