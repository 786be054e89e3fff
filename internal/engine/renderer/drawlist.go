package renderer

import (
	"sort"

	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

type drawItem struct {
	graph    *scene.Graph
	node     *scene.Node
	material *scene.Material
	distance float32
}

func (d drawItem) blended() bool {
	return d.material.AlphaMode == scene.AlphaBlend
}

// buildDrawList collects visible meshes from every attached graph. Opaque
// and masked items keep scene order; blended items follow them, farthest
// from eye first. Hidden nodes hide their subtree.
func buildDrawList(rg *scene.RenderGraph, eye math.Vec3, dst []drawItem) []drawItem {
	dst = dst[:0]
	fallback := defaultMaterial
	for _, g := range rg.Graphs() {
		g.Walk(g.Root, func(n *scene.Node, _ int) bool {
			if !n.Visible {
				return false
			}
			if n.Mesh == nil || n.Mesh.Geometry == nil || !n.Kind.IsMesh() {
				return true
			}
			mat := n.Mesh.Material()
			if mat == nil {
				mat = fallback
			}
			center := n.Mesh.Geometry.Bounds.Center()
			dst = append(dst, drawItem{
				graph:    g,
				node:     n,
				material: mat,
				distance: n.World.TransformVec3(center).Distance(eye),
			})
			return true
		})
	}

	sort.SliceStable(dst, func(i, j int) bool {
		bi, bj := dst[i].blended(), dst[j].blended()
		if bi != bj {
			return !bi
		}
		if bi {
			return dst[i].distance > dst[j].distance
		}
		return false
	})
	return dst
}

var defaultMaterial = scene.DefaultMaterial()
