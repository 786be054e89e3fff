package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
)

// position(3) + normal(3) + uv(2) + joints(4) + weights(4)
const vertexFloats = 16

// interleave packs a geometry into the vertex layout the mesh shader reads.
// Missing attributes are zero, except normals which default to +Z.
func interleave(g *scene.Geometry) []float32 {
	out := make([]float32, 0, len(g.Positions)*vertexFloats)
	skinned := g.Skinned()
	for i, p := range g.Positions {
		out = append(out, p[0], p[1], p[2])
		if i < len(g.Normals) {
			n := g.Normals[i]
			out = append(out, n[0], n[1], n[2])
		} else {
			out = append(out, 0, 0, 1)
		}
		if i < len(g.UVs) {
			out = append(out, g.UVs[i][0], g.UVs[i][1])
		} else {
			out = append(out, 0, 0)
		}
		if skinned && i < len(g.Joints) {
			j, w := g.Joints[i], g.Weights[i]
			out = append(out,
				float32(j[0]), float32(j[1]), float32(j[2]), float32(j[3]),
				w[0], w[1], w[2], w[3])
		} else {
			out = append(out, 0, 0, 0, 0, 0, 0, 0, 0)
		}
	}
	return out
}

// meshBuffers is the GPU side of a Geometry.
type meshBuffers struct {
	vao, vbo, ebo uint32
	count         int32
	indexed       bool
}

func uploadGeometry(g *scene.Geometry) *meshBuffers {
	vertices := interleave(g)
	b := &meshBuffers{}
	if len(vertices) == 0 {
		return b
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(vertexFloats * 4)
	offset := uintptr(0)
	for loc, size := range []int32{3, 3, 2, 4, 4} {
		gl.VertexAttribPointerWithOffset(uint32(loc), size, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(uint32(loc))
		offset += uintptr(size) * 4
	}

	if len(g.Indices) > 0 {
		gl.GenBuffers(1, &b.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)
		b.count = int32(len(g.Indices))
		b.indexed = true
	} else {
		b.count = int32(len(g.Positions))
	}

	gl.BindVertexArray(0)
	return b
}

func (b *meshBuffers) draw() {
	if b.vao == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	if b.indexed {
		gl.DrawElements(gl.TRIANGLES, b.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, b.count)
	}
}

// Release deletes the buffers. Safe to call more than once.
func (b *meshBuffers) Release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
}
