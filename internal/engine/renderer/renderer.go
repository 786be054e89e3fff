// Package renderer draws the viewer's render graph with OpenGL: lit,
// optionally skinned meshes under a hemisphere light, plus debug lines.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/engine/camera"
	"github.com/Faultbox/gltf-viewer/internal/engine/lighting"
	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/internal/engine/shader"
	"github.com/Faultbox/gltf-viewer/internal/engine/texture"
	"github.com/Faultbox/gltf-viewer/internal/logger"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// Stats describes the last frame.
type Stats struct {
	DrawCalls int
	Triangles int
}

// Renderer draws scene graphs. GPU resources for geometry and textures are
// created on first draw and attached to the scene objects, which release
// them when the model is disposed.
type Renderer struct {
	log *zap.Logger

	mesh  *shader.Program
	lines *shader.Program
	white *texture.Texture

	lineVAO uint32
	lineVBO uint32

	draws     []drawItem
	joints    []math.Mat4
	jointData [][16]float32

	stats Stats
}

// New compiles the shaders. Must be called with a current GL context.
func New() (*Renderer, error) {
	r := &Renderer{
		log:       logger.Named("renderer"),
		jointData: make([][16]float32, 0, maxJoints),
	}

	var err error
	if r.mesh, err = shader.New("mesh", meshVertexSrc, meshFragmentSrc); err != nil {
		return nil, err
	}
	if r.lines, err = shader.New("lines", lineVertexSrc, lineFragmentSrc); err != nil {
		r.Destroy()
		return nil, err
	}
	r.white = texture.Upload(texture.Placeholder())

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	r.log.Info("OpenGL renderer ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("device", gl.GoStr(gl.GetString(gl.RENDERER))))
	return r, nil
}

// Stats returns counters for the last Draw.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Draw renders every attached graph from cam into the bound framebuffer.
func (r *Renderer) Draw(rg *scene.RenderGraph, cam *camera.Perspective, light lighting.Hemisphere) {
	r.stats = Stats{}
	r.draws = buildDrawList(rg, cam.Position, r.draws)
	if len(r.draws) == 0 {
		return
	}

	viewProj := cam.ProjectionMatrix().Mul(cam.ViewMatrix())

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	r.mesh.Use()
	r.mesh.SetMat4("uViewProj", (*[16]float32)(&viewProj))
	r.mesh.SetVec3("uSkyColor", light.Sky[0], light.Sky[1], light.Sky[2])
	r.mesh.SetVec3("uGroundColor", light.Ground[0], light.Ground[1], light.Ground[2])
	r.mesh.SetVec3("uUp", light.Up[0], light.Up[1], light.Up[2])
	r.mesh.SetFloat("uIntensity", light.Intensity)
	r.mesh.SetInt("uBaseTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)

	blending := false
	for _, item := range r.draws {
		if item.blended() && !blending {
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
			gl.DepthMask(false)
			blending = true
		}
		r.drawItem(item)
	}

	if blending {
		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
	}
	gl.Disable(gl.CULL_FACE)
	gl.FrontFace(gl.CCW)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawItem(item drawItem) {
	geo := item.node.Mesh.Geometry
	if geo.Disposed() {
		return
	}
	buffers, ok := geo.GPU.(*meshBuffers)
	if !ok {
		buffers = uploadGeometry(geo)
		geo.GPU = buffers
	}

	mat := item.material
	if mat.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
	}
	// Mirrored transforms flip winding.
	if item.node.World.Determinant() < 0 {
		gl.FrontFace(gl.CW)
	} else {
		gl.FrontFace(gl.CCW)
	}

	model := item.node.World
	r.mesh.SetMat4("uModel", (*[16]float32)(&model))
	r.mesh.SetVec4("uBaseColor", mat.BaseColor)
	r.mesh.SetInt("uAlphaMode", int32(mat.AlphaMode))
	r.mesh.SetFloat("uAlphaCutoff", mat.AlphaCutoff)
	gl.BindTexture(gl.TEXTURE_2D, r.textureID(mat.BaseTexture))

	skinned := item.node.Kind == scene.KindSkinnedMesh && item.node.Skin != nil && geo.Skinned()
	r.mesh.SetBool("uSkinned", skinned)
	if skinned {
		r.joints = item.graph.JointMatrices(item.node, r.joints)
		r.jointData = r.jointData[:0]
		for i, m := range r.joints {
			if i == maxJoints {
				break
			}
			r.jointData = append(r.jointData, [16]float32(m))
		}
		r.mesh.SetMat4s("uJoints", r.jointData)
	}

	buffers.draw()
	r.stats.DrawCalls++
	r.stats.Triangles += int(buffers.count) / 3
}

// textureID uploads t on first use. Undecodable images fall back to white so
// the material's base color still shows.
func (r *Renderer) textureID(t *scene.Texture) uint32 {
	if t == nil {
		return r.white.ID
	}
	if tex, ok := t.GPU.(*texture.Texture); ok {
		return tex.ID
	}
	img, err := texture.Decode(t.Data, t.MimeType)
	if err != nil {
		r.log.Warn("texture decode failed, using placeholder",
			zap.String("texture", t.Key), zap.Error(err))
		img = texture.Placeholder()
	}
	tex := texture.Upload(img)
	t.GPU = tex
	return tex.ID
}

// DrawLines draws world-space line segments, two points per segment.
func (r *Renderer) DrawLines(points []math.Vec3, color [3]float32, cam *camera.Perspective) {
	if len(points) < 2 {
		return
	}
	data := make([]float32, 0, len(points)*3)
	for _, p := range points {
		data = append(data, p.X, p.Y, p.Z)
	}
	viewProj := cam.ProjectionMatrix().Mul(cam.ViewMatrix())

	gl.Enable(gl.DEPTH_TEST)
	r.lines.Use()
	r.lines.SetMat4("uViewProj", (*[16]float32)(&viewProj))
	r.lines.SetVec3("uColor", color[0], color[1], color[2])

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(points)))
	gl.BindVertexArray(0)
}

// Destroy releases renderer-owned GL objects. Scene resources are released
// by the scene objects themselves.
func (r *Renderer) Destroy() {
	if r.mesh != nil {
		r.mesh.Delete()
	}
	if r.lines != nil {
		r.lines.Delete()
	}
	if r.white != nil {
		r.white.Release()
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
		r.lineVBO = 0
	}
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
		r.lineVAO = 0
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d draws, %d tris", s.DrawCalls, s.Triangles)
}
