package assets

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

func (im *importer) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(im.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return im.doc.Accessors[idx], nil
}

// readGeometry reads one primitive. Primitives that do not form triangles
// return nil and are skipped.
func (im *importer) readGeometry(p *gltf.Primitive) (*scene.Geometry, error) {
	switch p.Mode {
	case gltf.PrimitiveTriangles, gltf.PrimitiveTriangleStrip, gltf.PrimitiveTriangleFan:
	default:
		im.log.Debug("skipping non-triangle primitive")
		return nil, nil
	}

	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		im.log.Debug("skipping primitive without positions")
		return nil, nil
	}
	acr, err := im.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	geo := &scene.Geometry{}
	if geo.Positions, err = modeler.ReadPosition(im.doc, acr, nil); err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		if acr, err = im.accessor(idx); err != nil {
			return nil, err
		}
		if geo.Normals, err = modeler.ReadNormal(im.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
	}
	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err = im.accessor(idx); err != nil {
			return nil, err
		}
		if geo.UVs, err = modeler.ReadTextureCoord(im.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading texture coordinates: %w", err)
		}
	}
	if idx, ok := p.Attributes[gltf.JOINTS_0]; ok {
		if acr, err = im.accessor(idx); err != nil {
			return nil, err
		}
		if geo.Joints, err = modeler.ReadJoints(im.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading joints: %w", err)
		}
	}
	if idx, ok := p.Attributes[gltf.WEIGHTS_0]; ok {
		if acr, err = im.accessor(idx); err != nil {
			return nil, err
		}
		if geo.Weights, err = modeler.ReadWeights(im.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading weights: %w", err)
		}
	}

	var indices []uint32
	if p.Indices != nil {
		if acr, err = im.accessor(*p.Indices); err != nil {
			return nil, err
		}
		if indices, err = modeler.ReadIndices(im.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(geo.Positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for _, i := range indices {
		if int(i) >= len(geo.Positions) {
			return nil, fmt.Errorf("index %d exceeds %d vertices", i, len(geo.Positions))
		}
	}
	geo.Indices = triangulate(indices, p.Mode)

	if len(geo.Normals) != len(geo.Positions) {
		geo.Normals = computeNormals(geo.Positions, geo.Indices)
	}
	geo.ComputeBounds()
	return geo, nil
}

// triangulate converts strip and fan index lists to plain triangles.
func triangulate(indices []uint32, mode gltf.PrimitiveMode) []uint32 {
	switch mode {
	case gltf.PrimitiveTriangleStrip:
		var out []uint32
		for i := 0; i+2 < len(indices); i++ {
			if i%2 == 0 {
				out = append(out, indices[i], indices[i+1], indices[i+2])
			} else {
				out = append(out, indices[i+1], indices[i], indices[i+2])
			}
		}
		return out
	case gltf.PrimitiveTriangleFan:
		var out []uint32
		for i := 1; i+1 < len(indices); i++ {
			out = append(out, indices[0], indices[i], indices[i+1])
		}
		return out
	}
	return indices[:len(indices)-len(indices)%3]
}

// computeNormals accumulates area-weighted face normals per vertex.
func computeNormals(pos [][3]float32, indices []uint32) [][3]float32 {
	acc := make([]math.Vec3, len(pos))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		p0 := math.Vec3FromArray(pos[a])
		n := math.Vec3FromArray(pos[b]).Sub(p0).Cross(math.Vec3FromArray(pos[c]).Sub(p0))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	out := make([][3]float32, len(pos))
	for i, n := range acc {
		out[i] = n.Normalize().Array()
	}
	return out
}

// readFloats reads any accessor as a flat float slice, normalizing integer
// components the way glTF animation outputs require.
func (im *importer) readFloats(idx int) ([]float32, error) {
	acr, err := im.accessor(idx)
	if err != nil {
		return nil, err
	}
	raw, err := modeler.ReadAccessor(im.doc, acr, nil)
	if err != nil {
		return nil, err
	}

	switch v := raw.(type) {
	case []float32:
		return v, nil
	case [][2]float32:
		out := make([]float32, 0, len(v)*2)
		for _, e := range v {
			out = append(out, e[:]...)
		}
		return out, nil
	case [][3]float32:
		out := make([]float32, 0, len(v)*3)
		for _, e := range v {
			out = append(out, e[:]...)
		}
		return out, nil
	case [][4]float32:
		out := make([]float32, 0, len(v)*4)
		for _, e := range v {
			out = append(out, e[:]...)
		}
		return out, nil
	case []int8:
		return normalizeInts(v, 127, true), nil
	case []uint8:
		return normalizeInts(v, 255, false), nil
	case []int16:
		return normalizeInts(v, 32767, true), nil
	case []uint16:
		return normalizeInts(v, 65535, false), nil
	case [][4]int8:
		return normalizeInts(flatten4(v), 127, true), nil
	case [][4]uint8:
		return normalizeInts(flatten4(v), 255, false), nil
	case [][4]int16:
		return normalizeInts(flatten4(v), 32767, true), nil
	case [][4]uint16:
		return normalizeInts(flatten4(v), 65535, false), nil
	}
	return nil, fmt.Errorf("accessor %d: unsupported layout %T", idx, raw)
}

type smallInt interface {
	~int8 | ~uint8 | ~int16 | ~uint16
}

func flatten4[T smallInt](v [][4]T) []T {
	out := make([]T, 0, len(v)*4)
	for _, e := range v {
		out = append(out, e[:]...)
	}
	return out
}

func normalizeInts[T smallInt](v []T, scale float32, signed bool) []float32 {
	out := make([]float32, len(v))
	for i, c := range v {
		f := float32(c) / scale
		if signed && f < -1 {
			f = -1
		}
		out[i] = f
	}
	return out
}

func (im *importer) readMat4(idx int) ([]math.Mat4, error) {
	acr, err := im.accessor(idx)
	if err != nil {
		return nil, err
	}
	raw, err := modeler.ReadAccessor(im.doc, acr, nil)
	if err != nil {
		return nil, err
	}
	v, ok := raw.([][4][4]float32)
	if !ok {
		return nil, fmt.Errorf("accessor %d: expected MAT4 floats, got %T", idx, raw)
	}
	out := make([]math.Mat4, len(v))
	for i, cols := range v {
		for c := 0; c < 4; c++ {
			for r := 0; r < 4; r++ {
				out[i][c*4+r] = cols[c][r]
			}
		}
	}
	return out, nil
}
