package assets

import (
	"bytes"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// cubeDoc builds a document with one unit cube mesh on node "Body" under
// "Root", plus a translation clip driving "Body".
func cubeDoc() *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
	})
	idx := modeler.WriteIndices(doc, []uint16{
		0, 2, 1, 0, 3, 2,
		4, 5, 6, 4, 6, 7,
		0, 1, 5, 0, 5, 4,
		3, 7, 6, 3, 6, 2,
		0, 4, 7, 0, 7, 3,
		1, 2, 6, 1, 6, 5,
	})
	doc.Materials = []*gltf.Material{{Name: "Paint", DoubleSided: true}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "Cube",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: pos},
			Indices:    gltf.Index(idx),
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "Root", Children: []int{1}},
		{Name: "Body", Mesh: gltf.Index(0), Translation: [3]float64{0, 1, 0}},
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	in := modeler.WriteAccessor(doc, gltf.TargetNone, []float32{0, 1})
	out := modeler.WriteAccessor(doc, gltf.TargetNone, [][3]float32{{0, 1, 0}, {0, 2, 0}})
	doc.Animations = []*gltf.Animation{{
		Name:     "Bounce",
		Samplers: []*gltf.AnimationSampler{{Input: in, Output: out, Interpolation: gltf.InterpolationLinear}},
		Channels: []*gltf.AnimationChannel{{Sampler: 0, Target: gltf.AnimationChannelTarget{Node: gltf.Index(1), Path: gltf.TRSTranslation}}},
	}}
	return doc
}

func encodeDoc(t *testing.T, doc *gltf.Document, binary bool) []byte {
	t.Helper()
	if !binary {
		for _, b := range doc.Buffers {
			b.EmbeddedResource()
		}
	}
	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = binary
	if err := enc.Encode(doc); err != nil {
		t.Fatalf("failed to encode document: %v", err)
	}
	return buf.Bytes()
}
