package assets

import (
	"context"
	"encoding/json"
	"fmt"
	gomath "math"
	"strconv"

	"github.com/google/uuid"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/engine/animation"
	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/internal/logger"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// Asset is an imported model: its scene graph, clips and drawable resources.
type Asset struct {
	ID    string
	Name  string
	Kind  Kind
	Graph *scene.Graph
	Clips []*animation.Clip
	Stats Stats
}

// Stats counts what an import produced.
type Stats struct {
	Nodes      int
	Meshes     int
	Materials  int
	Textures   int
	Skins      int
	Animations int
}

// Root returns the scene root, or scene.NoNode when the document selected no scene.
func (a *Asset) Root() scene.NodeID {
	if a == nil || a.Graph == nil {
		return scene.NoNode
	}
	return a.Graph.Root
}

// Dispose releases every resource of an asset that will never be shown.
func (a *Asset) Dispose() {
	if a != nil && a.Graph != nil {
		a.Graph.Dispose()
	}
}

// ImportOptions describe where a document came from.
type ImportOptions struct {
	Name    string
	Kind    Kind
	BaseDir string // resolves relative image URIs
	Cache   *Cache // optional, shares external image bytes across loads
}

type pendingSkin struct {
	node scene.NodeID
	skin int
}

type importer struct {
	ctx  context.Context
	doc  *gltf.Document
	opts ImportOptions
	log  *zap.Logger

	asset *Asset
	graph *scene.Graph
	names *nameRegistry

	nodeIDs   map[int]scene.NodeID
	joints    map[int]bool
	materials map[int]*scene.Material
	textures  map[int]*scene.Texture
	fallback  *scene.Material
	skins     []pendingSkin
}

// Import converts a decoded document into an Asset. Structural errors in the
// document are returned as *ParseError.
func Import(ctx context.Context, doc *gltf.Document, opts ImportOptions) (*Asset, error) {
	id := uuid.NewString()
	im := &importer{
		ctx:       ctx,
		doc:       doc,
		opts:      opts,
		log:       logger.Named("assets").With(zap.String("asset_id", id)),
		graph:     scene.NewGraph(),
		names:     newNameRegistry(),
		nodeIDs:   make(map[int]scene.NodeID),
		joints:    make(map[int]bool),
		materials: make(map[int]*scene.Material),
		textures:  make(map[int]*scene.Texture),
	}
	im.asset = &Asset{ID: id, Name: opts.Name, Kind: opts.Kind, Graph: im.graph}

	if err := im.run(); err != nil {
		im.graph.Dispose()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, parseError(opts.Kind, err)
	}
	return im.asset, nil
}

func (im *importer) run() error {
	sceneIdx := -1
	switch {
	case im.doc.Scene != nil:
		sceneIdx = *im.doc.Scene
	case len(im.doc.Scenes) > 0:
		sceneIdx = 0
	}
	if sceneIdx < 0 || sceneIdx >= len(im.doc.Scenes) || im.doc.Scenes[sceneIdx] == nil {
		im.log.Warn("document has no scene", zap.Int("scene", sceneIdx))
		return nil
	}
	sc := im.doc.Scenes[sceneIdx]

	for _, skin := range im.doc.Skins {
		for _, j := range skin.Joints {
			im.joints[j] = true
		}
	}

	root := im.graph.Add(scene.Node{Name: im.optionalName(sc.Name), UUID: uuid.NewString(), Kind: scene.KindGroup}, scene.NoNode)

	if err := im.buildNodes(sc.Nodes, root); err != nil {
		return err
	}
	if err := im.bindSkins(); err != nil {
		return err
	}
	if err := im.buildClips(); err != nil {
		return err
	}

	im.graph.UpdateWorld()
	im.asset.Stats.Nodes = im.graph.Len()
	im.asset.Stats.Materials = len(im.materials)
	im.asset.Stats.Textures = len(im.textures)
	im.asset.Stats.Animations = len(im.asset.Clips)
	return nil
}

func (im *importer) optionalName(name string) string {
	if name == "" {
		return ""
	}
	return im.names.unique(name)
}

// buildNodes adds the scene's node hierarchy in pre-order using an explicit stack.
func (im *importer) buildNodes(roots []int, parent scene.NodeID) error {
	type item struct {
		node   int
		parent scene.NodeID
	}
	stack := make([]item, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, item{roots[i], parent})
	}

	for len(stack) > 0 {
		if err := im.ctx.Err(); err != nil {
			return err
		}
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.node < 0 || it.node >= len(im.doc.Nodes) {
			return fmt.Errorf("node %d out of range", it.node)
		}
		if _, seen := im.nodeIDs[it.node]; seen {
			return fmt.Errorf("node %d has more than one parent", it.node)
		}

		id, err := im.buildNode(it.node, it.parent)
		if err != nil {
			return fmt.Errorf("node %d: %w", it.node, err)
		}
		im.nodeIDs[it.node] = id

		children := im.doc.Nodes[it.node].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{children[i], id})
		}
	}
	return nil
}

var identity64 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func localMatrix(n *gltf.Node) math.Mat4 {
	if m := n.MatrixOrDefault(); m != identity64 {
		return math.Mat4FromFloat64(m)
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math.Compose(
		math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		math.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])},
		math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	)
}

func hasLight(n *gltf.Node) bool {
	_, ok := n.Extensions[lightspunctual.ExtensionName]
	return ok
}

// buildNode adds one glTF node. A skin joint becomes a Bone and a node with
// several attachments becomes a Group, both holding the attachments as
// children. A node with a single mesh, camera or light becomes that object.
func (im *importer) buildNode(idx int, parent scene.NodeID) (scene.NodeID, error) {
	gn := im.doc.Nodes[idx]
	name := im.optionalName(gn.Name)
	base := scene.Node{Name: name, UUID: uuid.NewString(), Matrix: localMatrix(gn)}
	light := hasLight(gn)

	attachments := 0
	for _, has := range []bool{gn.Mesh != nil, gn.Camera != nil, light} {
		if has {
			attachments++
		}
	}

	switch {
	case im.joints[idx] || attachments > 1:
		base.Kind = scene.KindGroup
		if im.joints[idx] {
			base.Kind = scene.KindBone
		}
		id := im.graph.Add(base, parent)
		if err := im.addAttachments(gn, light, id); err != nil {
			return scene.NoNode, err
		}
		return id, nil
	case gn.Mesh != nil:
		return im.addMeshNode(gn, base, parent)
	case gn.Camera != nil:
		return im.addCameraNode(gn, base, parent)
	case light:
		base.Kind = scene.KindLight
		return im.graph.Add(base, parent), nil
	default:
		base.Kind = scene.KindObject3D
		return im.graph.Add(base, parent), nil
	}
}

// addAttachments adds the mesh, camera and light of gn as identity-transform
// children of container.
func (im *importer) addAttachments(gn *gltf.Node, light bool, container scene.NodeID) error {
	child := func() scene.Node {
		return scene.Node{UUID: uuid.NewString(), Matrix: math.Identity()}
	}
	if gn.Mesh != nil {
		if _, err := im.addMeshNode(gn, child(), container); err != nil {
			return err
		}
	}
	if gn.Camera != nil {
		if _, err := im.addCameraNode(gn, child(), container); err != nil {
			return err
		}
	}
	if light {
		n := child()
		n.Kind = scene.KindLight
		im.graph.Add(n, container)
	}
	return nil
}

func (im *importer) addMeshNode(gn *gltf.Node, base scene.Node, parent scene.NodeID) (scene.NodeID, error) {
	meshIdx := *gn.Mesh
	if meshIdx < 0 || meshIdx >= len(im.doc.Meshes) {
		return scene.NoNode, fmt.Errorf("mesh %d out of range", meshIdx)
	}
	gm := im.doc.Meshes[meshIdx]

	meshName := gm.Name
	if meshName == "" {
		meshName = "mesh_" + strconv.Itoa(meshIdx)
	}
	if base.Name == "" {
		base.Name = im.names.unique(meshName)
	}

	var weights []float32
	switch {
	case len(gn.Weights) > 0:
		weights = toFloat32(gn.Weights)
	case len(gm.Weights) > 0:
		weights = toFloat32(gm.Weights)
	}
	base.MorphWeights = weights

	var meshes []*scene.Mesh
	for pi, p := range gm.Primitives {
		geo, err := im.readGeometry(p)
		if err != nil {
			return scene.NoNode, fmt.Errorf("mesh %q primitive %d: %w", meshName, pi, err)
		}
		if geo == nil {
			continue
		}
		mat, err := im.material(p.Material)
		if err != nil {
			return scene.NoNode, fmt.Errorf("mesh %q primitive %d: %w", meshName, pi, err)
		}
		meshes = append(meshes, &scene.Mesh{Geometry: geo, Materials: []*scene.Material{mat}})
	}
	im.asset.Stats.Meshes += len(meshes)

	kindOf := func(m *scene.Mesh) scene.Kind {
		if gn.Skin != nil && m.Geometry.Skinned() {
			return scene.KindSkinnedMesh
		}
		return scene.KindMesh
	}

	switch len(meshes) {
	case 0:
		base.Kind = scene.KindObject3D
		return im.graph.Add(base, parent), nil
	case 1:
		base.Kind = kindOf(meshes[0])
		base.Mesh = meshes[0]
		id := im.graph.Add(base, parent)
		if base.Kind == scene.KindSkinnedMesh {
			im.skins = append(im.skins, pendingSkin{node: id, skin: *gn.Skin})
		}
		return id, nil
	}

	base.Kind = scene.KindGroup
	id := im.graph.Add(base, parent)
	for i, m := range meshes {
		child := scene.Node{
			Name:         im.names.unique(meshName + "_" + strconv.Itoa(i)),
			UUID:         uuid.NewString(),
			Kind:         kindOf(m),
			Matrix:       math.Identity(),
			Mesh:         m,
			MorphWeights: weights,
		}
		cid := im.graph.Add(child, id)
		if child.Kind == scene.KindSkinnedMesh {
			im.skins = append(im.skins, pendingSkin{node: cid, skin: *gn.Skin})
		}
	}
	return id, nil
}

func (im *importer) addCameraNode(gn *gltf.Node, base scene.Node, parent scene.NodeID) (scene.NodeID, error) {
	camIdx := *gn.Camera
	if camIdx < 0 || camIdx >= len(im.doc.Cameras) {
		return scene.NoNode, fmt.Errorf("camera %d out of range", camIdx)
	}
	gc := im.doc.Cameras[camIdx]
	if base.Name == "" && gc.Name != "" {
		base.Name = im.names.unique(gc.Name)
	}

	params := &scene.CameraParams{Target: extrasTarget(gn.Extras)}
	switch {
	case gc.Perspective != nil:
		p := gc.Perspective
		base.Kind = scene.KindPerspectiveCamera
		params.FOV = float32(p.Yfov * 180 / gomath.Pi)
		params.Aspect = 1
		if p.AspectRatio != nil {
			params.Aspect = float32(*p.AspectRatio)
		}
		params.Near = float32(p.Znear)
		if params.Near == 0 {
			params.Near = 1
		}
		params.Far = 2e6
		if p.Zfar != nil {
			params.Far = float32(*p.Zfar)
		}
	case gc.Orthographic != nil:
		o := gc.Orthographic
		base.Kind = scene.KindOrthographicCamera
		params.XMag = float32(o.Xmag)
		params.YMag = float32(o.Ymag)
		params.Near = float32(o.Znear)
		params.Far = float32(o.Zfar)
	default:
		return scene.NoNode, fmt.Errorf("camera %d has no projection", camIdx)
	}
	base.Camera = params
	return im.graph.Add(base, parent), nil
}

// extrasTarget reads an explicit look-at point from node extras {"target": [x, y, z]}.
func extrasTarget(extras any) *math.Vec3 {
	var m map[string]any
	switch e := extras.(type) {
	case map[string]any:
		m = e
	case json.RawMessage:
		if json.Unmarshal(e, &m) != nil {
			return nil
		}
	default:
		return nil
	}
	arr, ok := m["target"].([]any)
	if !ok || len(arr) != 3 {
		return nil
	}
	var v [3]float32
	for i, c := range arr {
		f, ok := c.(float64)
		if !ok {
			return nil
		}
		v[i] = float32(f)
	}
	t := math.Vec3FromArray(v)
	return &t
}

func (im *importer) bindSkins() error {
	cache := make(map[int]*scene.Skin)
	for _, ps := range im.skins {
		if ps.skin < 0 || ps.skin >= len(im.doc.Skins) {
			return fmt.Errorf("skin %d out of range", ps.skin)
		}
		skin, ok := cache[ps.skin]
		if !ok {
			var err error
			skin, err = im.readSkin(im.doc.Skins[ps.skin])
			if err != nil {
				return fmt.Errorf("skin %d: %w", ps.skin, err)
			}
			cache[ps.skin] = skin
		}
		im.graph.Node(ps.node).Skin = skin
	}
	im.asset.Stats.Skins = len(cache)
	return nil
}

func (im *importer) readSkin(gs *gltf.Skin) (*scene.Skin, error) {
	skin := &scene.Skin{}
	for _, j := range gs.Joints {
		id, ok := im.nodeIDs[j]
		if !ok {
			id = scene.NoNode
		}
		skin.Joints = append(skin.Joints, id)
	}
	if gs.InverseBindMatrices != nil {
		mats, err := im.readMat4(*gs.InverseBindMatrices)
		if err != nil {
			return nil, err
		}
		skin.InverseBind = mats
	}
	return skin, nil
}

func (im *importer) buildClips() error {
	for ai, ga := range im.doc.Animations {
		var tracks []*animation.Track
		for ci, ch := range ga.Channels {
			if ch.Target.Node == nil {
				continue
			}
			if ch.Sampler < 0 || ch.Sampler >= len(ga.Samplers) {
				return fmt.Errorf("animation %q channel %d: sampler %d out of range", ga.Name, ci, ch.Sampler)
			}
			id, ok := im.nodeIDs[*ch.Target.Node]
			if !ok {
				continue
			}
			prop, ok := trackProperty(ch.Target.Path)
			if !ok {
				continue
			}
			s := ga.Samplers[ch.Sampler]

			times, err := im.readFloats(s.Input)
			if err != nil {
				return fmt.Errorf("animation %q channel %d input: %w", ga.Name, ci, err)
			}
			values, err := im.readFloats(s.Output)
			if err != nil {
				return fmt.Errorf("animation %q channel %d output: %w", ga.Name, ci, err)
			}

			n := im.graph.Node(id)
			key := n.Name
			if key == "" {
				key = n.UUID
			}
			tr, err := animation.NewTrack(key, prop, times, values, trackInterpolation(s.Interpolation))
			if err != nil {
				im.log.Warn("skipping animation channel", zap.Int("animation", ai), zap.Int("channel", ci), zap.Error(err))
				continue
			}
			tracks = append(tracks, tr)
		}
		im.asset.Clips = append(im.asset.Clips, animation.NewClip(ga.Name, tracks))
	}
	return nil
}

func trackProperty(p gltf.TRSProperty) (animation.Property, bool) {
	switch p {
	case gltf.TRSTranslation:
		return animation.PropertyPosition, true
	case gltf.TRSRotation:
		return animation.PropertyQuaternion, true
	case gltf.TRSScale:
		return animation.PropertyScale, true
	case gltf.TRSWeights:
		return animation.PropertyMorphWeights, true
	}
	return 0, false
}

func trackInterpolation(i gltf.Interpolation) animation.Interpolation {
	switch i {
	case gltf.InterpolationStep:
		return animation.InterpolationStep
	case gltf.InterpolationCubicSpline:
		return animation.InterpolationCubicSpline
	}
	return animation.InterpolationLinear
}

func toFloat32(src []float64) []float32 {
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = float32(v)
	}
	return out
}
