package viewer

import "github.com/Faultbox/gltf-viewer/internal/engine/scene"

// TreeEntry is one row of the flattened structure tree.
type TreeEntry struct {
	ID       scene.NodeID
	Label    string
	Depth    int
	Animated bool
}

// StructureTree flattens the model hierarchy in pre-order. An entry is
// Animated when some clip has a track named "<node name>.<property>".
func (v *Viewer) StructureTree() []TreeEntry {
	if v.model == nil {
		return nil
	}
	var out []TreeEntry
	v.model.Graph.Walk(v.model.Root, func(n *scene.Node, depth int) bool {
		out = append(out, TreeEntry{
			ID:       n.ID,
			Label:    n.Label(),
			Depth:    depth,
			Animated: v.animated(n.Name),
		})
		return true
	})
	return out
}

func (v *Viewer) animated(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range v.clips {
		if c.TargetsNode(name) {
			return true
		}
	}
	return false
}
