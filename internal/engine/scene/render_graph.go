package scene

// RenderGraph is the set of model graphs drawn each frame.
type RenderGraph struct {
	graphs []*Graph
}

// Attach adds g to the render graph. Attaching twice is a no-op.
func (r *RenderGraph) Attach(g *Graph) {
	for _, existing := range r.graphs {
		if existing == g {
			return
		}
	}
	r.graphs = append(r.graphs, g)
}

// Detach removes g from the render graph and reports whether it was attached.
func (r *RenderGraph) Detach(g *Graph) bool {
	for i, existing := range r.graphs {
		if existing == g {
			r.graphs = append(r.graphs[:i], r.graphs[i+1:]...)
			return true
		}
	}
	return false
}

// Graphs returns the attached graphs in draw order.
func (r *RenderGraph) Graphs() []*Graph {
	return r.graphs
}

// NodeCount returns the number of reachable nodes across all attached graphs.
func (r *RenderGraph) NodeCount() int {
	total := 0
	for _, g := range r.graphs {
		total += g.Len()
	}
	return total
}
