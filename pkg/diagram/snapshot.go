package diagram

// NodeView is a node as exposed to rendering layers, with its link degree.
type NodeView struct {
	Node
	Degree int `json:"degree"`
}

// LinkView is a link with its connector path resolved against current node
// positions.
type LinkView struct {
	Link
	D string `json:"d"`
}

// Snapshot is a point-in-time copy of the diagram for rendering. The
// drawing layer owns pixels; the model only hands over rectangles and
// resolved paths.
type Snapshot struct {
	Name      string     `json:"name"`
	Canvas    [2]float64 `json:"canvas"`
	Centering float64    `json:"centering"`
	Nodes     []NodeView `json:"nodes"`
	Links     []LinkView `json:"links"`
}

// Snapshot captures the current node rectangles and re-resolves every link
// path. Nodes are copied so readers never alias live drag state.
func (d *Diagram) Snapshot() Snapshot {
	s := Snapshot{
		Name:      d.name,
		Canvas:    [2]float64{CanvasW, CanvasH},
		Centering: d.centering,
		Nodes:     make([]NodeView, 0, len(d.order)),
		Links:     make([]LinkView, 0, len(d.links)),
	}
	for _, id := range d.order {
		n := d.nodes[id]
		s.Nodes = append(s.Nodes, NodeView{Node: *n, Degree: d.Degree(id)})
	}
	for _, l := range d.links {
		p, ok := d.ResolvePath(l)
		if !ok {
			continue
		}
		s.Links = append(s.Links, LinkView{Link: l, D: p.SVG()})
	}
	return s
}
