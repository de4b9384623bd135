// Package diagram holds the draggable diagram model: positioned nodes,
// directed links, and the drag session state machine. Link paths are always
// derived from live node positions, never cached.
package diagram

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mkarlsen/moodgraph/pkg/geometry"
	"github.com/mkarlsen/moodgraph/pkg/logging"
)

// Canvas dimensions of the fixed-aspect virtual viewport, in canvas units.
const (
	CanvasW = 1000
	CanvasH = 600
)

// Diagram owns a node collection, the links between nodes, and at most one
// active drag session. All mutation goes through the drag operations and
// ApplyPositions; callers serialize access.
type Diagram struct {
	name  string
	nodes map[string]*Node
	order []string
	links []Link

	// Link structure mirrored into a gonum graph for degree and duplicate
	// edge bookkeeping.
	graph *simple.DirectedGraph
	ids   map[string]int64

	// Horizontal centering translation, derived once from the canonical
	// initial layout so it does not jitter as nodes are dragged.
	centering float64

	drag *dragSession
}

// dragSession records which node is grabbed and the pointer-to-origin
// offset at grab time, in canvas space.
type dragSession struct {
	nodeID string
	offset r2.Vec
}

// New builds a diagram from a canonical layout. Node IDs must be unique.
// Links referencing unknown nodes are dropped with a warning rather than
// failing: a layout with a stale link still renders.
func New(name string, nodes []Node, links []Link) (*Diagram, error) {
	d := &Diagram{
		name:  name,
		nodes: make(map[string]*Node, len(nodes)),
		order: make([]string, 0, len(nodes)),
		graph: simple.NewDirectedGraph(),
		ids:   make(map[string]int64, len(nodes)),
	}

	for i := range nodes {
		n := nodes[i]
		if _, exists := d.nodes[n.ID]; exists {
			return nil, fmt.Errorf("diagram %s: duplicate node id %q", name, n.ID)
		}
		d.nodes[n.ID] = &n
		d.order = append(d.order, n.ID)

		id := int64(len(d.ids))
		d.ids[n.ID] = id
		d.graph.AddNode(simple.Node(id))
	}

	for _, l := range links {
		if !d.registerLink(l) {
			continue
		}
		d.links = append(d.links, l)
	}

	d.centering = centeringOffset(CanvasW, nodes)
	return d, nil
}

// registerLink records the link in the gonum graph. Unknown endpoints,
// self-loops, and duplicate edges are rejected.
func (d *Diagram) registerLink(l Link) bool {
	from, okFrom := d.ids[l.From]
	to, okTo := d.ids[l.To]
	if !okFrom || !okTo {
		logging.Warn("dropping link with unknown endpoint", "diagram", d.name, "from", l.From, "to", l.To)
		return false
	}
	if from == to {
		logging.Warn("dropping self-referencing link", "diagram", d.name, "node", l.From)
		return false
	}
	if d.graph.HasEdgeFromTo(from, to) {
		logging.Warn("dropping duplicate link", "diagram", d.name, "from", l.From, "to", l.To)
		return false
	}
	d.graph.SetEdge(d.graph.NewEdge(simple.Node(from), simple.Node(to)))
	return true
}

// centeringOffset computes the horizontal translation that centers the
// canonical layout: (canvasWidth - contentWidth)/2 - minX.
func centeringOffset(canvasW float64, nodes []Node) float64 {
	if len(nodes) == 0 {
		return 0
	}
	minX := nodes[0].X
	maxX := nodes[0].X + nodes[0].W
	for _, n := range nodes[1:] {
		if n.X < minX {
			minX = n.X
		}
		if right := n.X + n.W; right > maxX {
			maxX = right
		}
	}
	return (canvasW-(maxX-minX))/2 - minX
}

// Name returns the diagram's mood name.
func (d *Diagram) Name() string { return d.name }

// Centering returns the horizontal centering translation in canvas units.
func (d *Diagram) Centering() float64 { return d.centering }

// BeginDrag starts a drag session for the given node, recording the offset
// between the canvas-space pointer and the node's origin. The x component
// is taken after undoing the centering translation. Overwrites any prior
// session. Unknown nodes are a no-op: pointer events may race a mood
// switch, and a missed grab beats a crash.
func (d *Diagram) BeginDrag(nodeID string, pointer r2.Vec) {
	n, ok := d.nodes[nodeID]
	if !ok {
		logging.Debug("ignoring drag on unknown node", "diagram", d.name, "node", nodeID)
		return
	}
	d.drag = &dragSession{
		nodeID: nodeID,
		offset: r2.Vec{X: pointer.X - d.centering - n.X, Y: pointer.Y - n.Y},
	}
}

// UpdateDrag moves the grabbed node so it keeps its grab offset under the
// pointer: new origin = pointer - offset, with the centering translation
// removed from x. Exactly one node mutates per call. No-op without an
// active session.
func (d *Diagram) UpdateDrag(pointer r2.Vec) {
	if d.drag == nil {
		return
	}
	n, ok := d.nodes[d.drag.nodeID]
	if !ok {
		return
	}
	n.X = pointer.X - d.centering - d.drag.offset.X
	n.Y = pointer.Y - d.drag.offset.Y
}

// EndDrag clears the drag session. Unconditional and idempotent.
func (d *Diagram) EndDrag() {
	d.drag = nil
}

// Dragging reports the grabbed node, if any.
func (d *Diagram) Dragging() (string, bool) {
	if d.drag == nil {
		return "", false
	}
	return d.drag.nodeID, true
}

// Node returns the live node for an ID.
func (d *Diagram) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Degree returns the number of links touching a node, in either direction.
func (d *Diagram) Degree(nodeID string) int {
	id, ok := d.ids[nodeID]
	if !ok {
		return 0
	}
	return d.graph.From(id).Len() + d.graph.To(id).Len()
}

// ResolvePath routes the connector for a link against the endpoints'
// current rectangles. Recomputed on every call: positions change
// continuously during a drag. Reports false when either endpoint is
// missing.
func (d *Diagram) ResolvePath(l Link) (geometry.Path, bool) {
	from, okFrom := d.nodes[l.From]
	to, okTo := d.nodes[l.To]
	if !okFrom || !okTo {
		return geometry.Path{}, false
	}
	return geometry.ResolvePath(from.Rect(), to.Rect()), true
}
