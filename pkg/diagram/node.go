package diagram

import (
	"github.com/mkarlsen/moodgraph/pkg/geometry"
)

// Kind selects the visual treatment for a node.
type Kind string

const (
	KindIcon  Kind = "icon"
	KindShape Kind = "shape"
	KindGlow  Kind = "glow"
)

// Node is a positioned diagram element. Nodes are created once from a
// canonical layout; only the position mutates afterwards (by drags or
// layout overrides). Nodes are never added or removed at runtime.
type Node struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Label     string  `json:"label"`
	Subtitle  string  `json:"subtitle,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Kind      Kind    `json:"kind"`
	IconScale float64 `json:"iconScale,omitempty"`
}

// Rect returns the node's current rectangle in canvas units.
func (n *Node) Rect() geometry.Rect {
	return geometry.Rect{X: n.X, Y: n.Y, W: n.W, H: n.H}
}

// Link is a directed connection between two nodes, referenced by ID.
// Immutable after creation; its rendered path is derived from the live
// positions of its endpoints.
type Link struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Dashed   bool   `json:"dashed,omitempty"`
	Excluded bool   `json:"excluded,omitempty"`
	Color    string `json:"color,omitempty"`
}
