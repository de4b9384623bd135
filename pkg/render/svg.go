// Package render draws diagram snapshots to SVG for the snapshot endpoint.
// The interactive page paints its own DOM from JSON; this renderer only has
// to agree with it on geometry, which both take from the same snapshot.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/mkarlsen/moodgraph/pkg/diagram"
)

// Dark palette shared with the web page.
const (
	colorBackground = "#1e1e2e"
	colorNodeFill   = "#2a2a3e"
	colorNodeEdge   = "#6b80bf"
	colorGlow       = "#50fa7b"
	colorLink       = "#6b80bf"
	colorTitle      = "#f8f8f2"
	colorSubtitle   = "#a0a0b0"
)

// WriteSVG renders a snapshot. One path per non-excluded link; nodes as
// rounded rectangles styled by kind.
func WriteSVG(w io.Writer, snap diagram.Snapshot) {
	canvas := svg.New(w)
	width, height := int(snap.Canvas[0]), int(snap.Canvas[1])
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+colorBackground)

	// Content is drawn in canonical layout coordinates inside a centering
	// translation, mirroring the web page.
	canvas.Gtransform(fmt.Sprintf("translate(%.1f,0)", snap.Centering))

	// Links below nodes.
	for _, l := range snap.Links {
		if l.Excluded {
			continue
		}
		stroke := colorLink
		if l.Color != "" {
			stroke = l.Color
		}
		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", stroke)
		if l.Dashed {
			style += ";stroke-dasharray:6 4"
		}
		canvas.Path(l.D, style)
	}

	for _, n := range snap.Nodes {
		drawNode(canvas, n)
	}

	canvas.Gend()
	canvas.End()
}

func drawNode(canvas *svg.SVG, n diagram.NodeView) {
	x, y := int(n.X), int(n.Y)
	w, h := int(n.W), int(n.H)

	if n.Kind == diagram.KindGlow {
		// Soft halo behind the card.
		canvas.Roundrect(x-6, y-6, w+12, h+12, 18, 18,
			fmt.Sprintf("fill:%s;fill-opacity:0.25", colorGlow))
	}

	radius := 12
	if n.Kind == diagram.KindShape {
		radius = 2
	}
	canvas.Roundrect(x, y, w, h, radius, radius,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", colorNodeFill, colorNodeEdge))

	if n.Kind == diagram.KindIcon {
		scale := n.IconScale
		if scale == 0 {
			scale = 1
		}
		r := int(16 * scale)
		canvas.Circle(x+w/2, y+h/3, r,
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", colorNodeEdge))
	}

	canvas.Text(x+w/2, y+h/2,
		n.Label,
		fmt.Sprintf("fill:%s;font-size:18px;font-family:system-ui,sans-serif;text-anchor:middle", colorTitle))
	canvas.Text(x+w/2, y+h/2+22,
		n.Title,
		fmt.Sprintf("fill:%s;font-size:12px;font-family:system-ui,sans-serif;text-anchor:middle", colorSubtitle))
	if n.Subtitle != "" {
		canvas.Text(x+w/2, y+h/2+38,
			n.Subtitle,
			fmt.Sprintf("fill:%s;font-size:10px;font-family:system-ui,sans-serif;text-anchor:middle", colorSubtitle))
	}
}
