package render

import (
	"strings"
	"testing"

	"github.com/mkarlsen/moodgraph/pkg/diagram"
)

func TestWriteSVG(t *testing.T) {
	d, err := diagram.NewFlow()
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}
	snap := d.Snapshot()

	var sb strings.Builder
	WriteSVG(&sb, snap)
	out := sb.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("Output is not an SVG document")
	}

	// One path per non-excluded link.
	visible := 0
	for _, l := range snap.Links {
		if !l.Excluded {
			visible++
		}
	}
	if got := strings.Count(out, "<path"); got != visible {
		t.Errorf("Expected %d paths, got %d", visible, got)
	}

	// Dashed links carry a dash array.
	if !strings.Contains(out, "stroke-dasharray") {
		t.Error("Expected a dashed link in the flow layout")
	}

	// Node labels present.
	for _, n := range snap.Nodes {
		if !strings.Contains(out, n.Label) {
			t.Errorf("Label %q missing from SVG", n.Label)
		}
	}
}

func TestWriteSVGExcludedLinksSkipped(t *testing.T) {
	d, err := diagram.New("x",
		[]diagram.Node{
			{ID: "a", Label: "A", X: 0, Y: 0, W: 100, H: 100, Kind: diagram.KindShape},
			{ID: "b", Label: "B", X: 300, Y: 0, W: 100, H: 100, Kind: diagram.KindShape},
		},
		[]diagram.Link{{From: "a", To: "b", Excluded: true}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var sb strings.Builder
	WriteSVG(&sb, d.Snapshot())

	if strings.Contains(sb.String(), "<path") {
		t.Error("Excluded link was rendered")
	}
}
