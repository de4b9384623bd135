package diagram

import (
	"fmt"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Position is a node position override in canvas units.
type Position struct {
	X float64 `koanf:"x"`
	Y float64 `koanf:"y"`
}

// LoadOverride reads a TOML layout override file mapping node IDs to
// positions:
//
//	[nodes.source]
//	x = 120
//	y = 40
func LoadOverride(path string) (map[string]Position, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("loading layout override %s: %w", path, err)
	}

	var override struct {
		Nodes map[string]Position `koanf:"nodes"`
	}
	if err := k.Unmarshal("", &override); err != nil {
		return nil, fmt.Errorf("parsing layout override %s: %w", path, err)
	}
	return override.Nodes, nil
}

// ApplyPositions moves the named nodes to the given positions. Unknown IDs
// are skipped: an override file may mention nodes from another mood.
// The centering offset stays as computed from the canonical layout.
func (d *Diagram) ApplyPositions(positions map[string]Position) int {
	applied := 0
	for id, p := range positions {
		n, ok := d.nodes[id]
		if !ok {
			continue
		}
		n.X = p.X
		n.Y = p.Y
		applied++
	}
	return applied
}
