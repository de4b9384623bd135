// Package mood holds the catalog of mood visualizations and the rotation
// selector that picks which one to show next.
package mood

import (
	"context"

	"github.com/mkarlsen/moodgraph/pkg/diagram"
)

// ID identifies a mood in the catalog.
type ID string

// Loader produces the displayable unit for a mood when it is mounted.
type Loader func(ctx context.Context) (*diagram.Diagram, error)

// Mood is one entry in the catalog: a stable ID, a display title, and the
// loader that yields its diagram.
type Mood struct {
	ID    ID
	Title string
	Load  Loader
}

// BuiltinCatalog returns the ordered catalog of built-in moods. The order
// is fixed: the selector's first pick is always the last entry.
func BuiltinCatalog() []Mood {
	wrap := func(build func() (*diagram.Diagram, error)) Loader {
		return func(ctx context.Context) (*diagram.Diagram, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return build()
		}
	}
	return []Mood{
		{ID: "flow", Title: "Flow", Load: wrap(diagram.NewFlow)},
		{ID: "orbit", Title: "Orbit", Load: wrap(diagram.NewOrbit)},
		{ID: "stack", Title: "Stack", Load: wrap(diagram.NewStack)},
		{ID: "mesh", Title: "Mesh", Load: wrap(diagram.NewMesh)},
		{ID: "pulse", Title: "Pulse", Load: wrap(diagram.NewPulse)},
	}
}
