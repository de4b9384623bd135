package diagram

// Canonical layouts for the built-in moods. Positions are canvas units on
// the 1000x600 virtual viewport; the centering offset derived from each
// layout shifts it to the horizontal middle at render time.

// NewFlow is a left-to-right pipeline of three stages.
func NewFlow() (*Diagram, error) {
	return New("flow",
		[]Node{
			{ID: "source", Title: "Source", Label: "SRC", Subtitle: "where it begins", X: 0, Y: 100, W: 156, H: 176, Kind: KindIcon, IconScale: 1.2},
			{ID: "filter", Title: "Filter", Label: "FLT", X: 405, Y: 100, W: 156, H: 176, Kind: KindShape},
			{ID: "sink", Title: "Sink", Label: "SNK", Subtitle: "where it lands", X: 810, Y: 100, W: 156, H: 176, Kind: KindGlow},
		},
		[]Link{
			{From: "source", To: "filter"},
			{From: "filter", To: "sink"},
			{From: "source", To: "sink", Dashed: true, Color: "#bd93f9"},
		})
}

// NewOrbit is a hub with satellites on each side.
func NewOrbit() (*Diagram, error) {
	return New("orbit",
		[]Node{
			{ID: "core", Title: "Core", Label: "CORE", X: 420, Y: 230, W: 160, H: 140, Kind: KindGlow},
			{ID: "north", Title: "North", Label: "N", X: 430, Y: 20, W: 140, H: 110, Kind: KindIcon},
			{ID: "south", Title: "South", Label: "S", X: 430, Y: 460, W: 140, H: 110, Kind: KindIcon},
			{ID: "east", Title: "East", Label: "E", X: 800, Y: 245, W: 140, H: 110, Kind: KindShape},
			{ID: "west", Title: "West", Label: "W", X: 60, Y: 245, W: 140, H: 110, Kind: KindShape},
		},
		[]Link{
			{From: "core", To: "north"},
			{From: "core", To: "south"},
			{From: "core", To: "east", Dashed: true},
			{From: "core", To: "west", Dashed: true},
		})
}

// NewStack is a vertical tower with a detached annotation.
func NewStack() (*Diagram, error) {
	return New("stack",
		[]Node{
			{ID: "top", Title: "Surface", Label: "UI", X: 380, Y: 30, W: 240, H: 120, Kind: KindIcon},
			{ID: "mid", Title: "Logic", Label: "APP", X: 380, Y: 240, W: 240, H: 120, Kind: KindShape},
			{ID: "base", Title: "Bedrock", Label: "DB", X: 380, Y: 450, W: 240, H: 120, Kind: KindGlow},
			{ID: "aside", Title: "Margin note", Label: "PS", Subtitle: "decorative", X: 40, Y: 240, W: 150, H: 120, Kind: KindIcon, IconScale: 0.8},
		},
		[]Link{
			{From: "top", To: "mid"},
			{From: "mid", To: "base"},
			{From: "aside", To: "mid", Dashed: true, Excluded: true},
		})
}

// NewMesh is four corners, fully cross-linked.
func NewMesh() (*Diagram, error) {
	return New("mesh",
		[]Node{
			{ID: "nw", Title: "Northwest", Label: "NW", X: 80, Y: 60, W: 150, H: 130, Kind: KindShape},
			{ID: "ne", Title: "Northeast", Label: "NE", X: 770, Y: 60, W: 150, H: 130, Kind: KindShape},
			{ID: "sw", Title: "Southwest", Label: "SW", X: 80, Y: 410, W: 150, H: 130, Kind: KindIcon},
			{ID: "se", Title: "Southeast", Label: "SE", X: 770, Y: 410, W: 150, H: 130, Kind: KindIcon},
		},
		[]Link{
			{From: "nw", To: "ne"},
			{From: "ne", To: "se"},
			{From: "se", To: "sw"},
			{From: "sw", To: "nw"},
			{From: "nw", To: "se", Dashed: true, Color: "#8be9fd"},
			{From: "ne", To: "sw", Dashed: true, Color: "#8be9fd"},
		})
}

// NewPulse is a single emitter and a wide receiver below it.
func NewPulse() (*Diagram, error) {
	return New("pulse",
		[]Node{
			{ID: "emitter", Title: "Emitter", Label: "TX", X: 400, Y: 60, W: 200, H: 150, Kind: KindGlow, IconScale: 1.5},
			{ID: "receiver", Title: "Receiver", Label: "RX", X: 300, Y: 380, W: 400, H: 150, Kind: KindShape},
		},
		[]Link{
			{From: "emitter", To: "receiver"},
		})
}
