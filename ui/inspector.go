package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/NeoLorenzo/eco-system-evolution/components"
	"github.com/NeoLorenzo/eco-system-evolution/systems"
)

// Inspector renders a panel with the focused organism's live state.
type Inspector struct {
	x, y  int32
	width int32
}

// NewInspector creates an inspector panel anchored at the given position.
func NewInspector(x, y int32) *Inspector {
	return &Inspector{x: x, y: y, width: 280}
}

// Draw renders the panel for the focused organism. A nil organism draws
// nothing, a dead one a short notice.
func (in *Inspector) Draw(o systems.Organism) {
	if o == nil {
		return
	}

	height := int32(190)
	rl.DrawRectangle(in.x, in.y, in.width, height, rl.NewColor(20, 20, 28, 210))
	rl.DrawRectangleLines(in.x, in.y, in.width, height, rl.Gray)

	x := in.x + 8
	y := in.y + 8
	line := func(text string, color rl.Color) {
		rl.DrawText(text, x, y, 14, color)
		y += 18
	}

	line(fmt.Sprintf("Organism #%d (%s)", o.ID(), o.Kind()), rl.White)
	if !o.IsAlive() {
		line("dead", rl.Red)
		return
	}

	switch v := o.(type) {
	case *systems.Plant:
		line(fmt.Sprintf("Stage: %s | Soil: %s", v.Stage(), v.Soil()), rl.LightGray)
		line(fmt.Sprintf("Age: %.1f days", v.Age()/86400), rl.LightGray)
		line(fmt.Sprintf("Energy: %.0f J", v.Energy()), rl.LightGray)
		if v.Stage() != components.StageSeed {
			line(fmt.Sprintf("Canopy: %.1f cm | Height: %.1f cm", v.Radius(), v.Height()), rl.LightGray)
			line(fmt.Sprintf("Root: %.1f cm | Core: %.2f cm", v.RootRadius(), v.CoreRadius()), rl.LightGray)
			line(fmt.Sprintf("Organs: %d", len(v.Organs())), rl.LightGray)
			shaded := v.ShadedArea()
			line(fmt.Sprintf("Shaded: %.0f cm2", shaded), rl.LightGray)
		}
	case *systems.Animal:
		line(fmt.Sprintf("Energy: %.0f J", v.Energy()), rl.LightGray)
	}
}
