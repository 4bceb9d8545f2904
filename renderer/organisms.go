package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/NeoLorenzo/eco-system-evolution/camera"
	"github.com/NeoLorenzo/eco-system-evolution/components"
	"github.com/NeoLorenzo/eco-system-evolution/config"
	"github.com/NeoLorenzo/eco-system-evolution/systems"
)

// energyColorScale is the reserve level, J, rendered as a fully vigorous
// canopy. Canopies fade toward yellow as reserves drop below it.
const energyColorScale = 20000.0

// DrawPlants renders every visible plant: root disc, canopy tinted by
// energy, core, and reproductive organs. focusID (0 = none) gets a ring.
func DrawPlants(store *systems.PlantStore, cam *camera.Camera, focusID uint32) {
	for _, p := range store.Rows() {
		if p == nil || !p.IsAlive() {
			continue
		}
		x, y := p.Position()

		if p.Stage() == components.StageSeed {
			drawSeed(cam, x, y, p.ID() == focusID)
			continue
		}

		radius := p.Radius()
		if !cam.IsVisible(x, y, radius+p.RootRadius()) {
			continue
		}
		sx, sy := cam.WorldToScreen(x, y)
		center := rl.NewVector2(float32(sx), float32(sy))

		// Roots first, faint, then canopy on top.
		rootPx := float32(p.RootRadius() * cam.Zoom)
		if rootPx > 1 {
			rl.DrawCircleV(center, rootPx, rl.NewColor(110, 80, 50, 60))
		}

		canopyPx := float32(radius * cam.Zoom)
		if canopyPx < 1 {
			canopyPx = 1
		}
		rl.DrawCircleV(center, canopyPx, canopyColor(p.Energy()))

		corePx := float32(p.CoreRadius() * cam.Zoom)
		if corePx >= 0.5 {
			rl.DrawCircleV(center, corePx, rl.NewColor(60, 42, 26, 255))
		}

		drawOrgans(cam, p)

		if p.ID() == focusID {
			rl.DrawCircleLinesV(center, canopyPx+4, rl.Yellow)
		}
	}
}

// drawSeed renders a dormant seed as a small fixed-size marker.
func drawSeed(cam *camera.Camera, x, y float64, focused bool) {
	if !cam.IsVisible(x, y, 1) {
		return
	}
	sx, sy := cam.WorldToScreen(x, y)
	center := rl.NewVector2(float32(sx), float32(sy))
	rl.DrawCircleV(center, 2, rl.NewColor(150, 120, 60, 255))
	if focused {
		rl.DrawCircleLinesV(center, 6, rl.Yellow)
	}
}

// drawOrgans renders flowers (white) and fruits (red) at their canopy
// offsets, only when zoomed in enough for them to be distinguishable.
func drawOrgans(cam *camera.Camera, p *systems.Plant) {
	if cam.Zoom < 0.2 {
		return
	}
	x, y := p.Position()
	for _, organ := range p.Organs() {
		sx, sy := cam.WorldToScreen(x+organ.OffsetX, y+organ.OffsetY)
		pos := rl.NewVector2(float32(sx), float32(sy))
		if organ.Type == components.OrganFlower {
			rl.DrawCircleV(pos, 2, rl.RayWhite)
		} else {
			rl.DrawCircleV(pos, 2.5, rl.NewColor(200, 40, 50, 255))
		}
	}
}

// canopyColor fades from vigorous green to starved yellow with reserves.
func canopyColor(energy float64) rl.Color {
	v := clamp01(energy / energyColorScale)
	r := uint8(170 - 120*v)
	g := uint8(120 + 60*v)
	return rl.NewColor(r, g, 40, 220)
}

// DrawAnimals renders every visible grazer.
func DrawAnimals(animals []*systems.Animal, cam *camera.Camera, focusID uint32) {
	size := config.Cfg().Animal.WidthCM
	for _, a := range animals {
		if !a.IsAlive() {
			continue
		}
		x, y := a.Position()
		if !cam.IsVisible(x, y, size) {
			continue
		}
		sx, sy := cam.WorldToScreen(x, y)
		center := rl.NewVector2(float32(sx), float32(sy))

		px := float32(size * cam.Zoom)
		if px < 2 {
			px = 2
		}
		rl.DrawCircleV(center, px, rl.NewColor(235, 235, 235, 255))
		if a.ID() == focusID {
			rl.DrawCircleLinesV(center, px+4, rl.Yellow)
		}
	}
}
