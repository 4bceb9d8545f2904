package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// zoomWheelFactor is the zoom multiplier per scroll wheel notch.
const zoomWheelFactor = 1.15

// handleInput processes camera controls, speed keys and the click-picker.
func (g *Game) handleInput() {
	// Pan with either mouse button held and dragged.
	if rl.IsMouseButtonDown(rl.MouseRightButton) ||
		(rl.IsMouseButtonDown(rl.MouseLeftButton) && g.dragging()) {
		delta := rl.GetMouseDelta()
		g.cam.Pan(float64(-delta.X), float64(-delta.Y))
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := zoomWheelFactor
		if wheel < 0 {
			factor = 1 / zoomWheelFactor
		}
		mouse := rl.GetMousePosition()
		g.cam.ZoomAt(factor, float64(mouse.X), float64(mouse.Y))
	}

	// A left click that was not a drag picks the organism under the
	// cursor for the inspector and trace focus.
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && !g.dragging() {
		mouse := rl.GetMousePosition()
		wx, wy := g.cam.ScreenToWorld(float64(mouse.X), float64(mouse.Y))
		g.setFocus(g.world.FindOrganismAt(wx, wy, g.pickRadius()))
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		g.paused = !g.paused
	case rl.IsKeyPressed(rl.KeyV):
		g.viewMode = g.viewMode.Next()
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		g.changeSpeed(1)
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		g.changeSpeed(-1)
	case rl.IsKeyPressed(rl.KeyR):
		g.cam.Reset()
	case rl.IsKeyPressed(rl.KeyEscape):
		g.setFocus(nil)
	}
}

// dragging reports whether the mouse moved enough this frame to count as
// a drag rather than a click.
func (g *Game) dragging() bool {
	delta := rl.GetMouseDelta()
	return delta.X*delta.X+delta.Y*delta.Y > 4
}

// pickRadius is the click tolerance in world cm, wider when zoomed out so
// small organisms stay clickable.
func (g *Game) pickRadius() float64 {
	r := 8.0 / g.cam.Zoom
	if r < 25 {
		r = 25
	}
	return r
}
