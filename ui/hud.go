// Package ui renders the heads-up display and the organism inspector.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the main HUD displays for one frame.
type HUDData struct {
	SimTimeSec  float64
	PlantCount  int
	AnimalCount int
	SpeedLabel  string
	FPS         int32
	Paused      bool
	ViewMode    string

	ScreenWidth  int32
	ScreenHeight int32
}

// HUDAction reports which HUD buttons were pressed this frame.
type HUDAction struct {
	TogglePause bool
	CycleView   bool
	SpeedUp     bool
	SpeedDown   bool
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD and returns any button actions.
func (h *HUD) Draw(data HUDData) HUDAction {
	rl.DrawText("Ecosystem Evolution", 10, 10, 20, rl.White)

	rl.DrawText(FormatSimTime(data.SimTimeSec), 10, 35, 16, rl.LightGray)
	rl.DrawText(
		fmt.Sprintf("Plants: %d | Animals: %d | FPS: %d",
			data.PlantCount, data.AnimalCount, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status := fmt.Sprintf("Speed: %s | View: %s", data.SpeedLabel, data.ViewMode)
	if data.Paused {
		status = "PAUSED | " + status
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)

	var action HUDAction
	y := float32(100)

	pauseLabel := "Pause"
	if data.Paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.NewRectangle(10, y, 80, 24), pauseLabel) {
		action.TogglePause = true
	}
	if gui.Button(rl.NewRectangle(95, y, 30, 24), "-") {
		action.SpeedDown = true
	}
	if gui.Button(rl.NewRectangle(130, y, 30, 24), "+") {
		action.SpeedUp = true
	}
	if gui.Button(rl.NewRectangle(165, y, 80, 24), "View") {
		action.CycleView = true
	}

	return action
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// FormatSpeed renders a sim-seconds-per-real-second multiplier compactly.
func FormatSpeed(mult float64) string {
	switch {
	case mult >= 2592000:
		return fmt.Sprintf("%gmo/s", mult/2592000)
	case mult >= 604800:
		return fmt.Sprintf("%gwk/s", mult/604800)
	case mult >= 86400:
		return fmt.Sprintf("%gd/s", mult/86400)
	case mult >= 3600:
		return fmt.Sprintf("%gh/s", mult/3600)
	case mult >= 60:
		return fmt.Sprintf("%gm/s", mult/60)
	default:
		return fmt.Sprintf("%gs/s", mult)
	}
}

// FormatSimTime renders simulation seconds as "Day N, HH:MM".
func FormatSimTime(sec float64) string {
	const secondsPerDay = 86400
	days := int(sec) / secondsPerDay
	rem := int(sec) % secondsPerDay
	hours := rem / 3600
	minutes := rem % 3600 / 60
	return fmt.Sprintf("Day %d, %02d:%02d", days+1, hours, minutes)
}
