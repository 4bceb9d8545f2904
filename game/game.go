package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/NeoLorenzo/eco-system-evolution/camera"
	"github.com/NeoLorenzo/eco-system-evolution/config"
	"github.com/NeoLorenzo/eco-system-evolution/renderer"
	"github.com/NeoLorenzo/eco-system-evolution/systems"
	"github.com/NeoLorenzo/eco-system-evolution/telemetry"
	"github.com/NeoLorenzo/eco-system-evolution/ui"
)

// speedLevels are the selectable sim-seconds-per-real-second multipliers,
// from real time up to a month per second.
var speedLevels = []float64{1, 10, 60, 600, 3600, 21600, 86400, 604800, 2592000}

// headlessStepSeconds is the sim time advanced per UpdateHeadless call.
// One day keeps the outer loop responsive to max-days limits without
// paying per-frame overhead every plant tick.
const headlessStepSeconds = 86400.0

// Options configures a new game.
type Options struct {
	Seed       int64
	LogStats   bool
	FocusID    uint32
	OutputDir  string
	Headless   bool
	SpeedIndex int
}

// Game owns the world plus all presentation state.
type Game struct {
	world  *World
	output *telemetry.OutputManager
	trace  *systems.FocusTrace

	cam     *camera.Camera
	terrain *renderer.TerrainRenderer
	hud     *ui.HUD
	insp    *ui.Inspector

	viewMode   renderer.ViewMode
	speedIndex int
	paused     bool
	focus      systems.Organism
	headless   bool
}

// NewGame creates a fully initialized game.
func NewGame(opts Options) *Game {
	cfg := config.Cfg()

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("telemetry output disabled", "error", err)
		output = nil
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("writing config snapshot", "error", err)
	}

	// The sink is always a FocusTrace so the click-picker can retarget
	// it at runtime; with focus id 0 it matches nothing.
	trace := systems.NewFocusTrace(opts.FocusID, nil)

	world := NewWorld(opts.Seed, trace, output, opts.LogStats)

	g := &Game{
		world:      world,
		output:     output,
		trace:      trace,
		speedIndex: opts.SpeedIndex,
		headless:   opts.Headless,
	}
	if g.speedIndex < 0 || g.speedIndex >= len(speedLevels) {
		g.speedIndex = 0
	}

	if !opts.Headless {
		g.cam = camera.New(
			float64(cfg.Screen.Width), float64(cfg.Screen.Height),
			cfg.World.WidthCM, cfg.World.HeightCM)
		g.terrain = renderer.NewTerrainRenderer(world.Env())
		g.hud = ui.NewHUD()
		g.insp = ui.NewInspector(int32(cfg.Screen.Width)-290, 10)
	}

	return g
}

// Now returns the simulation clock, sim seconds.
func (g *Game) Now() float64 { return g.world.Now() }

// Days returns whole elapsed simulation days.
func (g *Game) Days() int { return int(g.world.Now() / 86400) }

// Update handles one graphical frame: input, then simulation advance
// scaled by the current speed level.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	frame := float64(rl.GetFrameTime())
	// A dragged window or debugger pause produces a huge frame delta;
	// don't turn it into a simulation lurch.
	if frame > 0.25 {
		frame = 0.25
	}
	g.world.Advance(frame * speedLevels[g.speedIndex])
}

// UpdateHeadless advances the simulation by one headless step.
func (g *Game) UpdateHeadless() {
	g.world.Advance(headlessStepSeconds)
}

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.terrain.Draw(g.cam, g.viewMode)

	var focusID uint32
	if g.focus != nil {
		focusID = g.focus.ID()
	}
	renderer.DrawPlants(g.world.Store(), g.cam, focusID)
	renderer.DrawAnimals(g.world.Animals(), g.cam, focusID)

	plants, animals := g.world.PopulationCounts()
	cfg := config.Cfg()
	action := g.hud.Draw(ui.HUDData{
		SimTimeSec:   g.world.Now(),
		PlantCount:   plants,
		AnimalCount:  animals,
		SpeedLabel:   g.speedLabel(),
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ViewMode:     g.viewMode.String(),
		ScreenWidth:  int32(cfg.Screen.Width),
		ScreenHeight: int32(cfg.Screen.Height),
	})
	g.applyHUDAction(action)

	g.insp.Draw(g.focus)
	g.hud.DrawControls(int32(cfg.Screen.Width), int32(cfg.Screen.Height),
		"Drag: pan | Wheel: zoom | Click: inspect | Space: pause | V: view | +/-: speed | R: reset camera")

	rl.EndDrawing()
}

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.terrain != nil {
		g.terrain.Unload()
	}
	if err := g.output.Close(); err != nil {
		slog.Error("closing telemetry output", "error", err)
	}
}

// setFocus points the inspector and the trace sink at one organism;
// nil clears both. Trace output is at debug level, so it is only
// visible when the logger runs at that level (-v or -focus).
func (g *Game) setFocus(o systems.Organism) {
	g.focus = o
	if o != nil {
		g.trace.FocusID = o.ID()
	} else {
		g.trace.FocusID = 0
	}
}

func (g *Game) speedLabel() string {
	return ui.FormatSpeed(speedLevels[g.speedIndex])
}

func (g *Game) applyHUDAction(action ui.HUDAction) {
	if action.TogglePause {
		g.paused = !g.paused
	}
	if action.CycleView {
		g.viewMode = g.viewMode.Next()
	}
	if action.SpeedUp {
		g.changeSpeed(1)
	}
	if action.SpeedDown {
		g.changeSpeed(-1)
	}
}

func (g *Game) changeSpeed(delta int) {
	next := g.speedIndex + delta
	if next < 0 || next >= len(speedLevels) {
		return
	}
	g.speedIndex = next
	slog.Info("speed changed", "multiplier", speedLevels[g.speedIndex])
}
