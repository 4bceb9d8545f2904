package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/NeoLorenzo/eco-system-evolution/config"
	"github.com/NeoLorenzo/eco-system-evolution/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV telemetry and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxDays := flag.Int("max-days", 0, "Stop after N simulation days (0 = unlimited)")
	focus := flag.Uint("focus", 0, "Organism ID to trace at debug level (0 = none)")
	speed := flag.Int("speed", 0, "Initial speed level index")
	verbose := flag.Bool("v", false, "Debug-level logging")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	level := slog.LevelInfo
	if *verbose || *focus != 0 {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:       rngSeed,
		LogStats:   *logStats,
		FocusID:    uint32(*focus),
		OutputDir:  *outputDir,
		Headless:   *headless,
		SpeedIndex: *speed,
	}

	if *headless {
		g := game.NewGame(opts)
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"max_days", *maxDays,
		)

		for {
			g.UpdateHeadless()

			if *maxDays > 0 && g.Days() >= *maxDays {
				slog.Info("max days reached", "days", g.Days())
				return
			}
		}
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Ecosystem Evolution")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGame(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxDays > 0 && g.Days() >= *maxDays {
			break
		}
	}
}
