package game

import (
	"log/slog"
	"math"

	"github.com/NeoLorenzo/eco-system-evolution/components"
	"github.com/NeoLorenzo/eco-system-evolution/config"
	"github.com/NeoLorenzo/eco-system-evolution/systems"
)

// seedFoundingPopulation places the configured founding seeds and animals.
// Seeds go on viable ground near the world center so a fresh run does not
// depend on noise-seed luck; the search spirals outward in growing rings
// until enough viable spots are found.
func (w *World) seedFoundingPopulation() {
	cfg := config.Cfg()
	cx := cfg.World.WidthCM / 2
	cy := cfg.World.HeightCM / 2

	placed := 0
	for ring := 0; placed < cfg.World.InitialPlants && ring < 200; ring++ {
		attempts := 1 + ring*6
		radius := float64(ring) * 500.0
		for a := 0; a < attempts && placed < cfg.World.InitialPlants; a++ {
			theta := w.rng.Float64() * 2 * math.Pi
			x := cx + math.Cos(theta)*radius
			y := cy + math.Sin(theta)*radius
			if systems.SoilTypeAt(w.env.Elevation(x, y)) == components.SoilNone {
				continue
			}

			seed := systems.NewSeed(w.store, w.env, x, y, cfg.World.InitialEnergy)
			w.scheduleFor(seed)
			placed++

			slog.Info("founding seed placed",
				"id", seed.ID(), "x", x, "y", y,
				"soil", seed.Soil().String())
		}
	}
	if placed < cfg.World.InitialPlants {
		slog.Warn("could not place all founding seeds",
			"requested", cfg.World.InitialPlants, "placed", placed)
	}

	for i := 0; i < cfg.World.InitialAnimals; i++ {
		x := cx + (w.rng.Float64()-0.5)*cfg.World.WidthCM*0.1
		y := cy + (w.rng.Float64()-0.5)*cfg.World.HeightCM*0.1
		animal := systems.NewAnimal(x, y, cfg.World.InitialEnergy,
			w.rng.Float64()*2*math.Pi)
		w.animals = append(w.animals, animal)
		w.scheduleFor(animal)
	}
}
