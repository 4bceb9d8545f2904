package telemetry

import (
	"github.com/NeoLorenzo/eco-system-evolution/components"
)

const secondsPerDay = 86400.0

// PopulationSnapshot is the world state sampled at a window boundary.
// The orchestrator builds it from the live store so the telemetry package
// stays decoupled from the simulation core.
type PopulationSnapshot struct {
	SeedCount     int
	SeedlingCount int
	MatureCount   int
	AnimalCount   int

	// Energies holds every living plant's reserve, J. May be reused by
	// the caller between windows.
	Energies []float64
	Radii    []float64

	TotalCanopyArea float64
	TotalShadedArea float64
}

// Collector accumulates events between window boundaries and folds them
// with an end-of-window population snapshot into a WindowStats record.
type Collector struct {
	windowSeconds float64
	nextWindowEnd float64

	seedsDispersed int
	plantDeaths    int
	animalDeaths   int
	deathsByCause  [components.NumDeathCauses]int
}

// NewCollector creates a collector with the first window ending one
// window length after time zero.
func NewCollector(windowSeconds float64) *Collector {
	return &Collector{
		windowSeconds: windowSeconds,
		nextWindowEnd: windowSeconds,
	}
}

// RecordBirth counts a newborn organism.
func (c *Collector) RecordBirth(kind components.Kind) {
	if kind == components.KindPlant {
		c.seedsDispersed++
	}
}

// RecordDeath counts a death by kind and cause.
func (c *Collector) RecordDeath(kind components.Kind, cause components.DeathCause) {
	switch kind {
	case components.KindPlant:
		c.plantDeaths++
		if int(cause) < len(c.deathsByCause) {
			c.deathsByCause[cause]++
		}
	case components.KindAnimal:
		c.animalDeaths++
	}
}

// Due reports whether the current window has ended at the given sim time.
func (c *Collector) Due(now float64) bool {
	return now >= c.nextWindowEnd
}

// EndWindow closes the current window: the accumulated events and the
// snapshot become one WindowStats record, the counters reset, and the
// next window boundary advances past now.
func (c *Collector) EndWindow(now float64, snap PopulationSnapshot) WindowStats {
	mean, p10, p50, p90 := DistStats(snap.Energies)

	radiusMean := 0.0
	radiusMax := 0.0
	if len(snap.Radii) > 0 {
		sum := 0.0
		for _, r := range snap.Radii {
			sum += r
			if r > radiusMax {
				radiusMax = r
			}
		}
		radiusMean = sum / float64(len(snap.Radii))
	}

	shadedFrac := 0.0
	if snap.TotalCanopyArea > 0 {
		shadedFrac = snap.TotalShadedArea / snap.TotalCanopyArea
	}

	stats := WindowStats{
		WindowEndSec: now,
		SimDays:      now / secondsPerDay,

		SeedCount:     snap.SeedCount,
		SeedlingCount: snap.SeedlingCount,
		MatureCount:   snap.MatureCount,
		AnimalCount:   snap.AnimalCount,

		SeedsDispersed: c.seedsDispersed,
		PlantDeaths:    c.plantDeaths,
		AnimalDeaths:   c.animalDeaths,

		DeathStarvation:        c.deathsByCause[components.DeathStarvation],
		DeathDormancyFailure:   c.deathsByCause[components.DeathDormancyFailure],
		DeathPruningCollapse:   c.deathsByCause[components.DeathPruningCollapse],
		DeathStructuralFailure: c.deathsByCause[components.DeathStructuralFailure],
		DeathCoreCrush:         c.deathsByCause[components.DeathCoreCrush],
		DeathBeingEaten:        c.deathsByCause[components.DeathBeingEaten],
		DeathInvalidSoil:       c.deathsByCause[components.DeathInvalidSoil],

		EnergyMean: mean,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,

		RadiusMean:      radiusMean,
		RadiusMax:       radiusMax,
		TotalCanopyArea: snap.TotalCanopyArea,
		ShadedFraction:  shadedFrac,
	}

	c.seedsDispersed = 0
	c.plantDeaths = 0
	c.animalDeaths = 0
	c.deathsByCause = [components.NumDeathCauses]int{}
	for c.nextWindowEnd <= now {
		c.nextWindowEnd += c.windowSeconds
	}

	return stats
}
