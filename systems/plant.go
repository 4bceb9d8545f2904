package systems

import (
	"math"
	"sync/atomic"

	"github.com/NeoLorenzo/eco-system-evolution/components"
	"github.com/NeoLorenzo/eco-system-evolution/config"
)

// nextOrganismID hands out run-unique IDs across all organism kinds.
var nextOrganismID atomic.Uint32

// NewOrganismID returns the next unused organism ID.
func NewOrganismID() uint32 {
	return nextOrganismID.Add(1)
}

// Plant is a sessile organism backed by a row in the PlantStore. The
// struct carries only the cold state (identity, stage, genes, organs);
// all hot numeric state lives in the store's columns and is reached
// through Index.
type Plant struct {
	// Index is the plant's current row in the store. Reassigned by
	// swap-remove; -1 once the row has been released.
	Index int

	id    uint32
	store *PlantStore
	x, y  float64 // fixed at creation, mirrored in the store columns

	stage components.LifeStage
	genes components.PlantGenes
	soil  components.SoilType

	alive          bool
	selfSufficient bool // has ever closed a tick energy-positive

	// morphFactor is the current radius-to-height multiplier. It creeps
	// from the open-ground value toward the max-shade value while the
	// canopy is substantially shaded, making crowded plants grow taller
	// per unit radius.
	morphFactor float64

	// coreGrowthAccum is core radius grown since the last crush check, cm.
	coreGrowthAccum float64

	organs []components.ReproductiveOrgan
}

// defaultGenes builds the configured species genome.
func defaultGenes() components.PlantGenes {
	p := config.Cfg().Plant
	return components.PlantGenes{
		OptimalTemperature:   p.OptimalTemperature,
		TemperatureTolerance: p.TemperatureTolerance,
		OptimalHumidity:      p.OptimalHumidity,
		HumidityTolerance:    p.HumidityTolerance,
		SoilEfficiency:       p.SoilEfficiency,
	}
}

// NewSeed creates a dormant seed at (x, y) carrying the given energy and
// registers its row in the store. Local temperature, humidity and soil
// are sampled once here and cached for the plant's whole life.
//
// A seed landing on non-viable ground (water, mountain) is still created;
// its first tick reports the death so the bookkeeping follows the normal
// path.
func NewSeed(store *PlantStore, env EnvSampler, x, y, energy float64) *Plant {
	p := &Plant{
		id:          NewOrganismID(),
		store:       store,
		x:           x,
		y:           y,
		stage:       components.StageSeed,
		genes:       defaultGenes(),
		alive:       true,
		morphFactor: config.Cfg().Plant.RadiusToHeightFactor,
	}
	p.soil = SoilTypeAt(env.Elevation(x, y))

	i := store.Add(p)
	p.Index = i
	store.X[i] = x
	store.Y[i] = y
	store.Energy[i] = energy
	store.Temperature[i] = env.Temperature(x, y)
	store.Humidity[i] = env.Humidity(x, y)
	store.SoilEffMax[i] = p.genes.SoilEfficiencyFor(p.soil)
	return p
}

// ID returns the run-unique organism ID.
func (p *Plant) ID() uint32 { return p.id }

// Kind returns components.KindPlant.
func (p *Plant) Kind() components.Kind { return components.KindPlant }

// Position returns the fixed world position, cm.
func (p *Plant) Position() (float64, float64) { return p.x, p.y }

// IsAlive reports whether the plant has not died this run.
func (p *Plant) IsAlive() bool { return p.alive }

// TickInterval returns the plant logic time-step, sim seconds.
func (p *Plant) TickInterval() float64 {
	return config.Cfg().Time.PlantTickSeconds
}

// Stage returns the current life stage.
func (p *Plant) Stage() components.LifeStage { return p.stage }

// Soil returns the terrain band sampled at creation.
func (p *Plant) Soil() components.SoilType { return p.soil }

// SelfSufficient reports whether the plant has ever closed a tick with a
// positive net energy balance.
func (p *Plant) SelfSufficient() bool { return p.selfSufficient }

// Organs returns the attached flowers and fruits.
func (p *Plant) Organs() []components.ReproductiveOrgan { return p.organs }

// Energy returns the current energy reserve, J.
func (p *Plant) Energy() float64 { return p.store.Energy[p.Index] }

// Age returns seconds since creation.
func (p *Plant) Age() float64 { return p.store.Age[p.Index] }

// Radius returns the canopy radius, cm.
func (p *Plant) Radius() float64 { return p.store.Radius[p.Index] }

// RootRadius returns the root system radius, cm.
func (p *Plant) RootRadius() float64 { return p.store.RootRadius[p.Index] }

// CoreRadius returns the structural core radius, cm.
func (p *Plant) CoreRadius() float64 { return p.store.CoreRadius[p.Index] }

// Height returns the canopy height, cm.
func (p *Plant) Height() float64 { return p.store.Height[p.Index] }

// ShadedArea returns the shaded canopy area from the last competition
// resolution, cm^2.
func (p *Plant) ShadedArea() float64 { return p.store.ShadedArea[p.Index] }

// Die marks the plant dead and reports the cause. Idempotent: only the
// first cause is reported, later calls are ignored.
func (p *Plant) Die(ctx *UpdateContext, cause components.DeathCause) {
	if !p.alive {
		return
	}
	p.alive = false
	if ctx.Trace.Enabled(p.id) {
		ctx.Trace.Event(p.id, ctx.Now, "plant died",
			"cause", cause.String(), "stage", p.stage.String(), "age", p.Age())
	}
	ctx.Hooks.ReportDeath(p, cause)
}

// Update runs one biology tick. Seeds follow the dormancy/germination
// path; sprouted plants run the full energy budget state machine.
func (p *Plant) Update(ctx *UpdateContext, dt float64) {
	if !p.alive {
		return
	}

	i := p.Index
	p.store.Age[i] += dt

	if p.stage == components.StageSeed {
		p.updateSeed(ctx, dt)
		return
	}
	p.updateGrowth(ctx, dt)
}

// canopyArea returns the disc area for a radius, cm^2.
func canopyArea(r float64) float64 {
	return math.Pi * r * r
}
