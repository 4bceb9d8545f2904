package systems

import (
	"math"

	"github.com/NeoLorenzo/eco-system-evolution/components"
	"github.com/NeoLorenzo/eco-system-evolution/config"
)

// Animal is a mobile grazer. It burns energy at a flat rate, pursues the
// nearest sprouted plant inside its sight radius, and consumes the whole
// plant on contact. With nothing in sight it wanders with a slowly
// drifting heading.
//
// Animals tick on a much shorter interval than plants; movement at plant
// timescales would overshoot everything.
type Animal struct {
	id   uint32
	x, y float64

	energy  float64
	heading float64 // radians, wander direction
	alive   bool
}

// NewAnimal creates a grazer at (x, y) with the given starting energy.
func NewAnimal(x, y, energy, heading float64) *Animal {
	return &Animal{
		id:      NewOrganismID(),
		x:       x,
		y:       y,
		energy:  energy,
		heading: heading,
		alive:   true,
	}
}

// ID returns the run-unique organism ID.
func (a *Animal) ID() uint32 { return a.id }

// Kind returns components.KindAnimal.
func (a *Animal) Kind() components.Kind { return components.KindAnimal }

// Position returns the current world position, cm.
func (a *Animal) Position() (float64, float64) { return a.x, a.y }

// IsAlive reports whether the animal has not died this run.
func (a *Animal) IsAlive() bool { return a.alive }

// Energy returns the current energy reserve, J.
func (a *Animal) Energy() float64 { return a.energy }

// TickInterval returns the animal logic time-step, sim seconds.
func (a *Animal) TickInterval() float64 {
	return config.Cfg().Time.AnimalTickSeconds
}

// Die marks the animal dead and reports the cause. Idempotent.
func (a *Animal) Die(ctx *UpdateContext, cause components.DeathCause) {
	if !a.alive {
		return
	}
	a.alive = false
	if ctx.Trace.Enabled(a.id) {
		ctx.Trace.Event(a.id, ctx.Now, "animal died", "cause", cause.String())
	}
	ctx.Hooks.ReportDeath(a, cause)
}

// Update runs one grazer tick: pay upkeep, then pursue or wander.
func (a *Animal) Update(ctx *UpdateContext, dt float64) {
	if !a.alive {
		return
	}
	cfg := config.Cfg().Animal

	a.energy -= cfg.MetabolismPerSecond * dt
	if a.energy <= 0 {
		a.Die(ctx, components.DeathStarvation)
		return
	}

	prey := a.findPrey(ctx, cfg.SightRadiusCM)
	step := cfg.SpeedCMPerSec * dt

	if prey == nil {
		a.wander(ctx, step)
		return
	}

	px, py := prey.Position()
	dx, dy := px-a.x, py-a.y
	dist := math.Hypot(dx, dy)

	// Contact range is the prey's canopy edge.
	if dist <= prey.Radius() || dist <= step {
		a.x, a.y = px, py
		a.energy += cfg.EnergyPerPlant
		prey.Die(ctx, components.DeathBeingEaten)
		if ctx.Trace.Enabled(a.id) {
			ctx.Trace.Event(a.id, ctx.Now, "ate plant",
				"plant_id", prey.ID(), "energy", a.energy)
		}
		return
	}

	a.x += dx / dist * step
	a.y += dy / dist * step
	a.clampToWorld()
}

// findPrey returns the closest living sprouted plant within sight, nil if
// none. Dormant seeds are invisible; there is nothing above ground to see.
func (a *Animal) findPrey(ctx *UpdateContext, sight float64) *Plant {
	if ctx.Index == nil {
		return nil
	}

	var best *Plant
	bestDist := math.Inf(1)
	for _, o := range ctx.Index.QueryCircle(a.x, a.y, sight, nil) {
		p, ok := o.(*Plant)
		if !ok || !p.IsAlive() || p.Stage() == components.StageSeed {
			continue
		}
		px, py := p.Position()
		dx, dy := px-a.x, py-a.y
		if d := dx*dx + dy*dy; d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

// wander drifts the heading and moves one step, reflecting off the world
// edge by picking a fresh heading.
func (a *Animal) wander(ctx *UpdateContext, step float64) {
	a.heading += (ctx.Rng.Float64() - 0.5) * math.Pi / 4
	a.x += math.Cos(a.heading) * step
	a.y += math.Sin(a.heading) * step

	w := config.Cfg().World
	if a.x < 0 || a.x > w.WidthCM || a.y < 0 || a.y > w.HeightCM {
		a.heading = ctx.Rng.Float64() * 2 * math.Pi
		a.clampToWorld()
	}
}

func (a *Animal) clampToWorld() {
	w := config.Cfg().World
	a.x = clampF(a.x, 0, w.WidthCM)
	a.y = clampF(a.y, 0, w.HeightCM)
}
