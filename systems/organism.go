package systems

import (
	"math/rand"

	"github.com/NeoLorenzo/eco-system-evolution/components"
)

// Organism is the shared contract for anything the scheduler can tick and
// the quadtree can index. Implemented by Plant and Animal as a tagged
// variant rather than inheritance, so the biology state machines stay
// exhaustive-match friendly.
type Organism interface {
	ID() uint32
	Kind() components.Kind
	Position() (x, y float64)
	IsAlive() bool

	// TickInterval is the fixed logic time-step of this organism kind,
	// sim seconds. The scheduler buckets on multiples of it.
	TickInterval() float64

	// Update runs one biology tick of exactly dt = TickInterval() seconds.
	Update(ctx *UpdateContext, dt float64)
}

// WorldHooks is the orchestrator surface organisms may call during a tick.
// Death reporting and newborn registration are the only permitted outward
// mutations; both are processed without disturbing in-flight iteration.
type WorldHooks interface {
	ReportDeath(o Organism, cause components.DeathCause)
	AddNewborn(o Organism)
}

// UpdateContext carries the world services an organism tick may touch.
// It is owned by the orchestrator and passed by reference; nothing here is
// ambient global state, which keeps the biology testable in isolation.
type UpdateContext struct {
	// Now is the simulation clock, sim seconds. During an advance window
	// it always equals the exact scheduled key of the bucket being drained.
	Now float64

	Env   EnvSampler
	Index *QuadTree
	Store *PlantStore
	Rng   *rand.Rand
	Trace TraceSink
	Hooks WorldHooks
}
