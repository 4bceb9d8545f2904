// Package game wires the simulation systems into a running world and
// drives them from either the graphical or the headless loop.
package game

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/NeoLorenzo/eco-system-evolution/components"
	"github.com/NeoLorenzo/eco-system-evolution/config"
	"github.com/NeoLorenzo/eco-system-evolution/systems"
	"github.com/NeoLorenzo/eco-system-evolution/telemetry"
)

type deathRecord struct {
	organism systems.Organism
	cause    components.DeathCause
}

// World owns all simulation state and advances it in event order.
//
// Frames run a fixed pipeline: rebuild the spatial index, refresh the
// derived rate columns, drain scheduled events chronologically up to the
// frame end, then apply the deferred deaths. Store row removal happens
// only in that last step, so no in-flight iteration ever observes a
// swap-remove.
type World struct {
	env   *systems.Environment
	store *systems.PlantStore
	grid  *systems.CompetitionGrid
	index *systems.QuadTree
	rng   *rand.Rand
	trace systems.TraceSink

	plantSched  *systems.Scheduler
	animalSched *systems.Scheduler
	animals     []*systems.Animal

	now               float64
	nextCompetitionAt float64

	// Deferred frame events. Newborns are live immediately (store row,
	// spatial index, schedule); only the notification is deferred here.
	deaths []deathRecord

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool
}

// NewWorld creates a world with the configured founding population.
// output may be nil (telemetry CSV disabled); trace may be nil (no
// organism tracing).
func NewWorld(seed int64, trace systems.TraceSink, output *telemetry.OutputManager, logStats bool) *World {
	cfg := config.Cfg()
	if trace == nil {
		trace = systems.NopTrace{}
	}

	w := &World{
		env:               systems.NewEnvironment(),
		store:             systems.NewPlantStore(),
		grid:              systems.NewCompetitionGrid(),
		rng:               rand.New(rand.NewSource(seed)),
		trace:             trace,
		plantSched:        systems.NewScheduler(),
		animalSched:       systems.NewScheduler(),
		nextCompetitionAt: cfg.Time.CompetitionIntervalSeconds,
		collector:         telemetry.NewCollector(cfg.Telemetry.WindowSeconds),
		output:            output,
		logStats:          logStats,
	}

	w.seedFoundingPopulation()
	w.rebuildIndex()
	return w
}

// Now returns the simulation clock, sim seconds.
func (w *World) Now() float64 { return w.now }

// Store returns the live plant store.
func (w *World) Store() *systems.PlantStore { return w.store }

// Animals returns the live animal slice.
func (w *World) Animals() []*systems.Animal { return w.animals }

// Env returns the environment sampler.
func (w *World) Env() *systems.Environment { return w.env }

// ReportDeath defers an organism's removal to end-of-frame housekeeping.
// Part of the systems.WorldHooks contract; the organism has already
// flagged itself dead, so the rest of the frame skips it.
func (w *World) ReportDeath(o systems.Organism, cause components.DeathCause) {
	w.deaths = append(w.deaths, deathRecord{organism: o, cause: cause})
	w.collector.RecordDeath(o.Kind(), cause)
}

// AddNewborn registers a newly created organism: it joins the spatial
// index immediately and ticks for the first time one interval from now.
// Part of the systems.WorldHooks contract. Plant newborns already hold a
// store row; appending never disturbs existing rows.
func (w *World) AddNewborn(o systems.Organism) {
	w.index.Insert(o)
	w.scheduleFor(o)
	w.collector.RecordBirth(o.Kind())

	if a, ok := o.(*systems.Animal); ok {
		w.animals = append(w.animals, a)
	}
}

// Advance runs the simulation from now to now+dt, firing every scheduled
// event inside the window in chronological order.
func (w *World) Advance(dt float64) {
	end := w.now + dt

	w.rebuildIndex()
	w.store.RecomputeRates()

	ctx := &systems.UpdateContext{
		Env:   w.env,
		Index: w.index,
		Store: w.store,
		Rng:   w.rng,
		Trace: w.trace,
		Hooks: w,
	}

	for {
		key, kind, ok := w.nextEvent(end)
		if !ok {
			break
		}
		w.now = float64(key)
		ctx.Now = w.now

		if kind == eventCompetition {
			w.grid.Populate(w.store)
			w.grid.Resolve(w.store)
			w.nextCompetitionAt += config.Cfg().Time.CompetitionIntervalSeconds
			continue
		}

		sched := w.plantSched
		if kind == eventAnimal {
			sched = w.animalSched
		}
		for _, o := range sched.Drain(key) {
			if !o.IsAlive() {
				continue // dead entries drain without rescheduling
			}
			o.Update(ctx, o.TickInterval())
			if o.IsAlive() {
				w.scheduleFor(o)
			}
		}
	}

	w.now = end
	w.housekeep()
	w.flushTelemetry()
}

type eventKind uint8

const (
	eventCompetition eventKind = iota
	eventPlant
	eventAnimal
)

// nextEvent returns the earliest pending event strictly before end.
// Competition wins ties so organisms ticking at the same instant see
// fresh grid results.
func (w *World) nextEvent(end float64) (int64, eventKind, bool) {
	best := int64(0)
	kind := eventCompetition
	found := false

	if w.nextCompetitionAt < end {
		best = int64(w.nextCompetitionAt)
		found = true
	}
	if key, ok := w.plantSched.MinKeyBelow(end); ok && (!found || key < best) {
		best, kind, found = key, eventPlant, true
	}
	if key, ok := w.animalSched.MinKeyBelow(end); ok && (!found || key < best) {
		best, kind, found = key, eventAnimal, true
	}
	return best, kind, found
}

// scheduleFor buckets an organism for its next tick.
func (w *World) scheduleFor(o systems.Organism) {
	switch o.Kind() {
	case components.KindAnimal:
		w.animalSched.Schedule(o, w.now, o.TickInterval())
	default:
		w.plantSched.Schedule(o, w.now, o.TickInterval())
	}
}

// rebuildIndex reconstructs the quadtree from the live population.
// Rebuilding each frame is cheaper and simpler than incremental deletes
// for mobile organisms.
func (w *World) rebuildIndex() {
	cfg := config.Cfg()
	boundary := systems.Rect{
		X: cfg.World.WidthCM / 2, Y: cfg.World.HeightCM / 2,
		W: cfg.World.WidthCM / 2, H: cfg.World.HeightCM / 2,
	}
	w.index = systems.NewQuadTree(boundary, cfg.Quadtree.Capacity)

	for _, p := range w.store.Rows() {
		if p.IsAlive() {
			w.index.Insert(p)
		}
	}
	for _, a := range w.animals {
		if a.IsAlive() {
			w.index.Insert(a)
		}
	}
}

// housekeep applies the frame's deferred deaths: dead plant rows leave
// the store, dead animals leave the slice. Runs after all iteration for
// the frame has finished, so the swap-removes are safe.
func (w *World) housekeep() {
	if len(w.deaths) == 0 {
		return
	}

	for _, d := range w.deaths {
		if p, ok := d.organism.(*systems.Plant); ok && p.Index >= 0 {
			w.store.Remove(p)
		}
	}

	live := w.animals[:0]
	for _, a := range w.animals {
		if a.IsAlive() {
			live = append(live, a)
		}
	}
	w.animals = live

	w.deaths = w.deaths[:0]
}

// flushTelemetry closes the stats window if it has ended.
func (w *World) flushTelemetry() {
	if !w.collector.Due(w.now) {
		return
	}

	stats := w.collector.EndWindow(w.now, w.snapshot())
	if w.logStats {
		stats.LogStats()
	}
	if err := w.output.WriteTelemetry(stats); err != nil {
		slog.Error("writing telemetry", "error", err)
	}
}

// snapshot samples the live population for a telemetry window boundary.
func (w *World) snapshot() telemetry.PopulationSnapshot {
	snap := telemetry.PopulationSnapshot{}

	for _, p := range w.store.Rows() {
		if !p.IsAlive() {
			continue
		}
		switch p.Stage() {
		case components.StageSeed:
			snap.SeedCount++
		case components.StageSeedling:
			snap.SeedlingCount++
		case components.StageMature:
			snap.MatureCount++
		}
		snap.Energies = append(snap.Energies, p.Energy())
		if r := p.Radius(); r > 0 {
			snap.Radii = append(snap.Radii, r)
			area := math.Pi * r * r
			snap.TotalCanopyArea += area
			snap.TotalShadedArea += w.store.ShadedArea[p.Index]
		}
	}
	for _, a := range w.animals {
		if a.IsAlive() {
			snap.AnimalCount++
		}
	}
	return snap
}

// FindOrganismAt returns the organism nearest to a world point within
// radius, nil if none. Used by the click-picker.
func (w *World) FindOrganismAt(x, y, radius float64) systems.Organism {
	var best systems.Organism
	bestDist := radius * radius
	for _, o := range w.index.QueryCircle(x, y, radius, nil) {
		if !o.IsAlive() {
			continue
		}
		ox, oy := o.Position()
		dx, dy := ox-x, oy-y
		if d := dx*dx + dy*dy; d <= bestDist {
			bestDist = d
			best = o
		}
	}
	return best
}

// PopulationCounts returns live plants (all stages) and animals.
func (w *World) PopulationCounts() (plants, animals int) {
	for _, p := range w.store.Rows() {
		if p.IsAlive() {
			plants++
		}
	}
	for _, a := range w.animals {
		if a.IsAlive() {
			animals++
		}
	}
	return plants, animals
}
