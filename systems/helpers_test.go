package systems

import (
	"math/rand"
	"os"
	"testing"

	"github.com/NeoLorenzo/eco-system-evolution/components"
	"github.com/NeoLorenzo/eco-system-evolution/config"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

// stubEnv is a flat environment with fixed field values everywhere.
type stubEnv struct {
	elev float64
	temp float64
	hum  float64
}

func (e stubEnv) Elevation(x, y float64) float64   { return e.elev }
func (e stubEnv) Temperature(x, y float64) float64 { return e.temp }
func (e stubEnv) Humidity(x, y float64) float64    { return e.hum }

// grassEnv is viable grass soil with species-optimal climate.
func grassEnv() stubEnv {
	return stubEnv{elev: 0.45, temp: 0.65, hum: 0.6}
}

type recordedDeath struct {
	organism Organism
	cause    components.DeathCause
}

// stubHooks records death and birth notifications.
type stubHooks struct {
	deaths   []recordedDeath
	newborns []Organism
}

func (h *stubHooks) ReportDeath(o Organism, cause components.DeathCause) {
	h.deaths = append(h.deaths, recordedDeath{organism: o, cause: cause})
}

func (h *stubHooks) AddNewborn(o Organism) {
	h.newborns = append(h.newborns, o)
}

// testContext builds an UpdateContext over the given store and hooks.
func testContext(store *PlantStore, env EnvSampler, hooks *stubHooks) *UpdateContext {
	return &UpdateContext{
		Env:   env,
		Store: store,
		Rng:   rand.New(rand.NewSource(1)),
		Trace: NopTrace{},
		Hooks: hooks,
	}
}

// sproutedPlant creates a plant mid-life with the given body dimensions.
func sproutedPlant(store *PlantStore, env EnvSampler, x, y, radius, root, core, energy float64) *Plant {
	p := NewSeed(store, env, x, y, energy)
	i := p.Index
	p.stage = components.StageSeedling
	store.Radius[i] = radius
	store.RootRadius[i] = root
	store.CoreRadius[i] = core
	store.Height[i] = radius * p.morphFactor
	return p
}

// fakeOrganism is a minimal Organism for scheduler and quadtree tests.
type fakeOrganism struct {
	id       uint32
	x, y     float64
	alive    bool
	interval float64
	ticks    int
}

func (f *fakeOrganism) ID() uint32                     { return f.id }
func (f *fakeOrganism) Kind() components.Kind          { return components.KindAnimal }
func (f *fakeOrganism) Position() (float64, float64)   { return f.x, f.y }
func (f *fakeOrganism) IsAlive() bool                  { return f.alive }
func (f *fakeOrganism) TickInterval() float64          { return f.interval }
func (f *fakeOrganism) Update(*UpdateContext, float64) { f.ticks++ }
