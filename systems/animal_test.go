package systems

import (
	"math"
	"testing"

	"github.com/NeoLorenzo/eco-system-evolution/components"
)

const minute = 60.0

func TestAnimalStarves(t *testing.T) {
	store := NewPlantStore()
	hooks := &stubHooks{}
	ctx := testContext(store, grassEnv(), hooks)

	a := NewAnimal(500, 500, 30, 0)
	a.Update(ctx, minute)

	if a.IsAlive() {
		t.Fatal("animal with exhausted reserves must starve")
	}
	if len(hooks.deaths) != 1 || hooks.deaths[0].cause != components.DeathStarvation {
		t.Errorf("deaths = %+v, want one starvation", hooks.deaths)
	}
}

func TestAnimalEatsPlantOnContact(t *testing.T) {
	store := NewPlantStore()
	hooks := &stubHooks{}
	env := grassEnv()
	ctx := testContext(store, env, hooks)

	prey := sproutedPlant(store, env, 510, 500, 20, 10, 2, 5000)
	qt := NewQuadTree(Rect{X: 500, Y: 500, W: 500, H: 500}, 4)
	qt.Insert(prey)
	ctx.Index = qt

	a := NewAnimal(500, 500, 1000, 0)
	a.Update(ctx, minute)

	if prey.IsAlive() {
		t.Fatal("plant within contact range was not eaten")
	}
	if len(hooks.deaths) != 1 || hooks.deaths[0].cause != components.DeathBeingEaten {
		t.Errorf("deaths = %+v, want one being_eaten", hooks.deaths)
	}
	// Upkeep for the tick, then the whole meal.
	if want := 1000.0 - 60 + 7500; a.Energy() != want {
		t.Errorf("energy = %v, want %v", a.Energy(), want)
	}
	if x, y := a.Position(); x != 510 || y != 500 {
		t.Errorf("position = (%v, %v), want moved onto the prey", x, y)
	}
}

func TestAnimalPursuesDistantPrey(t *testing.T) {
	store := NewPlantStore()
	hooks := &stubHooks{}
	env := grassEnv()
	ctx := testContext(store, env, hooks)

	prey := sproutedPlant(store, env, 600, 500, 5, 5, 1, 5000)
	qt := NewQuadTree(Rect{X: 500, Y: 500, W: 500, H: 500}, 4)
	qt.Insert(prey)
	ctx.Index = qt

	a := NewAnimal(500, 500, 1000, 0)
	a.Update(ctx, minute)

	if !prey.IsAlive() {
		t.Fatal("prey out of reach was consumed")
	}
	// One step of 0.5 cm/s * 60 s straight toward the prey.
	x, y := a.Position()
	if math.Abs(x-530) > 1e-9 || math.Abs(y-500) > 1e-9 {
		t.Errorf("position = (%v, %v), want (530, 500)", x, y)
	}
}

func TestAnimalIgnoresDormantSeeds(t *testing.T) {
	store := NewPlantStore()
	hooks := &stubHooks{}
	env := grassEnv()
	ctx := testContext(store, env, hooks)

	seed := NewSeed(store, env, 510, 500, 48000)
	qt := NewQuadTree(Rect{X: 500, Y: 500, W: 500, H: 500}, 4)
	qt.Insert(seed)
	ctx.Index = qt

	a := NewAnimal(500, 500, 1000, 0)
	a.Update(ctx, minute)

	if !seed.IsAlive() {
		t.Error("dormant seed was eaten")
	}
	// Nothing visible, so the animal wandered instead of pursuing.
	x, y := a.Position()
	if x == 500 && y == 500 {
		t.Error("animal did not move at all")
	}
	if x == 510 && y == 500 {
		t.Error("animal homed in on an invisible seed")
	}
}
