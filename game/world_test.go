package game

import (
	"os"
	"testing"

	"github.com/NeoLorenzo/eco-system-evolution/components"
	"github.com/NeoLorenzo/eco-system-evolution/config"
	"github.com/NeoLorenzo/eco-system-evolution/systems"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

func TestNewWorldSeedsFoundingPopulation(t *testing.T) {
	w := NewWorld(1, nil, nil, false)

	cfg := config.Cfg()
	plants, animals := w.PopulationCounts()
	if plants != cfg.World.InitialPlants {
		t.Errorf("founding plants = %d, want %d", plants, cfg.World.InitialPlants)
	}
	if animals != cfg.World.InitialAnimals {
		t.Errorf("founding animals = %d, want %d", animals, cfg.World.InitialAnimals)
	}

	for _, p := range w.Store().Rows() {
		if p.Soil() == components.SoilNone {
			t.Error("founding seed placed on non-viable soil")
		}
		if p.Stage() != components.StageSeed {
			t.Errorf("founding plant stage = %v, want seed", p.Stage())
		}
	}
}

func TestAdvanceFiresTicksInsideWindow(t *testing.T) {
	w := NewWorld(1, nil, nil, false)

	w.Advance(7200)

	if w.Now() != 7200 {
		t.Errorf("Now() = %v, want 7200", w.Now())
	}
	// Events fire strictly before the window end: the founding plant ticks
	// at t=3600 only; its t=7200 tick belongs to the next frame.
	p := w.Store().Rows()[0]
	if got := p.Age(); got != 3600 {
		t.Errorf("founding plant age = %v, want 3600 (one tick)", got)
	}
	if !p.IsAlive() {
		t.Error("founding plant died inside the first two hours")
	}
}

func TestAdvanceZeroWindowFiresNothing(t *testing.T) {
	w := NewWorld(1, nil, nil, false)

	w.Advance(0)

	if w.Now() != 0 {
		t.Errorf("Now() = %v, want 0", w.Now())
	}
	if got := w.Store().Rows()[0].Age(); got != 0 {
		t.Errorf("plant age = %v, want 0", got)
	}
}

func TestDeferredDeathRemovesStoreRow(t *testing.T) {
	w := NewWorld(1, nil, nil, false)
	p := w.Store().Rows()[0]

	ctx := &systems.UpdateContext{Trace: systems.NopTrace{}, Hooks: w}
	p.Die(ctx, components.DeathStarvation)

	// The row stays in place until housekeeping so in-flight iteration
	// never observes a swap-remove.
	if w.Store().Count() != 1 {
		t.Fatal("store row removed before housekeeping")
	}

	w.housekeep()

	if w.Store().Count() != 0 {
		t.Errorf("Count() = %d after housekeep, want 0", w.Store().Count())
	}
	if p.Index != -1 {
		t.Errorf("dead plant Index = %d, want -1", p.Index)
	}
	if plants, _ := w.PopulationCounts(); plants != 0 {
		t.Errorf("live plants = %d, want 0", plants)
	}
}

func TestFindOrganismAt(t *testing.T) {
	w := NewWorld(1, nil, nil, false)
	p := w.Store().Rows()[0]
	px, py := p.Position()

	got := w.FindOrganismAt(px+10, py, 50)
	if got == nil || got.ID() != p.ID() {
		t.Error("picker missed the founding plant")
	}
	if w.FindOrganismAt(px+5000, py+5000, 50) != nil {
		t.Error("picker returned an organism far outside the radius")
	}
}
