package systems

import (
	"math"
	"testing"
)

func TestTallerCanopyShadesShorter(t *testing.T) {
	store := NewPlantStore()
	env := grassEnv()
	grid := NewCompetitionGrid()

	short := sproutedPlant(store, env, 5000, 5000, 200, 50, 10, 1e5)
	tall := sproutedPlant(store, env, 5000, 5000, 200, 50, 10, 1e5)
	store.Height[short.Index] = 100
	store.Height[tall.Index] = 400

	grid.Populate(store)
	grid.Resolve(store)

	canopy := math.Pi * 200 * 200
	shaded := store.ShadedArea[short.Index]
	if shaded < canopy*0.9 || shaded > canopy {
		t.Errorf("short plant shaded area = %.0f, want close to full canopy %.0f", shaded, canopy)
	}
	if got := store.ShadedArea[tall.Index]; got != 0 {
		t.Errorf("tall plant shaded area = %.0f, want 0", got)
	}
}

func TestDistantPlantsDoNotCompete(t *testing.T) {
	store := NewPlantStore()
	env := grassEnv()
	grid := NewCompetitionGrid()

	a := sproutedPlant(store, env, 1000, 1000, 100, 100, 5, 1e5)
	b := sproutedPlant(store, env, 9000, 9000, 100, 100, 5, 1e5)
	store.Height[a.Index] = 100
	store.Height[b.Index] = 500

	grid.Populate(store)
	grid.Resolve(store)

	for _, p := range []*Plant{a, b} {
		if got := store.ShadedArea[p.Index]; got != 0 {
			t.Errorf("plant %d shaded area = %.0f, want 0", p.ID(), got)
		}
		if got := store.OverlapArea[p.Index]; got != 0 {
			t.Errorf("plant %d overlap area = %.0f, want 0", p.ID(), got)
		}
	}
}

func TestRootOverlapSplitsContestedCells(t *testing.T) {
	store := NewPlantStore()
	env := grassEnv()
	grid := NewCompetitionGrid()

	// Identical root discs at the same position: every covered cell has
	// double pressure, so each plant cedes half its root area.
	a := sproutedPlant(store, env, 5000, 5000, 50, 300, 5, 1e5)
	b := sproutedPlant(store, env, 5000, 5000, 50, 300, 5, 1e5)

	grid.Populate(store)
	grid.Resolve(store)

	rootArea := math.Pi * 300 * 300
	for _, p := range []*Plant{a, b} {
		got := store.OverlapArea[p.Index]
		if got < rootArea*0.4 || got > rootArea*0.6 {
			t.Errorf("plant %d overlap = %.0f, want about half of %.0f", p.ID(), got, rootArea)
		}
	}
}

func TestSolePlantHasNoCompetition(t *testing.T) {
	store := NewPlantStore()
	env := grassEnv()
	grid := NewCompetitionGrid()

	p := sproutedPlant(store, env, 5000, 5000, 150, 300, 5, 1e5)
	store.Height[p.Index] = 300

	grid.Populate(store)
	grid.Resolve(store)

	if got := store.ShadedArea[p.Index]; got != 0 {
		t.Errorf("shaded area = %.0f, want 0", got)
	}
	if got := store.OverlapArea[p.Index]; got != 0 {
		t.Errorf("overlap area = %.0f, want 0", got)
	}
}

func TestGridClampsToWorldEdge(t *testing.T) {
	store := NewPlantStore()
	env := grassEnv()
	grid := NewCompetitionGrid()

	// A disc hanging past the world edge must not panic or write out of
	// bounds; the off-world part simply does not exist.
	edge := sproutedPlant(store, env, 10, 10, 500, 500, 5, 1e5)
	store.Height[edge.Index] = 100

	grid.Populate(store)
	grid.Resolve(store)

	if got := store.ShadedArea[edge.Index]; got != 0 {
		t.Errorf("shaded area = %.0f, want 0", got)
	}
}

func TestDeadPlantsAreExcluded(t *testing.T) {
	store := NewPlantStore()
	env := grassEnv()
	grid := NewCompetitionGrid()

	short := sproutedPlant(store, env, 5000, 5000, 200, 50, 10, 1e5)
	tall := sproutedPlant(store, env, 5000, 5000, 200, 50, 10, 1e5)
	store.Height[short.Index] = 100
	store.Height[tall.Index] = 400
	tall.alive = false

	grid.Populate(store)
	grid.Resolve(store)

	if got := store.ShadedArea[short.Index]; got != 0 {
		t.Errorf("shaded by a dead plant: %.0f, want 0", got)
	}
}
