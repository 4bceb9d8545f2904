package systems

import "testing"

func TestStoreAddAssignsSequentialIndices(t *testing.T) {
	store := NewPlantStore()
	env := grassEnv()

	for want := 0; want < 5; want++ {
		p := NewSeed(store, env, float64(want), 0, 1000)
		if p.Index != want {
			t.Errorf("plant %d: Index = %d, want %d", want, p.Index, want)
		}
	}
	if store.Count() != 5 {
		t.Errorf("Count() = %d, want 5", store.Count())
	}
}

func TestStoreSwapRemove(t *testing.T) {
	store := NewPlantStore()
	env := grassEnv()

	a := NewSeed(store, env, 10, 0, 1000)
	b := NewSeed(store, env, 20, 0, 2000)
	c := NewSeed(store, env, 30, 0, 3000)

	store.Remove(b)

	if store.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", store.Count())
	}
	if b.Index != -1 {
		t.Errorf("removed plant Index = %d, want -1", b.Index)
	}

	// The last row must have been swapped into the freed slot with its
	// column data intact.
	if c.Index != 1 {
		t.Errorf("moved plant Index = %d, want 1", c.Index)
	}
	if got := store.X[c.Index]; got != 30 {
		t.Errorf("moved plant X = %v, want 30", got)
	}
	if got := store.Energy[c.Index]; got != 3000 {
		t.Errorf("moved plant Energy = %v, want 3000", got)
	}
	if a.Index != 0 || store.X[a.Index] != 10 {
		t.Errorf("untouched plant disturbed: Index=%d X=%v", a.Index, store.X[a.Index])
	}
}

func TestStoreRemoveLastRow(t *testing.T) {
	store := NewPlantStore()
	env := grassEnv()

	a := NewSeed(store, env, 10, 0, 1000)
	b := NewSeed(store, env, 20, 0, 2000)

	store.Remove(b)

	if store.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", store.Count())
	}
	if a.Index != 0 {
		t.Errorf("remaining plant Index = %d, want 0", a.Index)
	}
}

func TestStoreRemoveMismatchedIndexIsSkipped(t *testing.T) {
	store := NewPlantStore()
	env := grassEnv()

	a := NewSeed(store, env, 10, 0, 1000)
	b := NewSeed(store, env, 20, 0, 2000)

	// Corrupt b's index so it claims a's row.
	b.Index = a.Index
	store.Remove(b)

	if store.Count() != 2 {
		t.Errorf("Count() = %d, want 2 (corrupt removal must be skipped)", store.Count())
	}
	if store.Rows()[0] != a {
		t.Error("occupant of the claimed row was disturbed")
	}
}

func TestStoreGrowthPreservesData(t *testing.T) {
	store := NewPlantStore()
	env := grassEnv()

	n := storeInitialCapacity*2 + 7
	plants := make([]*Plant, n)
	for i := 0; i < n; i++ {
		plants[i] = NewSeed(store, env, float64(i), float64(-i), float64(i)*10)
	}

	if store.Count() != n {
		t.Fatalf("Count() = %d, want %d", store.Count(), n)
	}
	for i, p := range plants {
		if p.Index != i {
			t.Fatalf("plant %d: Index = %d after growth", i, p.Index)
		}
		if store.X[i] != float64(i) || store.Energy[i] != float64(i)*10 {
			t.Fatalf("plant %d: columns corrupted after growth (X=%v Energy=%v)",
				i, store.X[i], store.Energy[i])
		}
	}
}
