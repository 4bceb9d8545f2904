package systems

import (
	"log/slog"
)

// PlantStore is a growable columnar table with one row per living plant.
// All hot numeric state lives in parallel []float64 columns so the derived
// rate passes can sweep the whole population with array-wide operations;
// the parallel rows slice aliases each row to its owning Plant object.
//
// Row indices are NOT stable: Remove swap-fills the freed slot with the
// last row and reassigns that plant's Index. External references must hold
// the plant object (or its ID) and re-read Index after any mutation.
type PlantStore struct {
	count int
	rows  []*Plant

	// Identity and placement
	X, Y []float64

	// Structure, cm / cm^2-derived
	Radius     []float64 // canopy radius
	RootRadius []float64
	CoreRadius []float64
	Height     []float64

	// Energy bookkeeping, Joules
	Energy     []float64
	Age        []float64 // seconds since creation
	ReproStore []float64 // saved toward flowers

	// Environment samples cached at creation (germination-time conditions;
	// deliberately never re-sampled, the underlying fields are static).
	Temperature []float64
	Humidity    []float64
	SoilEffMax  []float64 // genes' peak efficiency on the creation soil

	// Derived per-frame efficiency fields, recomputed by RecomputeRates.
	EnvEff       []float64
	SoilEff      []float64
	AgingEff     []float64
	HydraulicEff []float64
	PhotoRate    []float64 // J/s per cm^2 of unshaded canopy
	MetRate      []float64 // J/s per cm^2 of total biomass area

	// Competition results from the last grid resolution, cm^2.
	ShadedArea  []float64
	OverlapArea []float64
}

const storeInitialCapacity = 64

// NewPlantStore creates an empty store.
func NewPlantStore() *PlantStore {
	s := &PlantStore{}
	s.grow(storeInitialCapacity)
	return s
}

// Count returns the number of live rows.
func (s *PlantStore) Count() int {
	return s.count
}

// Rows returns the live row-object slice [0, Count).
func (s *PlantStore) Rows() []*Plant {
	return s.rows[:s.count]
}

// Add appends a zeroed row for p at the logical end, doubling all backing
// arrays if capacity is exhausted, and returns the assigned index. The
// caller stores the index on the plant and fills the columns.
func (s *PlantStore) Add(p *Plant) int {
	if s.count == len(s.rows) {
		s.grow(len(s.rows) * 2)
	}

	i := s.count
	s.count++
	s.rows[i] = p
	s.clearRow(i)
	return i
}

// Remove deletes p's row via swap-remove: the last row is copied into the
// freed slot and the moved plant's Index is reassigned. O(1), at the cost
// of invalidating one other plant's cached index.
//
// An index/object mismatch indicates data corruption; it is logged loudly
// and the removal is skipped rather than silently treated as "not found".
func (s *PlantStore) Remove(p *Plant) {
	i := p.Index
	if i < 0 || i >= s.count || s.rows[i] != p {
		actual := uint32(0)
		if i >= 0 && i < s.count && s.rows[i] != nil {
			actual = s.rows[i].id
		}
		slog.Error("plant store integrity fault: row does not match record",
			"plant_id", p.id,
			"claimed_index", i,
			"count", s.count,
			"occupant_id", actual,
		)
		return
	}

	last := s.count - 1
	if i != last {
		s.copyRow(i, last)
		s.rows[i] = s.rows[last]
		s.rows[i].Index = i
	}
	s.rows[last] = nil
	s.count = last
	p.Index = -1
}

// columns returns every float column for uniform row operations.
func (s *PlantStore) columns() [][]float64 {
	return [][]float64{
		s.X, s.Y,
		s.Radius, s.RootRadius, s.CoreRadius, s.Height,
		s.Energy, s.Age, s.ReproStore,
		s.Temperature, s.Humidity, s.SoilEffMax,
		s.EnvEff, s.SoilEff, s.AgingEff, s.HydraulicEff,
		s.PhotoRate, s.MetRate,
		s.ShadedArea, s.OverlapArea,
	}
}

func (s *PlantStore) copyRow(dst, src int) {
	for _, col := range s.columns() {
		col[dst] = col[src]
	}
}

func (s *PlantStore) clearRow(i int) {
	for _, col := range s.columns() {
		col[i] = 0
	}
}

func (s *PlantStore) grow(capacity int) {
	if capacity < storeInitialCapacity {
		capacity = storeInitialCapacity
	}

	rows := make([]*Plant, capacity)
	copy(rows, s.rows)
	s.rows = rows

	realloc := func(col *[]float64) {
		next := make([]float64, capacity)
		copy(next, *col)
		*col = next
	}

	realloc(&s.X)
	realloc(&s.Y)
	realloc(&s.Radius)
	realloc(&s.RootRadius)
	realloc(&s.CoreRadius)
	realloc(&s.Height)
	realloc(&s.Energy)
	realloc(&s.Age)
	realloc(&s.ReproStore)
	realloc(&s.Temperature)
	realloc(&s.Humidity)
	realloc(&s.SoilEffMax)
	realloc(&s.EnvEff)
	realloc(&s.SoilEff)
	realloc(&s.AgingEff)
	realloc(&s.HydraulicEff)
	realloc(&s.PhotoRate)
	realloc(&s.MetRate)
	realloc(&s.ShadedArea)
	realloc(&s.OverlapArea)
}
