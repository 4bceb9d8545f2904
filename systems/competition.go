package systems

import (
	"math"

	"github.com/NeoLorenzo/eco-system-evolution/config"
)

// pressureEpsilon guards the root-share division against float32
// accumulation noise. Structurally a cell only exceeds a plant's own
// pressure when another plant also claims it, so the denominator is
// always positive, but the guard keeps a pathological row from poisoning
// the whole resolve pass.
const pressureEpsilon = 1e-6

// CompetitionGrid approximates, at bounded cost, how much light every
// canopy loses to taller overlapping neighbors and how much root area is
// contested, without pairwise O(n^2) comparison.
//
// Two uniform dense grids over world space: the light grid records the
// max canopy height covering each cell, the root grid the summed root
// radii of every root disc covering it (a pressure proxy, deliberately
// not an exact overlap area - population dynamics depend on this
// approximation's specific bias, so do not "upgrade" it).
type CompetitionGrid struct {
	cellSize float64
	cols     int
	rows     int

	light []float32 // max canopy height per cell, cm
	root  []float32 // summed root radii per cell, cm
}

// NewCompetitionGrid creates zeroed grids at the configured resolution.
func NewCompetitionGrid() *CompetitionGrid {
	cfg := config.Cfg()
	cols := cfg.Derived.CompetitionCols
	rows := cfg.Derived.CompetitionRows
	return &CompetitionGrid{
		cellSize: cfg.Competition.CellSizeCM,
		cols:     cols,
		rows:     rows,
		light:    make([]float32, cols*rows),
		root:     make([]float32, cols*rows),
	}
}

// CellSize returns the grid resolution in cm.
func (g *CompetitionGrid) CellSize() float64 { return g.cellSize }

// Populate rebuilds both grids from scratch from the live store. Every
// living plant with a positive radius rasterizes its canopy disc (max of
// height) and root disc (sum of root radius) onto the cells whose centers
// lie inside the disc. Processing order is arbitrary; max and sum are
// both order-independent.
func (g *CompetitionGrid) Populate(store *PlantStore) {
	clear(g.light)
	clear(g.root)

	n := store.Count()
	for i := 0; i < n; i++ {
		p := store.rows[i]
		if p == nil || !p.alive {
			continue
		}

		x, y := store.X[i], store.Y[i]

		if r := store.Radius[i]; r > 0 {
			h := float32(store.Height[i])
			g.forEachCoveredCell(x, y, r, func(idx int) {
				if h > g.light[idx] {
					g.light[idx] = h
				}
			})
		}

		if rr := store.RootRadius[i]; rr > 0 {
			w := float32(rr)
			g.forEachCoveredCell(x, y, rr, func(idx int) {
				g.root[idx] += w
			})
		}
	}
}

// Resolve re-walks every living plant's covered cells against the
// populated grids and writes the shaded-canopy-area and
// overlapped-root-area columns. Must run after Populate; resolving a
// stale or zeroed grid yields no competition for anyone.
func (g *CompetitionGrid) Resolve(store *PlantStore) {
	cellArea := g.cellSize * g.cellSize

	n := store.Count()
	for i := 0; i < n; i++ {
		p := store.rows[i]
		if p == nil || !p.alive {
			continue
		}

		x, y := store.X[i], store.Y[i]

		// Canopy: a cell is shaded when some strictly taller canopy
		// also covers it.
		shaded := 0.0
		if r := store.Radius[i]; r > 0 {
			own := float32(store.Height[i])
			count := 0
			g.forEachCoveredCell(x, y, r, func(idx int) {
				if own < g.light[idx] {
					count++
				}
			})
			shaded = float64(count) * cellArea
			if max := math.Pi * r * r; shaded > max {
				shaded = max
			}
		}
		store.ShadedArea[i] = shaded

		// Roots: a cell contributes overlap only when the accumulated
		// pressure exceeds this plant's own claim; the excess share of
		// the cell is ceded to the neighbors.
		overlap := 0.0
		if rr := store.RootRadius[i]; rr > 0 {
			own := float32(rr)
			g.forEachCoveredCell(x, y, rr, func(idx int) {
				total := g.root[idx]
				if total <= own || total <= pressureEpsilon {
					return // sole or dominant claimant
				}
				overlap += cellArea * float64(total-own) / float64(total)
			})
			if max := math.Pi * rr * rr; overlap > max {
				overlap = max
			}
		}
		store.OverlapArea[i] = overlap
	}
}

// forEachCoveredCell invokes fn for every grid cell whose center lies
// within radius of (x, y), clamped to the grid bounds.
func (g *CompetitionGrid) forEachCoveredCell(x, y, radius float64, fn func(idx int)) {
	minCol := int(math.Floor((x - radius) / g.cellSize))
	maxCol := int(math.Floor((x + radius) / g.cellSize))
	minRow := int(math.Floor((y - radius) / g.cellSize))
	maxRow := int(math.Floor((y + radius) / g.cellSize))

	if minCol < 0 {
		minCol = 0
	}
	if maxCol >= g.cols {
		maxCol = g.cols - 1
	}
	if minRow < 0 {
		minRow = 0
	}
	if maxRow >= g.rows {
		maxRow = g.rows - 1
	}

	rr := radius * radius
	for row := minRow; row <= maxRow; row++ {
		cy := (float64(row) + 0.5) * g.cellSize
		dy := cy - y
		for col := minCol; col <= maxCol; col++ {
			cx := (float64(col) + 0.5) * g.cellSize
			dx := cx - x
			if dx*dx+dy*dy <= rr {
				fn(row*g.cols + col)
			}
		}
	}
}
