// Package telemetry aggregates per-window population statistics and
// writes them to CSV for offline analysis.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one telemetry window.
// Counts are events during the window; distributions are sampled from the
// live population at window end.
type WindowStats struct {
	WindowEndSec float64 `csv:"window_end_sec"`
	SimDays      float64 `csv:"sim_days"`

	// Population at window end
	SeedCount     int `csv:"seeds"`
	SeedlingCount int `csv:"seedlings"`
	MatureCount   int `csv:"mature"`
	AnimalCount   int `csv:"animals"`

	// Events during window
	SeedsDispersed int `csv:"seeds_dispersed"`
	PlantDeaths    int `csv:"plant_deaths"`
	AnimalDeaths   int `csv:"animal_deaths"`

	// Plant deaths by cause during window
	DeathStarvation        int `csv:"death_starvation"`
	DeathDormancyFailure   int `csv:"death_dormancy_failure"`
	DeathPruningCollapse   int `csv:"death_pruning_collapse"`
	DeathStructuralFailure int `csv:"death_structural_failure"`
	DeathCoreCrush         int `csv:"death_core_crush"`
	DeathBeingEaten        int `csv:"death_being_eaten"`
	DeathInvalidSoil       int `csv:"death_invalid_soil"`

	// Plant energy distribution at window end, J
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Canopy structure at window end, cm / cm^2
	RadiusMean      float64 `csv:"radius_mean"`
	RadiusMax       float64 `csv:"radius_max"`
	TotalCanopyArea float64 `csv:"total_canopy_area"`

	// Competition pressure at window end
	ShadedFraction float64 `csv:"shaded_fraction"`
}

// DistStats computes mean and the 10/50/90 percentiles of values.
// The input slice is not modified. All zeros for an empty input.
func DistStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end_sec", s.WindowEndSec,
		"sim_days", s.SimDays,
		"seeds", s.SeedCount,
		"seedlings", s.SeedlingCount,
		"mature", s.MatureCount,
		"animals", s.AnimalCount,
		"seeds_dispersed", s.SeedsDispersed,
		"plant_deaths", s.PlantDeaths,
		"animal_deaths", s.AnimalDeaths,
		"death_starvation", s.DeathStarvation,
		"death_dormancy_failure", s.DeathDormancyFailure,
		"death_pruning_collapse", s.DeathPruningCollapse,
		"death_structural_failure", s.DeathStructuralFailure,
		"death_core_crush", s.DeathCoreCrush,
		"death_being_eaten", s.DeathBeingEaten,
		"death_invalid_soil", s.DeathInvalidSoil,
		"energy_mean", s.EnergyMean,
		"energy_p10", s.EnergyP10,
		"energy_p50", s.EnergyP50,
		"energy_p90", s.EnergyP90,
		"radius_mean", s.RadiusMean,
		"radius_max", s.RadiusMax,
		"total_canopy_area", s.TotalCanopyArea,
		"shaded_fraction", s.ShadedFraction,
	)
}
