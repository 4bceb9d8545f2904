package systems

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/NeoLorenzo/eco-system-evolution/config"
)

// RecomputeRates sweeps the whole live slice [0, Count) and refreshes every
// derived efficiency and rate column. The orchestrator runs this once per
// frame before any individual organism tick, which amortizes the expensive
// per-plant math (exponentials) and guarantees that every organism sees
// inputs from the same frame regardless of tick ordering inside the window.
func (s *PlantStore) RecomputeRates() {
	n := s.count
	if n == 0 {
		return
	}
	cfg := config.Cfg()

	s.agingPass(0, n, cfg)
	s.hydraulicPass(0, n, cfg)
	s.environmentPass(0, n, cfg)
	s.soilPass(0, n, cfg)
	s.photosynthesisPass(0, n, cfg)
	s.metabolismPass(0, n, cfg)
}

// RecomputeRow refreshes the derived columns for a single row. Used right
// after germination so a fresh seedling does not run its first growth tick
// on the stale zero-valued rates computed before it had a canopy.
func (s *PlantStore) RecomputeRow(i int) {
	cfg := config.Cfg()
	s.agingPass(i, i+1, cfg)
	s.hydraulicPass(i, i+1, cfg)
	s.environmentPass(i, i+1, cfg)
	s.soilPass(i, i+1, cfg)
	s.photosynthesisPass(i, i+1, cfg)
	s.metabolismPass(i, i+1, cfg)
}

// agingPass: senescence decay, exp(-age / timescale).
func (s *PlantStore) agingPass(lo, hi int, cfg *config.Config) {
	timescale := cfg.Plant.SenescenceTimescaleSeconds
	for i := lo; i < hi; i++ {
		s.AgingEff[i] = math.Exp(-s.Age[i] / timescale)
	}
}

// hydraulicPass: water transport limitation with height, exp(-h / hMax).
func (s *PlantStore) hydraulicPass(lo, hi int, cfg *config.Config) {
	hMax := cfg.Plant.MaxHydraulicHeightCM
	for i := lo; i < hi; i++ {
		s.HydraulicEff[i] = math.Exp(-s.Height[i] / hMax)
	}
}

// environmentPass: Gaussian fit of the cached germination-time temperature
// and humidity samples against the species optima.
func (s *PlantStore) environmentPass(lo, hi int, cfg *config.Config) {
	p := cfg.Plant
	for i := lo; i < hi; i++ {
		dt := (s.Temperature[i] - p.OptimalTemperature) / p.TemperatureTolerance
		dh := (s.Humidity[i] - p.OptimalHumidity) / p.HumidityTolerance
		s.EnvEff[i] = math.Exp(-dt*dt) * math.Exp(-dh*dh)
	}
}

// soilPass: peak soil efficiency scaled by how well the root system keeps
// up with the canopy, then by the uncontested fraction of the root disc
// from the last competition resolution.
func (s *PlantStore) soilPass(lo, hi int, cfg *config.Config) {
	factor := cfg.Plant.RootEfficiencyFactor
	for i := lo; i < hi; i++ {
		ratio := s.RootRadius[i] / (s.Radius[i] + 1) * factor
		if ratio > 1 {
			ratio = 1
		}
		eff := s.SoilEffMax[i] * ratio

		if rootArea := math.Pi * s.RootRadius[i] * s.RootRadius[i]; rootArea > 0 {
			uncontested := 1 - s.OverlapArea[i]/rootArea
			if uncontested < 0 {
				uncontested = 0
			}
			eff *= uncontested
		}
		s.SoilEff[i] = eff
	}
}

// photosynthesisPass: gross gain rate per cm^2 of unshaded canopy,
// the product of every efficiency column scaled by the physical base rate.
func (s *PlantStore) photosynthesisPass(lo, hi int, cfg *config.Config) {
	dst := s.PhotoRate[lo:hi]
	copy(dst, s.EnvEff[lo:hi])
	floats.Mul(dst, s.SoilEff[lo:hi])
	floats.Mul(dst, s.AgingEff[lo:hi])
	floats.Mul(dst, s.HydraulicEff[lo:hi])
	floats.Scale(cfg.Derived.PhotosynthesisPerArea, dst)
}

// metabolismPass: maintenance respiration per cm^2 of total biomass area
// with a Q10 temperature response around the reference temperature.
func (s *PlantStore) metabolismPass(lo, hi int, cfg *config.Config) {
	p := cfg.Plant
	base := p.BaseMaintenanceRespirationPerArea
	for i := lo; i < hi; i++ {
		q10 := math.Pow(p.Q10Factor, (s.Temperature[i]-p.RespirationReferenceTemp)/p.Q10IntervalDivisor)
		s.MetRate[i] = base * q10
	}
}
