package components

// PlantGenes holds the heritable traits of a plant. All plants currently
// share the configured species defaults; the struct exists so per-plant
// variation can be introduced without touching the biology code.
type PlantGenes struct {
	OptimalTemperature   float64
	TemperatureTolerance float64
	OptimalHumidity      float64
	HumidityTolerance    float64

	// SoilEfficiency maps soil type name -> peak efficiency on that soil.
	SoilEfficiency map[string]float64
}

// SoilEfficiencyFor returns the peak efficiency on the given soil,
// or 0 for unknown/non-viable soil.
func (g *PlantGenes) SoilEfficiencyFor(soil SoilType) float64 {
	return g.SoilEfficiency[soil.String()]
}
