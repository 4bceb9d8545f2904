// Package systems implements the simulation core: the dense plant store,
// the spatial competition grids, the time-bucketed event scheduler, the
// environment fields, and the organism biology.
package systems

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/NeoLorenzo/eco-system-evolution/components"
	"github.com/NeoLorenzo/eco-system-evolution/config"
)

// EnvSampler is the environment contract the biology consumes. Every field
// is a deterministic pure function of world coordinates (cm), normalized to
// [0,1]. The core samples these only at organism creation/germination time
// and during seed-dispersal slope sampling, never every tick.
type EnvSampler interface {
	Elevation(x, y float64) float64
	Temperature(x, y float64) float64
	Humidity(x, y float64) float64
}

// Environment generates the world's elevation, temperature and humidity
// fields from seeded coherent noise.
type Environment struct {
	terrain  opensimplex.Noise
	temp     opensimplex.Noise
	humidity opensimplex.Noise

	scale       float64
	octaves     int
	persistence float64
	lacunarity  float64
	amplitude   float64 // terrain contrast exponent
	ampNorm     float64 // 1 / sum of octave amplitudes
}

// NewEnvironment creates the environment fields from the configured seeds.
func NewEnvironment() *Environment {
	cfg := config.Cfg()
	n := cfg.Noise

	// Normalize FBM output back to [-1,1] regardless of octave count.
	sum := 0.0
	amp := 1.0
	for i := 0; i < n.Octaves; i++ {
		sum += amp
		amp *= n.Persistence
	}

	return &Environment{
		terrain:     opensimplex.New(n.TerrainSeed),
		temp:        opensimplex.New(n.TemperatureSeed),
		humidity:    opensimplex.New(n.HumiditySeed),
		scale:       n.Scale,
		octaves:     n.Octaves,
		persistence: n.Persistence,
		lacunarity:  n.Lacunarity,
		amplitude:   n.TerrainAmplitude,
		ampNorm:     1.0 / sum,
	}
}

// fbm evaluates fractional Brownian motion over the given noise source,
// returning a value in [0,1].
func (e *Environment) fbm(src opensimplex.Noise, x, y float64) float64 {
	fx := x / e.scale
	fy := y / e.scale

	total := 0.0
	amp := 1.0
	for i := 0; i < e.octaves; i++ {
		total += src.Eval2(fx, fy) * amp
		amp *= e.persistence
		fx *= e.lacunarity
		fy *= e.lacunarity
	}

	return clamp01((total*e.ampNorm + 1) / 2)
}

// Elevation returns the terrain height at a world coordinate, [0,1].
// The amplitude exponent deepens basins so a water level near 0.3 produces
// connected seas rather than scattered ponds.
func (e *Environment) Elevation(x, y float64) float64 {
	return clamp01(math.Pow(e.fbm(e.terrain, x, y), e.amplitude))
}

// Temperature returns the normalized temperature at a world coordinate, [0,1].
func (e *Environment) Temperature(x, y float64) float64 {
	return e.fbm(e.temp, x, y)
}

// Humidity returns the normalized humidity at a world coordinate, [0,1].
func (e *Environment) Humidity(x, y float64) float64 {
	return e.fbm(e.humidity, x, y)
}

// SoilTypeAt classifies the terrain band for the given elevation.
// Water and mountain are non-viable (SoilNone).
func SoilTypeAt(elevation float64) components.SoilType {
	t := config.Cfg().Terrain
	switch {
	case elevation >= t.WaterLevel && elevation < t.SandLevel:
		return components.SoilSand
	case elevation >= t.SandLevel && elevation < t.GrassLevel:
		return components.SoilGrass
	case elevation >= t.GrassLevel && elevation < t.DirtLevel:
		return components.SoilDirt
	default:
		return components.SoilNone
	}
}

// SlopeAt returns the local elevation gradient at (x, y) via central
// differences with the configured sample step. The returned vector points
// uphill; fruit dispersal rolls along its negation.
func SlopeAt(env EnvSampler, x, y float64) (gx, gy float64) {
	step := config.Cfg().Plant.SlopeSampleStepCM
	gx = (env.Elevation(x+step, y) - env.Elevation(x-step, y)) / (2 * step)
	gy = (env.Elevation(x, y+step) - env.Elevation(x, y-step)) / (2 * step)
	return gx, gy
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
