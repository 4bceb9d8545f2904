// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
// All values are treated as immutable for the duration of a run.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	World       WorldConfig       `yaml:"world"`
	Noise       NoiseConfig       `yaml:"noise"`
	Terrain     TerrainConfig     `yaml:"terrain"`
	Time        TimeConfig        `yaml:"time"`
	Competition CompetitionConfig `yaml:"competition"`
	Quadtree    QuadtreeConfig    `yaml:"quadtree"`
	Plant       PlantConfig       `yaml:"plant"`
	Animal      AnimalConfig      `yaml:"animal"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds world dimensions and the founding population.
// All world coordinates are centimeters.
type WorldConfig struct {
	WidthCM        float64 `yaml:"width_cm"`
	HeightCM       float64 `yaml:"height_cm"`
	InitialPlants  int     `yaml:"initial_plants"`
	InitialAnimals int     `yaml:"initial_animals"`
	InitialEnergy  float64 `yaml:"initial_energy"` // J in a founding seed
}

// NoiseConfig holds the coherent-noise parameters shared by all
// environment fields.
type NoiseConfig struct {
	Scale            float64 `yaml:"scale"`
	Octaves          int     `yaml:"octaves"`
	Persistence      float64 `yaml:"persistence"`
	Lacunarity       float64 `yaml:"lacunarity"`
	TerrainAmplitude float64 `yaml:"terrain_amplitude"`
	TerrainSeed      int64   `yaml:"terrain_seed"`
	TemperatureSeed  int64   `yaml:"temperature_seed"`
	HumiditySeed     int64   `yaml:"humidity_seed"`
}

// TerrainConfig holds elevation banding thresholds and chunk rendering sizes.
type TerrainConfig struct {
	WaterLevel      float64 `yaml:"water_level"`
	SandLevel       float64 `yaml:"sand_level"`
	GrassLevel      float64 `yaml:"grass_level"`
	DirtLevel       float64 `yaml:"dirt_level"`
	ChunkSizeCM     float64 `yaml:"chunk_size_cm"`
	ChunkResolution int     `yaml:"chunk_resolution"`
}

// TimeConfig holds the fixed tick intervals of the event scheduler.
type TimeConfig struct {
	PlantTickSeconds           float64 `yaml:"plant_tick_seconds"`
	AnimalTickSeconds          float64 `yaml:"animal_tick_seconds"`
	CompetitionIntervalSeconds float64 `yaml:"competition_interval_seconds"`
}

// CompetitionConfig holds the competition grid resolution.
type CompetitionConfig struct {
	CellSizeCM float64 `yaml:"cell_size_cm"`
}

// QuadtreeConfig holds the spatial index node capacity.
type QuadtreeConfig struct {
	Capacity int `yaml:"capacity"`
}

// PlantConfig holds every numeric policy of the plant biology state machine.
// Units are noted per field; energy is always Joules.
type PlantConfig struct {
	SolarIrradianceWPerM2             float64 `yaml:"solar_irradiance_w_per_m2"`
	PhotosyntheticEfficiency          float64 `yaml:"photosynthetic_efficiency"`
	BiomassEnergyDensityJPerKG        float64 `yaml:"biomass_energy_density_j_per_kg"`
	LeafMassPerAreaKGPerM2            float64 `yaml:"leaf_mass_per_area_kg_per_m2"`
	CoreCostMultiplier                float64 `yaml:"core_cost_multiplier"`
	BaseMaintenanceRespirationPerArea float64 `yaml:"base_maintenance_respiration_per_area"`
	Q10Factor                         float64 `yaml:"q10_factor"`
	RespirationReferenceTemp          float64 `yaml:"respiration_reference_temp"`
	Q10IntervalDivisor                float64 `yaml:"q10_interval_divisor"`

	DormancyMetabolismJPerHour   float64 `yaml:"dormancy_metabolism_j_per_hour"`
	SproutingEnergyCost          float64 `yaml:"sprouting_energy_cost"`
	GerminationHumidityThreshold float64 `yaml:"germination_humidity_threshold"`
	GerminationMinTemp           float64 `yaml:"germination_min_temp"`
	GerminationMaxTemp           float64 `yaml:"germination_max_temp"`
	SproutRadiusCM               float64 `yaml:"sprout_radius_cm"`
	SproutRootRadiusCM           float64 `yaml:"sprout_root_radius_cm"`
	SproutCoreRadiusCM           float64 `yaml:"sprout_core_radius_cm"`
	SenescenceTimescaleSeconds   float64 `yaml:"senescence_timescale_seconds"`

	GrowthInvestmentJPerHour     float64 `yaml:"growth_investment_j_per_hour"`
	GrowthInvestmentReserve      float64 `yaml:"growth_investment_energy_reserve"`
	IdealCoreToCanopyAreaRatio   float64 `yaml:"ideal_core_to_canopy_area_ratio"`
	MinCoreToCanopyAreaRatio     float64 `yaml:"min_core_to_canopy_area_ratio"`
	MinViableCanopyRadiusCM      float64 `yaml:"min_viable_canopy_radius_cm"`
	RadiusToHeightFactor         float64 `yaml:"radius_to_height_factor"`
	MaxShadeRadiusToHeightFactor float64 `yaml:"max_shade_radius_to_height_factor"`
	MorphologyAdaptationRate     float64 `yaml:"morphology_adaptation_rate"`
	MaxHydraulicHeightCM         float64 `yaml:"max_hydraulic_height_cm"`
	RootEfficiencyFactor         float64 `yaml:"root_efficiency_factor"`
	CrushCheckCoreGrowthCM       float64 `yaml:"crush_check_core_growth_cm"`
	CrushResistanceRadiusCM      float64 `yaml:"crush_resistance_radius_cm"`
	CorePersonalSpaceFactor      float64 `yaml:"core_personal_space_factor"`

	ReproductiveInvestmentJPerHour  float64 `yaml:"reproductive_investment_j_per_hour"`
	ReproductionMinimumStoredEnergy float64 `yaml:"reproduction_minimum_stored_energy"`
	FlowerEnergyCost                float64 `yaml:"flower_energy_cost"`
	FlowerLifespanSeconds           float64 `yaml:"flower_lifespan_seconds"`
	FruitLifespanSeconds            float64 `yaml:"fruit_lifespan_seconds"`
	MaxFlowersPerCanopyArea         float64 `yaml:"max_flowers_per_canopy_area"`
	SeedProvisioningEnergy          float64 `yaml:"seed_provisioning_energy"`
	SeedRollBaseDistanceCM          float64 `yaml:"seed_roll_base_distance_cm"`
	SeedRollDistanceFactor          float64 `yaml:"seed_roll_distance_factor"`
	SlopeSampleStepCM               float64 `yaml:"slope_sample_step_cm"`

	OptimalTemperature   float64            `yaml:"optimal_temperature"`
	TemperatureTolerance float64            `yaml:"temperature_tolerance"`
	OptimalHumidity      float64            `yaml:"optimal_humidity"`
	HumidityTolerance    float64            `yaml:"humidity_tolerance"`
	SoilEfficiency       map[string]float64 `yaml:"soil_efficiency"`
}

// AnimalConfig holds the pursuit-grazer parameters.
type AnimalConfig struct {
	WidthCM             float64 `yaml:"width_cm"`
	HeightCM            float64 `yaml:"height_cm"`
	SightRadiusCM       float64 `yaml:"sight_radius_cm"`
	SpeedCMPerSec       float64 `yaml:"speed_cm_per_sec"`
	MetabolismPerSecond float64 `yaml:"metabolism_per_second"`
	EnergyPerPlant      float64 `yaml:"energy_per_plant"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowSeconds float64 `yaml:"window_seconds"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	// PhotosynthesisPerArea is the gross energy gain rate of unshaded
	// canopy, J/s/cm^2: (irradiance * efficiency) / (cm^2 per m^2).
	PhotosynthesisPerArea float64
	// BiomassEnergyCost is the cost to grow 1 cm^2 of cheap tissue
	// (leaves, roots), J/cm^2.
	BiomassEnergyCost float64
	// CoreBiomassEnergyCost is the cost to grow 1 cm^2 of structural
	// core tissue, J/cm^2.
	CoreBiomassEnergyCost float64
	// Grid dimensions of the competition grids.
	CompetitionCols int
	CompetitionRows int
}

const cm2PerM2 = 10000.0

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	p := &c.Plant
	c.Derived.PhotosynthesisPerArea = p.SolarIrradianceWPerM2 * p.PhotosyntheticEfficiency / cm2PerM2
	c.Derived.BiomassEnergyCost = p.BiomassEnergyDensityJPerKG * p.LeafMassPerAreaKGPerM2 / cm2PerM2
	c.Derived.CoreBiomassEnergyCost = c.Derived.BiomassEnergyCost * p.CoreCostMultiplier

	c.Derived.CompetitionCols = int(c.World.WidthCM / c.Competition.CellSizeCM)
	c.Derived.CompetitionRows = int(c.World.HeightCM / c.Competition.CellSizeCM)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
