package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.World.WidthCM != 100000 || cfg.World.HeightCM != 100000 {
		t.Errorf("world = %v x %v cm, want 100000 x 100000",
			cfg.World.WidthCM, cfg.World.HeightCM)
	}
	if cfg.Time.PlantTickSeconds != 3600 {
		t.Errorf("plant tick = %v, want 3600", cfg.Time.PlantTickSeconds)
	}
	if got := cfg.Plant.SoilEfficiency["grass"]; got != 1.0 {
		t.Errorf("grass soil efficiency = %v, want 1.0", got)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	// 1000 W/m^2 * 0.03 efficiency / 10000 cm^2/m^2
	if got := cfg.Derived.PhotosynthesisPerArea; math.Abs(got-0.003) > 1e-12 {
		t.Errorf("PhotosynthesisPerArea = %v, want 0.003", got)
	}
	// 18 MJ/kg * 0.1 kg/m^2 / 10000 cm^2/m^2
	if got := cfg.Derived.BiomassEnergyCost; math.Abs(got-180) > 1e-9 {
		t.Errorf("BiomassEnergyCost = %v, want 180", got)
	}
	if got := cfg.Derived.CoreBiomassEnergyCost; math.Abs(got-1440) > 1e-9 {
		t.Errorf("CoreBiomassEnergyCost = %v, want 1440", got)
	}
	if cfg.Derived.CompetitionCols != 2000 || cfg.Derived.CompetitionRows != 2000 {
		t.Errorf("competition grid = %d x %d, want 2000 x 2000",
			cfg.Derived.CompetitionCols, cfg.Derived.CompetitionRows)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	override := "world:\n  initial_plants: 7\n"
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}
	if cfg.World.InitialPlants != 7 {
		t.Errorf("InitialPlants = %d, want overridden 7", cfg.World.InitialPlants)
	}
	// Untouched fields keep their defaults.
	if cfg.World.WidthCM != 100000 {
		t.Errorf("WidthCM = %v, want default 100000", cfg.World.WidthCM)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config failed: %v", err)
	}
	if back.Plant.SproutingEnergyCost != cfg.Plant.SproutingEnergyCost {
		t.Error("written config does not round-trip")
	}
}
