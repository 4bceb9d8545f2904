// Package components defines the plain data types shared across the
// simulation systems.
package components

// Kind discriminates organism variants on the shared scheduler.
type Kind uint8

const (
	KindPlant Kind = iota
	KindAnimal
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindPlant:
		return "plant"
	case KindAnimal:
		return "animal"
	default:
		return "unknown"
	}
}

// LifeStage is the plant state machine stage. Transitions are strictly
// Seed -> Seedling -> Mature; there are no reverse edges.
type LifeStage uint8

const (
	StageSeed LifeStage = iota
	StageSeedling
	StageMature
)

// String returns a human-readable stage name.
func (s LifeStage) String() string {
	switch s {
	case StageSeed:
		return "seed"
	case StageSeedling:
		return "seedling"
	case StageMature:
		return "mature"
	default:
		return "unknown"
	}
}

// DeathCause records why an organism died. Every cause is a normal,
// expected biological outcome, not a software fault.
type DeathCause uint8

const (
	DeathStarvation DeathCause = iota
	DeathDormancyFailure
	DeathPruningCollapse
	DeathStructuralFailure
	DeathCoreCrush
	DeathBeingEaten
	DeathInvalidSoil
	deathCauseCount
)

// NumDeathCauses is the number of distinct death causes, for stats arrays.
const NumDeathCauses = int(deathCauseCount)

// String returns a human-readable death cause.
func (d DeathCause) String() string {
	switch d {
	case DeathStarvation:
		return "starvation"
	case DeathDormancyFailure:
		return "dormancy_failure"
	case DeathPruningCollapse:
		return "pruning_collapse"
	case DeathStructuralFailure:
		return "structural_failure"
	case DeathCoreCrush:
		return "core_crush"
	case DeathBeingEaten:
		return "being_eaten"
	case DeathInvalidSoil:
		return "invalid_soil"
	default:
		return "unknown"
	}
}

// SoilType classifies the terrain band under a plant, derived once from
// elevation at creation. SoilNone marks non-viable ground (water, mountain).
type SoilType uint8

const (
	SoilNone SoilType = iota
	SoilSand
	SoilGrass
	SoilDirt
)

// String returns the soil name used as the genes' soil-efficiency key.
func (s SoilType) String() string {
	switch s {
	case SoilSand:
		return "sand"
	case SoilGrass:
		return "grass"
	case SoilDirt:
		return "dirt"
	default:
		return "none"
	}
}
