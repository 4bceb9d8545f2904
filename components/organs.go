package components

// OrganType distinguishes the two reproductive organ stages.
type OrganType uint8

const (
	OrganFlower OrganType = iota
	OrganFruit
)

// ReproductiveOrgan is a flower or fruit attached to a plant's canopy.
// Age counts seconds in the current organ stage: a flower ripens into a
// fruit after the flower lifespan, and the fruit drops (triggering a
// seed-dispersal attempt) after the fruit lifespan.
type ReproductiveOrgan struct {
	Type OrganType
	Age  float64 // seconds in the current stage

	// Offset from the plant center, world cm. Fixed at creation;
	// determines where the fruit starts rolling from.
	OffsetX float64
	OffsetY float64
}
