package models

// Category classifies a catalog exercise.
type Category string

const (
	CategoryCardio      Category = "cardio"
	CategoryStrength    Category = "strength"
	CategoryFlexibility Category = "flexibility"
)

// MuscleGroup is the primary muscle group an exercise targets.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleLegs      MuscleGroup = "legs"
	MuscleHands     MuscleGroup = "hands"
	MuscleShoulders MuscleGroup = "shoulders"
)

// Exercise is a catalog entry. Names are unique across the catalog.
type Exercise struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Category       Category    `json:"category"`
	MuscleCategory MuscleGroup `json:"muscle_category"`
}
