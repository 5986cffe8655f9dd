// Package seed holds the built-in exercise catalog loaded on first start.
package seed

import (
	"context"
	"fmt"

	"github.com/Sonchiik/Workout-Traker/internal/server/models"
)

// CatalogSeeder inserts exercises whose names are not yet in the catalog and
// reports how many rows were added.
type CatalogSeeder interface {
	Seed(ctx context.Context, list []models.Exercise) (int, error)
}

// Exercises returns a fresh copy of the built-in catalog.
func Exercises() []models.Exercise {
	return []models.Exercise{
		{Name: "Bench Press", Description: "Strengthens chest and triceps.", Category: models.CategoryStrength, MuscleCategory: models.MuscleChest},
		{Name: "Deadlift", Description: "Works the back, glutes, and legs.", Category: models.CategoryStrength, MuscleCategory: models.MuscleBack},
		{Name: "Squats", Description: "Fundamental leg strength exercise.", Category: models.CategoryStrength, MuscleCategory: models.MuscleLegs},
		{Name: "Overhead Press", Description: "Strengthens shoulders and upper chest.", Category: models.CategoryStrength, MuscleCategory: models.MuscleShoulders},
		{Name: "Bicep Curl", Description: "Isolates and builds biceps.", Category: models.CategoryStrength, MuscleCategory: models.MuscleHands},
		{Name: "Tricep Extension", Description: "Targets triceps muscle.", Category: models.CategoryStrength, MuscleCategory: models.MuscleHands},
		{Name: "Running", Description: "Improves endurance and leg strength.", Category: models.CategoryCardio, MuscleCategory: models.MuscleLegs},
		{Name: "Cycling", Description: "Low-impact cardio workout for legs.", Category: models.CategoryCardio, MuscleCategory: models.MuscleLegs},
		{Name: "Jump Rope", Description: "Cardio exercise for legs and coordination.", Category: models.CategoryCardio, MuscleCategory: models.MuscleLegs},
		{Name: "Rowing Machine", Description: "Full-body cardio emphasizing the back.", Category: models.CategoryCardio, MuscleCategory: models.MuscleBack},
		{Name: "Shoulder Stretch", Description: "Improves shoulder flexibility.", Category: models.CategoryFlexibility, MuscleCategory: models.MuscleShoulders},
		{Name: "Hamstring Stretch", Description: "Enhances flexibility in legs and lower back.", Category: models.CategoryFlexibility, MuscleCategory: models.MuscleLegs},
		{Name: "Neck Rolls", Description: "Relieves tension in neck and shoulders.", Category: models.CategoryFlexibility, MuscleCategory: models.MuscleShoulders},
		{Name: "Cat-Cow Stretch", Description: "Improves flexibility of the spine.", Category: models.CategoryFlexibility, MuscleCategory: models.MuscleBack},
	}
}

// Run loads the built-in catalog through s. Running it twice adds nothing.
func Run(ctx context.Context, s CatalogSeeder) (int, error) {
	n, err := s.Seed(ctx, Exercises())
	if err != nil {
		return n, fmt.Errorf("seed exercises: %w", err)
	}
	return n, nil
}
