package planexercises

import (
	"context"

	"github.com/Sonchiik/Workout-Traker/internal/server/models"
)

// Repository stores exercises attached to workout plans.
type Repository interface {
	Create(ctx context.Context, pe *models.PlanExercise) (*models.PlanExercise, error)
	ListByPlan(ctx context.Context, planID int64) ([]*models.PlanExercise, error)
	Delete(ctx context.Context, planID, exerciseID int64) error
}
