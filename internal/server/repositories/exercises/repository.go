package exercises

import (
	"context"

	"github.com/Sonchiik/Workout-Traker/internal/server/models"
)

// Repository is the exercise catalog.
type Repository interface {
	List(ctx context.Context) ([]*models.Exercise, error)
	Get(ctx context.Context, id int64) (*models.Exercise, error)
	Create(ctx context.Context, e *models.Exercise) (*models.Exercise, error)
	Update(ctx context.Context, e *models.Exercise) (*models.Exercise, error)
	Delete(ctx context.Context, id int64) error
	// Seed inserts exercises whose name is not yet taken and reports how many
	// rows were added.
	Seed(ctx context.Context, list []models.Exercise) (int, error)
}
