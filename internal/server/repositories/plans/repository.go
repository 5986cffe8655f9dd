package plans

import (
	"context"
	"time"

	"github.com/Sonchiik/Workout-Traker/internal/server/models"
)

// Repository stores workout plans. It does not filter by owner; callers check
// ownership of the plan Get returns.
type Repository interface {
	Create(ctx context.Context, p *models.Plan) (*models.Plan, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Plan, error)
	Get(ctx context.Context, id int64) (*models.Plan, error)
	Delete(ctx context.Context, id int64) error
	UpdateSchedule(ctx context.Context, id int64, schedule *time.Time) (*models.Plan, error)
	UpdateStatus(ctx context.Context, id int64, status models.PlanStatus) (*models.Plan, error)
}
