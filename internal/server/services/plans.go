package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Sonchiik/Workout-Traker/internal/common"
	"github.com/Sonchiik/Workout-Traker/internal/dbx"
	"github.com/Sonchiik/Workout-Traker/internal/server/auth"
	"github.com/Sonchiik/Workout-Traker/internal/server/models"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/plans"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/repomanager"
)

// PlanService manages workout plans. Every operation is scoped to the
// caller: a plan owned by someone else is reported exactly like a missing one.
type PlanService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPlanService(db *sql.DB, m repomanager.RepositoryManager) *PlanService {
	return &PlanService{db: db, repomanager: m}
}

func (s *PlanService) Create(ctx context.Context, caller *auth.Identity, schedule *time.Time, status models.PlanStatus) (*models.Plan, error) {
	if caller == nil {
		return nil, common.ErrorUnauthorized
	}
	if status == "" {
		status = models.PlanPending
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	return s.repomanager.Plans(s.db).Create(ctx, &models.Plan{
		UserID:   caller.UserID,
		Schedule: schedule,
		Status:   status,
	})
}

// List returns the caller's plans; none at all is ErrPlansNotFound.
func (s *PlanService) List(ctx context.Context, caller *auth.Identity) ([]*models.Plan, error) {
	if caller == nil {
		return nil, common.ErrorUnauthorized
	}
	list, err := s.repomanager.Plans(s.db).ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrPlansNotFound
	}
	return list, nil
}

func (s *PlanService) Get(ctx context.Context, caller *auth.Identity, id int64) (*models.Plan, error) {
	return ownedPlan(ctx, s.repomanager.Plans(s.db), caller, id)
}

func (s *PlanService) Delete(ctx context.Context, caller *auth.Identity, id int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Plans(tx)
		if _, err := ownedPlan(ctx, repo, caller, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

func (s *PlanService) UpdateSchedule(ctx context.Context, caller *auth.Identity, id int64, schedule *time.Time) (*models.Plan, error) {
	var out *models.Plan
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Plans(tx)
		if _, err := ownedPlan(ctx, repo, caller, id); err != nil {
			return err
		}
		var err error
		out, err = repo.UpdateSchedule(ctx, id, schedule)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PlanService) UpdateStatus(ctx context.Context, caller *auth.Identity, id int64, status models.PlanStatus) (*models.Plan, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	var out *models.Plan
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Plans(tx)
		if _, err := ownedPlan(ctx, repo, caller, id); err != nil {
			return err
		}
		var err error
		out, err = repo.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ownedPlan loads a plan and applies the owner check.
func ownedPlan(ctx context.Context, repo plans.Repository, caller *auth.Identity, id int64) (*models.Plan, error) {
	if caller == nil {
		return nil, common.ErrorUnauthorized
	}

	p, err := repo.Get(ctx, id)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		err = auth.RequireOwner(caller, 0, false)
	case err != nil:
		return nil, err
	default:
		err = auth.RequireOwner(caller, p.UserID, true)
	}
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return p, nil
}

func validateStatus(status models.PlanStatus) error {
	switch status {
	case models.PlanPending, models.PlanCompleted, models.PlanSkipped:
		return nil
	}
	return fmt.Errorf("%w: unknown plan status %q", common.ErrorValidation, status)
}
