package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Sonchiik/Workout-Traker/internal/common"
	"github.com/Sonchiik/Workout-Traker/internal/dbx"
	"github.com/Sonchiik/Workout-Traker/internal/server/auth"
	"github.com/Sonchiik/Workout-Traker/internal/server/models"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/repomanager"
)

// PlanExerciseInput is the load attached to an exercise inside a plan.
type PlanExerciseInput struct {
	Sets   int
	Reps   int
	Weight float64
}

// PlanExerciseService attaches catalog exercises to the caller's plans.
type PlanExerciseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPlanExerciseService(db *sql.DB, m repomanager.RepositoryManager) *PlanExerciseService {
	return &PlanExerciseService{db: db, repomanager: m}
}

func (s *PlanExerciseService) Add(ctx context.Context, caller *auth.Identity, planID, exerciseID int64, in PlanExerciseInput) (*models.PlanExercise, error) {
	if in.Sets < 1 || in.Reps < 1 || in.Weight < 0 {
		return nil, fmt.Errorf("%w: sets and reps must be at least 1, weight non-negative", common.ErrorValidation)
	}

	var out *models.PlanExercise
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := ownedPlan(ctx, s.repomanager.Plans(tx), caller, planID); err != nil {
			return err
		}

		ex, err := s.repomanager.Exercises(tx).Get(ctx, exerciseID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrExerciseNotFound
			}
			return err
		}

		out, err = s.repomanager.PlanExercises(tx).Create(ctx, &models.PlanExercise{
			PlanID:     planID,
			ExerciseID: exerciseID,
			Sets:       in.Sets,
			Reps:       in.Reps,
			Weight:     in.Weight,
		})
		if err != nil {
			return err
		}
		out.Exercise = ex
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PlanExerciseService) List(ctx context.Context, caller *auth.Identity, planID int64) ([]*models.PlanExercise, error) {
	if _, err := ownedPlan(ctx, s.repomanager.Plans(s.db), caller, planID); err != nil {
		return nil, err
	}
	return s.repomanager.PlanExercises(s.db).ListByPlan(ctx, planID)
}

func (s *PlanExerciseService) Remove(ctx context.Context, caller *auth.Identity, planID, exerciseID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := ownedPlan(ctx, s.repomanager.Plans(tx), caller, planID); err != nil {
			return err
		}
		if err := s.repomanager.PlanExercises(tx).Delete(ctx, planID, exerciseID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrPlanExerciseNotFound
			}
			return err
		}
		return nil
	})
}
