package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/Sonchiik/Workout-Traker/internal/common"
	"github.com/Sonchiik/Workout-Traker/internal/logging"
	"github.com/Sonchiik/Workout-Traker/internal/server/auth"
	"github.com/Sonchiik/Workout-Traker/internal/server/cache"
	"github.com/Sonchiik/Workout-Traker/internal/server/models"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/repomanager"
)

// ExerciseService manages the shared exercise catalog. Anyone may read it;
// only administrators may change it.
type ExerciseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       *cache.Cache
	log         logging.Logger
}

func NewExerciseService(db *sql.DB, m repomanager.RepositoryManager, c *cache.Cache, log logging.Logger) *ExerciseService {
	return &ExerciseService{db: db, repomanager: m, cache: c, log: log}
}

// List returns the whole catalog. An empty catalog is ErrExerciseNotFound.
func (s *ExerciseService) List(ctx context.Context) ([]*models.Exercise, error) {
	key, err := s.cache.BuildKey(ctx, "exercises", "list")
	if err != nil {
		s.log.Warn(ctx, "catalog cache unavailable", "error", err)
		return s.list(ctx)
	}

	var list []*models.Exercise
	err = s.cache.FetchJSON(ctx, key, &list, func(ctx context.Context) (any, error) {
		return s.list(ctx)
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ExerciseService) list(ctx context.Context) ([]*models.Exercise, error) {
	list, err := s.repomanager.Exercises(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrExerciseNotFound
	}
	return list, nil
}

func (s *ExerciseService) Get(ctx context.Context, id int64) (*models.Exercise, error) {
	key, err := s.cache.BuildKey(ctx, "exercises", strconv.FormatInt(id, 10))
	if err != nil {
		s.log.Warn(ctx, "catalog cache unavailable", "error", err)
		return s.get(ctx, id)
	}

	var e models.Exercise
	err = s.cache.FetchJSON(ctx, key, &e, func(ctx context.Context) (any, error) {
		return s.get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ExerciseService) get(ctx context.Context, id int64) (*models.Exercise, error) {
	e, err := s.repomanager.Exercises(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *ExerciseService) Create(ctx context.Context, caller *auth.Identity, e *models.Exercise) (*models.Exercise, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if err := validateExercise(e); err != nil {
		return nil, err
	}

	created, err := s.repomanager.Exercises(s.db).Create(ctx, e)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrExerciseExists
		}
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *ExerciseService) Update(ctx context.Context, caller *auth.Identity, e *models.Exercise) (*models.Exercise, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if err := validateExercise(e); err != nil {
		return nil, err
	}

	updated, err := s.repomanager.Exercises(s.db).Update(ctx, e)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil, ErrExerciseNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return nil, ErrExerciseExists
	case err != nil:
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete removes an exercise and every plan link that references it.
func (s *ExerciseService) Delete(ctx context.Context, caller *auth.Identity, id int64) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}

	if err := s.repomanager.Exercises(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Seed adds the given exercises whose names are not yet in the catalog.
func (s *ExerciseService) Seed(ctx context.Context, list []models.Exercise) (int, error) {
	n, err := s.repomanager.Exercises(s.db).Seed(ctx, list)
	if err != nil {
		return n, err
	}
	if n > 0 {
		s.invalidate(ctx)
	}
	return n, nil
}

func (s *ExerciseService) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.log.Warn(ctx, "catalog cache bump failed", "error", err)
	}
}

func validateExercise(e *models.Exercise) error {
	if e == nil || e.Name == "" {
		return fmt.Errorf("%w: exercise name is required", common.ErrorValidation)
	}
	switch e.Category {
	case models.CategoryCardio, models.CategoryStrength, models.CategoryFlexibility:
	default:
		return fmt.Errorf("%w: unknown category %q", common.ErrorValidation, e.Category)
	}
	switch e.MuscleCategory {
	case models.MuscleChest, models.MuscleBack, models.MuscleLegs, models.MuscleHands, models.MuscleShoulders:
	default:
		return fmt.Errorf("%w: unknown muscle category %q", common.ErrorValidation, e.MuscleCategory)
	}
	return nil
}
