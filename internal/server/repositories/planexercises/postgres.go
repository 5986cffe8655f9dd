// Package planexercises persists the exercises scheduled inside a plan.
package planexercises

import (
	"context"
	"fmt"

	"github.com/Sonchiik/Workout-Traker/internal/common"
	"github.com/Sonchiik/Workout-Traker/internal/dbx"
	"github.com/Sonchiik/Workout-Traker/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create attaches an exercise to a plan. A dangling plan or exercise id
// yields common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, pe *models.PlanExercise) (*models.PlanExercise, error) {
	query := `INSERT INTO workout_exercises (workout_plan_id, exercise_id, sets, reps, weight)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, pe.PlanID, pe.ExerciseID, pe.Sets, pe.Reps, pe.Weight).Scan(&pe.ID)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return pe, nil
}

// ListByPlan returns the plan's exercises with their catalog entry joined in.
func (r *PostgresRepository) ListByPlan(ctx context.Context, planID int64) ([]*models.PlanExercise, error) {
	query := `SELECT we.id, we.workout_plan_id, we.exercise_id, we.sets, we.reps, we.weight,
			e.name, COALESCE(e.description, ''), e.category, e.muscle_category
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_plan_id = $1
		ORDER BY we.id`

	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.PlanExercise
	for rows.Next() {
		var (
			pe models.PlanExercise
			e  models.Exercise
		)
		if err := rows.Scan(&pe.ID, &pe.PlanID, &pe.ExerciseID, &pe.Sets, &pe.Reps, &pe.Weight,
			&e.Name, &e.Description, &e.Category, &e.MuscleCategory); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		e.ID = pe.ExerciseID
		pe.Exercise = &e
		result = append(result, &pe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

// Delete detaches one occurrence of exerciseID from the plan.
func (r *PostgresRepository) Delete(ctx context.Context, planID, exerciseID int64) error {
	query := `DELETE FROM workout_exercises WHERE id = (
			SELECT id FROM workout_exercises
			WHERE workout_plan_id = $1 AND exercise_id = $2
			ORDER BY id LIMIT 1
		)`

	res, err := r.db.ExecContext(ctx, query, planID, exerciseID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
