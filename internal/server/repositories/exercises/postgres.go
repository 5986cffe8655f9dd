// Package exercises persists the shared exercise catalog.
package exercises

import (
	"context"
	"database/sql"
	"errors"
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

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Exercise, error) {
	query := `SELECT id, name, COALESCE(description, ''), category, muscle_category
		FROM exercises ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Category, &e.MuscleCategory); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Exercise, error) {
	query := `SELECT id, name, COALESCE(description, ''), category, muscle_category
		FROM exercises WHERE id = $1`

	var e models.Exercise
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&e.ID, &e.Name, &e.Description, &e.Category, &e.MuscleCategory)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &e, nil
}

// Create inserts a catalog entry. A taken name yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, e *models.Exercise) (*models.Exercise, error) {
	query := `INSERT INTO exercises (name, description, category, muscle_category)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, e.Name, e.Description, e.Category, e.MuscleCategory).Scan(&e.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

// Update overwrites every field of the exercise identified by e.ID.
func (r *PostgresRepository) Update(ctx context.Context, e *models.Exercise) (*models.Exercise, error) {
	query := `UPDATE exercises
		SET name = $2, description = $3, category = $4, muscle_category = $5
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.Description, e.Category, e.MuscleCategory)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}

	return e, nil
}

// Delete removes the exercise; plan links to it go with it (ON DELETE CASCADE).
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Seed(ctx context.Context, list []models.Exercise) (int, error) {
	query := `INSERT INTO exercises (name, description, category, muscle_category)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING`

	added := 0
	for _, e := range list {
		res, err := r.db.ExecContext(ctx, query, e.Name, e.Description, e.Category, e.MuscleCategory)
		if err != nil {
			return added, fmt.Errorf("seed %q: %w", e.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("rows affected error: %w", err)
		}
		added += int(n)
	}

	return added, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
