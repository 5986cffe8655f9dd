// Package plans persists user workout plans.
package plans

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*models.Plan, error) {
	var (
		p        models.Plan
		schedule sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.UserID, &schedule, &p.Status); err != nil {
		return nil, err
	}
	if schedule.Valid {
		t := schedule.Time
		p.Schedule = &t
	}
	return &p, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Plan) (*models.Plan, error) {
	if p.Status == "" {
		p.Status = models.PlanPending
	}

	query := `INSERT INTO workout_plans (user_id, schedule, status)
		VALUES ($1, $2, $3)
		RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, p.UserID, nullTime(p.Schedule), p.Status).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Plan, error) {
	query := `SELECT id, user_id, schedule, status FROM workout_plans
		WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Plan, error) {
	query := `SELECT id, user_id, schedule, status FROM workout_plans WHERE id = $1`

	p, err := scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

// Delete removes the plan together with its exercise links.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workout_plans WHERE id = $1`, id)
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

func (r *PostgresRepository) UpdateSchedule(ctx context.Context, id int64, schedule *time.Time) (*models.Plan, error) {
	query := `UPDATE workout_plans SET schedule = $2 WHERE id = $1
		RETURNING id, user_id, schedule, status`

	return r.update(ctx, query, id, nullTime(schedule))
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status models.PlanStatus) (*models.Plan, error) {
	query := `UPDATE workout_plans SET status = $2 WHERE id = $1
		RETURNING id, user_id, schedule, status`

	return r.update(ctx, query, id, status)
}

func (r *PostgresRepository) update(ctx context.Context, query string, id int64, value any) (*models.Plan, error) {
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, id, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
