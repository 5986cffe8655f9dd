package repomanager

import (
	"context"
	"database/sql"

	"github.com/Sonchiik/Workout-Traker/internal/dbx"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/exercises"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/planexercises"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/plans"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// them either on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Exercises(db dbx.DBTX) exercises.Repository
	Plans(db dbx.DBTX) plans.Repository
	PlanExercises(db dbx.DBTX) planexercises.Repository
}
