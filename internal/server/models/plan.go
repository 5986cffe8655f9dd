package models

import "time"

// PlanStatus tracks whether a scheduled workout happened.
type PlanStatus string

const (
	PlanPending   PlanStatus = "pending"
	PlanCompleted PlanStatus = "completed"
	PlanSkipped   PlanStatus = "skipped"
)

// Plan is a workout plan owned by one user.
type Plan struct {
	ID       int64
	UserID   int64
	Schedule *time.Time
	Status   PlanStatus
}

// PlanExercise attaches a catalog exercise to a plan with its load.
type PlanExercise struct {
	ID         int64
	PlanID     int64
	ExerciseID int64
	Sets       int
	Reps       int
	Weight     float64

	// Exercise is filled by list queries that join the catalog.
	Exercise *Exercise
}
