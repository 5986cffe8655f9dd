// Package httpapi exposes the workout tracker over HTTP/JSON with chi.
package httpapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/Sonchiik/Workout-Traker/internal/logging"
	"github.com/Sonchiik/Workout-Traker/internal/observability"
	"github.com/Sonchiik/Workout-Traker/internal/server/auth"
	"github.com/Sonchiik/Workout-Traker/internal/server/services"
)

// TokenVerifier turns a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// Handler holds the services behind the HTTP routes.
type Handler struct {
	users         *services.UserService
	exercises     *services.ExerciseService
	plans         *services.PlanService
	planExercises *services.PlanExerciseService

	tokens    TokenVerifier
	metrics   *observability.Metrics
	logger    logging.Logger
	validator *validator.Validate
}

// Deps bundles everything NewHandler needs.
type Deps struct {
	Users         *services.UserService
	Exercises     *services.ExerciseService
	Plans         *services.PlanService
	PlanExercises *services.PlanExerciseService
	Tokens        TokenVerifier
	Metrics       *observability.Metrics
	Logger        logging.Logger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		users:         d.Users,
		exercises:     d.Exercises,
		plans:         d.Plans,
		planExercises: d.PlanExercises,
		tokens:        d.Tokens,
		metrics:       d.Metrics,
		logger:        d.Logger.With("module", "http_server"),
		validator:     validator.New(validator.WithRequiredStructEnabled()),
	}
}
