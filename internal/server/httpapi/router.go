package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sonchiik/Workout-Traker/internal/httpx"
)

// Routes builds the chi router with the middleware stack and every endpoint.
func (h *Handler) Routes(cfg MiddlewareConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(h.middlewareStack(cfg)...)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/user", h.register)
		r.Post("/token", h.login)
	})

	r.Route("/exercises", func(r chi.Router) {
		r.Get("/", h.listExercises)
		r.Get("/{id}", h.getExercise)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)
			r.Post("/", h.createExercise)
			r.Put("/{id}", h.updateExercise)
			r.Delete("/{id}", h.deleteExercise)
		})
	})

	r.Route("/workout_plan", func(r chi.Router) {
		r.Use(h.authenticate)
		r.Post("/", h.createPlan)
		r.Get("/", h.listPlans)
		r.Get("/{id}", h.getPlan)
		r.Delete("/{id}", h.deletePlan)
		r.Patch("/{id}/schedule", h.updatePlanSchedule)
		r.Patch("/{id}/status", h.updatePlanStatus)
	})

	r.Route("/workout_exercises", func(r chi.Router) {
		r.Use(h.authenticate)
		r.Post("/", h.addPlanExercise)
		r.Get("/", h.listPlanExercises)
		r.Delete("/{exercise_id}", h.removePlanExercise)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusMethodNotAllowed, "Method Not Allowed", "")
	})

	return r
}
