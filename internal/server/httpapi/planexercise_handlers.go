package httpapi

import (
	"net/http"

	"github.com/Sonchiik/Workout-Traker/internal/httpx"
	"github.com/Sonchiik/Workout-Traker/internal/server/auth"
	"github.com/Sonchiik/Workout-Traker/internal/server/models"
	"github.com/Sonchiik/Workout-Traker/internal/server/services"
)

type planExerciseRequest struct {
	Sets   int     `json:"sets" validate:"min=1"`
	Reps   int     `json:"reps" validate:"min=1"`
	Weight float64 `json:"weight" validate:"min=0"`
}

type planExerciseResponse struct {
	ID         int64            `json:"id"`
	PlanID     int64            `json:"workout_plan_id"`
	ExerciseID int64            `json:"exercise_id"`
	Sets       int              `json:"sets"`
	Reps       int              `json:"reps"`
	Weight     float64          `json:"weight"`
	Exercise   *models.Exercise `json:"exercise,omitempty"`
}

func toPlanExerciseResponse(pe *models.PlanExercise) planExerciseResponse {
	return planExerciseResponse{
		ID:         pe.ID,
		PlanID:     pe.PlanID,
		ExerciseID: pe.ExerciseID,
		Sets:       pe.Sets,
		Reps:       pe.Reps,
		Weight:     pe.Weight,
		Exercise:   pe.Exercise,
	}
}

func (h *Handler) addPlanExercise(w http.ResponseWriter, r *http.Request) {
	planID, ok := queryID(w, r, "plan_id")
	if !ok {
		return
	}
	exerciseID, ok := queryID(w, r, "exercise_id")
	if !ok {
		return
	}
	var req planExerciseRequest
	if !h.decode(w, r, &req) {
		return
	}

	pe, err := h.planExercises.Add(r.Context(), auth.IdentityFromContext(r.Context()), planID, exerciseID,
		services.PlanExerciseInput{Sets: req.Sets, Reps: req.Reps, Weight: req.Weight})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toPlanExerciseResponse(pe))
}

func (h *Handler) listPlanExercises(w http.ResponseWriter, r *http.Request) {
	planID, ok := queryID(w, r, "plan_id")
	if !ok {
		return
	}
	list, err := h.planExercises.List(r.Context(), auth.IdentityFromContext(r.Context()), planID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	out := make([]planExerciseResponse, 0, len(list))
	for _, pe := range list {
		out = append(out, toPlanExerciseResponse(pe))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) removePlanExercise(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := pathID(w, r, "exercise_id")
	if !ok {
		return
	}
	planID, ok := queryID(w, r, "plan_id")
	if !ok {
		return
	}
	if err := h.planExercises.Remove(r.Context(), auth.IdentityFromContext(r.Context()), planID, exerciseID); err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "Exercise removed from workout plan"})
}
