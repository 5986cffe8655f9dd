package httpapi

import (
	"net/http"

	"github.com/Sonchiik/Workout-Traker/internal/httpx"
	"github.com/Sonchiik/Workout-Traker/internal/server/auth"
	"github.com/Sonchiik/Workout-Traker/internal/server/models"
)

type exerciseRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Description    string `json:"description" validate:"max=500"`
	Category       string `json:"category" validate:"required,oneof=cardio strength flexibility"`
	MuscleCategory string `json:"muscle_category" validate:"required,oneof=chest back legs hands shoulders"`
}

func (req exerciseRequest) model(id int64) *models.Exercise {
	return &models.Exercise{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		Category:       models.Category(req.Category),
		MuscleCategory: models.MuscleGroup(req.MuscleCategory),
	}
}

func (h *Handler) listExercises(w http.ResponseWriter, r *http.Request) {
	list, err := h.exercises.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) getExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	e, err := h.exercises.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

func (h *Handler) createExercise(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())
	if err := auth.RequireAdmin(caller); err != nil {
		h.respondError(w, r, err)
		return
	}

	var req exerciseRequest
	if !h.decode(w, r, &req) {
		return
	}
	e, err := h.exercises.Create(r.Context(), caller, req.model(0))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, e)
}

func (h *Handler) updateExercise(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())
	if err := auth.RequireAdmin(caller); err != nil {
		h.respondError(w, r, err)
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req exerciseRequest
	if !h.decode(w, r, &req) {
		return
	}
	e, err := h.exercises.Update(r.Context(), caller, req.model(id))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

func (h *Handler) deleteExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.exercises.Delete(r.Context(), auth.IdentityFromContext(r.Context()), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "Exercise deleted successfully"})
}
