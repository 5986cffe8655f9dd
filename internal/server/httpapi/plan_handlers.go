package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Sonchiik/Workout-Traker/internal/common"
	"github.com/Sonchiik/Workout-Traker/internal/httpx"
	"github.com/Sonchiik/Workout-Traker/internal/server/auth"
	"github.com/Sonchiik/Workout-Traker/internal/server/models"
)

// ScheduleLayout is the wire format of plan schedules, e.g. "24-12-2026 18:30".
const ScheduleLayout = "02-01-2006 15:04"

type planRequest struct {
	Schedule *string `json:"schedule"`
	Status   string  `json:"status" validate:"omitempty,oneof=pending completed skipped"`
}

type scheduleRequest struct {
	Schedule *string `json:"schedule"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed skipped"`
}

type planResponse struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"user_id"`
	Schedule *string `json:"schedule"`
	Status   string  `json:"status"`
}

func toPlanResponse(p *models.Plan) planResponse {
	resp := planResponse{ID: p.ID, UserID: p.UserID, Status: string(p.Status)}
	if p.Schedule != nil {
		s := p.Schedule.Format(ScheduleLayout)
		resp.Schedule = &s
	}
	return resp
}

// parseSchedule converts the wire format; nil or empty means unscheduled.
func parseSchedule(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(ScheduleLayout, *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule must look like DD-MM-YYYY HH:MM", common.ErrorValidation)
	}
	return &t, nil
}

func (h *Handler) createPlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !h.decode(w, r, &req) {
		return
	}
	schedule, err := parseSchedule(req.Schedule)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	p, err := h.plans.Create(r.Context(), auth.IdentityFromContext(r.Context()), schedule, models.PlanStatus(req.Status))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toPlanResponse(p))
}

func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	list, err := h.plans.List(r.Context(), auth.IdentityFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	out := make([]planResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPlanResponse(p))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) getPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.plans.Get(r.Context(), auth.IdentityFromContext(r.Context()), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toPlanResponse(p))
}

func (h *Handler) deletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.plans.Delete(r.Context(), auth.IdentityFromContext(r.Context()), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "Workout plan deleted successfully"})
}

func (h *Handler) updatePlanSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req scheduleRequest
	if !h.decode(w, r, &req) {
		return
	}
	schedule, err := parseSchedule(req.Schedule)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	p, err := h.plans.UpdateSchedule(r.Context(), auth.IdentityFromContext(r.Context()), id, schedule)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toPlanResponse(p))
}

func (h *Handler) updatePlanStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.plans.UpdateStatus(r.Context(), auth.IdentityFromContext(r.Context()), id, models.PlanStatus(req.Status))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toPlanResponse(p))
}
