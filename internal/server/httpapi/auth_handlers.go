package httpapi

import (
	"errors"
	"mime"
	"net/http"

	"github.com/Sonchiik/Workout-Traker/internal/common"
	"github.com/Sonchiik/Workout-Traker/internal/httpx"
	"github.com/Sonchiik/Workout-Traker/internal/observability"
	"github.com/Sonchiik/Workout-Traker/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
	IsActive *bool  `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	u, err := h.users.Register(r.Context(), services.RegisterInput{
		UserName: req.Username,
		Password: req.Password,
		IsActive: active,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "user_id", u.ID, "is_admin", u.IsAdmin)
	httpx.JSON(w, http.StatusCreated, userResponse{
		ID:       u.ID,
		Username: u.UserName,
		IsActive: u.IsActive,
		IsAdmin:  u.IsAdmin,
	})
}

// login accepts the OAuth2 password-grant form or an equivalent JSON body.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Problem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "malformed JSON body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.Problem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "malformed form body")
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	}
	if !h.validate(w, &req) {
		return
	}

	resp, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			h.metrics.RecordAuth(observability.AuthLoginFailure)
		}
		h.respondError(w, r, err)
		return
	}

	h.metrics.RecordAuth(observability.AuthLoginSuccess)
	w.Header().Set("Cache-Control", "no-store")
	httpx.JSON(w, http.StatusOK, resp)
}

// respondError writes err as a problem response and logs server-side failures.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if httpx.StatusOf(err) >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	httpx.RespondError(w, err)
}
