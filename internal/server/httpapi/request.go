package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Sonchiik/Workout-Traker/internal/httpx"
)

// messageResponse is the body of delete endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

// decode reads a JSON body and validates it. On failure it writes a 422 and
// returns false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "malformed JSON body")
		return false
	}
	return h.validate(w, dst)
}

func (h *Handler) validate(w http.ResponseWriter, v any) bool {
	if err := h.validator.Struct(v); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", describeValidation(err))
		return false
	}
	return true
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// pathID parses a positive int64 URL parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	return parseID(w, name, chi.URLParam(r, name))
}

// queryID parses a required positive int64 query parameter.
func queryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	return parseID(w, name, r.URL.Query().Get(name))
}

func parseID(w http.ResponseWriter, name, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
