package httpx

import (
	"errors"
	"net/http"

	"github.com/Sonchiik/Workout-Traker/internal/common"
)

// Challenge is the WWW-Authenticate value sent with every 401.
const Challenge = "Bearer"

// Unauthorized writes a 401 with the bearer challenge. The detail is fixed so
// callers cannot tell which check failed.
func Unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", Challenge)
	Problem(w, http.StatusUnauthorized, "Unauthorized", "Could not validate credentials")
}

// RespondError maps domain errors to HTTP responses using RFC7807. Anything
// that is not a known sentinel becomes a 500 without detail.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		Unauthorized(w)
	case errors.Is(err, common.ErrorForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", "Not enough permissions")
	case errors.Is(err, common.ErrorNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, common.ErrorValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// StatusOf returns the status RespondError would write for err.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
