package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sonchiik/Workout-Traker/internal/common"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"not found", fmt.Errorf("exercise %w", common.ErrorNotFound), http.StatusNotFound, "exercise not found"},
		{"conflict", fmt.Errorf("username %w", common.ErrorAlreadyExists), http.StatusConflict, "username already exists"},
		{"validation", fmt.Errorf("%w: bad", common.ErrorValidation), http.StatusBadRequest, "validation error: bad"},
		{"forbidden", common.ErrorForbidden, http.StatusForbidden, "Not enough permissions"},
		{"unauthorized", fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrTokenExpired), http.StatusUnauthorized, "Could not validate credentials"},
		{"internal", errors.New("db error: connection refused"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, StatusOf(tt.err))
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

			var p ProblemDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantDetail, p.Detail)
		})
	}
}

func TestUnauthorized_SetsChallenge(t *testing.T) {
	rec := httptest.NewRecorder()
	Unauthorized(rec)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.NotContains(t, rec.Body.String(), "expired")
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]int{"id": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":3}`, rec.Body.String())
}
