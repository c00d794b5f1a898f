package errs

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	t.Parallel()

	code := "USER_ALREADY_EXISTS"

	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{name: "unauthorized", err: NewUnauthorizedError("Not authenticated", true), wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "forbidden", err: NewForbiddenError("Inactive user", true), wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "bad request", err: NewBadRequestError("No changes detected", true, nil, nil, nil), wantStatus: http.StatusBadRequest, wantCode: "BAD_REQUEST"},
		{name: "not found", err: NewNotFoundError("id not found: 1", true, nil), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "conflict with code", err: NewConflictError("Email already registered", &code), wantStatus: http.StatusConflict, wantCode: code},
		{name: "validation", err: NewValidationError("Validation failed", nil), wantStatus: http.StatusUnprocessableEntity, wantCode: "UNPROCESSABLE_ENTITY"},
		{name: "throttled", err: NewTooManyRequestsError("slow down"), wantStatus: http.StatusTooManyRequests, wantCode: "TOO_MANY_REQUESTS"},
		{name: "internal", err: NewInternalServerError(), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestIsMatchesKind(t *testing.T) {
	t.Parallel()

	wrapped := errors.Wrap(NewNotFoundError("id not found: 7", true, nil), "get skills")

	assert.ErrorIs(t, wrapped, NewNotFoundError("", false, nil))
	assert.NotErrorIs(t, wrapped, NewConflictError("", nil))
}

func TestWithMessage(t *testing.T) {
	t.Parallel()

	orig := NewForbiddenError("Forbidden", false)
	clone := orig.WithMessage("Not enough permissions")

	assert.Equal(t, "Forbidden", orig.Message)
	assert.Equal(t, "Not enough permissions", clone.Message)
	assert.Equal(t, orig.Status, clone.Status)
}
