package errors

import (
	"fmt"
	"net/http"
	"testing"

	"horseadmin/domain/resource"
	"horseadmin/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{"fetch", resource.NewFetchError("orders", fmt.Errorf("connection refused")), CodeFetch, http.StatusBadGateway},
		{"write", resource.NewWriteError("horse", resource.OpCreate, fmt.Errorf("duplicate")), CodeWrite, http.StatusBadGateway},
		{"zero rows", resource.NewWriteError("horse", resource.OpUpdate, shared.NewNotFoundError("horse")), CodeWrite, http.StatusBadGateway},
		{"foreign owner", resource.NewWriteError("order", resource.OpDelete, shared.NewForbiddenError("order", "owned by another user")), CodeForbidden, http.StatusForbidden},
		{"no principal", resource.NewFetchError("posts", shared.NewUnauthorizedError("post")), CodeUnauthorized, http.StatusUnauthorized},
		{"validation", resource.NewValidationError("horse", "age", "must be a whole number", nil), CodeValidation, http.StatusBadRequest},
		{"read miss", shared.NewNotFoundError("profile"), CodeNotFound, http.StatusNotFound},
		{"unknown", fmt.Errorf("boom"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomainError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.HTTPStatusCode())
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestFromDomainError_KeepsMessageAndField(t *testing.T) {
	appErr := FromDomainError(resource.NewValidationError("post", "media", "must be valid JSON", nil))

	assert.Equal(t, "media must be valid JSON", appErr.Message)
	assert.Equal(t, "media", appErr.Field)
	assert.True(t, Is(appErr, CodeValidation))
}

func TestFromDomainError_PassesThroughAppError(t *testing.T) {
	orig := TooManyRequests("slow down")
	assert.Same(t, orig, FromDomainError(fmt.Errorf("wrapped: %w", orig)))
	assert.Nil(t, FromDomainError(nil))
}
