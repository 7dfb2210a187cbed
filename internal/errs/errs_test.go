package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"unauthorized", NewUnauthorizedError("Unauthorized", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("nope", false), http.StatusForbidden, "FORBIDDEN"},
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"bad request with code", NewBadRequestError("bad", false, Code("HOST_INVALID"), nil, nil), http.StatusBadRequest, "HOST_INVALID"},
		{"not found", NewNotFoundError("missing", true, nil), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", NewConflictError("taken", true, Code("HOST_ALREADY_EXISTS")), http.StatusConflict, "HOST_ALREADY_EXISTS"},
		{"too many requests", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestInternalServerErrorHidesDetails(t *testing.T) {
	err := NewInternalServerError().WithCause(errors.New("pq: connection refused"))

	assert.Equal(t, InternalServerErrorMessage, err.Error())
	assert.EqualError(t, errors.Unwrap(err), "pq: connection refused")
}

func TestHTTPError_Is(t *testing.T) {
	notFound := NewNotFoundError("Host not found", true, Code("HOST_NOT_FOUND"))
	wrapped := fmt.Errorf("get host: %w", notFound)

	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.True(t, errors.Is(wrapped, &HTTPError{Code: "HOST_NOT_FOUND"}))
	assert.False(t, errors.Is(wrapped, &HTTPError{Code: "PROPERTY_NOT_FOUND"}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHTTPError_WithMessageCopies(t *testing.T) {
	base := NewConflictError("taken", true, nil)
	custom := base.WithMessage("Host with this username already exists")

	assert.Equal(t, "taken", base.Message)
	assert.Equal(t, "Host with this username already exists", custom.Message)
	assert.Equal(t, base.Status, custom.Status)
	assert.Equal(t, base.Code, custom.Code)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}
