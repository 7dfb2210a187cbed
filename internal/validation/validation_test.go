package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/booking-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	ID       string `param:"id" json:"-" validate:"omitempty,uuid"`
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Page     int    `query:"page" validate:"omitempty,max=10"`
}

func (s *signup) Validate() error {
	return Struct(s)
}

type rejectAll struct{}

func (*rejectAll) Validate() error {
	return CustomValidationErrors{{Field: "pricePerNight", Message: "must be a number"}}
}

func bindRequest(body string) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_FieldErrorsUseClientNames(t *testing.T) {
	err := BindAndValidate(bindRequest(`{"username":"ab","email":"nope"}`), &signup{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.True(t, httpErr.Override)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "username", Error: "must be at least 3 characters"},
		{Field: "email", Error: "must be a valid email address"},
	}, httpErr.Errors)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	err := BindAndValidate(bindRequest(`{"username":`), &signup{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.False(t, httpErr.Override)
	assert.Empty(t, httpErr.Errors)
	assert.Error(t, httpErr.Cause)
}

func TestBindAndValidate_Valid(t *testing.T) {
	payload := &signup{}
	require.NoError(t, BindAndValidate(bindRequest(`{"username":"ana","email":"ana@example.com"}`), payload))
	assert.Equal(t, "ana", payload.Username)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := BindAndValidate(bindRequest(`{}`), &rejectAll{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, []errs.FieldError{{Field: "pricePerNight", Error: "must be a number"}}, httpErr.Errors)
}

func TestTagNames(t *testing.T) {
	err := Struct(&signup{ID: "x", Username: "ana", Email: "a@b.co", Page: 11})

	_, fieldErrors := extractValidationError(err)
	require.Len(t, fieldErrors, 2)
	assert.Equal(t, "id", fieldErrors[0].Field)
	assert.Equal(t, "must be a valid UUID", fieldErrors[0].Error)
	assert.Equal(t, "page", fieldErrors[1].Field)
	assert.Equal(t, "must not exceed 10", fieldErrors[1].Error)
}
