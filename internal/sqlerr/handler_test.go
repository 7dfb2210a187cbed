package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/booking-api/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "hosts_username_key"`,
		TableName:      "hosts",
		ConstraintName: "hosts_username_key",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("create host: %w", pgErr)))

	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "HOST_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Host with this Username already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
	assert.ErrorIs(t, httpErr, pgErr)
}

func TestHandleError_ForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		TableName:  "properties",
		ColumnName: "host_id",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PROPERTY_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Host does not exist", httpErr.Message)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		TableName:  "properties",
		ColumnName: "price_per_night",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PROPERTY_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "price_per_night", httpErr.Errors[0].Field)
	assert.Equal(t, "The Price Per Night is required", httpErr.Message)
}

func TestHandleError_RecordNotFound(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(fmt.Errorf("table:properties: %w", gorm.ErrRecordNotFound)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Property not found", httpErr.Message)

	httpErr = asHTTPError(t, HandleError(gorm.ErrRecordNotFound))
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleError_PassThroughAndFallback(t *testing.T) {
	conflict := errs.NewConflictError("taken", true, nil)
	assert.Same(t, conflict, HandleError(conflict))

	httpErr := asHTTPError(t, HandleError(errors.New("connection reset by peer")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, errs.InternalServerErrorMessage, httpErr.Message)
	assert.EqualError(t, httpErr.Cause, "connection reset by peer")
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, ForeignKeyViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23503"})))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "username", extractColumnForUniqueViolation("unique_hosts_username"))
	assert.Equal(t, "username", extractColumnForUniqueViolation("hosts_username_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_hosts"))
}

func TestGetEntityName(t *testing.T) {
	assert.Equal(t, "Property", getEntityName("properties", ""))
	assert.Equal(t, "Booking", getEntityName("bookings", ""))
	assert.Equal(t, "Host", getEntityName("properties", "host_id"))
	assert.Equal(t, "record", getEntityName("", ""))
}
