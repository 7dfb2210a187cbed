// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, applies the
// domain rules (existence checks, uniqueness, password hashing,
// caching, follow-up jobs) and calls repository methods to
// interact with the data.
//
// Domain outcomes (not found, conflict) are returned as *errs.HTTPError.
// Anything else is returned as-is for the global error handler to classify.
package service

import (
	"github.com/deppfellow/booking-api/internal/errs"
	"github.com/deppfellow/booking-api/internal/sqlerr"
)

var (
	errHostNotFound     = errs.NewNotFoundError("Host not found", true, errs.Code("HOST_NOT_FOUND"))
	errPropertyNotFound = errs.NewNotFoundError("Property not found", true, errs.Code("PROPERTY_NOT_FOUND"))
	errHostExists       = errs.NewConflictError("Host with this username already exists", true, errs.Code("HOST_ALREADY_EXISTS"))
)

// hostWriteError reports a unique violation on hosts (only the username is
// unique) as errHostExists, so a racing duplicate gets the same 409 as the
// pre-check.
func hostWriteError(err error) error {
	if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
		return errHostExists
	}
	return err
}
