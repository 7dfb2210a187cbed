package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "pricepernight", "error": "must not be negative" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	// Value holds the URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what the client should do next" instruction.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type every API failure is rendered as.
//
// It implements `error` and serializes directly to JSON:
//   - Code: machine-friendly error code (e.g. "HOST_ALREADY_EXISTS").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: whether the client UI may show Message verbatim.
//   - Errors: list of per-field errors (validation).
//   - Action: client instruction (optional).
//
// Cause is never serialized. It keeps the underlying error (driver, ORM)
// around for logs and error reports.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors"`
	Action *Action      `json:"action"`

	Cause error `json:"-"`
}

// Error returns the client-facing message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *HTTPError.
//
// A target with a non-empty Code only matches errors carrying the same Code,
// so callers can do errors.Is(err, &errs.HTTPError{Code: "HOST_NOT_FOUND"}).
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}

	return t.Code == "" || t.Code == e.Code
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithCause returns a copy of this HTTPError that wraps cause.
func (e *HTTPError) WithCause(cause error) *HTTPError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
