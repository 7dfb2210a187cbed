// Package errs defines the error types returned to API clients.
//
// Every failure that leaves the API is an HTTPError, so clients always
// receive the same shape: a machine code, a message, the status, optional
// field errors and an optional action hint.
package errs
