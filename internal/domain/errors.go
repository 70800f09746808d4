package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing country, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a new or updated trip would overlap an
// existing trip's date range. The wrapped message carries the conflict
// detail. Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("date conflict")
