package domain

import "errors"

// ErrNotFound is returned when a requested destination or planner session
// does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails a business
// rule (e.g. a budget that is not a positive whole number).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrFetch marks a failed catalog load: network, auth, or query errors from
// the external data source. The catalog degrades to empty; it is never retried.
var ErrFetch = errors.New("catalog fetch failed")

// ErrConfiguration is returned at startup when required settings for the
// external data source are missing. The data-access client must not be built.
var ErrConfiguration = errors.New("configuration error")
