package domain

import "errors"

// ErrNotFound is returned by repo functions when the requested record does
// not exist in the database. The search service maps it to an empty result:
// an absence is a first-class outcome, not a failure.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. empty title, similarity threshold outside the open interval (0, 1)).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrAlreadyRegistered is the register workflow's duplicate-title outcome.
// The repo also returns it when an insert hits the unique index on title.
// It is a first-class domain outcome, not a storage error; handlers map it
// to HTTP 409.
var ErrAlreadyRegistered = errors.New("title already registered")

// ErrStorage is the generic failure the workflow layer surfaces when a
// database call fails. The underlying cause is logged at the workflow
// boundary and deliberately not carried in the error chain, so internal
// detail never leaks to callers. Handlers map it to HTTP 500.
var ErrStorage = errors.New("storage error")
