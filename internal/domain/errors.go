package domain

import "errors"

// ErrValidation wraps every invariant failure so callers can translate it to a
// bad-request response with errors.Is.
var ErrValidation = errors.New("validation failed")
