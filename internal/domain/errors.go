package domain

import "errors"

// ErrValidation marks create/start requests rejected before any mutation
// (missing required fields). Wrap it with the offending field for context.
var ErrValidation = errors.New("validation failed")
