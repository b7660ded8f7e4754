package internaltypes

import "errors"

// Error kinds shared across layers. The HTTP layer maps them to status codes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
