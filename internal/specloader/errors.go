package specloader

import "errors"

// Sentinel errors for the spec-loading failure modes named in §4.1.
var (
	ErrNoSpecProvided  = errors.New("specloader: no spec source provided")
	ErrFetchFailed     = errors.New("specloader: failed to fetch spec")
	ErrParseFailed     = errors.New("specloader: failed to parse spec")
	ErrInvalidDocument = errors.New("specloader: document is not a valid OpenAPI 3.x document")
)
