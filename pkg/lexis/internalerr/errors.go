package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrExtractFailed    = errors.New("extraction failed")
	ErrNoText           = errors.New("no extractable text")
	ErrUnknownKind      = errors.New("unknown artifact kind")
	ErrStoreUnavailable = errors.New("store unavailable")
)
