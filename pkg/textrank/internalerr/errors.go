package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrIO               = errors.New("i/o failure")
	ErrStoreUnavailable = errors.New("store unavailable")
)
