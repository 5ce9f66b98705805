package qdrant

import "errors"

var (
	// ErrIndexUnavailable indicates the vector index could not be reached
	// or refused the request. Callers should surface it as an internal
	// failure rather than a client error.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrDimensionMismatch indicates a vector whose length does not match
	// the collection's configured dimensionality. This is a configuration
	// error and retrying will not help.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
