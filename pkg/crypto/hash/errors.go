package hash

import "errors"

var (
	// ErrNilPoint is returned when a nil or unmarshalable point is provided
	ErrNilPoint = errors.New("point cannot be nil")

	// ErrInvalidLength is returned when the requested key length is not positive
	ErrInvalidLength = errors.New("invalid key length")
)
