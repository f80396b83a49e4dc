package rand

import "errors"

var (
	// ErrInvalidLength is returned when the requested length is not positive
	ErrInvalidLength = errors.New("invalid length: must be positive")

	// ErrNilMax is returned when the max parameter is nil
	ErrNilMax = errors.New("max cannot be nil")

	// ErrInvalidMax is returned when max is not positive
	ErrInvalidMax = errors.New("max must be positive")
)
