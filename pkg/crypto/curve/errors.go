package curve

import "errors"

var (
	// ErrUnsupportedCurve is returned when an unknown curve is requested
	ErrUnsupportedCurve = errors.New("unsupported curve type")

	// ErrInvalidPoint is returned when a point is nil or not on the curve
	ErrInvalidPoint = errors.New("invalid point: not on curve")

	// ErrInvalidScalar is returned when a scalar is nil or out of range
	ErrInvalidScalar = errors.New("invalid scalar value")

	// ErrScalarZero is returned when a scalar reduces to zero
	ErrScalarZero = errors.New("scalar is zero")

	// ErrInvalidEncoding is returned when a point encoding cannot be decoded
	ErrInvalidEncoding = errors.New("invalid point encoding")
)
