package userset

import "errors"

var (
	// ErrNilInfo is returned when a nil policy is provided
	ErrNilInfo = errors.New("userset info cannot be nil")

	// ErrEmptyName is returned when a userset or holder name is empty
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrDuplicateHolder is returned when a holder appears twice in a policy
	ErrDuplicateHolder = errors.New("duplicate holder in policy")

	// ErrUnknownHolder is returned when a holder is not part of the userset
	ErrUnknownHolder = errors.New("holder not in userset")
)
