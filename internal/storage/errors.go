package storage

import "errors"

var (
	// ErrSetNotFound is returned for an unknown userset ID or name
	ErrSetNotFound = errors.New("userset not found")

	// ErrSetExists is returned when a userset name is already taken
	ErrSetExists = errors.New("userset already exists")

	// ErrNilSet is returned when a nil record is saved
	ErrNilSet = errors.New("userset cannot be nil")
)
