package math

import "errors"

var (
	// ErrParse is returned when a numeric string cannot be parsed into a field element
	ErrParse = errors.New("malformed numeric string")

	// ErrInvalidModulus is returned when modulus is nil or not positive
	ErrInvalidModulus = errors.New("modulus must be positive")

	// ErrModulusMismatch is returned when operands belong to different fields
	ErrModulusMismatch = errors.New("operands must share the same modulus")

	// ErrDivisionByZero is returned when dividing by the additive identity
	ErrDivisionByZero = errors.New("division by zero in field")

	// ErrNoInverse is returned when a modular inverse does not exist
	ErrNoInverse = errors.New("no modular inverse exists")

	// ErrInvalidDegree is returned when polynomial degree is negative
	ErrInvalidDegree = errors.New("degree must be non-negative")

	// ErrEmptyCoefficients is returned when coefficients slice is empty
	ErrEmptyCoefficients = errors.New("coefficients cannot be empty")

	// ErrNilShard is returned when a nil shard is provided
	ErrNilShard = errors.New("shard cannot be nil")

	// ErrEmptyShards is returned when a shard set is empty
	ErrEmptyShards = errors.New("shard set cannot be empty")

	// ErrInvalidShardID is returned when a shard ID is zero
	// (x=0 is the secret itself, so ID 0 is reserved and invalid)
	ErrInvalidShardID = errors.New("shard ID must be positive")

	// ErrDuplicateShard is returned when two shards in a set share an ID
	ErrDuplicateShard = errors.New("duplicate shard ID in set")

	// ErrNilSecret is returned when a nil secret is provided
	ErrNilSecret = errors.New("secret cannot be nil")
)
