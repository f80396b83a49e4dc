// Package security provides validation and memory-hygiene helpers shared by
// the cryptographic packages
package security

import (
	"errors"
	"math/big"
)

var (
	// ErrInvalidPolicy is returned when a threshold policy is malformed:
	// the threshold must satisfy 1 <= t <= n
	ErrInvalidPolicy = errors.New("invalid policy: threshold must satisfy 1 <= t <= n")

	// ErrInvalidHolderCount is returned when a userset has no shard holders
	ErrInvalidHolderCount = errors.New("invalid policy: at least one shard holder required")

	// ErrInvalidShardID is returned when a shard ID is outside [1, n]
	ErrInvalidShardID = errors.New("invalid shard ID: must be in range [1, n]")

	// ErrInvalidRange is returned when a scalar is outside its expected range
	ErrInvalidRange = errors.New("value out of valid range")

	// ErrNilValue is returned when a required value is nil
	ErrNilValue = errors.New("nil value provided")
)

// ValidatePolicy checks a (t, n) threshold policy.
// Returns ErrInvalidHolderCount when n < 1 and ErrInvalidPolicy when the
// threshold is below 1 or above n.
func ValidatePolicy(threshold, holders int) error {
	if holders < 1 {
		return ErrInvalidHolderCount
	}
	if threshold < 1 || threshold > holders {
		return ErrInvalidPolicy
	}
	return nil
}

// ValidateShardID checks that a shard ID is usable under a policy with
// `holders` participants. IDs are 1-based; 0 is reserved.
func ValidateShardID(id uint32, holders int) error {
	if holders < 1 {
		return ErrInvalidHolderCount
	}
	if id < 1 || uint64(id) > uint64(holders) {
		return ErrInvalidShardID
	}
	return nil
}

// ValidateScalarInRange checks that value lies in [1, max)
func ValidateScalarInRange(value, max *big.Int) error {
	if value == nil || max == nil {
		return ErrNilValue
	}
	if value.Sign() <= 0 || value.Cmp(max) >= 0 {
		return ErrInvalidRange
	}
	return nil
}
