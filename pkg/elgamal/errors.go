package elgamal

import "errors"

var (
	// ErrNilCurve is returned when a nil curve is provided
	ErrNilCurve = errors.New("curve cannot be nil")

	// ErrNilShard is returned when a nil shard is provided
	ErrNilShard = errors.New("shard cannot be nil")

	// ErrInvalidShardID is returned when a shard ID is zero
	ErrInvalidShardID = errors.New("shard ID must be positive")

	// ErrNilPart is returned when a nil decryption part is provided
	ErrNilPart = errors.New("decryption part cannot be nil")

	// ErrNilCiphertext is returned when a nil or incomplete ciphertext is provided
	ErrNilCiphertext = errors.New("ciphertext cannot be nil")

	// ErrInsufficientShares is returned when fewer than threshold decryption
	// parts are supplied to Combine
	ErrInsufficientShares = errors.New("insufficient decryption parts for threshold")

	// ErrDuplicateShard is returned when two decryption parts carry the same
	// shard ID; the interpolation basis is undefined in that case
	ErrDuplicateShard = errors.New("duplicate shard ID among decryption parts")
)
