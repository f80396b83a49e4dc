// Package rand provides cryptographically secure randomness for key
// generation, secret splitting and nonce creation
package rand

import (
	"crypto/rand"
	"io"
	"math/big"
)

// Reader is the randomness source used by all generators in this package.
// It defaults to crypto/rand and is a variable only so tests can observe
// deterministic failures; production code must never replace it with a
// non-cryptographic source.
var Reader io.Reader = rand.Reader

// Bytes returns n cryptographically secure random bytes
func Bytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(Reader, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Scalar returns a uniformly random integer in [1, max).
// Zero is rejected by resampling, which keeps the distribution uniform over
// the remaining range.
func Scalar(max *big.Int) (*big.Int, error) {
	if max == nil {
		return nil, ErrNilMax
	}
	if max.Sign() <= 0 {
		return nil, ErrInvalidMax
	}

	value, err := rand.Int(Reader, max)
	if err != nil {
		return nil, err
	}

	for value.Sign() == 0 {
		value, err = rand.Int(Reader, max)
		if err != nil {
			return nil, err
		}
	}

	return value, nil
}

// Nonce returns a random nonce of the given length
func Nonce(length int) ([]byte, error) {
	return Bytes(length)
}
