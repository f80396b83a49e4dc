package envelope

import "errors"

var (
	// ErrNilCiphertext is returned when a nil or incomplete ciphertext is provided
	ErrNilCiphertext = errors.New("ciphertext cannot be nil")

	// ErrNilKey is returned when a nil keypair is provided
	ErrNilKey = errors.New("keypair cannot be nil")

	// ErrMalformedCiphertext is returned when a ciphertext component has the
	// wrong shape (e.g. bad nonce length)
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrAuthenticationFailed is returned when the GCM tag does not verify.
	// No plaintext bytes are ever returned alongside it.
	ErrAuthenticationFailed = errors.New("authentication failed: ciphertext tampered or wrong key")
)
