// Package hash provides digest helpers and the point-to-key derivation that
// bridges the asymmetric and symmetric ciphertext layers
package hash

import (
	"crypto/sha256"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"

	"github.com/Caqil/threshold-encrypt/pkg/crypto/curve"
)

// envelopeKeyInfo is the HKDF domain-separation label for symmetric keys
// derived from recovered ElGamal mask points. Changing it breaks every
// existing ciphertext, so it is fixed for the lifetime of the format.
const envelopeKeyInfo = "threshold-encrypt/envelope-key/v1"

// EnvelopeKeySize is the symmetric key length produced by KeyFromPoint
const EnvelopeKeySize = 32

// SHA256 computes the SHA-256 digest of data
func SHA256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// HashToScalar maps arbitrary bytes to a scalar below the given modulus by
// hash-and-reduce
func HashToScalar(data []byte, modulus *big.Int) *big.Int {
	s := new(big.Int).SetBytes(SHA256(data))
	s.Mod(s, modulus)
	return s
}

// KeyFromPoint derives the AES-256 envelope key from a curve point.
//
// The encrypting side calls this on m*G for its random seed scalar m; the
// combining side calls it on the point recovered from the decryption parts.
// Both obtain the identical key without either ever solving a discrete log,
// which fixes the point-to-scalar decode convention for the whole format.
func KeyFromPoint(p *curve.Point) ([]byte, error) {
	if p == nil {
		return nil, ErrNilPoint
	}

	encoded := p.Bytes()
	if encoded == nil {
		return nil, ErrNilPoint
	}

	return HKDF(encoded, nil, []byte(envelopeKeyInfo), EnvelopeKeySize)
}

// HKDF derives length bytes of key material from secret via HKDF-SHA256
func HKDF(secret, salt, info []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}

	out := make([]byte, length)
	r := hkdf.New(sha256.New, secret, salt, info)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}

	return out, nil
}
