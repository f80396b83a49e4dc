// Package envelope combines the EC-ElGamal threshold layer with AES-256-GCM
// to encrypt bulk payloads under a group public key. A sealed payload has
// three components: the ElGamal pair (C1, C2) masking the envelope key, and
// the authenticated symmetric blob carrying the actual message.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/Caqil/threshold-encrypt/internal/security"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/curve"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/hash"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/rand"
	"github.com/Caqil/threshold-encrypt/pkg/elgamal"
)

// NonceSize is the AES-GCM nonce length in bytes
const NonceSize = 12

// Ciphertext is a sealed payload: two curve points plus the authenticated
// symmetric blob. Instances are immutable once created and safe to store or
// transmit opaquely.
type Ciphertext struct {
	// C1, C2 are the ElGamal masking of the envelope-key point
	C1 *curve.Point
	C2 *curve.Point

	// Nonce is the AES-GCM nonce for Blob
	Nonce []byte

	// Blob is the GCM ciphertext and tag of the payload
	Blob []byte
}

// Seal encrypts plaintext under the group public key.
//
// A random seed scalar m is drawn; the envelope key is derived from the
// point m*G, which is in turn encrypted to (C1, C2) under the group key.
// Decryption therefore requires a threshold of shard holders to recover
// m*G before the symmetric layer can be opened. C1 and C2 are bound into
// the GCM additional data, so the asymmetric components cannot be swapped
// between ciphertexts without failing authentication.
func Seal(c curve.Curve, plaintext []byte, pub *curve.Point) (*Ciphertext, error) {
	if c == nil {
		return nil, elgamal.ErrNilCurve
	}
	if pub == nil || !c.IsOnCurve(pub) {
		return nil, curve.ErrInvalidPoint
	}

	seed, err := rand.Scalar(c.Order())
	if err != nil {
		return nil, err
	}
	defer security.ZeroBigInt(seed)

	mask, err := c.ScalarBaseMult(seed)
	if err != nil {
		return nil, err
	}

	asym, err := elgamal.EncryptPoint(c, mask, pub)
	if err != nil {
		return nil, err
	}

	key, err := hash.KeyFromPoint(mask)
	if err != nil {
		return nil, err
	}
	defer security.Zero(key)

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce, err := rand.Nonce(NonceSize)
	if err != nil {
		return nil, err
	}

	blob := aead.Seal(nil, nonce, plaintext, additionalData(asym.C1, asym.C2))

	return &Ciphertext{
		C1:    asym.C1,
		C2:    asym.C2,
		Nonce: nonce,
		Blob:  blob,
	}, nil
}

// Open decrypts a sealed payload from a quorum of decryption parts.
//
// The parts are combined in the exponent to recover the mask point, the
// envelope key is re-derived from it, and the blob is opened. The GCM tag is
// verified before any plaintext is returned; on mismatch the result is
// ErrAuthenticationFailed and no partial plaintext.
func Open(c curve.Curve, parts []*elgamal.DecryptionPart, ct *Ciphertext, threshold int) ([]byte, error) {
	if ct == nil || ct.C1 == nil || ct.C2 == nil {
		return nil, ErrNilCiphertext
	}

	mask, err := elgamal.Combine(c, parts, ct.C2, threshold)
	if err != nil {
		return nil, err
	}

	return openWithMask(c, mask, ct)
}

// OpenWithPrivate decrypts with the unsplit private scalar. Only usable
// where the group secret was never sharded.
func OpenWithPrivate(c curve.Curve, priv *elgamal.KeyPair, ct *Ciphertext) ([]byte, error) {
	if ct == nil || ct.C1 == nil || ct.C2 == nil {
		return nil, ErrNilCiphertext
	}
	if priv == nil {
		return nil, ErrNilKey
	}

	mask, err := elgamal.DecryptPoint(c, priv.Private, &elgamal.Ciphertext{C1: ct.C1, C2: ct.C2})
	if err != nil {
		return nil, err
	}

	return openWithMask(c, mask, ct)
}

func openWithMask(c curve.Curve, mask *curve.Point, ct *Ciphertext) ([]byte, error) {
	if len(ct.Nonce) != NonceSize {
		return nil, ErrMalformedCiphertext
	}

	key, err := hash.KeyFromPoint(mask)
	if err != nil {
		return nil, err
	}
	defer security.Zero(key)

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, ct.Nonce, ct.Blob, additionalData(ct.C1, ct.C2))
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// additionalData binds the asymmetric components into the GCM tag
func additionalData(c1, c2 *curve.Point) []byte {
	ad := c1.Bytes()
	return append(ad, c2.Bytes()...)
}
