// Package elgamal implements the exponential EC-ElGamal layer of the group
// encryption scheme: keypair generation, encryption of a mask point to a
// (C1, C2) pair, per-holder partial decryption, and the Lagrange
// combination of partial decryptions in the exponent.
package elgamal

import (
	"math/big"

	"github.com/Caqil/threshold-encrypt/internal/math"
	"github.com/Caqil/threshold-encrypt/internal/security"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/curve"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/rand"
)

// KeyPair is a group keypair. The private scalar exists only transiently at
// userset creation: it is split into shards and then zeroed, never persisted.
type KeyPair struct {
	// Private is the group private scalar, the constant term of the
	// sharing polynomial
	Private *big.Int

	// Public is Private * G
	Public *curve.Point
}

// Ciphertext is the asymmetric half of an encrypted payload: the ElGamal
// masking of the envelope-key point
type Ciphertext struct {
	// C1 is k*G for the ephemeral scalar k
	C1 *curve.Point

	// C2 is M + k*PubKey where M is the encrypted mask point
	C2 *curve.Point
}

// DecryptionPart is one shard holder's contribution to a decryption:
// shard.Value * C1. It is bound to the ciphertext through C1 and leaks
// nothing about the group secret on its own.
type DecryptionPart struct {
	ShardID uint32
	Point   *curve.Point
}

// GenerateKeyPair draws a uniformly random private scalar in [1, order) and
// returns it with the matching public key.
// Callers must zero kp.Private (security.ZeroBigInt) once it has been split.
func GenerateKeyPair(c curve.Curve) (*KeyPair, error) {
	if c == nil {
		return nil, ErrNilCurve
	}

	priv, err := rand.Scalar(c.Order())
	if err != nil {
		return nil, err
	}

	pub, err := c.ScalarBaseMult(priv)
	if err != nil {
		return nil, err
	}

	return &KeyPair{Private: priv, Public: pub}, nil
}

// EncryptPoint encrypts a mask point M under the group public key:
// C1 = k*G, C2 = M + k*PubKey for a fresh ephemeral k
func EncryptPoint(c curve.Curve, m, pub *curve.Point) (*Ciphertext, error) {
	if c == nil {
		return nil, ErrNilCurve
	}
	if pub == nil || !c.IsOnCurve(pub) {
		return nil, curve.ErrInvalidPoint
	}
	if m == nil || !c.IsOnCurve(m) {
		return nil, curve.ErrInvalidPoint
	}

	k, err := rand.Scalar(c.Order())
	if err != nil {
		return nil, err
	}
	defer security.ZeroBigInt(k)

	c1, err := c.ScalarBaseMult(k)
	if err != nil {
		return nil, err
	}

	shared, err := c.ScalarMult(pub, k)
	if err != nil {
		return nil, err
	}

	c2, err := c.Add(m, shared)
	if err != nil {
		return nil, err
	}

	return &Ciphertext{C1: c1, C2: c2}, nil
}

// Encrypt encodes a scalar plaintext as the point m*G and encrypts it.
// This is exponential ElGamal: recovering the scalar from the decrypted
// point needs a small-domain lookup, so the envelope layer derives keys from
// the point itself instead (hash.KeyFromPoint).
func Encrypt(c curve.Curve, m *big.Int, pub *curve.Point) (*Ciphertext, error) {
	if c == nil {
		return nil, ErrNilCurve
	}

	mp, err := c.ScalarBaseMult(m)
	if err != nil {
		return nil, err
	}

	return EncryptPoint(c, mp, pub)
}

// PartialDecrypt computes one holder's decryption part: shard.Value * C1
func PartialDecrypt(c curve.Curve, shard *math.Shard, c1 *curve.Point) (*DecryptionPart, error) {
	if c == nil {
		return nil, ErrNilCurve
	}
	if shard == nil || shard.Value == nil {
		return nil, ErrNilShard
	}
	if shard.ID == 0 {
		return nil, ErrInvalidShardID
	}
	if c1 == nil || !c.IsOnCurve(c1) {
		return nil, curve.ErrInvalidPoint
	}

	p, err := c.ScalarMult(c1, shard.Value.Value())
	if err != nil {
		return nil, err
	}

	return &DecryptionPart{ShardID: shard.ID, Point: p}, nil
}

// Combine recovers the mask point from a quorum of decryption parts.
//
// It Lagrange-interpolates in the exponent: sum_i lambda_i * part_i equals
// k*s*G for the group secret s, and C2 minus that is the original mask
// point. Unlike raw Shamir reconstruction this is a checked public boundary:
// fewer than threshold parts is an error, not a silent wrong answer.
func Combine(c curve.Curve, parts []*DecryptionPart, c2 *curve.Point, threshold int) (*curve.Point, error) {
	if c == nil {
		return nil, ErrNilCurve
	}
	if threshold < 1 {
		return nil, security.ErrInvalidPolicy
	}
	if len(parts) < threshold {
		return nil, ErrInsufficientShares
	}
	if c2 == nil || !c.IsOnCurve(c2) {
		return nil, curve.ErrInvalidPoint
	}

	ids := make([]uint32, len(parts))
	seen := make(map[uint32]bool, len(parts))
	for i, part := range parts {
		if part == nil || part.Point == nil {
			return nil, ErrNilPart
		}
		if !c.IsOnCurve(part.Point) {
			return nil, curve.ErrInvalidPoint
		}
		if seen[part.ShardID] {
			return nil, ErrDuplicateShard
		}
		seen[part.ShardID] = true
		ids[i] = part.ShardID
	}

	lambdas, err := math.LagrangeCoefficientsAtZero(ids, c.Order())
	if err != nil {
		return nil, err
	}

	// sum = sum_i lambda_i * part_i
	var sum *curve.Point
	for i, part := range parts {
		term, err := c.ScalarMult(part.Point, lambdas[i].Value())
		if err != nil {
			return nil, err
		}
		if sum == nil {
			sum = term
			continue
		}
		sum, err = c.Add(sum, term)
		if err != nil {
			return nil, err
		}
	}

	return c.Sub(c2, sum)
}

// DecryptPoint recovers the mask point with the whole private scalar.
// Only usable where the secret was never split (tests, single-holder sets).
func DecryptPoint(c curve.Curve, priv *big.Int, ct *Ciphertext) (*curve.Point, error) {
	if c == nil {
		return nil, ErrNilCurve
	}
	if ct == nil || ct.C1 == nil || ct.C2 == nil {
		return nil, ErrNilCiphertext
	}

	shared, err := c.ScalarMult(ct.C1, priv)
	if err != nil {
		return nil, err
	}

	return c.Sub(ct.C2, shared)
}
