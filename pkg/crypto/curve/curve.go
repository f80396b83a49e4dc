// Package curve provides the elliptic-curve group operations underlying the
// EC-ElGamal threshold layer. Scalar field arithmetic lives in internal/math;
// this package only deals in group elements.
package curve

import (
	"math/big"
)

// Type selects one of the supported curves
type Type int

const (
	// P256 is the NIST P-256 curve
	P256 Type = iota
	// Secp256k1 is the Bitcoin/Ethereum curve
	Secp256k1
	// Ed25519 is the twisted Edwards curve used by EdDSA
	Ed25519
)

// Point is an affine point on an elliptic curve
type Point struct {
	X *big.Int
	Y *big.Int

	curve Curve
}

// Curve is the group-operation interface shared by all supported curves
type Curve interface {
	// ScalarBaseMult computes k*G for the curve generator G
	ScalarBaseMult(k *big.Int) (*Point, error)

	// ScalarMult computes k*P
	ScalarMult(p *Point, k *big.Int) (*Point, error)

	// Add computes P1 + P2
	Add(p1, p2 *Point) (*Point, error)

	// Sub computes P1 - P2
	Sub(p1, p2 *Point) (*Point, error)

	// Negate computes -P
	Negate(p *Point) (*Point, error)

	// IsOnCurve reports whether P satisfies the curve equation
	IsOnCurve(p *Point) bool

	// Marshal returns the canonical compressed encoding of P
	Marshal(p *Point) []byte

	// Unmarshal decodes a compressed point, enforcing curve membership
	Unmarshal(data []byte) (*Point, error)

	// Generator returns the base point G
	Generator() *Point

	// Order returns the order of the base point, which is also the
	// modulus of the scalar field used for secret sharing
	Order() *big.Int

	// PointSize returns the compressed encoding length in bytes
	PointSize() int

	// Name returns the canonical curve name
	Name() string
}

// New creates a curve instance for the given type
func New(t Type) (Curve, error) {
	switch t {
	case P256:
		return newP256(), nil
	case Secp256k1:
		return newSecp256k1(), nil
	case Ed25519:
		return newEd25519(), nil
	default:
		return nil, ErrUnsupportedCurve
	}
}

// FromName resolves a curve by its canonical name, the form used in
// configuration files and serialized ciphertext headers
func FromName(name string) (Curve, error) {
	switch name {
	case "P-256":
		return newP256(), nil
	case "secp256k1":
		return newSecp256k1(), nil
	case "Ed25519":
		return newEd25519(), nil
	default:
		return nil, ErrUnsupportedCurve
	}
}

// IsEqual reports whether two points have identical coordinates
func (p *Point) IsEqual(other *Point) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.X.Cmp(other.X) == 0 && p.Y.Cmp(other.Y) == 0
}

// IsInfinity reports whether the point is the group identity
func (p *Point) IsInfinity() bool {
	return p == nil || p.X == nil || p.Y == nil
}

// Clone returns a deep copy of the point
func (p *Point) Clone() *Point {
	if p == nil {
		return nil
	}
	return &Point{
		X:     new(big.Int).Set(p.X),
		Y:     new(big.Int).Set(p.Y),
		curve: p.curve,
	}
}

// Bytes returns the compressed encoding of the point
func (p *Point) Bytes() []byte {
	if p == nil || p.curve == nil {
		return nil
	}
	return p.curve.Marshal(p)
}

// paddedBytes returns the big-endian bytes of v left-padded to length
func paddedBytes(v *big.Int, length int) []byte {
	b := v.Bytes()
	if len(b) >= length {
		return b[len(b)-length:]
	}
	padded := make([]byte, length)
	copy(padded[length-len(b):], b)
	return padded
}
