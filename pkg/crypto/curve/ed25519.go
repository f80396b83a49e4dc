package curve

import (
	"math/big"

	"filippo.io/edwards25519"
)

// ed25519Curve implements Curve for the twisted Edwards curve
// -x^2 + y^2 = 1 + d*x^2*y^2 over GF(2^255-19), delegating group operations
// to filippo.io/edwards25519 and converting to and from affine coordinates
// at the boundary.
type ed25519Curve struct{}

var (
	// Field prime 2^255 - 19
	ed25519P = mustHex("7FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFED")
	// Prime order of the base-point subgroup
	ed25519L = mustHex("1000000000000000000000000000000014DEF9DEA2F79CD65812631A5CF5D3ED")
	// Curve constant d = -121665/121666
	ed25519D = mustHex("52036CEE2B6FFE738CC740797779E89800700A4D4141D8AB75EB4DCA135978A3")
	// Generator
	ed25519Gx = mustHex("216936D3CD6E53FEC0A4E231FDD6DC5C692CC7609525A7B2C9562D608F25D51A")
	ed25519Gy = mustHex("6666666666666666666666666666666666666666666666666666666666666658")
)

func newEd25519() Curve {
	return &ed25519Curve{}
}

func (c *ed25519Curve) ScalarBaseMult(k *big.Int) (*Point, error) {
	s, err := c.scalar(k)
	if err != nil {
		return nil, err
	}

	return c.fromInternal(new(edwards25519.Point).ScalarBaseMult(s))
}

func (c *ed25519Curve) ScalarMult(p *Point, k *big.Int) (*Point, error) {
	ep, err := c.toInternal(p)
	if err != nil {
		return nil, err
	}
	s, err := c.scalar(k)
	if err != nil {
		return nil, err
	}

	return c.fromInternal(new(edwards25519.Point).ScalarMult(s, ep))
}

func (c *ed25519Curve) Add(p1, p2 *Point) (*Point, error) {
	ep1, err := c.toInternal(p1)
	if err != nil {
		return nil, err
	}
	ep2, err := c.toInternal(p2)
	if err != nil {
		return nil, err
	}

	return c.fromInternal(new(edwards25519.Point).Add(ep1, ep2))
}

func (c *ed25519Curve) Sub(p1, p2 *Point) (*Point, error) {
	ep1, err := c.toInternal(p1)
	if err != nil {
		return nil, err
	}
	ep2, err := c.toInternal(p2)
	if err != nil {
		return nil, err
	}

	return c.fromInternal(new(edwards25519.Point).Subtract(ep1, ep2))
}

func (c *ed25519Curve) Negate(p *Point) (*Point, error) {
	ep, err := c.toInternal(p)
	if err != nil {
		return nil, err
	}

	return c.fromInternal(new(edwards25519.Point).Negate(ep))
}

func (c *ed25519Curve) IsOnCurve(p *Point) bool {
	if p == nil || p.X == nil || p.Y == nil {
		return false
	}

	// -x^2 + y^2 == 1 + d*x^2*y^2 (mod p)
	x2 := new(big.Int).Exp(p.X, big.NewInt(2), ed25519P)
	y2 := new(big.Int).Exp(p.Y, big.NewInt(2), ed25519P)

	left := new(big.Int).Sub(y2, x2)
	left.Mod(left, ed25519P)

	right := new(big.Int).Mul(ed25519D, x2)
	right.Mul(right, y2)
	right.Add(right, big.NewInt(1))
	right.Mod(right, ed25519P)

	return left.Cmp(right) == 0
}

func (c *ed25519Curve) Marshal(p *Point) []byte {
	if p == nil || p.X == nil || p.Y == nil {
		return nil
	}

	// RFC 8032 encoding: little-endian y with the parity of x in bit 255
	out := littleEndian(p.Y, 32)
	if p.X.Bit(0) == 1 {
		out[31] |= 0x80
	}
	return out
}

func (c *ed25519Curve) Unmarshal(data []byte) (*Point, error) {
	if len(data) != 32 {
		return nil, ErrInvalidEncoding
	}

	ep := new(edwards25519.Point)
	if _, err := ep.SetBytes(data); err != nil {
		return nil, ErrInvalidEncoding
	}

	return c.fromInternal(ep)
}

func (c *ed25519Curve) Generator() *Point {
	return &Point{
		X:     new(big.Int).Set(ed25519Gx),
		Y:     new(big.Int).Set(ed25519Gy),
		curve: c,
	}
}

func (c *ed25519Curve) Order() *big.Int {
	return new(big.Int).Set(ed25519L)
}

func (c *ed25519Curve) PointSize() int {
	return 32
}

func (c *ed25519Curve) Name() string {
	return "Ed25519"
}

// scalar converts a big.Int to an edwards25519.Scalar, reducing mod L and
// rejecting nil or zero values
func (c *ed25519Curve) scalar(k *big.Int) (*edwards25519.Scalar, error) {
	if k == nil || k.Sign() <= 0 {
		return nil, ErrInvalidScalar
	}

	k = new(big.Int).Mod(k, ed25519L)
	if k.Sign() == 0 {
		return nil, ErrScalarZero
	}

	s, err := new(edwards25519.Scalar).SetCanonicalBytes(littleEndian(k, 32))
	if err != nil {
		return nil, ErrInvalidScalar
	}
	return s, nil
}

// toInternal converts an affine point to the library representation by way
// of its canonical encoding, which also re-validates curve membership
func (c *ed25519Curve) toInternal(p *Point) (*edwards25519.Point, error) {
	if p == nil || p.X == nil || p.Y == nil {
		return nil, ErrInvalidPoint
	}

	ep := new(edwards25519.Point)
	if _, err := ep.SetBytes(c.Marshal(p)); err != nil {
		return nil, ErrInvalidPoint
	}
	return ep, nil
}

// fromInternal recovers affine coordinates from a library point
func (c *ed25519Curve) fromInternal(ep *edwards25519.Point) (*Point, error) {
	encoded := ep.Bytes()

	y := fromLittleEndian(encoded)
	xOdd := encoded[31]&0x80 != 0
	y.And(y, new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1)))

	x, err := recoverEd25519X(y, xOdd)
	if err != nil {
		return nil, err
	}

	return &Point{X: x, Y: y, curve: c}, nil
}

// recoverEd25519X solves the curve equation for x given y:
// x^2 = (y^2 - 1) / (d*y^2 + 1)
func recoverEd25519X(y *big.Int, odd bool) (*big.Int, error) {
	y2 := new(big.Int).Exp(y, big.NewInt(2), ed25519P)

	num := new(big.Int).Sub(y2, big.NewInt(1))
	num.Mod(num, ed25519P)

	den := new(big.Int).Mul(ed25519D, y2)
	den.Add(den, big.NewInt(1))
	den.Mod(den, ed25519P)

	denInv := new(big.Int).ModInverse(den, ed25519P)
	if denInv == nil {
		return nil, ErrInvalidPoint
	}

	x2 := new(big.Int).Mul(num, denInv)
	x2.Mod(x2, ed25519P)

	x := new(big.Int).ModSqrt(x2, ed25519P)
	if x == nil {
		return nil, ErrInvalidPoint
	}

	if (x.Bit(0) == 1) != odd {
		x.Sub(ed25519P, x)
		x.Mod(x, ed25519P)
	}

	return x, nil
}

func mustHex(s string) *big.Int {
	b, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curve: invalid hex constant " + s)
	}
	return b
}

// littleEndian returns v as a little-endian byte slice of the given length
func littleEndian(v *big.Int, length int) []byte {
	be := paddedBytes(v, length)
	out := make([]byte, length)
	for i := range be {
		out[length-1-i] = be[i]
	}
	return out
}

// fromLittleEndian interprets a little-endian byte slice as a big.Int
func fromLittleEndian(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(be)
}
