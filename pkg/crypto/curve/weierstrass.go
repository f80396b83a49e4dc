package curve

import (
	"crypto/elliptic"
	"math/big"
)

// weierstrass implements the group operations common to all short
// Weierstrass curves in terms of a crypto/elliptic backend. The concrete
// curve types supply their own Marshal/Unmarshal since compressed-point
// handling differs between the NIST curves and secp256k1.
type weierstrass struct {
	name  string
	inner elliptic.Curve

	// outer is the concrete Curve embedding this struct, so points carry
	// the implementation that knows how to marshal them
	outer Curve
}

func (c *weierstrass) ScalarBaseMult(k *big.Int) (*Point, error) {
	k, err := c.normalizeScalar(k)
	if err != nil {
		return nil, err
	}

	x, y := c.inner.ScalarBaseMult(k.Bytes())
	return c.point(x, y), nil
}

func (c *weierstrass) ScalarMult(p *Point, k *big.Int) (*Point, error) {
	if !c.IsOnCurve(p) {
		return nil, ErrInvalidPoint
	}
	k, err := c.normalizeScalar(k)
	if err != nil {
		return nil, err
	}

	x, y := c.inner.ScalarMult(p.X, p.Y, k.Bytes())
	return c.point(x, y), nil
}

func (c *weierstrass) Add(p1, p2 *Point) (*Point, error) {
	if !c.IsOnCurve(p1) || !c.IsOnCurve(p2) {
		return nil, ErrInvalidPoint
	}

	x, y := c.inner.Add(p1.X, p1.Y, p2.X, p2.Y)
	return c.point(x, y), nil
}

func (c *weierstrass) Sub(p1, p2 *Point) (*Point, error) {
	neg, err := c.Negate(p2)
	if err != nil {
		return nil, err
	}
	return c.Add(p1, neg)
}

func (c *weierstrass) Negate(p *Point) (*Point, error) {
	if !c.IsOnCurve(p) {
		return nil, ErrInvalidPoint
	}

	// (x, y) -> (x, -y mod P)
	negY := new(big.Int).Sub(c.inner.Params().P, p.Y)
	negY.Mod(negY, c.inner.Params().P)

	return c.point(new(big.Int).Set(p.X), negY), nil
}

func (c *weierstrass) IsOnCurve(p *Point) bool {
	if p == nil || p.X == nil || p.Y == nil {
		return false
	}
	return c.inner.IsOnCurve(p.X, p.Y)
}

func (c *weierstrass) Generator() *Point {
	params := c.inner.Params()
	return c.point(new(big.Int).Set(params.Gx), new(big.Int).Set(params.Gy))
}

func (c *weierstrass) Order() *big.Int {
	return new(big.Int).Set(c.inner.Params().N)
}

func (c *weierstrass) Name() string {
	return c.name
}

// normalizeScalar reduces k into [1, N) and rejects nil or zero scalars
func (c *weierstrass) normalizeScalar(k *big.Int) (*big.Int, error) {
	if k == nil || k.Sign() <= 0 {
		return nil, ErrInvalidScalar
	}

	k = new(big.Int).Mod(k, c.inner.Params().N)
	if k.Sign() == 0 {
		return nil, ErrScalarZero
	}

	return k, nil
}

// point wraps affine coordinates with a back-reference to the outer curve
func (c *weierstrass) point(x, y *big.Int) *Point {
	return &Point{X: x, Y: y, curve: c.outer}
}
