package curve

import (
	"crypto/elliptic"
)

// p256Curve implements Curve for NIST P-256 on top of crypto/elliptic
type p256Curve struct {
	weierstrass
}

func newP256() Curve {
	c := &p256Curve{weierstrass{name: "P-256", inner: elliptic.P256()}}
	c.outer = c
	return c
}

func (c *p256Curve) PointSize() int {
	return 33
}

func (c *p256Curve) Marshal(p *Point) []byte {
	if p == nil {
		return nil
	}
	return elliptic.MarshalCompressed(c.inner, p.X, p.Y)
}

func (c *p256Curve) Unmarshal(data []byte) (*Point, error) {
	if len(data) != 33 {
		return nil, ErrInvalidEncoding
	}

	x, y := elliptic.UnmarshalCompressed(c.inner, data)
	if x == nil {
		return nil, ErrInvalidEncoding
	}

	p := c.point(x, y)
	if !c.IsOnCurve(p) {
		return nil, ErrInvalidPoint
	}

	return p, nil
}
