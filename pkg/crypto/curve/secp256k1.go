package curve

import (
	"github.com/btcsuite/btcd/btcec/v2"
)

// secp256k1Curve implements Curve for secp256k1. Group operations go through
// the shared Weierstrass core (btcec's KoblitzCurve satisfies
// crypto/elliptic.Curve); point encoding uses btcec's SEC serialization since
// the stdlib compressed format assumes a = -3 curves.
type secp256k1Curve struct {
	weierstrass
}

func newSecp256k1() Curve {
	c := &secp256k1Curve{weierstrass{name: "secp256k1", inner: btcec.S256()}}
	c.outer = c
	return c
}

func (c *secp256k1Curve) PointSize() int {
	return 33
}

func (c *secp256k1Curve) Marshal(p *Point) []byte {
	if p == nil {
		return nil
	}

	var xField, yField btcec.FieldVal
	xField.SetByteSlice(paddedBytes(p.X, 32))
	yField.SetByteSlice(paddedBytes(p.Y, 32))

	return btcec.NewPublicKey(&xField, &yField).SerializeCompressed()
}

func (c *secp256k1Curve) Unmarshal(data []byte) (*Point, error) {
	if len(data) != 33 {
		return nil, ErrInvalidEncoding
	}

	pub, err := btcec.ParsePubKey(data)
	if err != nil {
		return nil, ErrInvalidEncoding
	}

	p := c.point(pub.X(), pub.Y())
	if !c.IsOnCurve(p) {
		return nil, ErrInvalidPoint
	}

	return p, nil
}
