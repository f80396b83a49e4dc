package userset

import (
	"math/big"

	"github.com/Caqil/threshold-encrypt/internal/math"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/curve"
)

// commitCoefficients computes Feldman commitments C_j = a_j * G for the
// sharing polynomial's coefficients. C_0 is the group public key.
func commitCoefficients(c curve.Curve, coefficients []*math.FieldElement) ([]*curve.Point, error) {
	commitments := make([]*curve.Point, len(coefficients))
	for j, coef := range coefficients {
		p, err := c.ScalarBaseMult(coef.Value())
		if err != nil {
			return nil, err
		}
		commitments[j] = p
	}
	return commitments, nil
}

// VerifyShard checks a shard against the userset's public commitments:
// f(id)*G must equal sum_j (id^j) * C_j. A holder runs this on delivery to
// detect a corrupted or substituted shard without revealing its value.
func VerifyShard(c curve.Curve, shard *math.Shard, commitments []*curve.Point) bool {
	if c == nil || shard == nil || shard.Value == nil || len(commitments) == 0 {
		return false
	}

	order := c.Order()
	id := new(big.Int).SetUint64(uint64(shard.ID))

	expected := commitments[0].Clone()
	idPower := new(big.Int).Set(id)

	for j := 1; j < len(commitments); j++ {
		term, err := c.ScalarMult(commitments[j], idPower)
		if err != nil {
			return false
		}
		expected, err = c.Add(expected, term)
		if err != nil {
			return false
		}

		idPower.Mul(idPower, id)
		idPower.Mod(idPower, order)
	}

	actual, err := c.ScalarBaseMult(shard.Value.Value())
	if err != nil {
		return false
	}

	return actual.IsEqual(expected)
}
