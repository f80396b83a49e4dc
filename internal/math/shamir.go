package math

import (
	"math/big"

	"github.com/Caqil/threshold-encrypt/internal/security"
)

// Shard is one party's share of a split secret: the pair (ID, f(ID)) for the
// userset's secret sharing polynomial f. A shard alone reveals nothing about
// f(0) below the threshold.
type Shard struct {
	// ID is the 1-based x-coordinate assigned to the holder
	ID uint32

	// Value is f(ID) in the sharing field
	Value *FieldElement
}

// Clone returns a deep copy of the shard
func (s *Shard) Clone() *Shard {
	if s == nil {
		return nil
	}
	v, _ := NewFieldElement(s.Value.Value(), s.Value.Modulus())
	return &Shard{ID: s.ID, Value: v}
}

// Split splits a secret into n shards with reconstruction threshold t.
// It draws a random polynomial of degree t-1 whose constant term is the
// secret and evaluates it at x = 1..n.
func Split(secret *FieldElement, n, t int) ([]*Shard, error) {
	poly, err := SplitWithPolynomial(secret, n, t)
	if err != nil {
		return nil, err
	}
	return evaluateShards(poly.poly, n)
}

// SharingPolynomial wraps the secret polynomial produced during a split so
// callers that need the coefficients (e.g. for Feldman-style commitments)
// can reach them without re-splitting. It must never be persisted.
type SharingPolynomial struct {
	poly *Polynomial
}

// Coefficients returns the polynomial coefficients, constant term first
func (sp *SharingPolynomial) Coefficients() []*FieldElement {
	return sp.poly.Coefficients
}

// Shards evaluates the polynomial at x = 1..n
func (sp *SharingPolynomial) Shards(n int) ([]*Shard, error) {
	return evaluateShards(sp.poly, n)
}

// SplitWithPolynomial is Split, but returns the sharing polynomial instead
// of the shard values
func SplitWithPolynomial(secret *FieldElement, n, t int) (*SharingPolynomial, error) {
	if secret == nil {
		return nil, ErrNilSecret
	}
	if err := security.ValidatePolicy(t, n); err != nil {
		return nil, err
	}

	poly, err := NewRandomPolynomial(t-1, secret)
	if err != nil {
		return nil, err
	}

	return &SharingPolynomial{poly: poly}, nil
}

func evaluateShards(poly *Polynomial, n int) ([]*Shard, error) {
	shards := make([]*Shard, n)
	for i := 0; i < n; i++ {
		// IDs are 1-based so no shard ever sits at x=0
		id := uint32(i + 1)
		value, err := poly.EvaluateAt(id)
		if err != nil {
			return nil, err
		}
		shards[i] = &Shard{ID: id, Value: value}
	}
	return shards, nil
}

// Reconstruct recovers f(0) from the given shards via Lagrange interpolation.
//
// It does NOT check that enough shards are present: interpolating fewer than
// threshold shards yields a well-defined but WRONG value, silently. Quorum
// size is a caller-enforced precondition here; the public combine operation
// in pkg/elgamal re-adds the check at the API boundary.
func Reconstruct(shards []*Shard) (*FieldElement, error) {
	if len(shards) == 0 {
		return nil, ErrEmptyShards
	}

	modulus := shards[0].Value.Modulus()

	ids := make([]uint32, len(shards))
	for i, s := range shards {
		if s == nil || s.Value == nil {
			return nil, ErrNilShard
		}
		if s.Value.Modulus().Cmp(modulus) != 0 {
			return nil, ErrModulusMismatch
		}
		ids[i] = s.ID
	}

	coeffs, err := LagrangeCoefficientsAtZero(ids, modulus)
	if err != nil {
		return nil, err
	}

	// f(0) = sum_i y_i * lambda_i
	result, err := Zero(modulus)
	if err != nil {
		return nil, err
	}

	for i, s := range shards {
		term, err := s.Value.Mul(coeffs[i])
		if err != nil {
			return nil, err
		}
		result, err = result.Add(term)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// LagrangeCoefficientsAtZero computes the Lagrange basis coefficients
// lambda_i = prod_{j != i} x_j / (x_j - x_i) for interpolation at x=0.
//
// The same coefficients serve scalar reconstruction and the in-exponent
// combination of decryption parts, so they are exported for pkg/elgamal.
func LagrangeCoefficientsAtZero(ids []uint32, modulus *big.Int) ([]*FieldElement, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyShards
	}
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}

	xs := make([]*FieldElement, len(ids))
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		if id == 0 {
			return nil, ErrInvalidShardID
		}
		x, err := NewFieldElement(new(big.Int).SetUint64(uint64(id)), modulus)
		if err != nil {
			return nil, err
		}
		// Duplicates are detected after reduction: two distinct IDs that
		// collide mod p would make the basis undefined just the same
		key := x.String()
		if seen[key] {
			return nil, ErrDuplicateShard
		}
		seen[key] = true
		xs[i] = x
	}

	coeffs := make([]*FieldElement, len(ids))
	for i := range xs {
		num, err := One(modulus)
		if err != nil {
			return nil, err
		}
		den, err := One(modulus)
		if err != nil {
			return nil, err
		}

		for j := range xs {
			if i == j {
				continue
			}
			// numerator *= (0 - x_j) = -x_j; denominator *= (x_i - x_j)
			num, err = num.Mul(xs[j].Neg())
			if err != nil {
				return nil, err
			}
			d, err := xs[i].Sub(xs[j])
			if err != nil {
				return nil, err
			}
			den, err = den.Mul(d)
			if err != nil {
				return nil, err
			}
		}

		lambda, err := num.Div(den)
		if err != nil {
			return nil, err
		}
		coeffs[i] = lambda
	}

	return coeffs, nil
}
