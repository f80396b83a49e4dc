package math

import (
	"math/big"

	"github.com/Caqil/threshold-encrypt/pkg/crypto/rand"
)

// Polynomial is a polynomial over a prime field,
// f(x) = coefficients[0] + coefficients[1]*x + ... in ascending order
type Polynomial struct {
	// Coefficients in ascending order (index 0 is the constant term)
	Coefficients []*FieldElement

	// Modulus is the field modulus shared by all coefficients
	Modulus *big.Int
}

// NewPolynomial creates a polynomial from explicit coefficients
func NewPolynomial(coefficients []*FieldElement, modulus *big.Int) (*Polynomial, error) {
	if len(coefficients) == 0 {
		return nil, ErrEmptyCoefficients
	}
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}

	for _, c := range coefficients {
		if c == nil || c.modulus.Cmp(modulus) != 0 {
			return nil, ErrModulusMismatch
		}
	}

	return &Polynomial{
		Coefficients: coefficients,
		Modulus:      new(big.Int).Set(modulus),
	}, nil
}

// NewRandomPolynomial generates a degree-`degree` polynomial with the given
// constant term and uniformly random higher coefficients. This is the
// sharing polynomial for Shamir splitting: the constant term is the secret.
func NewRandomPolynomial(degree int, constantTerm *FieldElement) (*Polynomial, error) {
	if degree < 0 {
		return nil, ErrInvalidDegree
	}
	if constantTerm == nil {
		return nil, ErrNilSecret
	}

	modulus := constantTerm.Modulus()
	coefficients := make([]*FieldElement, degree+1)
	coefficients[0] = constantTerm

	for i := 1; i <= degree; i++ {
		v, err := rand.Scalar(modulus)
		if err != nil {
			return nil, err
		}
		coef, err := NewFieldElement(v, modulus)
		if err != nil {
			return nil, err
		}
		coefficients[i] = coef
	}

	return &Polynomial{Coefficients: coefficients, Modulus: modulus}, nil
}

// Degree returns the index of the highest non-zero coefficient
func (p *Polynomial) Degree() int {
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		if !p.Coefficients[i].IsZero() {
			return i
		}
	}
	return 0
}

// Evaluate computes f(x) mod p using Horner's method
func (p *Polynomial) Evaluate(x *FieldElement) (*FieldElement, error) {
	if x == nil || x.modulus.Cmp(p.Modulus) != 0 {
		return nil, ErrModulusMismatch
	}

	n := len(p.Coefficients)
	result := p.Coefficients[n-1]

	var err error
	for i := n - 2; i >= 0; i-- {
		result, err = result.Mul(x)
		if err != nil {
			return nil, err
		}
		result, err = result.Add(p.Coefficients[i])
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// EvaluateAt computes f(x) for a small integer x, the common case when
// evaluating at shard indices
func (p *Polynomial) EvaluateAt(x uint32) (*FieldElement, error) {
	xe, err := NewFieldElement(new(big.Int).SetUint64(uint64(x)), p.Modulus)
	if err != nil {
		return nil, err
	}
	return p.Evaluate(xe)
}
