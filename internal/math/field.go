// Package math implements the finite-field arithmetic underlying the
// secret-sharing and threshold-decryption layers
package math

import (
	"math/big"
)

// FieldElement is a value in Z/pZ for a fixed prime modulus p.
// The residue is always stored reduced, so two elements of the same field
// are equal exactly when their residues are equal. Instances are immutable;
// every operation returns a fresh element.
type FieldElement struct {
	value   *big.Int
	modulus *big.Int
}

// NewFieldElement creates a field element from an arbitrary integer,
// reducing it into [0, modulus)
func NewFieldElement(value, modulus *big.Int) (*FieldElement, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}
	if value == nil {
		return nil, ErrParse
	}

	v := new(big.Int).Mod(value, modulus)

	return &FieldElement{value: v, modulus: new(big.Int).Set(modulus)}, nil
}

// ParseFieldElement parses a base-10 string as a field element.
// Unlike NewFieldElement it does not reduce: a negative or out-of-range
// value is a parse failure, not a value to be silently wrapped. This is the
// strict boundary used when decoding shard transport text.
func ParseFieldElement(s string, modulus *big.Int) (*FieldElement, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ErrParse
	}

	if v.Sign() < 0 || v.Cmp(modulus) >= 0 {
		return nil, ErrParse
	}

	return &FieldElement{value: v, modulus: new(big.Int).Set(modulus)}, nil
}

// Value returns a copy of the reduced residue
func (e *FieldElement) Value() *big.Int {
	return new(big.Int).Set(e.value)
}

// Modulus returns a copy of the field modulus
func (e *FieldElement) Modulus() *big.Int {
	return new(big.Int).Set(e.modulus)
}

// IsZero reports whether the element is the additive identity
func (e *FieldElement) IsZero() bool {
	return e.value.Sign() == 0
}

// Equal reports whether two elements have the same residue and modulus
func (e *FieldElement) Equal(other *FieldElement) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.modulus.Cmp(other.modulus) == 0 && e.value.Cmp(other.value) == 0
}

// String returns the base-10 representation of the residue.
// ParseFieldElement(e.String(), e.Modulus()) round-trips exactly.
func (e *FieldElement) String() string {
	return e.value.String()
}

// Add computes e + other mod p
func (e *FieldElement) Add(other *FieldElement) (*FieldElement, error) {
	if err := e.checkField(other); err != nil {
		return nil, err
	}

	sum := new(big.Int).Add(e.value, other.value)
	sum.Mod(sum, e.modulus)

	return &FieldElement{value: sum, modulus: e.modulus}, nil
}

// Sub computes e - other mod p
func (e *FieldElement) Sub(other *FieldElement) (*FieldElement, error) {
	if err := e.checkField(other); err != nil {
		return nil, err
	}

	diff := new(big.Int).Sub(e.value, other.value)
	diff.Mod(diff, e.modulus)

	return &FieldElement{value: diff, modulus: e.modulus}, nil
}

// Mul computes e * other mod p.
// The intermediate product is computed at arbitrary precision before
// reduction, so there is no machine-word overflow for any field size.
func (e *FieldElement) Mul(other *FieldElement) (*FieldElement, error) {
	if err := e.checkField(other); err != nil {
		return nil, err
	}

	prod := new(big.Int).Mul(e.value, other.value)
	prod.Mod(prod, e.modulus)

	return &FieldElement{value: prod, modulus: e.modulus}, nil
}

// Neg computes -e mod p
func (e *FieldElement) Neg() *FieldElement {
	n := new(big.Int).Neg(e.value)
	n.Mod(n, e.modulus)
	return &FieldElement{value: n, modulus: e.modulus}
}

// Inv computes the multiplicative inverse of e via the extended Euclidean
// algorithm. The zero element has no inverse.
func (e *FieldElement) Inv() (*FieldElement, error) {
	if e.value.Sign() == 0 {
		return nil, ErrDivisionByZero
	}

	inv := new(big.Int).ModInverse(e.value, e.modulus)
	if inv == nil {
		return nil, ErrNoInverse
	}

	return &FieldElement{value: inv, modulus: e.modulus}, nil
}

// Div computes e / other mod p, i.e. multiplication by the inverse of other
func (e *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	if err := e.checkField(other); err != nil {
		return nil, err
	}

	inv, err := other.Inv()
	if err != nil {
		return nil, err
	}

	return e.Mul(inv)
}

// Exp computes e^k mod p by square-and-multiply. A negative exponent is
// treated as (e^-1)^|k|.
func (e *FieldElement) Exp(k *big.Int) (*FieldElement, error) {
	if k == nil {
		return nil, ErrParse
	}

	if k.Sign() < 0 {
		inv, err := e.Inv()
		if err != nil {
			return nil, err
		}
		return inv.Exp(new(big.Int).Neg(k))
	}

	r := new(big.Int).Exp(e.value, k, e.modulus)
	return &FieldElement{value: r, modulus: e.modulus}, nil
}

func (e *FieldElement) checkField(other *FieldElement) error {
	if other == nil {
		return ErrParse
	}
	if e.modulus.Cmp(other.modulus) != 0 {
		return ErrModulusMismatch
	}
	return nil
}

// Zero returns the additive identity of the field with the given modulus
func Zero(modulus *big.Int) (*FieldElement, error) {
	return NewFieldElement(big.NewInt(0), modulus)
}

// One returns the multiplicative identity of the field with the given modulus
func One(modulus *big.Int) (*FieldElement, error) {
	return NewFieldElement(big.NewInt(1), modulus)
}
