package math

import (
	"errors"
	"math/big"
	"testing"
)

// testModulus is a small prime, large enough to exercise reduction
var testModulus = big.NewInt(97)

func fe(t *testing.T, v int64) *FieldElement {
	t.Helper()
	e, err := NewFieldElement(big.NewInt(v), testModulus)
	if err != nil {
		t.Fatalf("NewFieldElement(%d) failed: %v", v, err)
	}
	return e
}

func TestNewFieldElementReduces(t *testing.T) {
	e, err := NewFieldElement(big.NewInt(100), testModulus)
	if err != nil {
		t.Fatalf("NewFieldElement failed: %v", err)
	}
	if e.Value().Int64() != 3 {
		t.Errorf("expected 100 mod 97 = 3, got %s", e.Value())
	}

	neg, err := NewFieldElement(big.NewInt(-1), testModulus)
	if err != nil {
		t.Fatalf("NewFieldElement(-1) failed: %v", err)
	}
	if neg.Value().Int64() != 96 {
		t.Errorf("expected -1 mod 97 = 96, got %s", neg.Value())
	}
}

func TestNewFieldElementInvalidModulus(t *testing.T) {
	if _, err := NewFieldElement(big.NewInt(1), nil); !errors.Is(err, ErrInvalidModulus) {
		t.Errorf("nil modulus: expected ErrInvalidModulus, got %v", err)
	}
	if _, err := NewFieldElement(big.NewInt(1), big.NewInt(0)); !errors.Is(err, ErrInvalidModulus) {
		t.Errorf("zero modulus: expected ErrInvalidModulus, got %v", err)
	}
	if _, err := NewFieldElement(big.NewInt(1), big.NewInt(-7)); !errors.Is(err, ErrInvalidModulus) {
		t.Errorf("negative modulus: expected ErrInvalidModulus, got %v", err)
	}
}

func TestParseFieldElementStrict(t *testing.T) {
	e, err := ParseFieldElement("42", testModulus)
	if err != nil {
		t.Fatalf("ParseFieldElement failed: %v", err)
	}
	if e.Value().Int64() != 42 {
		t.Errorf("expected 42, got %s", e.Value())
	}

	// Unlike NewFieldElement, out-of-range values are rejected, not reduced
	for _, bad := range []string{"-1", "97", "100", "abc", "", "4 2"} {
		if _, err := ParseFieldElement(bad, testModulus); !errors.Is(err, ErrParse) {
			t.Errorf("ParseFieldElement(%q): expected ErrParse, got %v", bad, err)
		}
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	e := fe(t, 73)
	back, err := ParseFieldElement(e.String(), e.Modulus())
	if err != nil {
		t.Fatalf("round trip parse failed: %v", err)
	}
	if !e.Equal(back) {
		t.Errorf("round trip changed value: %s != %s", e, back)
	}
}

func TestFieldArithmetic(t *testing.T) {
	a, b := fe(t, 50), fe(t, 60)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if sum.Value().Int64() != 13 {
		t.Errorf("50+60 mod 97: expected 13, got %s", sum.Value())
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if diff.Value().Int64() != 87 {
		t.Errorf("50-60 mod 97: expected 87, got %s", diff.Value())
	}

	prod, err := a.Mul(b)
	if err != nil {
		t.Fatalf("Mul failed: %v", err)
	}
	if prod.Value().Int64() != 3000%97 {
		t.Errorf("50*60 mod 97: expected %d, got %s", 3000%97, prod.Value())
	}

	if neg := a.Neg(); neg.Value().Int64() != 47 {
		t.Errorf("-50 mod 97: expected 47, got %s", neg.Value())
	}
}

func TestFieldInverse(t *testing.T) {
	a := fe(t, 23)

	inv, err := a.Inv()
	if err != nil {
		t.Fatalf("Inv failed: %v", err)
	}

	one, err := a.Mul(inv)
	if err != nil {
		t.Fatalf("Mul failed: %v", err)
	}
	if one.Value().Int64() != 1 {
		t.Errorf("a * a^-1: expected 1, got %s", one.Value())
	}

	zero, _ := Zero(testModulus)
	if _, err := zero.Inv(); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Inv(0): expected ErrDivisionByZero, got %v", err)
	}
}

func TestFieldDiv(t *testing.T) {
	a, b := fe(t, 30), fe(t, 7)

	q, err := a.Div(b)
	if err != nil {
		t.Fatalf("Div failed: %v", err)
	}

	back, err := q.Mul(b)
	if err != nil {
		t.Fatalf("Mul failed: %v", err)
	}
	if !back.Equal(a) {
		t.Errorf("(a/b)*b: expected %s, got %s", a, back)
	}

	zero, _ := Zero(testModulus)
	if _, err := a.Div(zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Div by zero: expected ErrDivisionByZero, got %v", err)
	}
}

func TestFieldExp(t *testing.T) {
	a := fe(t, 5)

	// Fermat: a^(p-1) = 1
	r, err := a.Exp(new(big.Int).Sub(testModulus, big.NewInt(1)))
	if err != nil {
		t.Fatalf("Exp failed: %v", err)
	}
	if r.Value().Int64() != 1 {
		t.Errorf("a^(p-1): expected 1, got %s", r.Value())
	}

	// Negative exponent is the inverse's power
	inv, _ := a.Inv()
	want, _ := inv.Exp(big.NewInt(3))
	got, err := a.Exp(big.NewInt(-3))
	if err != nil {
		t.Fatalf("Exp(-3) failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("a^-3: expected %s, got %s", want, got)
	}
}

func TestModulusMismatch(t *testing.T) {
	a := fe(t, 10)
	b, err := NewFieldElement(big.NewInt(10), big.NewInt(101))
	if err != nil {
		t.Fatalf("NewFieldElement failed: %v", err)
	}

	if _, err := a.Add(b); !errors.Is(err, ErrModulusMismatch) {
		t.Errorf("Add across fields: expected ErrModulusMismatch, got %v", err)
	}
	if _, err := a.Mul(b); !errors.Is(err, ErrModulusMismatch) {
		t.Errorf("Mul across fields: expected ErrModulusMismatch, got %v", err)
	}
	if a.Equal(b) {
		t.Error("elements of different fields must not compare equal")
	}
}

func TestLargeFieldArithmetic(t *testing.T) {
	// P-256 group order; exercises multi-word big.Int paths
	p, _ := new(big.Int).SetString("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551", 16)

	a, err := NewFieldElement(new(big.Int).Sub(p, big.NewInt(1)), p)
	if err != nil {
		t.Fatalf("NewFieldElement failed: %v", err)
	}

	// (p-1) * (p-1) = p^2 - 2p + 1 = 1 mod p
	sq, err := a.Mul(a)
	if err != nil {
		t.Fatalf("Mul failed: %v", err)
	}
	if sq.Value().Int64() != 1 {
		t.Errorf("(p-1)^2 mod p: expected 1, got %s", sq.Value())
	}
}
