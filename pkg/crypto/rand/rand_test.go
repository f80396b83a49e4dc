package rand

import (
	"errors"
	"math/big"
	"testing"
)

func TestBytes(t *testing.T) {
	b, err := Bytes(32)
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if len(b) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(b))
	}

	b2, err := Bytes(32)
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if string(b) == string(b2) {
		t.Error("two random draws produced identical bytes")
	}

	if _, err := Bytes(0); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Bytes(0): expected ErrInvalidLength, got %v", err)
	}
	if _, err := Bytes(-1); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Bytes(-1): expected ErrInvalidLength, got %v", err)
	}
}

func TestScalarRange(t *testing.T) {
	max := big.NewInt(1000)

	for i := 0; i < 100; i++ {
		s, err := Scalar(max)
		if err != nil {
			t.Fatalf("Scalar failed: %v", err)
		}
		if s.Sign() <= 0 || s.Cmp(max) >= 0 {
			t.Fatalf("scalar %s outside [1, %s)", s, max)
		}
	}
}

func TestScalarSmallDomain(t *testing.T) {
	// max=2 leaves exactly one valid value after zero rejection
	s, err := Scalar(big.NewInt(2))
	if err != nil {
		t.Fatalf("Scalar failed: %v", err)
	}
	if s.Int64() != 1 {
		t.Errorf("Scalar(2): expected 1, got %s", s)
	}
}

func TestScalarValidation(t *testing.T) {
	if _, err := Scalar(nil); !errors.Is(err, ErrNilMax) {
		t.Errorf("nil max: expected ErrNilMax, got %v", err)
	}
	if _, err := Scalar(big.NewInt(0)); !errors.Is(err, ErrInvalidMax) {
		t.Errorf("zero max: expected ErrInvalidMax, got %v", err)
	}
	if _, err := Scalar(big.NewInt(-5)); !errors.Is(err, ErrInvalidMax) {
		t.Errorf("negative max: expected ErrInvalidMax, got %v", err)
	}
}

func TestNonce(t *testing.T) {
	n, err := Nonce(12)
	if err != nil {
		t.Fatalf("Nonce failed: %v", err)
	}
	if len(n) != 12 {
		t.Errorf("expected 12 bytes, got %d", len(n))
	}
}
