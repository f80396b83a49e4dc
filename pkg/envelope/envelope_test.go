package envelope

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Caqil/threshold-encrypt/internal/math"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/curve"
	"github.com/Caqil/threshold-encrypt/pkg/elgamal"
)

type testGroup struct {
	curve  curve.Curve
	key    *elgamal.KeyPair
	shards []*math.Shard
}

func newTestGroup(t *testing.T, n, th int) *testGroup {
	t.Helper()

	c, err := curve.New(curve.P256)
	if err != nil {
		t.Fatalf("curve.New failed: %v", err)
	}

	kp, err := elgamal.GenerateKeyPair(c)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	secret, err := math.NewFieldElement(kp.Private, c.Order())
	if err != nil {
		t.Fatalf("NewFieldElement failed: %v", err)
	}
	shards, err := math.Split(secret, n, th)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	return &testGroup{curve: c, key: kp, shards: shards}
}

func (g *testGroup) parts(t *testing.T, ct *Ciphertext, ids ...int) []*elgamal.DecryptionPart {
	t.Helper()
	parts := make([]*elgamal.DecryptionPart, 0, len(ids))
	for _, i := range ids {
		p, err := elgamal.PartialDecrypt(g.curve, g.shards[i], ct.C1)
		if err != nil {
			t.Fatalf("PartialDecrypt failed: %v", err)
		}
		parts = append(parts, p)
	}
	return parts
}

func TestSealOpenRoundTrip(t *testing.T) {
	g := newTestGroup(t, 5, 3)
	plaintext := []byte("the group can read this, no individual can")

	ct, err := Seal(g.curve, plaintext, g.key.Public)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	got, err := Open(g.curve, g.parts(t, ct, 0, 1, 2), ct, 3)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("recovered %q, expected %q", got, plaintext)
	}
}

func TestOpenWithDifferentQuorums(t *testing.T) {
	g := newTestGroup(t, 5, 3)
	plaintext := []byte("any quorum works")

	ct, err := Seal(g.curve, plaintext, g.key.Public)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	for _, ids := range [][]int{{0, 1, 2}, {2, 3, 4}, {0, 2, 4}, {0, 1, 2, 3, 4}} {
		got, err := Open(g.curve, g.parts(t, ct, ids...), ct, 3)
		if err != nil {
			t.Fatalf("Open with quorum %v failed: %v", ids, err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Errorf("quorum %v recovered wrong plaintext", ids)
		}
	}
}

func TestOpenBelowQuorum(t *testing.T) {
	g := newTestGroup(t, 5, 3)

	ct, err := Seal(g.curve, []byte("secret"), g.key.Public)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if _, err := Open(g.curve, g.parts(t, ct, 0, 1), ct, 3); !errors.Is(err, elgamal.ErrInsufficientShares) {
		t.Errorf("expected ErrInsufficientShares, got %v", err)
	}
}

func TestOpenWithPrivate(t *testing.T) {
	g := newTestGroup(t, 3, 2)
	plaintext := []byte("single-holder path")

	ct, err := Seal(g.curve, plaintext, g.key.Public)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	got, err := OpenWithPrivate(g.curve, g.key, ct)
	if err != nil {
		t.Fatalf("OpenWithPrivate failed: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Error("OpenWithPrivate recovered wrong plaintext")
	}
}

func TestTamperedBlobFailsAuthentication(t *testing.T) {
	g := newTestGroup(t, 3, 2)

	ct, err := Seal(g.curve, []byte("integrity matters"), g.key.Public)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	ct.Blob[0] ^= 0x01
	_, err = Open(g.curve, g.parts(t, ct, 0, 1), ct, 2)
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestTamperedNonceFailsAuthentication(t *testing.T) {
	g := newTestGroup(t, 3, 2)

	ct, err := Seal(g.curve, []byte("nonce is bound"), g.key.Public)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	ct.Nonce[3] ^= 0xff
	_, err = Open(g.curve, g.parts(t, ct, 0, 1), ct, 2)
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

// TestSwappedComponentsFailAuthentication verifies that C1/C2 from one
// ciphertext cannot be grafted onto another's blob: the additional data
// binding must catch it.
func TestSwappedComponentsFailAuthentication(t *testing.T) {
	g := newTestGroup(t, 3, 2)

	ctA, err := Seal(g.curve, []byte("message A"), g.key.Public)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	ctB, err := Seal(g.curve, []byte("message B"), g.key.Public)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	franken := &Ciphertext{C1: ctA.C1, C2: ctA.C2, Nonce: ctB.Nonce, Blob: ctB.Blob}
	_, err = Open(g.curve, g.parts(t, franken, 0, 1), franken, 2)
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestSealEmptyPlaintext(t *testing.T) {
	g := newTestGroup(t, 3, 2)

	ct, err := Seal(g.curve, nil, g.key.Public)
	if err != nil {
		t.Fatalf("Seal of empty plaintext failed: %v", err)
	}

	got, err := Open(g.curve, g.parts(t, ct, 1, 2), ct, 2)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty plaintext, got %d bytes", len(got))
	}
}

func TestOpenNilCiphertext(t *testing.T) {
	g := newTestGroup(t, 3, 2)

	if _, err := Open(g.curve, nil, nil, 2); !errors.Is(err, ErrNilCiphertext) {
		t.Errorf("expected ErrNilCiphertext, got %v", err)
	}
	if _, err := OpenWithPrivate(g.curve, g.key, nil); !errors.Is(err, ErrNilCiphertext) {
		t.Errorf("expected ErrNilCiphertext, got %v", err)
	}
}

func TestSealValidation(t *testing.T) {
	g := newTestGroup(t, 3, 2)

	if _, err := Seal(nil, []byte("x"), g.key.Public); !errors.Is(err, elgamal.ErrNilCurve) {
		t.Errorf("nil curve: expected ErrNilCurve, got %v", err)
	}
	if _, err := Seal(g.curve, []byte("x"), nil); !errors.Is(err, curve.ErrInvalidPoint) {
		t.Errorf("nil public key: expected ErrInvalidPoint, got %v", err)
	}
}
