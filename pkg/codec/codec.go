// Package codec defines the canonical byte and text encodings for shards,
// ciphertexts and decryption parts, so they cross process and network
// boundaries unambiguously. Every decode is strict: a truncated or corrupted
// input fails, it never yields a silently-wrong value.
package codec

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"

	"github.com/Caqil/threshold-encrypt/internal/math"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/curve"
	"github.com/Caqil/threshold-encrypt/pkg/elgamal"
	"github.com/Caqil/threshold-encrypt/pkg/envelope"
)

const shardIDSize = 4

// fieldWidth is the fixed byte width used for field-element values under the
// given modulus
func fieldWidth(modulus *big.Int) int {
	return (modulus.BitLen() + 7) / 8
}

// EncodeShard returns the binary form of a shard: a big-endian uint32 shard
// ID followed by the field value left-padded to the modulus width
func EncodeShard(s *math.Shard) ([]byte, error) {
	if s == nil || s.Value == nil {
		return nil, ErrNilValue
	}

	width := fieldWidth(s.Value.Modulus())
	out := make([]byte, shardIDSize+width)
	binary.BigEndian.PutUint32(out, s.ID)

	v := s.Value.Value().Bytes()
	copy(out[shardIDSize+width-len(v):], v)

	return out, nil
}

// DecodeShard parses the binary form produced by EncodeShard
func DecodeShard(data []byte, modulus *big.Int) (*math.Shard, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, math.ErrInvalidModulus
	}

	width := fieldWidth(modulus)
	if len(data) != shardIDSize+width {
		return nil, ErrMalformedEncoding
	}

	id := binary.BigEndian.Uint32(data)
	if id == 0 {
		return nil, ErrMalformedEncoding
	}

	raw := new(big.Int).SetBytes(data[shardIDSize:])
	if raw.Cmp(modulus) >= 0 {
		return nil, ErrMalformedEncoding
	}

	value, err := math.NewFieldElement(raw, modulus)
	if err != nil {
		return nil, err
	}

	return &math.Shard{ID: id, Value: value}, nil
}

// FormatShard renders the shard transport text format: "(<id>,<decimal>)"
func FormatShard(s *math.Shard) (string, error) {
	if s == nil || s.Value == nil {
		return "", ErrNilValue
	}
	return fmt.Sprintf("(%d,%s)", s.ID, s.Value.String()), nil
}

// ParseShard parses the "(<id>,<decimal>)" shard text format.
// Missing parentheses, a missing comma or non-numeric fields are recoverable
// boundary errors, reported as ErrMalformedShardText.
func ParseShard(text string, modulus *big.Int) (*math.Shard, error) {
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return nil, ErrMalformedShardText
	}

	inner := text[1 : len(text)-1]
	idStr, valueStr, ok := strings.Cut(inner, ",")
	if !ok {
		return nil, ErrMalformedShardText
	}

	id, err := parseShardID(idStr)
	if err != nil {
		return nil, err
	}

	value, err := math.ParseFieldElement(valueStr, modulus)
	if err != nil {
		return nil, ErrMalformedShardText
	}

	return &math.Shard{ID: id, Value: value}, nil
}

func parseShardID(s string) (uint32, error) {
	if s == "" {
		return 0, ErrMalformedShardText
	}
	var id uint64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrMalformedShardText
		}
		id = id*10 + uint64(r-'0')
		if id > 1<<32-1 {
			return 0, ErrMalformedShardText
		}
	}
	if id == 0 {
		return 0, ErrMalformedShardText
	}
	return uint32(id), nil
}

// EncodePart returns the binary form of a decryption part: a big-endian
// uint32 shard ID followed by the compressed point
func EncodePart(p *elgamal.DecryptionPart) ([]byte, error) {
	if p == nil || p.Point == nil {
		return nil, ErrNilValue
	}

	point := p.Point.Bytes()
	if point == nil {
		return nil, ErrNilValue
	}

	out := make([]byte, shardIDSize, shardIDSize+len(point))
	binary.BigEndian.PutUint32(out, p.ShardID)

	return append(out, point...), nil
}

// DecodePart parses the binary form produced by EncodePart, enforcing curve
// membership of the embedded point
func DecodePart(data []byte, c curve.Curve) (*elgamal.DecryptionPart, error) {
	if c == nil {
		return nil, elgamal.ErrNilCurve
	}
	if len(data) != shardIDSize+c.PointSize() {
		return nil, ErrMalformedEncoding
	}

	id := binary.BigEndian.Uint32(data)
	if id == 0 {
		return nil, ErrMalformedEncoding
	}

	point, err := c.Unmarshal(data[shardIDSize:])
	if err != nil {
		return nil, err
	}

	return &elgamal.DecryptionPart{ShardID: id, Point: point}, nil
}

// EncodePartText returns the single-blob base64 transport form of a part
func EncodePartText(p *elgamal.DecryptionPart) (string, error) {
	raw, err := EncodePart(p)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodePartText parses the base64 transport form of a part
func DecodePartText(text string, c curve.Curve) (*elgamal.DecryptionPart, error) {
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, ErrMalformedEncoding
	}
	return DecodePart(raw, c)
}

// EncodeCiphertext returns the binary form of a sealed payload:
// C1 || C2 || nonce || blob, with C1/C2 at the curve's fixed compressed
// width and the nonce at envelope.NonceSize
func EncodeCiphertext(ct *envelope.Ciphertext, c curve.Curve) ([]byte, error) {
	if c == nil {
		return nil, elgamal.ErrNilCurve
	}
	if ct == nil || ct.C1 == nil || ct.C2 == nil {
		return nil, ErrNilValue
	}
	if len(ct.Nonce) != envelope.NonceSize {
		return nil, ErrMalformedEncoding
	}

	c1 := c.Marshal(ct.C1)
	c2 := c.Marshal(ct.C2)
	if c1 == nil || c2 == nil {
		return nil, ErrNilValue
	}

	out := make([]byte, 0, len(c1)+len(c2)+len(ct.Nonce)+len(ct.Blob))
	out = append(out, c1...)
	out = append(out, c2...)
	out = append(out, ct.Nonce...)
	out = append(out, ct.Blob...)

	return out, nil
}

// DecodeCiphertext parses the binary form produced by EncodeCiphertext
func DecodeCiphertext(data []byte, c curve.Curve) (*envelope.Ciphertext, error) {
	if c == nil {
		return nil, elgamal.ErrNilCurve
	}

	ps := c.PointSize()
	// The blob must carry at least a GCM tag
	if len(data) < 2*ps+envelope.NonceSize+16 {
		return nil, ErrMalformedEncoding
	}

	c1, err := c.Unmarshal(data[:ps])
	if err != nil {
		return nil, err
	}
	c2, err := c.Unmarshal(data[ps : 2*ps])
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, envelope.NonceSize)
	copy(nonce, data[2*ps:2*ps+envelope.NonceSize])

	blob := make([]byte, len(data)-2*ps-envelope.NonceSize)
	copy(blob, data[2*ps+envelope.NonceSize:])

	return &envelope.Ciphertext{C1: c1, C2: c2, Nonce: nonce, Blob: blob}, nil
}

// EncodeCiphertextText renders the four-field text transport form:
// base64(C1).base64(C2).base64(nonce).base64(blob)
func EncodeCiphertextText(ct *envelope.Ciphertext, c curve.Curve) (string, error) {
	if c == nil {
		return "", elgamal.ErrNilCurve
	}
	if ct == nil || ct.C1 == nil || ct.C2 == nil {
		return "", ErrNilValue
	}

	enc := base64.StdEncoding
	fields := []string{
		enc.EncodeToString(c.Marshal(ct.C1)),
		enc.EncodeToString(c.Marshal(ct.C2)),
		enc.EncodeToString(ct.Nonce),
		enc.EncodeToString(ct.Blob),
	}

	return strings.Join(fields, "."), nil
}

// DecodeCiphertextText parses the four-field text transport form
func DecodeCiphertextText(text string, c curve.Curve) (*envelope.Ciphertext, error) {
	if c == nil {
		return nil, elgamal.ErrNilCurve
	}

	fields := strings.Split(text, ".")
	if len(fields) != 4 {
		return nil, ErrMalformedEncoding
	}

	enc := base64.StdEncoding
	raw := make([][]byte, 4)
	for i, f := range fields {
		b, err := enc.DecodeString(f)
		if err != nil {
			return nil, ErrMalformedEncoding
		}
		raw[i] = b
	}

	c1, err := c.Unmarshal(raw[0])
	if err != nil {
		return nil, err
	}
	c2, err := c.Unmarshal(raw[1])
	if err != nil {
		return nil, err
	}
	if len(raw[2]) != envelope.NonceSize {
		return nil, ErrMalformedEncoding
	}

	return &envelope.Ciphertext{C1: c1, C2: c2, Nonce: raw[2], Blob: raw[3]}, nil
}
