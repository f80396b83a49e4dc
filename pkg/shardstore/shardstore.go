// Package shardstore persists a holder's shard encrypted at rest. The
// coordinator never sees shard values; each client keeps its own shard in a
// password-protected file (argon2id key derivation, AES-256-GCM payload).
package shardstore

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/Caqil/threshold-encrypt/internal/math"
	"github.com/Caqil/threshold-encrypt/internal/security"
	"github.com/Caqil/threshold-encrypt/pkg/codec"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/curve"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/rand"
)

const (
	formatVersion = "1"

	minPasswordLen = 8
	saltSize       = 16
	nonceSize      = 12
	keySize        = 32
)

// Record is the decrypted content of a shard file: one holder's shard plus
// the userset context needed to use it
type Record struct {
	SetID     uuid.UUID `json:"set_id"`
	Holder    string    `json:"holder"`
	CurveName string    `json:"curve"`
	Threshold int       `json:"threshold"`
	Holders   int       `json:"holders"`

	Shard *math.Shard `json:"-"`
}

// KDFParams are the argon2id parameters recorded alongside the ciphertext so
// files remain readable if the defaults change
type KDFParams struct {
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory"`
	Threads uint8  `json:"threads"`
	Salt    []byte `json:"salt"`
}

// Metadata describes a shard file without decrypting it
type Metadata struct {
	Version   string    `json:"version"`
	SetID     uuid.UUID `json:"set_id"`
	Holder    string    `json:"holder"`
	CurveName string    `json:"curve"`
	Threshold int       `json:"threshold"`
	Holders   int       `json:"holders"`
	CreatedAt time.Time `json:"created_at"`
	KDF       KDFParams `json:"kdf"`
}

type fileLayout struct {
	Metadata   Metadata `json:"metadata"`
	Nonce      []byte   `json:"nonce"`
	Ciphertext []byte   `json:"ciphertext"`
}

// serialized is the plaintext JSON sealed inside the file
type serialized struct {
	SetID     uuid.UUID `json:"set_id"`
	Holder    string    `json:"holder"`
	CurveName string    `json:"curve"`
	Threshold int       `json:"threshold"`
	Holders   int       `json:"holders"`
	Shard     []byte    `json:"shard"`
}

// FileStore stores a single shard record at a fixed path
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Exists reports whether a shard file is present
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save encrypts and writes the record. An existing file is overwritten:
// re-keying a userset replaces the shard.
func (s *FileStore) Save(rec *Record, password string) error {
	if rec == nil || rec.Shard == nil {
		return ErrNilRecord
	}
	if len(password) < minPasswordLen {
		return ErrWeakPassword
	}

	shardBytes, err := codec.EncodeShard(rec.Shard)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(&serialized{
		SetID:     rec.SetID,
		Holder:    rec.Holder,
		CurveName: rec.CurveName,
		Threshold: rec.Threshold,
		Holders:   rec.Holders,
		Shard:     shardBytes,
	})
	if err != nil {
		return err
	}
	defer security.Zero(plaintext)
	defer security.Zero(shardBytes)

	salt, err := rand.Bytes(saltSize)
	if err != nil {
		return err
	}
	kdf := defaultKDFParams(salt)

	key := deriveKey(password, kdf)
	defer security.Zero(key)

	aead, err := newAEAD(key)
	if err != nil {
		return err
	}

	nonce, err := rand.Nonce(nonceSize)
	if err != nil {
		return err
	}

	layout := &fileLayout{
		Metadata: Metadata{
			Version:   formatVersion,
			SetID:     rec.SetID,
			Holder:    rec.Holder,
			CurveName: rec.CurveName,
			Threshold: rec.Threshold,
			Holders:   rec.Holders,
			CreatedAt: time.Now().UTC(),
			KDF:       kdf,
		},
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
	}

	out, err := json.Marshal(layout)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, out, 0o600)
}

// Load decrypts and returns the stored record
func (s *FileStore) Load(password string) (*Record, error) {
	layout, err := s.readFile()
	if err != nil {
		return nil, err
	}

	key := deriveKey(password, layout.Metadata.KDF)
	defer security.Zero(key)

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, layout.Nonce, layout.Ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	defer security.Zero(plaintext)

	var ser serialized
	if err := json.Unmarshal(plaintext, &ser); err != nil {
		return nil, ErrInvalidFormat
	}

	c, err := curve.FromName(ser.CurveName)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	shard, err := codec.DecodeShard(ser.Shard, c.Order())
	if err != nil {
		return nil, ErrInvalidFormat
	}

	return &Record{
		SetID:     ser.SetID,
		Holder:    ser.Holder,
		CurveName: ser.CurveName,
		Threshold: ser.Threshold,
		Holders:   ser.Holders,
		Shard:     shard,
	}, nil
}

// GetMetadata reads the file metadata without decrypting the shard
func (s *FileStore) GetMetadata() (*Metadata, error) {
	layout, err := s.readFile()
	if err != nil {
		return nil, err
	}
	return &layout.Metadata, nil
}

// ChangePassword re-encrypts the stored record under a new password
func (s *FileStore) ChangePassword(oldPassword, newPassword string) error {
	rec, err := s.Load(oldPassword)
	if err != nil {
		return err
	}
	return s.Save(rec, newPassword)
}

// Delete removes the shard file
func (s *FileStore) Delete() error {
	if !s.Exists() {
		return ErrShardNotFound
	}
	return os.Remove(s.path)
}

func (s *FileStore) readFile() (*fileLayout, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrShardNotFound
		}
		return nil, err
	}

	var layout fileLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, ErrInvalidFormat
	}
	if layout.Metadata.Version != formatVersion {
		return nil, ErrVersionMismatch
	}
	if len(layout.Metadata.KDF.Salt) != saltSize || len(layout.Nonce) != nonceSize {
		return nil, ErrInvalidFormat
	}

	return &layout, nil
}

func defaultKDFParams(salt []byte) KDFParams {
	return KDFParams{
		Time:    3,
		Memory:  64 * 1024,
		Threads: 4,
		Salt:    salt,
	}
}

func deriveKey(password string, p KDFParams) []byte {
	return argon2.IDKey([]byte(password), p.Salt, p.Time, p.Memory, p.Threads, keySize)
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
