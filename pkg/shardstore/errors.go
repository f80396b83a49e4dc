package shardstore

import "errors"

var (
	// ErrNilRecord is returned when a nil record or shard is saved
	ErrNilRecord = errors.New("record cannot be nil")

	// ErrWeakPassword is returned when the password is too short
	ErrWeakPassword = errors.New("password too weak")

	// ErrInvalidPassword is returned when decryption fails; wrong password
	// and corrupted file are indistinguishable by design
	ErrInvalidPassword = errors.New("invalid password or corrupted file")

	// ErrShardNotFound is returned when no shard file exists at the path
	ErrShardNotFound = errors.New("shard file not found")

	// ErrInvalidFormat is returned when the file structure cannot be parsed
	ErrInvalidFormat = errors.New("invalid shard file format")

	// ErrVersionMismatch is returned when the file was written by an
	// incompatible format version
	ErrVersionMismatch = errors.New("shard file version mismatch")
)
