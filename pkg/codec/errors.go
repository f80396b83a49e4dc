package codec

import "errors"

var (
	// ErrMalformedEncoding is returned when a byte or base64 payload has the
	// wrong length or structure
	ErrMalformedEncoding = errors.New("malformed encoding")

	// ErrMalformedShardText is returned when shard transport text does not
	// match the "(<id>,<decimal>)" format
	ErrMalformedShardText = errors.New("malformed shard text")

	// ErrNilValue is returned when a nil value is passed to an encoder
	ErrNilValue = errors.New("value cannot be nil")
)
