package session

import "errors"

var (
	// ErrInvalidPolicy is returned when a session policy is malformed
	ErrInvalidPolicy = errors.New("invalid session policy")

	// ErrSessionNotFound is returned for an unknown session ID
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session outlived its ttl without
	// reaching quorum
	ErrSessionExpired = errors.New("session expired")

	// ErrDuplicatePart is returned when a shard ID submits twice
	ErrDuplicatePart = errors.New("decryption part already submitted for shard")

	// ErrUnknownShard is returned when a part's shard ID is outside the
	// userset's range
	ErrUnknownShard = errors.New("shard ID not part of userset")

	// ErrQuorumNotReached is returned when parts are requested before the
	// owner/member quorum is satisfied
	ErrQuorumNotReached = errors.New("quorum not reached")
)
