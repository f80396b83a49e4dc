// Package session coordinates multi-party decryptions: it collects
// decryption parts per ciphertext, deduplicates by shard ID, enforces the
// owner/member quorum composition and expires abandoned attempts. The
// cryptographic core stays pure; all shared mutable state lives here.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Caqil/threshold-encrypt/pkg/elgamal"
)

// Status of a decryption session
type Status string

const (
	// StatusCollecting means the quorum has not been reached yet
	StatusCollecting Status = "collecting"
	// StatusReady means enough parts were collected to combine
	StatusReady Status = "ready"
)

// Policy is the slice of userset policy a session needs: which shard IDs
// belong to owners, and how many of each class a quorum requires
type Policy struct {
	OwnerShardIDs map[uint32]bool
	TotalShards   int
	OwnerQuorum   int
	MemberQuorum  int
}

// Threshold returns the total quorum size
func (p *Policy) Threshold() int {
	return p.OwnerQuorum + p.MemberQuorum
}

// Session tracks one in-progress decryption attempt
type Session struct {
	ID        uuid.UUID
	SetID     uuid.UUID
	CreatedAt time.Time

	policy Policy
	parts  map[uint32]*elgamal.DecryptionPart
}

// ownerParts counts collected parts from owner shard IDs
func (s *Session) ownerParts() int {
	n := 0
	for id := range s.parts {
		if s.policy.OwnerShardIDs[id] {
			n++
		}
	}
	return n
}

// quorumReached reports whether the owner/member composition is satisfied
func (s *Session) quorumReached() bool {
	owners := s.ownerParts()
	members := len(s.parts) - owners
	return owners >= s.policy.OwnerQuorum && members >= s.policy.MemberQuorum
}

// Manager owns the lifecycle of all live decryption sessions
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a manager whose sessions expire after ttl without
// reaching quorum
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a decryption session for a userset
func (m *Manager) Create(setID uuid.UUID, policy Policy) (*Session, error) {
	if policy.Threshold() < 1 || policy.Threshold() > policy.TotalShards {
		return nil, ErrInvalidPolicy
	}

	s := &Session{
		ID:        uuid.New(),
		SetID:     setID,
		CreatedAt: m.now(),
		policy:    policy,
		parts:     make(map[uint32]*elgamal.DecryptionPart),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s

	return s, nil
}

// AddPart records one holder's decryption part. It returns the session
// status after the addition; StatusReady means the caller may combine.
func (m *Manager) AddPart(sessionID uuid.UUID, part *elgamal.DecryptionPart) (Status, error) {
	if part == nil || part.Point == nil {
		return "", elgamal.ErrNilPart
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	if m.expired(s) {
		delete(m.sessions, sessionID)
		return "", ErrSessionExpired
	}

	if part.ShardID < 1 || int(part.ShardID) > s.policy.TotalShards {
		return "", ErrUnknownShard
	}
	if _, exists := s.parts[part.ShardID]; exists {
		return "", ErrDuplicatePart
	}

	s.parts[part.ShardID] = part

	if s.quorumReached() {
		return StatusReady, nil
	}
	return StatusCollecting, nil
}

// Parts returns the collected decryption parts once the quorum is reached
func (m *Manager) Parts(sessionID uuid.UUID) ([]*elgamal.DecryptionPart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.expired(s) {
		return nil, ErrSessionExpired
	}
	if !s.quorumReached() {
		return nil, ErrQuorumNotReached
	}

	parts := make([]*elgamal.DecryptionPart, 0, len(s.parts))
	for _, p := range s.parts {
		parts = append(parts, p)
	}
	return parts, nil
}

// Progress reports how many parts have been collected and how many the
// quorum requires
func (m *Manager) Progress(sessionID uuid.UUID) (collected, required int, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return 0, 0, ErrSessionNotFound
	}
	return len(s.parts), s.policy.Threshold(), nil
}

// Close discards a session, successful or abandoned. Collected parts are
// dropped; they are single-use by contract.
func (m *Manager) Close(sessionID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// PruneExpired removes sessions past their ttl and returns how many were
// dropped. Callers run this periodically; there is no background goroutine.
func (m *Manager) PruneExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
			pruned++
		}
	}
	return pruned
}

func (m *Manager) expired(s *Session) bool {
	return m.ttl > 0 && m.now().Sub(s.CreatedAt) > m.ttl
}
