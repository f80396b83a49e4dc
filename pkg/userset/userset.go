// Package userset models groups with an owners/members threshold decryption
// policy, and performs the one-time group key generation that splits the
// group private scalar into per-holder shards.
package userset

import (
	"github.com/google/uuid"

	"github.com/Caqil/threshold-encrypt/internal/math"
	"github.com/Caqil/threshold-encrypt/internal/security"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/curve"
	"github.com/Caqil/threshold-encrypt/pkg/elgamal"
)

// Info is the immutable threshold policy of a userset. The decryption quorum
// is OwnerThreshold owner shards plus MemberThreshold member shards; the
// crypto layer splits with T = OwnerThreshold + MemberThreshold and the
// coordinator enforces the owner/member composition.
type Info struct {
	// ID is the globally unique userset identifier
	ID uuid.UUID

	// Name is the human-readable userset name
	Name string

	// Owners and Members are the holder names; a holder appears in at most
	// one of the two lists
	Owners  []string
	Members []string

	// OwnerThreshold is the number of owner shards required per decryption
	OwnerThreshold int

	// MemberThreshold is the number of member shards required per decryption
	MemberThreshold int
}

// NewInfo validates a policy and assigns a fresh userset ID
func NewInfo(name string, owners []string, ownerThreshold int, members []string, memberThreshold int) (*Info, error) {
	info := &Info{
		ID:              uuid.New(),
		Name:            name,
		Owners:          owners,
		Members:         members,
		OwnerThreshold:  ownerThreshold,
		MemberThreshold: memberThreshold,
	}

	if err := info.Validate(); err != nil {
		return nil, err
	}

	return info, nil
}

// Validate checks the policy invariants: at least one owner, thresholds
// within their lists, a total threshold of at least 1, and no holder
// appearing twice
func (i *Info) Validate() error {
	if i.Name == "" {
		return ErrEmptyName
	}
	if len(i.Owners) < 1 {
		return security.ErrInvalidHolderCount
	}
	if i.OwnerThreshold < 1 || i.OwnerThreshold > len(i.Owners) {
		return security.ErrInvalidPolicy
	}
	if i.MemberThreshold < 0 || i.MemberThreshold > len(i.Members) {
		return security.ErrInvalidPolicy
	}

	seen := make(map[string]bool, len(i.Owners)+len(i.Members))
	for _, h := range append(append([]string{}, i.Owners...), i.Members...) {
		if h == "" {
			return ErrEmptyName
		}
		if seen[h] {
			return ErrDuplicateHolder
		}
		seen[h] = true
	}

	return security.ValidatePolicy(i.Threshold(), i.Holders())
}

// Holders returns N, the total number of shard holders
func (i *Info) Holders() int {
	return len(i.Owners) + len(i.Members)
}

// Threshold returns T, the total quorum size
func (i *Info) Threshold() int {
	return i.OwnerThreshold + i.MemberThreshold
}

// IsOwner reports whether the named holder is in the owners list
func (i *Info) IsOwner(holder string) bool {
	for _, o := range i.Owners {
		if o == holder {
			return true
		}
	}
	return false
}

// HolderShard pairs a shard with the holder it was assigned to.
// The shard value is handed to the holder exactly once at creation and must
// never be persisted by the coordinator.
type HolderShard struct {
	Holder string
	Owner  bool
	Shard  *math.Shard
}

// GroupKey is the result of userset key generation. The private scalar is
// zeroed before GroupKey is returned; only the shards and the public
// material survive.
type GroupKey struct {
	SetID uuid.UUID

	// CurveName identifies the curve all group material lives on
	CurveName string

	// Public is the group public key s*G
	Public *curve.Point

	// Commitments are Feldman commitments to the sharing polynomial's
	// coefficients; Commitments[0] equals Public. Holders use them to
	// verify their shard without learning the secret.
	Commitments []*curve.Point

	// Shards are the per-holder shard assignments, owners first
	Shards []*HolderShard
}

// ShardFor returns the shard assignment for the named holder
func (k *GroupKey) ShardFor(holder string) (*HolderShard, error) {
	for _, hs := range k.Shards {
		if hs.Holder == holder {
			return hs, nil
		}
	}
	return nil, ErrUnknownHolder
}

// GenerateGroupKey creates the group keypair for a userset, splits the
// private scalar into one shard per holder (owners get the lowest shard
// IDs), and zeroes the scalar. ShardIDs are 1-based and stable for the
// userset's lifetime.
func GenerateGroupKey(c curve.Curve, info *Info) (*GroupKey, error) {
	if c == nil {
		return nil, elgamal.ErrNilCurve
	}
	if info == nil {
		return nil, ErrNilInfo
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}

	kp, err := elgamal.GenerateKeyPair(c)
	if err != nil {
		return nil, err
	}
	defer security.ZeroBigInt(kp.Private)

	secret, err := math.NewFieldElement(kp.Private, c.Order())
	if err != nil {
		return nil, err
	}

	n, t := info.Holders(), info.Threshold()

	sharing, err := math.SplitWithPolynomial(secret, n, t)
	if err != nil {
		return nil, err
	}

	commitments, err := commitCoefficients(c, sharing.Coefficients())
	if err != nil {
		return nil, err
	}

	shards, err := sharing.Shards(n)
	if err != nil {
		return nil, err
	}

	holders := make([]*HolderShard, 0, n)
	for idx, owner := range info.Owners {
		holders = append(holders, &HolderShard{Holder: owner, Owner: true, Shard: shards[idx]})
	}
	for idx, member := range info.Members {
		holders = append(holders, &HolderShard{Holder: member, Shard: shards[len(info.Owners)+idx]})
	}

	return &GroupKey{
		SetID:       info.ID,
		CurveName:   c.Name(),
		Public:      kp.Public,
		Commitments: commitments,
		Shards:      holders,
	}, nil
}
