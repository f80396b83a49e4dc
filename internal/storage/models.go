// Package storage persists userset policy metadata for the coordinator.
// Only public material is stored: policies, public keys, commitments and
// shard assignments. Shard values never reach the coordinator.
package storage

import (
	"time"

	"github.com/google/uuid"
)

// UserSet is the persisted policy record for one group
type UserSet struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"uniqueIndex;not null"`
	CurveName       string    `gorm:"not null"`
	OwnerThreshold  int       `gorm:"not null"`
	MemberThreshold int       `gorm:"not null"`

	// PublicKey is the compressed group public key
	PublicKey []byte `gorm:"not null"`

	// Commitments is the concatenation of the compressed Feldman
	// commitment points, threshold many, each PointSize bytes
	Commitments []byte `gorm:"not null"`

	Holders []Holder `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Holder records which shard ID was assigned to which holder. The shard
// value itself lives only on the holder's device.
type Holder struct {
	ID      uint      `gorm:"primaryKey"`
	SetID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Name    string    `gorm:"not null"`
	ShardID uint32    `gorm:"not null"`
	Owner   bool      `gorm:"not null"`

	CreatedAt time.Time
}

// TableName keeps the historical table name
func (UserSet) TableName() string { return "user_sets" }

// TableName keeps the historical table name
func (Holder) TableName() string { return "holders" }
