package storage

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store wraps the database handle
type Store struct {
	db *gorm.DB
}

// Open connects to postgres and migrates the schema
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&UserSet{}, &Holder{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an existing gorm handle, used by tests with sqlite or mocks
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the schema on the wrapped handle
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&UserSet{}, &Holder{})
}

// CreateSet persists a new userset with its holder assignments
func (s *Store) CreateSet(set *UserSet) error {
	if set == nil {
		return ErrNilSet
	}

	var count int64
	if err := s.db.Model(&UserSet{}).Where("name = ?", set.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSetExists
	}

	return s.db.Create(set).Error
}

// GetSet loads a userset and its holders by ID
func (s *Store) GetSet(id uuid.UUID) (*UserSet, error) {
	var set UserSet
	err := s.db.Preload("Holders").First(&set, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// GetSetByName loads a userset and its holders by name
func (s *Store) GetSetByName(name string) (*UserSet, error) {
	var set UserSet
	err := s.db.Preload("Holders").First(&set, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// ListSets returns all usersets without holder preloading
func (s *Store) ListSets() ([]UserSet, error) {
	var sets []UserSet
	if err := s.db.Order("created_at").Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

// DeleteSet removes a userset and, via the foreign key, its holders
func (s *Store) DeleteSet(id uuid.UUID) error {
	res := s.db.Delete(&UserSet{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSetNotFound
	}
	return nil
}
