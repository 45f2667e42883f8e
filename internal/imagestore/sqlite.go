package imagestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-backend/internal/apperr"
)

type ImageEntry struct {
	Path      string `gorm:"primaryKey;size:255;not null"`
	DataURL   string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SQLite is the durable backend for local setups that need images to survive
// a restart.
type SQLite struct {
	db *gorm.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open image store db: %w", err)
	}

	if err := db.AutoMigrate(&ImageEntry{}); err != nil {
		return nil, fmt.Errorf("migrate image store: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	var entry ImageEntry
	err := s.db.WithContext(ctx).
		Where("path = ?", key).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.E(apperr.KindNotFound, "image not found", nil)
	}
	if err != nil {
		return "", fmt.Errorf("select image entry: %w", err)
	}
	return entry.DataURL, nil
}

func (s *SQLite) Put(ctx context.Context, key string, dataURL string) error {
	entry := &ImageEntry{
		Path:    key,
		DataURL: dataURL,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoUpdates: clause.Assignments(map[string]interface{}{
			"data_url":   dataURL,
			"updated_at": time.Now(),
		}),
	}).Create(entry).Error

	if err != nil {
		return fmt.Errorf("upsert image entry: %w", err)
	}
	return nil
}
