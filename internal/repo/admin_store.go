package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"syndic/internal/models"
)

type AdminStore struct{ db *gorm.DB }

func NewAdminStore(db *gorm.DB) *AdminStore { return &AdminStore{db: db} }

func (s *AdminStore) GetByID(ctx context.Context, adminID uint) (*models.BlockAdmin, error) {
	var a models.BlockAdmin
	err := s.db.WithContext(ctx).First(&a, "admin_id = ?", adminID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
