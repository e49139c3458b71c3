package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"syndic/internal/models"
)

type EmployeeStore struct{ db *gorm.DB }

func NewEmployeeStore(db *gorm.DB) *EmployeeStore { return &EmployeeStore{db: db} }

func (s *EmployeeStore) List(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	err := s.db.WithContext(ctx).Order("emp_id asc").Find(&out).Error
	return out, err
}

func (s *EmployeeStore) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var e models.Employee
	err := s.db.WithContext(ctx).First(&e, "emp_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EmployeeStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("emp_id = ?", id).Delete(&models.Identity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("emp_id = ?", id).Delete(&models.Employee{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", models.RoleEmployee.ExternalID(id)).
			Delete(&models.Credential{}).Error
	})
}
