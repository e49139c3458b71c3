package repo

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"syndic/internal/models"
)

type OwnerStore struct{ db *gorm.DB }

func NewOwnerStore(db *gorm.DB) *OwnerStore { return &OwnerStore{db: db} }

type CreateOwnerInput struct {
	Name            string
	Age             int
	RoomNo          int
	Password        string
	AggrementStatus string
	DOB             string
	Email           *string
}

type CreateOwnerResult struct {
	OwnerID uint
	UserID  string
}

func (s *OwnerStore) Create(ctx context.Context, in CreateOwnerInput) (*CreateOwnerResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var res CreateOwnerResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o := models.Owner{
			Name:            in.Name,
			Age:             in.Age,
			AggrementStatus: in.AggrementStatus,
			RoomNo:          in.RoomNo,
			DOB:             in.DOB,
			Email:           in.Email,
		}
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		cred := models.Credential{
			UserID:    models.RoleOwner.ExternalID(o.OwnerID),
			Password:  string(hash),
			Role:      models.RoleOwner,
			ProfileID: o.OwnerID,
		}
		if err := tx.Create(&cred).Error; err != nil {
			return err
		}
		// Owner proofs are filed without a document number.
		proof := models.Identity{OwnerID: &o.OwnerID}
		if err := tx.Create(&proof).Error; err != nil {
			return err
		}
		res = CreateOwnerResult{OwnerID: o.OwnerID, UserID: cred.UserID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *OwnerStore) List(ctx context.Context) ([]models.Owner, error) {
	var out []models.Owner
	err := s.db.WithContext(ctx).Order("owner_id asc").Find(&out).Error
	return out, err
}

func (s *OwnerStore) GetByID(ctx context.Context, id uint) (*models.Owner, error) {
	var o models.Owner
	err := s.db.WithContext(ctx).First(&o, "owner_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OwnerStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&models.Identity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Owner{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", models.RoleOwner.ExternalID(id)).
			Delete(&models.Credential{}).Error
	})
}

// Rooms returns the room rows for everything the owner holds.
func (s *OwnerStore) Rooms(ctx context.Context, ownerID uint) ([]models.Room, error) {
	var out []models.Room
	err := s.db.WithContext(ctx).
		Where("room_no IN (?)", s.db.Model(&models.Owner{}).Select("room_no").Where("owner_id = ?", ownerID)).
		Find(&out).Error
	return out, err
}
