package repo

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"syndic/internal/models"
)

type TenantStore struct{ db *gorm.DB }

func NewTenantStore(db *gorm.DB) *TenantStore { return &TenantStore{db: db} }

type CreateTenantInput struct {
	Name      string
	Age       int
	RoomNo    int
	Password  string
	DOB       string
	IDProof   string
	Stat      string
	LeaveDate *string
	Email     *string
}

type CreateTenantResult struct {
	TenantID uint
	UserID   string
}

// Create inserts the tenant, its login record and the identity proof in one
// transaction. The room must already belong to an owner.
func (s *TenantStore) Create(ctx context.Context, in CreateTenantInput) (*CreateTenantResult, error) {
	var owner models.Owner
	err := s.db.WithContext(ctx).Where("room_no = ?", in.RoomNo).First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoOwnerForRoom
	}
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var res CreateTenantResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t := models.Tenant{
			Name:      in.Name,
			DOB:       in.DOB,
			Stat:      in.Stat,
			LeaveDate: in.LeaveDate,
			RoomNo:    in.RoomNo,
			Age:       in.Age,
			OwnerNo:   owner.OwnerID,
			Email:     in.Email,
		}
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		cred := models.Credential{
			UserID:    models.RoleTenant.ExternalID(t.TenantID),
			Password:  string(hash),
			Role:      models.RoleTenant,
			ProfileID: t.TenantID,
		}
		if err := tx.Create(&cred).Error; err != nil {
			return err
		}
		proof := models.Identity{IDNumber: &in.IDProof, TenantID: &t.TenantID}
		if err := tx.Create(&proof).Error; err != nil {
			return err
		}
		res = CreateTenantResult{TenantID: t.TenantID, UserID: cred.UserID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *TenantStore) List(ctx context.Context) ([]models.Tenant, error) {
	var out []models.Tenant
	err := s.db.WithContext(ctx).Order("tenant_id asc").Find(&out).Error
	return out, err
}

func (s *TenantStore) GetByID(ctx context.Context, id uint) (*models.Tenant, error) {
	var t models.Tenant
	err := s.db.WithContext(ctx).First(&t, "tenant_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// OfOwner lists the tenants living in the owner's rooms.
func (s *TenantStore) OfOwner(ctx context.Context, ownerID uint) ([]models.Tenant, error) {
	var out []models.Tenant
	err := s.db.WithContext(ctx).
		Where("room_no IN (?)", s.db.Model(&models.Owner{}).Select("room_no").Where("owner_id = ?", ownerID)).
		Find(&out).Error
	return out, err
}

// Delete cascades rental and proof rows, then the profile and its login.
func (s *TenantStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ?", id).Delete(&models.Rental{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&models.Identity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&models.Tenant{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", models.RoleTenant.ExternalID(id)).
			Delete(&models.Credential{}).Error
	})
}

// PayMaintenance flips the payment status to "Payé".
func (s *TenantStore) PayMaintenance(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("tenant_id = ?", id).
		Update("stat", "Payé")
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type PaymentStatus struct {
	Status  string  `json:"status"`
	DueDate *string `json:"dueDate"`
}

func (s *TenantStore) PaymentStatus(ctx context.Context, id uint) (*PaymentStatus, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PaymentStatus{Status: t.Stat, DueDate: t.LeaveDate}, nil
}

// Parking returns the parking slot assigned to the tenant's room, if any.
func (s *TenantStore) Parking(ctx context.Context, id uint) (*int, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var room models.Room
	err = s.db.WithContext(ctx).First(&room, "room_no = ?", t.RoomNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return room.ParkingSlot, nil
}
