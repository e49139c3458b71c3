package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"syndic/internal/models"
)

type MaintenanceStore struct{ db *gorm.DB }

func NewMaintenanceStore(db *gorm.DB) *MaintenanceStore { return &MaintenanceStore{db: db} }

func (s *MaintenanceStore) Create(ctx context.Context, credID uint, role models.Role, roomNo int, description string) (*models.MaintenanceRequest, error) {
	req := models.MaintenanceRequest{
		UserID:      credID,
		UserType:    role,
		RoomNo:      roomNo,
		Description: description,
		Status:      models.MaintenanceStatusPending,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

const maintenancePageSize = 10

// ListOptions mirror the legacy request: all=false is the dashboard view
// (most recent 5), all=true pages through everything 10 at a time.
type ListOptions struct {
	Page int
	All  bool
}

// ListFor applies the per-role visibility rules: tenants see their own
// requests, owners see their tenants' requests, admin/employee see all
// tenant-filed requests.
func (s *MaintenanceStore) ListFor(ctx context.Context, credID, profileID uint, role models.Role, opts ListOptions) ([]models.MaintenanceRequest, error) {
	q := s.db.WithContext(ctx).Model(&models.MaintenanceRequest{})
	switch role {
	case models.RoleTenant:
		q = q.Where("user_id = ? AND user_type = ?", credID, role)
	case models.RoleOwner:
		q = q.Where("user_type = ?", models.RoleTenant).
			Where("room_no IN (?)",
				s.db.Model(&models.Tenant{}).Select("room_no").Where("ownerno = ?", profileID))
	case models.RoleAdmin, models.RoleEmployee:
		q = q.Where("user_type = ?", models.RoleTenant)
	default:
		return nil, ErrInvalidRole
	}

	q = q.Order("submitted_at DESC")
	if !opts.All {
		q = q.Limit(5)
	} else {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		q = q.Limit(maintenancePageSize).Offset((page - 1) * maintenancePageSize)
	}

	var out []models.MaintenanceRequest
	err := q.Find(&out).Error
	return out, err
}

// UpdateStatus enforces the pending → in_progress → resolved progression.
func (s *MaintenanceStore) UpdateStatus(ctx context.Context, id uint, status string) error {
	var allowedFrom string
	switch status {
	case models.MaintenanceStatusInProgress:
		allowedFrom = models.MaintenanceStatusPending
	case models.MaintenanceStatusResolved:
		allowedFrom = models.MaintenanceStatusInProgress
	default:
		return ErrBadTransition
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.MaintenanceRequest
		err := tx.First(&req, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if req.Status != allowedFrom {
			return ErrBadTransition
		}
		return tx.Model(&models.MaintenanceRequest{}).
			Where("id = ?", id).
			Update("status", status).Error
	})
}

func (s *MaintenanceStore) PendingCount(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.MaintenanceRequest{}).
		Where("status = ?", models.MaintenanceStatusPending).
		Count(&n).Error
	return n, err
}
