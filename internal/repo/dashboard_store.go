package repo

import (
	"context"

	"gorm.io/gorm"

	"syndic/internal/models"
)

// DashboardStore groups the independent aggregate queries behind the
// per-role dashboards. Every method is a single read-only query so the
// service can fan them out concurrently.
type DashboardStore struct{ db *gorm.DB }

func NewDashboardStore(db *gorm.DB) *DashboardStore { return &DashboardStore{db: db} }

func (s *DashboardStore) TotalOwners(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Owner{}).Count(&n).Error
	return n, err
}

func (s *DashboardStore) TotalTenants(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Tenant{}).Count(&n).Error
	return n, err
}

func (s *DashboardStore) TotalEmployees(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Employee{}).Count(&n).Error
	return n, err
}

func (s *DashboardStore) TotalComplaints(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Block{}).
		Where("complaints IS NOT NULL").
		Count(&n).Error
	return n, err
}

func (s *DashboardStore) avgAge(ctx context.Context, model any) (float64, error) {
	var avg *float64
	err := s.db.WithContext(ctx).Model(model).
		Select("AVG(age)").
		Where("age IS NOT NULL").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (s *DashboardStore) AverageOwnerAge(ctx context.Context) (float64, error) {
	return s.avgAge(ctx, &models.Owner{})
}

func (s *DashboardStore) AverageTenantAge(ctx context.Context) (float64, error) {
	return s.avgAge(ctx, &models.Tenant{})
}

func (s *DashboardStore) AverageEmployeeAge(ctx context.Context) (float64, error) {
	return s.avgAge(ctx, &models.Employee{})
}

// ActiveOwners have at least one tenant.
func (s *DashboardStore) ActiveOwners(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Owner{}).
		Distinct("owner.owner_id").
		Joins("JOIN tenant ON tenant.ownerno = owner.owner_id").
		Count(&n).Error
	return n, err
}

// ActiveTenants have paid their maintenance dues.
func (s *DashboardStore) ActiveTenants(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("stat = ?", "Payé").
		Count(&n).Error
	return n, err
}

// ActiveEmployees have a salary on record.
func (s *DashboardStore) ActiveEmployees(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Employee{}).
		Where("salary IS NOT NULL").
		Count(&n).Error
	return n, err
}
