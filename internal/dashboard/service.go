package dashboard

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"syndic/internal/logs"
	"syndic/internal/models"
	"syndic/internal/repo"
)

// Aggregates are the independent read-only queries behind the admin view.
type Aggregates interface {
	TotalOwners(ctx context.Context) (int64, error)
	TotalTenants(ctx context.Context) (int64, error)
	TotalEmployees(ctx context.Context) (int64, error)
	TotalComplaints(ctx context.Context) (int64, error)
	AverageOwnerAge(ctx context.Context) (float64, error)
	AverageTenantAge(ctx context.Context) (float64, error)
	AverageEmployeeAge(ctx context.Context) (float64, error)
	ActiveOwners(ctx context.Context) (int64, error)
	ActiveTenants(ctx context.Context) (int64, error)
	ActiveEmployees(ctx context.Context) (int64, error)
}

type OwnerSource interface {
	GetByID(ctx context.Context, id uint) (*models.Owner, error)
}

type TenantSource interface {
	GetByID(ctx context.Context, id uint) (*models.Tenant, error)
}

type EmployeeSource interface {
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
}

type BlockLookup interface {
	BlockByRoomNo(ctx context.Context, roomNo int) (*models.Block, error)
	BlockByNo(ctx context.Context, blockNo int) (*models.Block, error)
}

// Service assembles the per-role dashboard payloads. All sub-queries are
// independent, so each payload fans them out concurrently and joins.
type Service struct {
	agg       Aggregates
	owners    OwnerSource
	tenants   TenantSource
	employees EmployeeSource
	blocks    BlockLookup
}

func NewService(agg Aggregates, owners OwnerSource, tenants TenantSource, employees EmployeeSource, blocks BlockLookup) *Service {
	return &Service{agg: agg, owners: owners, tenants: tenants, employees: employees, blocks: blocks}
}

type AdminPayload struct {
	TotalOwner      int64   `json:"totalowner"`
	TotalTenant     int64   `json:"totaltenant"`
	TotalEmployee   int64   `json:"totalemployee"`
	AvgOwnerAge     float64 `json:"avgOwnerAge"`
	AvgTenantAge    float64 `json:"avgTenantAge"`
	AvgEmployeeAge  float64 `json:"avgEmployeeAge"`
	ActiveOwners    int64   `json:"activeOwners"`
	ActiveTenants   int64   `json:"activeTenants"`
	ActiveEmployees int64   `json:"activeEmployees"`
}

// Admin runs the nine aggregate queries concurrently, all-or-nothing.
func (s *Service) Admin(ctx context.Context) (*AdminPayload, error) {
	var p AdminPayload
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { p.TotalOwner, err = s.agg.TotalOwners(ctx); return })
	g.Go(func() (err error) { p.TotalTenant, err = s.agg.TotalTenants(ctx); return })
	g.Go(func() (err error) { p.TotalEmployee, err = s.agg.TotalEmployees(ctx); return })
	g.Go(func() (err error) { p.AvgOwnerAge, err = s.agg.AverageOwnerAge(ctx); return })
	g.Go(func() (err error) { p.AvgTenantAge, err = s.agg.AverageTenantAge(ctx); return })
	g.Go(func() (err error) { p.AvgEmployeeAge, err = s.agg.AverageEmployeeAge(ctx); return })
	g.Go(func() (err error) { p.ActiveOwners, err = s.agg.ActiveOwners(ctx); return })
	g.Go(func() (err error) { p.ActiveTenants, err = s.agg.ActiveTenants(ctx); return })
	g.Go(func() (err error) { p.ActiveEmployees, err = s.agg.ActiveEmployees(ctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &p, nil
}

type OwnerPayload struct {
	TotalEmployee  int64         `json:"totalemployee"`
	TotalComplaint int64         `json:"totalcomplaint"`
	Owner          *models.Owner `json:"owner"`
}

func (s *Service) Owner(ctx context.Context, ownerID uint) (*OwnerPayload, error) {
	var p OwnerPayload
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { p.TotalEmployee, err = s.agg.TotalEmployees(ctx); return })
	g.Go(func() (err error) { p.TotalComplaint, err = s.agg.TotalComplaints(ctx); return })
	g.Go(func() (err error) { p.Owner, err = s.owners.GetByID(ctx, ownerID); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &p, nil
}

type EmployeePayload struct {
	TotalComplaint int64    `json:"totalcomplaint"`
	Salary         *float64 `json:"salary"`
	BlockNo        any      `json:"block_no"`
	BlockName      string   `json:"block_name"`
}

// Employee resolves the assigned block's name off the profile row; a missing
// assignment or block degrades to the same placeholders the tenant view uses.
func (s *Service) Employee(ctx context.Context, empID uint) (*EmployeePayload, error) {
	var p EmployeePayload
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { p.TotalComplaint, err = s.agg.TotalComplaints(ctx); return })
	g.Go(func() error {
		e, err := s.employees.GetByID(ctx, empID)
		if err != nil {
			return err
		}
		p.Salary = e.Salary
		p.BlockNo, p.BlockName = "N/A", "Inconnu"
		if e.BlockNo == nil {
			return nil
		}
		b, err := s.blocks.BlockByNo(ctx, *e.BlockNo)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		p.BlockNo = b.BlockNo
		p.BlockName = b.BlockName
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &p, nil
}

type TenantPayload struct {
	Tenant    *models.Tenant `json:"tenant"`
	BlockNo   any            `json:"block_no"`
	BlockName string         `json:"block_name"`
}

// Tenant returns the profile row plus a secondary block lookup. A failed
// block lookup degrades to placeholder values instead of failing the whole
// payload.
func (s *Service) Tenant(ctx context.Context, tenantID uint) (*TenantPayload, error) {
	t, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	p := &TenantPayload{Tenant: t, BlockNo: "N/A", BlockName: "Inconnu"}
	b, err := s.blocks.BlockByRoomNo(ctx, t.RoomNo)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			logs.Logger.Warnf("dashboard: block lookup for room %d failed: %v", t.RoomNo, err)
		}
		return p, nil
	}
	p.BlockNo = b.BlockNo
	p.BlockName = b.BlockName
	return p, nil
}
