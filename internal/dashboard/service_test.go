package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syndic/internal/models"
	"syndic/internal/repo"
)

type fakeAgg struct{ fail error }

func (f *fakeAgg) TotalOwners(context.Context) (int64, error)        { return 4, f.fail }
func (f *fakeAgg) TotalTenants(context.Context) (int64, error)       { return 10, f.fail }
func (f *fakeAgg) TotalEmployees(context.Context) (int64, error)     { return 3, f.fail }
func (f *fakeAgg) TotalComplaints(context.Context) (int64, error)    { return 2, f.fail }
func (f *fakeAgg) AverageOwnerAge(context.Context) (float64, error)  { return 51.5, f.fail }
func (f *fakeAgg) AverageTenantAge(context.Context) (float64, error) { return 33.2, f.fail }
func (f *fakeAgg) AverageEmployeeAge(context.Context) (float64, error) {
	return 41.0, f.fail
}
func (f *fakeAgg) ActiveOwners(context.Context) (int64, error)    { return 2, f.fail }
func (f *fakeAgg) ActiveTenants(context.Context) (int64, error)   { return 7, f.fail }
func (f *fakeAgg) ActiveEmployees(context.Context) (int64, error) { return 3, f.fail }

type fakeOwners struct{ owner *models.Owner }

func (f *fakeOwners) GetByID(context.Context, uint) (*models.Owner, error) {
	if f.owner == nil {
		return nil, repo.ErrNotFound
	}
	return f.owner, nil
}

type fakeTenants struct{ tenant *models.Tenant }

func (f *fakeTenants) GetByID(context.Context, uint) (*models.Tenant, error) {
	if f.tenant == nil {
		return nil, repo.ErrNotFound
	}
	return f.tenant, nil
}

type fakeEmployees struct{ employee *models.Employee }

func (f *fakeEmployees) GetByID(context.Context, uint) (*models.Employee, error) {
	if f.employee == nil {
		return nil, repo.ErrNotFound
	}
	return f.employee, nil
}

type fakeBlocks struct{ block *models.Block }

func (f *fakeBlocks) BlockByRoomNo(context.Context, int) (*models.Block, error) {
	if f.block == nil {
		return nil, repo.ErrNotFound
	}
	return f.block, nil
}

func (f *fakeBlocks) BlockByNo(context.Context, int) (*models.Block, error) {
	if f.block == nil {
		return nil, repo.ErrNotFound
	}
	return f.block, nil
}

func TestAdminPayloadJoinsAllAggregates(t *testing.T) {
	svc := NewService(&fakeAgg{}, &fakeOwners{}, &fakeTenants{}, &fakeEmployees{}, &fakeBlocks{})

	p, err := svc.Admin(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), p.TotalOwner)
	assert.Equal(t, int64(10), p.TotalTenant)
	assert.Equal(t, int64(3), p.TotalEmployee)
	assert.Equal(t, 51.5, p.AvgOwnerAge)
	assert.Equal(t, 33.2, p.AvgTenantAge)
	assert.Equal(t, 41.0, p.AvgEmployeeAge)
	assert.Equal(t, int64(2), p.ActiveOwners)
	assert.Equal(t, int64(7), p.ActiveTenants)
	assert.Equal(t, int64(3), p.ActiveEmployees)
}

func TestAdminPayloadIsAllOrNothing(t *testing.T) {
	svc := NewService(&fakeAgg{fail: assert.AnError}, &fakeOwners{}, &fakeTenants{}, &fakeEmployees{}, &fakeBlocks{})

	_, err := svc.Admin(context.Background())

	assert.Error(t, err)
}

func TestOwnerPayload(t *testing.T) {
	owner := &models.Owner{OwnerID: 2, Name: "Durand"}
	svc := NewService(&fakeAgg{}, &fakeOwners{owner: owner}, &fakeTenants{}, &fakeEmployees{}, &fakeBlocks{})

	p, err := svc.Owner(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, int64(3), p.TotalEmployee)
	assert.Equal(t, int64(2), p.TotalComplaint)
	assert.Equal(t, owner, p.Owner)
}

func TestOwnerPayloadMissingProfile(t *testing.T) {
	svc := NewService(&fakeAgg{}, &fakeOwners{}, &fakeTenants{}, &fakeEmployees{}, &fakeBlocks{})

	_, err := svc.Owner(context.Background(), 2)

	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestEmployeePayloadCarriesSalary(t *testing.T) {
	salary := 2200.0
	svc := NewService(&fakeAgg{}, &fakeOwners{}, &fakeTenants{},
		&fakeEmployees{employee: &models.Employee{EmpID: 4, Salary: &salary}}, &fakeBlocks{})

	p, err := svc.Employee(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, int64(2), p.TotalComplaint)
	require.NotNil(t, p.Salary)
	assert.Equal(t, salary, *p.Salary)
	assert.Equal(t, "N/A", p.BlockNo)
	assert.Equal(t, "Inconnu", p.BlockName)
}

func TestEmployeePayloadResolvesBlockName(t *testing.T) {
	salary := 2200.0
	blockNo := 2
	block := &models.Block{BlockNo: 2, BlockName: "Bâtiment B"}
	svc := NewService(&fakeAgg{}, &fakeOwners{}, &fakeTenants{},
		&fakeEmployees{employee: &models.Employee{EmpID: 4, Salary: &salary, BlockNo: &blockNo}},
		&fakeBlocks{block: block})

	p, err := svc.Employee(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, 2, p.BlockNo)
	assert.Equal(t, "Bâtiment B", p.BlockName)
}

func TestEmployeePayloadDegradesOnMissingBlock(t *testing.T) {
	blockNo := 9
	svc := NewService(&fakeAgg{}, &fakeOwners{}, &fakeTenants{},
		&fakeEmployees{employee: &models.Employee{EmpID: 4, BlockNo: &blockNo}}, &fakeBlocks{})

	p, err := svc.Employee(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, "N/A", p.BlockNo)
	assert.Equal(t, "Inconnu", p.BlockName)
}

func TestTenantPayloadDegradesOnMissingBlock(t *testing.T) {
	tenant := &models.Tenant{TenantID: 9, RoomNo: 12}
	svc := NewService(&fakeAgg{}, &fakeOwners{}, &fakeTenants{tenant: tenant}, &fakeEmployees{}, &fakeBlocks{})

	p, err := svc.Tenant(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, tenant, p.Tenant)
	assert.Equal(t, "N/A", p.BlockNo)
	assert.Equal(t, "Inconnu", p.BlockName)
}

func TestTenantPayloadWithBlock(t *testing.T) {
	tenant := &models.Tenant{TenantID: 9, RoomNo: 12}
	block := &models.Block{BlockNo: 2, BlockName: "Bâtiment B"}
	svc := NewService(&fakeAgg{}, &fakeOwners{}, &fakeTenants{tenant: tenant}, &fakeEmployees{}, &fakeBlocks{block: block})

	p, err := svc.Tenant(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, 2, p.BlockNo)
	assert.Equal(t, "Bâtiment B", p.BlockName)
}
