package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paydesk/payroll-backend-go/internal/domain/auth"
	"github.com/paydesk/payroll-backend-go/internal/domain/employee"
	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
)

type stubEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *stubEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.employees[e.ID] = e
	return e, nil
}

func (r *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *stubEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (r *stubEmployeeRepo) ListAll(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, nil
}

func (r *stubEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	if _, ok := r.employees[req.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *stubEmployeeRepo) Delete(ctx context.Context, id string) error {
	delete(r.employees, id)
	return nil
}

type stubPayrollRepo struct {
	records map[string]*payroll.PayrollRecord
	nextID  int
}

func (r *stubPayrollRepo) Create(ctx context.Context, record *payroll.PayrollRecord) error {
	for _, existing := range r.records {
		if existing.EmployeeID == record.EmployeeID && existing.Month == record.Month && existing.Year == record.Year {
			return payroll.ErrPayrollRecordAlreadyExists
		}
	}
	r.nextID++
	record.ID = string(rune('a' + r.nextID))
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *stubPayrollRepo) GetByID(ctx context.Context, id string) (*payroll.PayrollRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, payroll.ErrPayrollRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *stubPayrollRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*payroll.PayrollRecord, error) {
	for _, record := range r.records {
		if record.EmployeeID == employeeID && record.Month == month && record.Year == year {
			copied := *record
			return &copied, nil
		}
	}
	return nil, payroll.ErrPayrollRecordNotFound
}

func (r *stubPayrollRepo) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	var out []payroll.PayrollRecord
	for _, record := range r.records {
		if filter.Status != "" && string(record.Status) != filter.Status {
			continue
		}
		out = append(out, *record)
	}
	return out, int64(len(out)), nil
}

func (r *stubPayrollRepo) ListByPeriod(ctx context.Context, month, year int) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, record := range r.records {
		if record.Month == month && record.Year == year {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (r *stubPayrollRepo) Update(ctx context.Context, record *payroll.PayrollRecord) error {
	if _, ok := r.records[record.ID]; !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	record.UpdatedAt = time.Now()
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *stubPayrollRepo) Delete(ctx context.Context, id string) error {
	record, ok := r.records[id]
	if !ok || record.Status != payroll.PayrollStatusDraft {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *stubPayrollRepo) Analytics(ctx context.Context, year int) ([]payroll.MonthlyAnalytics, error) {
	buckets := make(map[int]*payroll.MonthlyAnalytics)
	for _, record := range r.records {
		if record.Year != year {
			continue
		}
		b, ok := buckets[record.Month]
		if !ok {
			b = &payroll.MonthlyAnalytics{Month: record.Month, Year: year}
			buckets[record.Month] = b
		}
		b.RecordCount++
		if record.Status == payroll.PayrollStatusPaid {
			b.PaidCount++
		}
		b.TotalPayout = b.TotalPayout.Add(record.NetPayableSalary)
	}
	var out []payroll.MonthlyAnalytics
	for _, b := range buckets {
		if b.RecordCount > 0 {
			b.AveragePayout = b.TotalPayout.Div(decimal.NewFromInt(b.RecordCount))
		}
		out = append(out, *b)
	}
	return out, nil
}

func newTestService(t *testing.T) (payroll.PayrollService, *stubEmployeeRepo, *stubPayrollRepo) {
	t.Helper()
	empRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:           "emp-1",
			Name:         "Jane Doe",
			Email:        "jane@example.com",
			EmployeeCode: "EMP001",
			Department:   "Engineering",
			Position:     "Developer",
			BaseSalary:   decimal.NewFromInt(30000),
			IsActive:     true,
		},
	}}
	payRepo := &stubPayrollRepo{records: map[string]*payroll.PayrollRecord{}}
	return NewPayrollService(nil, payRepo, empRepo), empRepo, payRepo
}

func adminPrincipal() auth.Principal {
	return auth.Principal{UserID: "user-1", Name: "Admin", Email: "admin@example.com", Role: auth.RoleAdmin}
}

func validCreateRequest() payroll.CreatePayrollRequest {
	return payroll.CreatePayrollRequest{
		EmployeeID:           "emp-1",
		Month:                3,
		Year:                 2025,
		PayrollDate:          "2025-03-31",
		TotalDays:            25,
		HalfDays:             2,
		LeaveDays:            3,
		EfficiencyAdjustment: decimal.NewFromInt(500),
	}
}

func TestPayrollService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("derives all salary fields server-side", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		tampered := decimal.NewFromInt(999999)
		req := validCreateRequest()
		req.NetPayableSalary = &tampered

		created, err := svc.Create(ctx, adminPrincipal(), req)
		require.NoError(t, err)

		assert.True(t, created.PerDaySalary.Equal(decimal.NewFromInt(1000)))
		assert.True(t, created.GrossSalary.Equal(decimal.NewFromInt(26000)))
		assert.True(t, created.NetPayableSalary.Equal(decimal.NewFromInt(21500)), "client-sent figure must be ignored, got %s", created.NetPayableSalary)
		assert.Equal(t, string(payroll.PayrollStatusDraft), created.Status)
	})

	t.Run("snapshots employee base salary", func(t *testing.T) {
		svc, _, repo := newTestService(t)

		created, err := svc.Create(ctx, adminPrincipal(), validCreateRequest())
		require.NoError(t, err)
		assert.True(t, created.BaseSalary.Equal(decimal.NewFromInt(30000)))

		stored, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, stored.BaseSalary.Equal(decimal.NewFromInt(30000)))
	})

	t.Run("base salary override wins", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		override := decimal.NewFromInt(60000)
		req := validCreateRequest()
		req.BaseSalary = &override

		created, err := svc.Create(ctx, adminPrincipal(), req)
		require.NoError(t, err)
		assert.True(t, created.BaseSalary.Equal(override))
		assert.True(t, created.PerDaySalary.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("duplicate period conflicts", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Create(ctx, adminPrincipal(), validCreateRequest())
		require.NoError(t, err)

		_, err = svc.Create(ctx, adminPrincipal(), validCreateRequest())
		assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		req := validCreateRequest()
		req.EmployeeID = "missing"
		_, err := svc.Create(ctx, adminPrincipal(), req)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("guest principal recorded without audit ref", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.Create(ctx, auth.GuestPrincipal(), validCreateRequest())
		require.NoError(t, err)
		assert.True(t, created.CreatedByGuest)
		assert.Nil(t, created.CreatedBy)
	})

	t.Run("invalid month rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		req := validCreateRequest()
		req.Month = 13
		_, err := svc.Create(ctx, adminPrincipal(), req)
		assert.Error(t, err)
	})
}

func TestPayrollService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("recalculates derived fields", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.Create(ctx, adminPrincipal(), validCreateRequest())
		require.NoError(t, err)

		totalDays := 30
		updated, err := svc.Update(ctx, created.ID, payroll.UpdatePayrollRequest{
			TotalDays: &totalDays,
		})
		require.NoError(t, err)

		// 1000*30 - 2*500 - 3*1000 + 500
		assert.True(t, updated.NetPayableSalary.Equal(decimal.NewFromInt(26500)), "got %s", updated.NetPayableSalary)
	})

	t.Run("paid records are immutable", func(t *testing.T) {
		svc, _, repo := newTestService(t)

		created, err := svc.Create(ctx, adminPrincipal(), validCreateRequest())
		require.NoError(t, err)

		stored, _ := repo.GetByID(ctx, created.ID)
		stored.Status = payroll.PayrollStatusPaid
		require.NoError(t, repo.Update(ctx, stored))

		totalDays := 30
		_, err = svc.Update(ctx, created.ID, payroll.UpdatePayrollRequest{TotalDays: &totalDays})
		assert.ErrorIs(t, err, payroll.ErrRecordImmutable)
	})
}

func TestPayrollService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("draft to approved stamps approver", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.Create(ctx, adminPrincipal(), validCreateRequest())
		require.NoError(t, err)

		approved, err := svc.UpdateStatus(ctx, adminPrincipal(), created.ID, payroll.UpdatePayrollStatusRequest{Status: "approved"})
		require.NoError(t, err)
		assert.Equal(t, "approved", approved.Status)
		require.NotNil(t, approved.ApprovedBy)
		assert.Equal(t, "user-1", *approved.ApprovedBy)
		assert.NotNil(t, approved.ApprovedAt)
	})

	t.Run("approved to paid stamps payment time", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.Create(ctx, adminPrincipal(), validCreateRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, adminPrincipal(), created.ID, payroll.UpdatePayrollStatusRequest{Status: "approved"})
		require.NoError(t, err)

		paid, err := svc.UpdateStatus(ctx, adminPrincipal(), created.ID, payroll.UpdatePayrollStatusRequest{Status: "paid"})
		require.NoError(t, err)
		assert.Equal(t, "paid", paid.Status)
		assert.NotNil(t, paid.PaidAt)
	})

	t.Run("draft cannot skip to paid", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.Create(ctx, adminPrincipal(), validCreateRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, adminPrincipal(), created.ID, payroll.UpdatePayrollStatusRequest{Status: "paid"})
		assert.ErrorIs(t, err, payroll.ErrInvalidStatusTransition)
	})

	t.Run("paid is terminal", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.Create(ctx, adminPrincipal(), validCreateRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, adminPrincipal(), created.ID, payroll.UpdatePayrollStatusRequest{Status: "approved"})
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, adminPrincipal(), created.ID, payroll.UpdatePayrollStatusRequest{Status: "paid"})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, adminPrincipal(), created.ID, payroll.UpdatePayrollStatusRequest{Status: "cancelled"})
		assert.ErrorIs(t, err, payroll.ErrInvalidStatusTransition)
	})
}

func TestPayrollService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("draft deletes", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.Create(ctx, adminPrincipal(), validCreateRequest())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID))

		_, err = svc.Get(ctx, created.ID)
		assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
	})

	t.Run("approved does not delete", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.Create(ctx, adminPrincipal(), validCreateRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, adminPrincipal(), created.ID, payroll.UpdatePayrollStatusRequest{Status: "approved"})
		require.NoError(t, err)

		err = svc.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, payroll.ErrOnlyDraftDeletable)
	})
}

func TestPayrollService_List(t *testing.T) {
	ctx := context.Background()
	svc, empRepo, _ := newTestService(t)

	empRepo.employees["emp-2"] = employee.Employee{
		ID: "emp-2", Name: "John Roe", Email: "john@example.com",
		EmployeeCode: "EMP002", BaseSalary: decimal.NewFromInt(60000), IsActive: true,
	}

	_, err := svc.Create(ctx, adminPrincipal(), validCreateRequest())
	require.NoError(t, err)

	req2 := validCreateRequest()
	req2.EmployeeID = "emp-2"
	req2.HalfDays = 0
	req2.LeaveDays = 0
	req2.EfficiencyAdjustment = decimal.Zero
	_, err = svc.Create(ctx, adminPrincipal(), req2)
	require.NoError(t, err)

	list, err := svc.List(ctx, payroll.PayrollFilter{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, list.Records, 2)
	// 21500 + 2000*25
	assert.True(t, list.Summary.TotalAmount.Equal(decimal.NewFromInt(71500)), "got %s", list.Summary.TotalAmount)
	assert.True(t, list.Summary.AverageAmount.Equal(decimal.NewFromInt(35750)))
	assert.Equal(t, 2, list.Summary.StatusCounts["draft"])
	assert.Equal(t, int64(2), list.Pagination.TotalRecords)
	assert.False(t, list.Pagination.HasNext)
}

func TestPayrollService_Analytics(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	for month := 1; month <= 3; month++ {
		req := validCreateRequest()
		req.Month = month
		_, err := svc.Create(ctx, adminPrincipal(), req)
		require.NoError(t, err)
	}

	summary, err := svc.Analytics(ctx, 2025)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.TotalRecords)
	assert.True(t, summary.TotalPayout.Equal(decimal.NewFromInt(64500)), "got %s", summary.TotalPayout)
	assert.True(t, summary.AveragePayout.Equal(decimal.NewFromInt(21500)))
	assert.Len(t, summary.Monthly, 3)
}
