package payroll

import (
	"context"

	"github.com/paydesk/payroll-backend-go/internal/domain/auth"
)

type PayrollService interface {
	Calculate(req CalculateSalaryRequest) CalculateSalaryResponse
	Create(ctx context.Context, principal auth.Principal, req CreatePayrollRequest) (*PayrollRecordResponse, error)
	Get(ctx context.Context, id string) (*PayrollRecordResponse, error)
	List(ctx context.Context, filter PayrollFilter) (*ListPayrollRecordsResponse, error)
	Update(ctx context.Context, id string, req UpdatePayrollRequest) (*PayrollRecordResponse, error)
	UpdateStatus(ctx context.Context, principal auth.Principal, id string, req UpdatePayrollStatusRequest) (*PayrollRecordResponse, error)
	Delete(ctx context.Context, id string) error
	ExportMonth(ctx context.Context, month, year int) ([]PayrollRecord, error)
	Analytics(ctx context.Context, year int) (*AnalyticsSummaryResponse, error)
}
