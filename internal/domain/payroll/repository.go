package payroll

import "context"

type PayrollRepository interface {
	Create(ctx context.Context, record *PayrollRecord) error
	GetByID(ctx context.Context, id string) (*PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	ListByPeriod(ctx context.Context, month, year int) ([]PayrollRecord, error)
	Update(ctx context.Context, record *PayrollRecord) error
	Delete(ctx context.Context, id string) error
	Analytics(ctx context.Context, year int) ([]MonthlyAnalytics, error)
}
