package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paydesk/payroll-backend-go/internal/domain/auth"
	"github.com/paydesk/payroll-backend-go/internal/domain/employee"
	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
	"github.com/paydesk/payroll-backend-go/internal/pkg/database"
)

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	calc         *SalaryCalculator
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		calc:         NewSalaryCalculator(),
	}
}

func (s *PayrollServiceImpl) Calculate(req payroll.CalculateSalaryRequest) payroll.CalculateSalaryResponse {
	breakdown := s.calc.Calculate(payroll.CalculationInput{
		BaseSalary:           req.BaseSalary,
		TotalDays:            req.TotalDays,
		HalfDays:             req.HalfDays,
		LeaveDays:            req.LeaveDays,
		EfficiencyAdjustment: req.EfficiencyAdjustment,
		OvertimePay:          req.OvertimePay,
		Bonus:                req.Bonus,
	})

	return payroll.CalculateSalaryResponse{
		PerDaySalary:         breakdown.PerDaySalary,
		NetDaysWorked:        breakdown.NetDaysWorked,
		HalfDayDeduction:     breakdown.HalfDayDeduction,
		UnpaidLeaveDeduction: breakdown.UnpaidLeaveDeduction,
		GrossSalary:          breakdown.GrossSalary,
		NetPayableSalary:     breakdown.NetPayableSalary,
	}
}

func (s *PayrollServiceImpl) Create(ctx context.Context, principal auth.Principal, req payroll.CreatePayrollRequest) (*payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	// Friendly pre-check; the unique index on (employee_id, month, year)
	// is the actual serialization point for concurrent creates.
	if _, err := s.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, req.Month, req.Year); err == nil {
		return nil, payroll.ErrPayrollRecordAlreadyExists
	} else if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return nil, err
	}

	baseSalary := emp.BaseSalary
	if req.BaseSalary != nil {
		baseSalary = *req.BaseSalary
	}

	payrollDate := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	if req.PayrollDate != "" {
		payrollDate, _ = time.Parse("2006-01-02", req.PayrollDate)
	}

	record := &payroll.PayrollRecord{
		EmployeeID:           emp.ID,
		Month:                req.Month,
		Year:                 req.Year,
		PayrollDate:          payrollDate,
		TotalDays:            req.TotalDays,
		HalfDays:             req.HalfDays,
		LeaveDays:            req.LeaveDays,
		OvertimeHours:        req.OvertimeHours,
		BaseSalary:           baseSalary,
		EfficiencyAdjustment: req.EfficiencyAdjustment,
		OvertimePay:          req.OvertimePay,
		Bonus:                req.Bonus,
		Status:               payroll.PayrollStatusDraft,
		CreatedBy:            principal.AuditRef(),
		CreatedByGuest:       principal.Guest,
		Notes:                req.Notes,
	}
	s.applyBreakdown(record)

	if err := s.payrollRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	record.EmployeeName = &emp.Name
	record.EmployeeEmail = &emp.Email
	record.EmployeeCode = &emp.EmployeeCode
	record.Department = &emp.Department
	record.Position = &emp.Position

	resp := mapToRecordResponse(*record)
	return &resp, nil
}

func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (*payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := mapToRecordResponse(*record)
	return &resp, nil
}

func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (*payroll.ListPayrollRecordsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}

	records, totalCount, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalAmount := decimal.Zero
	statusCounts := make(map[string]int)
	for _, r := range records {
		totalAmount = totalAmount.Add(r.NetPayableSalary)
		statusCounts[string(r.Status)]++
	}
	averageAmount := decimal.Zero
	if len(records) > 0 {
		averageAmount = totalAmount.Div(decimal.NewFromInt(int64(len(records))))
	}

	totalPages := int((totalCount + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &payroll.ListPayrollRecordsResponse{
		Records: mapToRecordResponses(records),
		Summary: payroll.PayrollSummary{
			TotalAmount:   totalAmount,
			AverageAmount: averageAmount,
			StatusCounts:  statusCounts,
		},
		Pagination: payroll.PaginationMeta{
			CurrentPage:  filter.Page,
			TotalPages:   totalPages,
			TotalRecords: totalCount,
			HasNext:      filter.Page < totalPages,
			HasPrev:      filter.Page > 1,
		},
	}, nil
}

func (s *PayrollServiceImpl) Update(ctx context.Context, id string, req payroll.UpdatePayrollRequest) (*payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status.Terminal() {
		return nil, payroll.ErrRecordImmutable
	}

	if req.Month != nil {
		record.Month = *req.Month
	}
	if req.Year != nil {
		record.Year = *req.Year
	}
	if req.PayrollDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.PayrollDate)
		if err == nil {
			record.PayrollDate = parsed
		}
	}
	if req.TotalDays != nil {
		record.TotalDays = *req.TotalDays
	}
	if req.HalfDays != nil {
		record.HalfDays = *req.HalfDays
	}
	if req.LeaveDays != nil {
		record.LeaveDays = *req.LeaveDays
	}
	if req.OvertimeHours != nil {
		record.OvertimeHours = *req.OvertimeHours
	}
	if req.BaseSalary != nil {
		record.BaseSalary = *req.BaseSalary
	}
	if req.EfficiencyAdjustment != nil {
		record.EfficiencyAdjustment = *req.EfficiencyAdjustment
	}
	if req.OvertimePay != nil {
		record.OvertimePay = *req.OvertimePay
	}
	if req.Bonus != nil {
		record.Bonus = *req.Bonus
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	// Derived fields are always rewritten from the record's own inputs,
	// regardless of any client-submitted net_payable_salary.
	s.applyBreakdown(record)

	if err := s.payrollRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *PayrollServiceImpl) UpdateStatus(ctx context.Context, principal auth.Principal, id string, req payroll.UpdatePayrollStatusRequest) (*payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := payroll.PayrollStatus(req.Status)
	if !record.Status.CanTransitionTo(next) {
		return nil, payroll.ErrInvalidStatusTransition
	}

	now := time.Now()
	switch next {
	case payroll.PayrollStatusApproved:
		record.ApprovedAt = &now
		record.ApprovedBy = principal.AuditRef()
	case payroll.PayrollStatusPaid:
		record.PaidAt = &now
	}
	record.Status = next

	if err := s.payrollRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *PayrollServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Status != payroll.PayrollStatusDraft {
		return payroll.ErrOnlyDraftDeletable
	}

	return s.payrollRepo.Delete(ctx, id)
}

func (s *PayrollServiceImpl) ExportMonth(ctx context.Context, month, year int) ([]payroll.PayrollRecord, error) {
	return s.payrollRepo.ListByPeriod(ctx, month, year)
}

func (s *PayrollServiceImpl) Analytics(ctx context.Context, year int) (*payroll.AnalyticsSummaryResponse, error) {
	monthly, err := s.payrollRepo.Analytics(ctx, year)
	if err != nil {
		return nil, err
	}

	var totalRecords int64
	totalPayout := decimal.Zero
	for _, m := range monthly {
		totalRecords += m.RecordCount
		totalPayout = totalPayout.Add(m.TotalPayout)
	}
	averagePayout := decimal.Zero
	if totalRecords > 0 {
		averagePayout = totalPayout.Div(decimal.NewFromInt(totalRecords))
	}

	return &payroll.AnalyticsSummaryResponse{
		Year:          year,
		TotalRecords:  totalRecords,
		TotalPayout:   totalPayout,
		AveragePayout: averagePayout,
		Monthly:       monthly,
	}, nil
}

// applyBreakdown recomputes and stores every derived field.
func (s *PayrollServiceImpl) applyBreakdown(record *payroll.PayrollRecord) {
	breakdown := s.calc.Calculate(payroll.CalculationInput{
		BaseSalary:           record.BaseSalary,
		TotalDays:            decimal.NewFromInt(int64(record.TotalDays)),
		HalfDays:             decimal.NewFromInt(int64(record.HalfDays)),
		LeaveDays:            decimal.NewFromInt(int64(record.LeaveDays)),
		EfficiencyAdjustment: record.EfficiencyAdjustment,
		OvertimePay:          record.OvertimePay,
		Bonus:                record.Bonus,
	})

	record.PerDaySalary = breakdown.PerDaySalary
	record.GrossSalary = breakdown.GrossSalary
	record.HalfDayDeduction = breakdown.HalfDayDeduction
	record.UnpaidLeaveDeduction = breakdown.UnpaidLeaveDeduction
	record.NetPayableSalary = breakdown.NetPayableSalary
}

func mapToRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	return payroll.PayrollRecordResponse{
		ID:                   r.ID,
		EmployeeID:           r.EmployeeID,
		EmployeeName:         r.EmployeeName,
		EmployeeEmail:        r.EmployeeEmail,
		EmployeeCode:         r.EmployeeCode,
		Department:           r.Department,
		Position:             r.Position,
		Month:                r.Month,
		Year:                 r.Year,
		PayrollDate:          r.PayrollDate.Format("2006-01-02"),
		TotalDays:            r.TotalDays,
		HalfDays:             r.HalfDays,
		LeaveDays:            r.LeaveDays,
		OvertimeHours:        r.OvertimeHours,
		BaseSalary:           r.BaseSalary,
		PerDaySalary:         r.PerDaySalary,
		GrossSalary:          r.GrossSalary,
		HalfDayDeduction:     r.HalfDayDeduction,
		UnpaidLeaveDeduction: r.UnpaidLeaveDeduction,
		EfficiencyAdjustment: r.EfficiencyAdjustment,
		OvertimePay:          r.OvertimePay,
		Bonus:                r.Bonus,
		NetPayableSalary:     r.NetPayableSalary,
		Status:               string(r.Status),
		CreatedBy:            r.CreatedBy,
		CreatedByGuest:       r.CreatedByGuest,
		ApprovedBy:           r.ApprovedBy,
		ApprovedAt:           r.ApprovedAt,
		PaidAt:               r.PaidAt,
		Notes:                r.Notes,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func mapToRecordResponses(records []payroll.PayrollRecord) []payroll.PayrollRecordResponse {
	result := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}
