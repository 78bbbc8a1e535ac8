package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paydesk/payroll-backend-go/internal/pkg/validator"
)

// CreatePayrollRequest carries the calculation inputs for a new record.
// BaseSalary overrides the employee's registered salary when present.
// NetPayableSalary is accepted for wire compatibility but ignored; the
// server recomputes every derived figure from the inputs.
type CreatePayrollRequest struct {
	EmployeeID           string           `json:"employee_id"`
	Month                int              `json:"month"`
	Year                 int              `json:"year"`
	PayrollDate          string           `json:"payroll_date"`
	TotalDays            int              `json:"total_days"`
	HalfDays             int              `json:"half_days"`
	LeaveDays            int              `json:"leave_days"`
	OvertimeHours        decimal.Decimal  `json:"overtime_hours"`
	BaseSalary           *decimal.Decimal `json:"base_salary"`
	EfficiencyAdjustment decimal.Decimal  `json:"efficiency_adjustment"`
	OvertimePay          decimal.Decimal  `json:"overtime_pay"`
	Bonus                decimal.Decimal  `json:"bonus"`
	NetPayableSalary     *decimal.Decimal `json:"net_payable_salary"`
	Notes                *string          `json:"notes"`
}

func (r CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 2020 and 2030"})
	}
	if r.PayrollDate != "" {
		if _, ok := validator.IsValidDate(r.PayrollDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "payroll_date", Message: "payroll_date must be in YYYY-MM-DD format"})
		}
	}
	if r.TotalDays < 0 || r.TotalDays > 31 {
		errs = append(errs, validator.ValidationError{Field: "total_days", Message: "total_days must be between 0 and 31"})
	}
	if r.HalfDays < 0 || r.HalfDays > 31 {
		errs = append(errs, validator.ValidationError{Field: "half_days", Message: "half_days must be between 0 and 31"})
	}
	if r.LeaveDays < 0 || r.LeaveDays > 31 {
		errs = append(errs, validator.ValidationError{Field: "leave_days", Message: "leave_days must be between 0 and 31"})
	}
	if r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "overtime_hours cannot be negative"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary cannot be negative"})
	}
	if r.OvertimePay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_pay", Message: "overtime_pay cannot be negative"})
	}
	if r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "bonus cannot be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePayrollRequest updates calculation inputs on a mutable record.
// Only provided fields change; any change triggers a full recalculation.
type UpdatePayrollRequest struct {
	Month                *int             `json:"month"`
	Year                 *int             `json:"year"`
	PayrollDate          *string          `json:"payroll_date"`
	TotalDays            *int             `json:"total_days"`
	HalfDays             *int             `json:"half_days"`
	LeaveDays            *int             `json:"leave_days"`
	OvertimeHours        *decimal.Decimal `json:"overtime_hours"`
	BaseSalary           *decimal.Decimal `json:"base_salary"`
	EfficiencyAdjustment *decimal.Decimal `json:"efficiency_adjustment"`
	OvertimePay          *decimal.Decimal `json:"overtime_pay"`
	Bonus                *decimal.Decimal `json:"bonus"`
	NetPayableSalary     *decimal.Decimal `json:"net_payable_salary"`
	Notes                *string          `json:"notes"`
}

func (r UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != nil && !validator.IsValidMonth(*r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if r.Year != nil && !validator.IsValidYear(*r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 2020 and 2030"})
	}
	if r.PayrollDate != nil {
		if _, ok := validator.IsValidDate(*r.PayrollDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "payroll_date", Message: "payroll_date must be in YYYY-MM-DD format"})
		}
	}
	if r.TotalDays != nil && (*r.TotalDays < 0 || *r.TotalDays > 31) {
		errs = append(errs, validator.ValidationError{Field: "total_days", Message: "total_days must be between 0 and 31"})
	}
	if r.HalfDays != nil && (*r.HalfDays < 0 || *r.HalfDays > 31) {
		errs = append(errs, validator.ValidationError{Field: "half_days", Message: "half_days must be between 0 and 31"})
	}
	if r.LeaveDays != nil && (*r.LeaveDays < 0 || *r.LeaveDays > 31) {
		errs = append(errs, validator.ValidationError{Field: "leave_days", Message: "leave_days must be between 0 and 31"})
	}
	if r.OvertimeHours != nil && r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "overtime_hours cannot be negative"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary cannot be negative"})
	}
	if r.OvertimePay != nil && r.OvertimePay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_pay", Message: "overtime_pay cannot be negative"})
	}
	if r.Bonus != nil && r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "bonus cannot be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePayrollStatusRequest moves a record along the status lifecycle.
type UpdatePayrollStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdatePayrollStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status is required"})
	} else if !validator.IsInSlice(r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: draft, approved, paid, cancelled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CalculateSalaryRequest is the stateless preview endpoint's payload.
type CalculateSalaryRequest struct {
	BaseSalary           decimal.Decimal `json:"base_salary"`
	TotalDays            decimal.Decimal `json:"total_days"`
	HalfDays             decimal.Decimal `json:"half_days"`
	LeaveDays            decimal.Decimal `json:"leave_days"`
	EfficiencyAdjustment decimal.Decimal `json:"efficiency_adjustment"`
	OvertimePay          decimal.Decimal `json:"overtime_pay"`
	Bonus                decimal.Decimal `json:"bonus"`
}

func (r CalculateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary cannot be negative"})
	}
	if r.TotalDays.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "total_days", Message: "total_days cannot be negative"})
	}
	if r.HalfDays.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "half_days", Message: "half_days cannot be negative"})
	}
	if r.LeaveDays.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "leave_days", Message: "leave_days cannot be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CalculateSalaryResponse mirrors SalaryBreakdown on the wire.
type CalculateSalaryResponse struct {
	PerDaySalary         decimal.Decimal `json:"per_day_salary"`
	NetDaysWorked        decimal.Decimal `json:"net_days_worked"`
	HalfDayDeduction     decimal.Decimal `json:"half_day_deduction"`
	UnpaidLeaveDeduction decimal.Decimal `json:"unpaid_leave_deduction"`
	GrossSalary          decimal.Decimal `json:"gross_salary"`
	NetPayableSalary     decimal.Decimal `json:"net_payable_salary"`
}

// PayrollRecordResponse is the API shape of a payroll record, including
// the employee display fields joined in by the repository.
type PayrollRecordResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         *string         `json:"employee_name,omitempty"`
	EmployeeEmail        *string         `json:"employee_email,omitempty"`
	EmployeeCode         *string         `json:"employee_code,omitempty"`
	Department           *string         `json:"department,omitempty"`
	Position             *string         `json:"position,omitempty"`
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	PayrollDate          string          `json:"payroll_date"`
	TotalDays            int             `json:"total_days"`
	HalfDays             int             `json:"half_days"`
	LeaveDays            int             `json:"leave_days"`
	OvertimeHours        decimal.Decimal `json:"overtime_hours"`
	BaseSalary           decimal.Decimal `json:"base_salary"`
	PerDaySalary         decimal.Decimal `json:"per_day_salary"`
	GrossSalary          decimal.Decimal `json:"gross_salary"`
	HalfDayDeduction     decimal.Decimal `json:"half_day_deduction"`
	UnpaidLeaveDeduction decimal.Decimal `json:"unpaid_leave_deduction"`
	EfficiencyAdjustment decimal.Decimal `json:"efficiency_adjustment"`
	OvertimePay          decimal.Decimal `json:"overtime_pay"`
	Bonus                decimal.Decimal `json:"bonus"`
	NetPayableSalary     decimal.Decimal `json:"net_payable_salary"`
	Status               string          `json:"status"`
	CreatedBy            *string         `json:"created_by,omitempty"`
	CreatedByGuest       bool            `json:"created_by_guest"`
	ApprovedBy           *string         `json:"approved_by,omitempty"`
	ApprovedAt           *time.Time      `json:"approved_at,omitempty"`
	PaidAt               *time.Time      `json:"paid_at,omitempty"`
	Notes                *string         `json:"notes,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// PayrollFilter narrows list queries. Employee matches the employee's
// name or code, Status filters on the lifecycle state.
type PayrollFilter struct {
	Month    int
	Year     int
	Employee string
	Status   string
	Page     int
	Limit    int
}

// PayrollSummary aggregates the records on the current page.
type PayrollSummary struct {
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AverageAmount decimal.Decimal `json:"average_amount"`
	StatusCounts  map[string]int  `json:"status_counts"`
}

type PaginationMeta struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalRecords int64 `json:"total_records"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

type ListPayrollRecordsResponse struct {
	Records    []PayrollRecordResponse `json:"records"`
	Summary    PayrollSummary          `json:"summary"`
	Pagination PaginationMeta          `json:"pagination"`
}

// MonthlyAnalytics is one (month, year) bucket of the analytics rollup.
type MonthlyAnalytics struct {
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	RecordCount   int64           `json:"record_count"`
	PaidCount     int64           `json:"paid_count"`
	TotalPayout   decimal.Decimal `json:"total_payout"`
	AveragePayout decimal.Decimal `json:"average_payout"`
}

type AnalyticsSummaryResponse struct {
	Year          int                `json:"year"`
	TotalRecords  int64              `json:"total_records"`
	TotalPayout   decimal.Decimal    `json:"total_payout"`
	AveragePayout decimal.Decimal    `json:"average_payout"`
	Monthly       []MonthlyAnalytics `json:"monthly"`
}
