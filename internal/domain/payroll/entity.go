package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft     PayrollStatus = "draft"
	PayrollStatusApproved  PayrollStatus = "approved"
	PayrollStatusPaid      PayrollStatus = "paid"
	PayrollStatusCancelled PayrollStatus = "cancelled"
)

var Statuses = []string{
	string(PayrollStatusDraft),
	string(PayrollStatusApproved),
	string(PayrollStatusPaid),
	string(PayrollStatusCancelled),
}

// statusTransitions is the forward-only lifecycle: draft -> approved ->
// paid, with cancellation allowed from draft and approved. Paid and
// cancelled are terminal.
var statusTransitions = map[PayrollStatus][]PayrollStatus{
	PayrollStatusDraft:    {PayrollStatusApproved, PayrollStatusCancelled},
	PayrollStatusApproved: {PayrollStatusPaid, PayrollStatusCancelled},
}

func (s PayrollStatus) CanTransitionTo(next PayrollStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether a record in this status can no longer change.
func (s PayrollStatus) Terminal() bool {
	return s == PayrollStatusPaid || s == PayrollStatusCancelled
}

// PayrollRecord is one employee's payroll for one (month, year) period.
// BaseSalary is snapshotted from the employee at creation time; the five
// derived fields are always exact calculator outputs of the record's own
// inputs and are rewritten together on every update.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	Month       int
	Year        int
	PayrollDate time.Time

	// Inputs
	TotalDays            int
	HalfDays             int
	LeaveDays            int
	OvertimeHours        decimal.Decimal
	BaseSalary           decimal.Decimal
	EfficiencyAdjustment decimal.Decimal
	OvertimePay          decimal.Decimal
	Bonus                decimal.Decimal

	// Derived
	PerDaySalary         decimal.Decimal
	GrossSalary          decimal.Decimal
	HalfDayDeduction     decimal.Decimal
	UnpaidLeaveDeduction decimal.Decimal
	NetPayableSalary     decimal.Decimal

	Status         PayrollStatus
	CreatedBy      *string
	CreatedByGuest bool
	ApprovedBy     *string
	ApprovedAt     *time.Time
	PaidAt         *time.Time
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeEmail *string
	EmployeeCode  *string
	Department    *string
	Position      *string
}

// NetDaysWorked is the gross attendance figure (totalDays + 0.5*halfDays)
// used by grossSalary and the export; it is not stored.
func (r PayrollRecord) NetDaysWorked() decimal.Decimal {
	return decimal.NewFromInt(int64(r.TotalDays)).
		Add(decimal.NewFromFloat(0.5).Mul(decimal.NewFromInt(int64(r.HalfDays))))
}

// CalculationInput feeds the salary calculator. All values are decimals so
// the engine stays total over its domain; absent JSON fields decode to zero.
type CalculationInput struct {
	BaseSalary           decimal.Decimal
	TotalDays            decimal.Decimal
	HalfDays             decimal.Decimal
	LeaveDays            decimal.Decimal
	EfficiencyAdjustment decimal.Decimal
	OvertimePay          decimal.Decimal
	Bonus                decimal.Decimal
}

// SalaryBreakdown is the full set of derived pay figures.
type SalaryBreakdown struct {
	PerDaySalary         decimal.Decimal
	NetDaysWorked        decimal.Decimal
	HalfDayDeduction     decimal.Decimal
	UnpaidLeaveDeduction decimal.Decimal
	GrossSalary          decimal.Decimal
	NetPayableSalary     decimal.Decimal
}
