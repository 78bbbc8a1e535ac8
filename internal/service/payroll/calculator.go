package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
)

var (
	daysPerMonth = decimal.NewFromInt(30)
	half         = decimal.NewFromFloat(0.5)
)

// SalaryCalculator derives every pay figure from a record's inputs. It is
// pure: the same input always yields the same breakdown, and it never
// rounds intermediates, so stored figures stay exact.
type SalaryCalculator struct{}

func NewSalaryCalculator() *SalaryCalculator {
	return &SalaryCalculator{}
}

// Calculate computes the full breakdown. Per-day salary is the monthly
// base over a fixed 30-day month. Gross pays net days worked (half days
// count 0.5); net payable pays total days, then deducts half the per-day
// rate per half day and the full rate per unpaid leave day, and finally
// adds the adjustment, overtime and bonus figures.
func (c *SalaryCalculator) Calculate(in payroll.CalculationInput) payroll.SalaryBreakdown {
	perDay := in.BaseSalary.Div(daysPerMonth)
	netDays := in.TotalDays.Add(half.Mul(in.HalfDays))
	halfDayDeduction := perDay.Mul(half).Mul(in.HalfDays)
	leaveDeduction := perDay.Mul(in.LeaveDays)

	gross := perDay.Mul(netDays)
	net := perDay.Mul(in.TotalDays).
		Sub(halfDayDeduction).
		Sub(leaveDeduction).
		Add(in.EfficiencyAdjustment).
		Add(in.OvertimePay).
		Add(in.Bonus)

	return payroll.SalaryBreakdown{
		PerDaySalary:         perDay,
		NetDaysWorked:        netDays,
		HalfDayDeduction:     halfDayDeduction,
		UnpaidLeaveDeduction: leaveDeduction,
		GrossSalary:          gross,
		NetPayableSalary:     net,
	}
}
