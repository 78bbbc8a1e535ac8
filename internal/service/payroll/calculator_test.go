package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
)

func TestSalaryCalculator_Calculate(t *testing.T) {
	calc := NewSalaryCalculator()

	t.Run("reference breakdown", func(t *testing.T) {
		got := calc.Calculate(payroll.CalculationInput{
			BaseSalary:           decimal.NewFromInt(30000),
			TotalDays:            decimal.NewFromInt(25),
			HalfDays:             decimal.NewFromInt(2),
			LeaveDays:            decimal.NewFromInt(3),
			EfficiencyAdjustment: decimal.NewFromInt(500),
		})

		assert.True(t, got.PerDaySalary.Equal(decimal.NewFromInt(1000)), "per day salary: %s", got.PerDaySalary)
		assert.True(t, got.NetDaysWorked.Equal(decimal.NewFromInt(26)), "net days worked: %s", got.NetDaysWorked)
		assert.True(t, got.HalfDayDeduction.Equal(decimal.NewFromInt(1000)), "half day deduction: %s", got.HalfDayDeduction)
		assert.True(t, got.UnpaidLeaveDeduction.Equal(decimal.NewFromInt(3000)), "unpaid leave deduction: %s", got.UnpaidLeaveDeduction)
		assert.True(t, got.GrossSalary.Equal(decimal.NewFromInt(26000)), "gross salary: %s", got.GrossSalary)
		assert.True(t, got.NetPayableSalary.Equal(decimal.NewFromInt(21500)), "net payable salary: %s", got.NetPayableSalary)
	})

	t.Run("overtime and bonus add unconditionally", func(t *testing.T) {
		got := calc.Calculate(payroll.CalculationInput{
			BaseSalary:  decimal.NewFromInt(30000),
			TotalDays:   decimal.NewFromInt(30),
			OvertimePay: decimal.NewFromInt(1200),
			Bonus:       decimal.NewFromInt(800),
		})

		assert.True(t, got.NetPayableSalary.Equal(decimal.NewFromInt(32000)), "net payable salary: %s", got.NetPayableSalary)
	})

	t.Run("negative efficiency adjustment is a penalty", func(t *testing.T) {
		got := calc.Calculate(payroll.CalculationInput{
			BaseSalary:           decimal.NewFromInt(30000),
			TotalDays:            decimal.NewFromInt(30),
			EfficiencyAdjustment: decimal.NewFromInt(-2500),
		})

		assert.True(t, got.NetPayableSalary.Equal(decimal.NewFromInt(27500)), "net payable salary: %s", got.NetPayableSalary)
	})

	t.Run("zero inputs yield zero breakdown", func(t *testing.T) {
		got := calc.Calculate(payroll.CalculationInput{})

		assert.True(t, got.PerDaySalary.IsZero())
		assert.True(t, got.GrossSalary.IsZero())
		assert.True(t, got.NetPayableSalary.IsZero())
	})

	t.Run("gross uses net days while net payable uses total days", func(t *testing.T) {
		// With half days present the two quantities diverge and must not
		// be unified.
		got := calc.Calculate(payroll.CalculationInput{
			BaseSalary: decimal.NewFromInt(30000),
			TotalDays:  decimal.NewFromInt(20),
			HalfDays:   decimal.NewFromInt(4),
		})

		assert.True(t, got.GrossSalary.Equal(decimal.NewFromInt(22000)), "gross salary: %s", got.GrossSalary)
		assert.True(t, got.NetPayableSalary.Equal(decimal.NewFromInt(18000)), "net payable salary: %s", got.NetPayableSalary)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		in := payroll.CalculationInput{
			BaseSalary:           decimal.NewFromInt(47500),
			TotalDays:            decimal.NewFromInt(22),
			HalfDays:             decimal.NewFromInt(3),
			LeaveDays:            decimal.NewFromInt(1),
			EfficiencyAdjustment: decimal.NewFromInt(-750),
			OvertimePay:          decimal.NewFromInt(1100),
			Bonus:                decimal.NewFromInt(500),
		}

		first := calc.Calculate(in)
		second := calc.Calculate(in)

		assert.True(t, first.PerDaySalary.Equal(second.PerDaySalary))
		assert.True(t, first.GrossSalary.Equal(second.GrossSalary))
		assert.True(t, first.NetPayableSalary.Equal(second.NetPayableSalary))
	})
}
