package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPayrollStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PayrollStatus
		to      PayrollStatus
		allowed bool
	}{
		{PayrollStatusDraft, PayrollStatusApproved, true},
		{PayrollStatusDraft, PayrollStatusCancelled, true},
		{PayrollStatusDraft, PayrollStatusPaid, false},
		{PayrollStatusDraft, PayrollStatusDraft, false},
		{PayrollStatusApproved, PayrollStatusPaid, true},
		{PayrollStatusApproved, PayrollStatusCancelled, true},
		{PayrollStatusApproved, PayrollStatusDraft, false},
		{PayrollStatusPaid, PayrollStatusCancelled, false},
		{PayrollStatusPaid, PayrollStatusDraft, false},
		{PayrollStatusCancelled, PayrollStatusDraft, false},
		{PayrollStatusCancelled, PayrollStatusApproved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestPayrollStatusTerminal(t *testing.T) {
	assert.False(t, PayrollStatusDraft.Terminal())
	assert.False(t, PayrollStatusApproved.Terminal())
	assert.True(t, PayrollStatusPaid.Terminal())
	assert.True(t, PayrollStatusCancelled.Terminal())
}

func TestNetDaysWorked(t *testing.T) {
	r := PayrollRecord{TotalDays: 25, HalfDays: 2}
	assert.True(t, r.NetDaysWorked().Equal(decimal.NewFromInt(26)))

	r = PayrollRecord{TotalDays: 20, HalfDays: 3}
	assert.True(t, r.NetDaysWorked().Equal(decimal.NewFromFloat(21.5)))
}

func TestCreatePayrollRequestValidate(t *testing.T) {
	valid := CreatePayrollRequest{
		EmployeeID: "emp-1",
		Month:      3,
		Year:       2025,
		TotalDays:  25,
	}
	assert.NoError(t, valid.Validate())

	t.Run("month out of range", func(t *testing.T) {
		req := valid
		req.Month = 0
		assert.Error(t, req.Validate())
		req.Month = 13
		assert.Error(t, req.Validate())
	})

	t.Run("year out of range", func(t *testing.T) {
		req := valid
		req.Year = 2019
		assert.Error(t, req.Validate())
		req.Year = 2031
		assert.Error(t, req.Validate())
	})

	t.Run("total days out of range", func(t *testing.T) {
		req := valid
		req.TotalDays = 32
		assert.Error(t, req.Validate())
		req.TotalDays = -1
		assert.Error(t, req.Validate())
	})

	t.Run("negative bonus", func(t *testing.T) {
		req := valid
		req.Bonus = decimal.NewFromInt(-1)
		assert.Error(t, req.Validate())
	})

	t.Run("negative efficiency adjustment allowed", func(t *testing.T) {
		req := valid
		req.EfficiencyAdjustment = decimal.NewFromInt(-5000)
		assert.NoError(t, req.Validate())
	})

	t.Run("missing employee", func(t *testing.T) {
		req := valid
		req.EmployeeID = ""
		assert.Error(t, req.Validate())
	})

	t.Run("bad payroll date", func(t *testing.T) {
		req := valid
		req.PayrollDate = "31-03-2025"
		assert.Error(t, req.Validate())
	})
}

func TestUpdatePayrollStatusRequestValidate(t *testing.T) {
	for _, status := range Statuses {
		req := UpdatePayrollStatusRequest{Status: status}
		assert.NoError(t, req.Validate())
	}

	assert.Error(t, UpdatePayrollStatusRequest{}.Validate())
	assert.Error(t, UpdatePayrollStatusRequest{Status: "finalized"}.Validate())
}
