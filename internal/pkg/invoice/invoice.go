// Package invoice renders a printable payslip document for a payroll
// record. The output is a deterministic HTML page; everything shown is
// taken from the stored record, nothing is recomputed here.
package invoice

import (
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
)

type payslipData struct {
	InvoiceNumber string
	GeneratedAt   string
	EmployeeName  string
	EmployeeCode  string
	Department    string
	Position      string
	Period        string
	PayrollDate   string
	Status        string

	BaseSalary           string
	PerDaySalary         string
	TotalDays            int
	HalfDays             int
	LeaveDays            int
	NetDaysWorked        string
	GrossSalary          string
	HalfDayDeduction     string
	UnpaidLeaveDeduction string
	EfficiencyAdjustment string
	OvertimePay          string
	Bonus                string
	NetPayableSalary     string
}

var payslipTemplate = template.Must(template.New("payslip").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Payslip {{.InvoiceNumber}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
h1 { font-size: 20px; border-bottom: 2px solid #222; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #ddd; }
.amount { text-align: right; }
.total td { font-weight: bold; border-top: 2px solid #222; }
.meta { font-size: 12px; color: #666; }
</style>
</head>
<body>
<h1>Payslip {{.InvoiceNumber}}</h1>
<p class="meta">Generated {{.GeneratedAt}} &middot; Status: {{.Status}}</p>
<table>
<tr><th>Employee</th><td>{{.EmployeeName}} ({{.EmployeeCode}})</td></tr>
<tr><th>Department</th><td>{{.Department}} / {{.Position}}</td></tr>
<tr><th>Pay period</th><td>{{.Period}}</td></tr>
<tr><th>Payroll date</th><td>{{.PayrollDate}}</td></tr>
</table>
<table>
<tr><th>Item</th><th class="amount">Amount</th></tr>
<tr><td>Base salary</td><td class="amount">{{.BaseSalary}}</td></tr>
<tr><td>Per-day salary</td><td class="amount">{{.PerDaySalary}}</td></tr>
<tr><td>Days worked</td><td class="amount">{{.TotalDays}}</td></tr>
<tr><td>Half days</td><td class="amount">{{.HalfDays}}</td></tr>
<tr><td>Leave days</td><td class="amount">{{.LeaveDays}}</td></tr>
<tr><td>Net days worked</td><td class="amount">{{.NetDaysWorked}}</td></tr>
<tr><td>Gross salary</td><td class="amount">{{.GrossSalary}}</td></tr>
<tr><td>Half-day deduction</td><td class="amount">-{{.HalfDayDeduction}}</td></tr>
<tr><td>Unpaid leave deduction</td><td class="amount">-{{.UnpaidLeaveDeduction}}</td></tr>
<tr><td>Efficiency adjustment</td><td class="amount">{{.EfficiencyAdjustment}}</td></tr>
<tr><td>Overtime pay</td><td class="amount">{{.OvertimePay}}</td></tr>
<tr><td>Bonus</td><td class="amount">{{.Bonus}}</td></tr>
<tr class="total"><td>Net payable</td><td class="amount">{{.NetPayableSalary}}</td></tr>
</table>
</body>
</html>
`))

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// Render writes the payslip HTML for the record to w.
func Render(w io.Writer, record payroll.PayrollRecordResponse) error {
	netDays := decimal.NewFromInt(int64(record.TotalDays)).
		Add(decimal.NewFromFloat(0.5).Mul(decimal.NewFromInt(int64(record.HalfDays))))

	data := payslipData{
		InvoiceNumber: "PAY-" + record.ID,
		GeneratedAt:   time.Now().Format("2006-01-02"),
		EmployeeName:  orDash(record.EmployeeName),
		EmployeeCode:  orDash(record.EmployeeCode),
		Department:    orDash(record.Department),
		Position:      orDash(record.Position),
		Period:        time.Month(record.Month).String() + " " + strconv.Itoa(record.Year),
		PayrollDate:   record.PayrollDate,
		Status:        record.Status,

		BaseSalary:           record.BaseSalary.StringFixed(2),
		PerDaySalary:         record.PerDaySalary.StringFixed(2),
		TotalDays:            record.TotalDays,
		HalfDays:             record.HalfDays,
		LeaveDays:            record.LeaveDays,
		NetDaysWorked:        netDays.String(),
		GrossSalary:          record.GrossSalary.StringFixed(2),
		HalfDayDeduction:     record.HalfDayDeduction.StringFixed(2),
		UnpaidLeaveDeduction: record.UnpaidLeaveDeduction.StringFixed(2),
		EfficiencyAdjustment: record.EfficiencyAdjustment.StringFixed(2),
		OvertimePay:          record.OvertimePay.StringFixed(2),
		Bonus:                record.Bonus.StringFixed(2),
		NetPayableSalary:     record.NetPayableSalary.StringFixed(2),
	}

	return payslipTemplate.Execute(w, data)
}
