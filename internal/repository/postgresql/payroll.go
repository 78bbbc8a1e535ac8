package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
	"github.com/paydesk/payroll-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// Payroll records outlive their employee: the join is a LEFT JOIN and the
// employee display columns come back NULL after an employee is deleted.
const payrollSelect = `
	SELECT
		p.id, p.employee_id, p.month, p.year, p.payroll_date,
		p.total_days, p.half_days, p.leave_days, p.overtime_hours,
		p.base_salary, p.per_day_salary, p.gross_salary,
		p.half_day_deduction, p.unpaid_leave_deduction,
		p.efficiency_adjustment, p.overtime_pay, p.bonus,
		p.net_payable_salary, p.status,
		p.created_by, p.created_by_guest, p.approved_by, p.approved_at,
		p.paid_at, p.notes, p.created_at, p.updated_at,
		e.name, e.email, e.employee_code, e.department, e.position
	FROM payroll_records p
	LEFT JOIN employees e ON e.id = p.employee_id
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Month, &r.Year, &r.PayrollDate,
		&r.TotalDays, &r.HalfDays, &r.LeaveDays, &r.OvertimeHours,
		&r.BaseSalary, &r.PerDaySalary, &r.GrossSalary,
		&r.HalfDayDeduction, &r.UnpaidLeaveDeduction,
		&r.EfficiencyAdjustment, &r.OvertimePay, &r.Bonus,
		&r.NetPayableSalary, &r.Status,
		&r.CreatedBy, &r.CreatedByGuest, &r.ApprovedBy, &r.ApprovedAt,
		&r.PaidAt, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName, &r.EmployeeEmail, &r.EmployeeCode, &r.Department, &r.Position,
	)
	return r, err
}

func (r *payrollRepositoryImpl) Create(ctx context.Context, record *payroll.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, month, year, payroll_date,
			total_days, half_days, leave_days, overtime_hours,
			base_salary, per_day_salary, gross_salary,
			half_day_deduction, unpaid_leave_deduction,
			efficiency_adjustment, overtime_pay, bonus,
			net_payable_salary, status,
			created_by, created_by_guest, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Month, record.Year, record.PayrollDate,
		record.TotalDays, record.HalfDays, record.LeaveDays, record.OvertimeHours,
		record.BaseSalary, record.PerDaySalary, record.GrossSalary,
		record.HalfDayDeduction, record.UnpaidLeaveDeduction,
		record.EfficiencyAdjustment, record.OvertimePay, record.Bonus,
		record.NetPayableSalary, string(record.Status),
		record.CreatedBy, record.CreatedByGuest, record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		// Concurrent creates for the same period are serialized by the
		// unique index; the loser surfaces as a conflict.
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.ErrPayrollRecordAlreadyExists
		}
		return fmt.Errorf("failed to create payroll record: %w", err)
	}

	return nil
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (*payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	record, err := scanPayrollRecord(q.QueryRow(ctx, payrollSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, payroll.ErrPayrollRecordNotFound
		}
		return nil, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return &record, nil
}

func (r *payrollRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := payrollSelect + ` WHERE p.employee_id = $1 AND p.month = $2 AND p.year = $3`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, payroll.ErrPayrollRecordNotFound
		}
		return nil, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return &record, nil
}

func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Month > 0 {
		conditions = append(conditions, fmt.Sprintf("p.month = $%d", argPos))
		args = append(args, filter.Month)
		argPos++
	}
	if filter.Year > 0 {
		conditions = append(conditions, fmt.Sprintf("p.year = $%d", argPos))
		args = append(args, filter.Year)
		argPos++
	}
	if filter.Employee != "" {
		conditions = append(conditions, fmt.Sprintf("(e.name ILIKE $%d OR e.employee_code ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filter.Employee+"%")
		argPos++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var totalCount int64
	var records []payroll.PayrollRecord

	// Count and page come from one transaction so the pagination metadata
	// matches the rows returned.
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		countQuery := `
			SELECT COUNT(*)
			FROM payroll_records p
			LEFT JOIN employees e ON e.id = p.employee_id
			WHERE ` + where
		if err := q.QueryRow(txCtx, countQuery, args...).Scan(&totalCount); err != nil {
			return fmt.Errorf("failed to count payroll records: %w", err)
		}

		query := payrollSelect + ` WHERE ` + where +
			fmt.Sprintf(" ORDER BY p.year DESC, p.month DESC, e.name ASC LIMIT $%d OFFSET $%d", argPos, argPos+1)
		pageArgs := append(args, filter.Limit, (filter.Page-1)*filter.Limit)

		rows, err := q.Query(txCtx, query, pageArgs...)
		if err != nil {
			return fmt.Errorf("failed to list payroll records: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			record, err := scanPayrollRecord(rows)
			if err != nil {
				return fmt.Errorf("failed to scan payroll record: %w", err)
			}
			records = append(records, record)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return records, totalCount, nil
}

func (r *payrollRepositoryImpl) ListByPeriod(ctx context.Context, month, year int) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := payrollSelect + ` WHERE p.month = $1 AND p.year = $2 ORDER BY e.name ASC`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		record, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Update rewrites the inputs and every derived column in one statement so
// a record can never be observed with inputs and derived figures from
// different versions.
func (r *payrollRepositoryImpl) Update(ctx context.Context, record *payroll.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records SET
			month = $1, year = $2, payroll_date = $3,
			total_days = $4, half_days = $5, leave_days = $6, overtime_hours = $7,
			base_salary = $8, per_day_salary = $9, gross_salary = $10,
			half_day_deduction = $11, unpaid_leave_deduction = $12,
			efficiency_adjustment = $13, overtime_pay = $14, bonus = $15,
			net_payable_salary = $16, status = $17,
			approved_by = $18, approved_at = $19, paid_at = $20, notes = $21,
			updated_at = NOW()
		WHERE id = $22
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.Month, record.Year, record.PayrollDate,
		record.TotalDays, record.HalfDays, record.LeaveDays, record.OvertimeHours,
		record.BaseSalary, record.PerDaySalary, record.GrossSalary,
		record.HalfDayDeduction, record.UnpaidLeaveDeduction,
		record.EfficiencyAdjustment, record.OvertimePay, record.Bonus,
		record.NetPayableSalary, string(record.Status),
		record.ApprovedBy, record.ApprovedAt, record.PaidAt, record.Notes,
		record.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollRecordNotFound
		}
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.ErrPayrollRecordAlreadyExists
		}
		return fmt.Errorf("failed to update payroll record: %w", err)
	}

	return nil
}

// Delete only removes draft records; the status guard in the statement
// keeps a concurrent approval from racing the delete.
func (r *payrollRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1 AND status = 'draft'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrOnlyDraftDeletable
	}

	return nil
}

func (r *payrollRepositoryImpl) Analytics(ctx context.Context, year int) ([]payroll.MonthlyAnalytics, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT month, COUNT(*), COUNT(*) FILTER (WHERE status = 'paid'),
			COALESCE(SUM(net_payable_salary), 0),
			COALESCE(AVG(net_payable_salary), 0)
		FROM payroll_records
		WHERE year = $1
		GROUP BY month
		ORDER BY month ASC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payroll records: %w", err)
	}
	defer rows.Close()

	var result []payroll.MonthlyAnalytics
	for rows.Next() {
		m := payroll.MonthlyAnalytics{Year: year}
		if err := rows.Scan(&m.Month, &m.RecordCount, &m.PaidCount, &m.TotalPayout, &m.AveragePayout); err != nil {
			return nil, fmt.Errorf("failed to scan analytics row: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
