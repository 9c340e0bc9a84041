// repository/payroll_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fadhlanhapp/fleetpay-backend/models"
)

// PayrollRepository handles database operations for payroll records
type PayrollRepository struct {
	DB *sql.DB
}

// NewPayrollRepository creates a new PayrollRepository
func NewPayrollRepository(db *sql.DB) *PayrollRepository {
	return &PayrollRepository{DB: db}
}

// ListPayroll retrieves the payroll records of a workspace for one month
func (r *PayrollRepository) ListPayroll(ctx context.Context, workspaceID, month string) ([]models.PayrollRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, workspace_id, account_id, driver_id, month, base_salary, days_in_month, active_days,
		        total_advances, total_deductions, total_allowances, final_salary,
		        is_prorated, is_closed, payment_type, closed_at
		 FROM payroll WHERE workspace_id = $1 AND month = $2`,
		workspaceID, month,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll: %w", err)
	}
	defer rows.Close()

	records := []models.PayrollRecord{}
	for rows.Next() {
		var rec models.PayrollRecord
		var closedAt sql.NullTime
		err = rows.Scan(
			&rec.ID, &rec.WorkspaceID, &rec.AccountID, &rec.DriverID, &rec.Month,
			&rec.BaseSalary, &rec.DaysInMonth, &rec.ActiveDays,
			&rec.TotalAdvances, &rec.TotalDeductions, &rec.TotalAllowances, &rec.FinalSalary,
			&rec.IsProrated, &rec.IsClosed, &rec.PaymentType, &closedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		rec.ClosedAt = timePtr(closedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SaveClosed upserts all records in one transaction, keyed on
// (workspace_id, driver_id, month). Rows that are already closed are left untouched.
func (r *PayrollRepository) SaveClosed(ctx context.Context, records []models.PayrollRecord) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO payroll
		 (id, workspace_id, account_id, driver_id, month, base_salary, days_in_month, active_days,
		  total_advances, total_deductions, total_allowances, final_salary,
		  is_prorated, is_closed, payment_type, closed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 ON CONFLICT (workspace_id, driver_id, month) DO UPDATE SET
		   base_salary = EXCLUDED.base_salary,
		   days_in_month = EXCLUDED.days_in_month,
		   active_days = EXCLUDED.active_days,
		   total_advances = EXCLUDED.total_advances,
		   total_deductions = EXCLUDED.total_deductions,
		   total_allowances = EXCLUDED.total_allowances,
		   final_salary = EXCLUDED.final_salary,
		   is_prorated = EXCLUDED.is_prorated,
		   is_closed = EXCLUDED.is_closed,
		   payment_type = EXCLUDED.payment_type,
		   closed_at = EXCLUDED.closed_at
		 WHERE NOT payroll.is_closed`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare payroll upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err = stmt.ExecContext(ctx,
			rec.ID, rec.WorkspaceID, rec.AccountID, rec.DriverID, rec.Month,
			rec.BaseSalary, rec.DaysInMonth, rec.ActiveDays,
			rec.TotalAdvances, rec.TotalDeductions, rec.TotalAllowances, rec.FinalSalary,
			rec.IsProrated, rec.IsClosed, rec.PaymentType, nullTime(rec.ClosedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert payroll for driver %s: %w", rec.DriverID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payroll: %w", err)
	}
	return nil
}
