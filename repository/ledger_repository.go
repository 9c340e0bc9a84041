package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fadhlanhapp/fleetpay-backend/models"
)

// LedgerRepository handles advance and deduction data operations
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// ListAdvances retrieves the advances of a workspace dated within [from, to]
func (r *LedgerRepository) ListAdvances(ctx context.Context, workspaceID string, from, to time.Time) ([]models.Advance, error) {
	query := `
		SELECT id, workspace_id, account_id, driver_id, amount, date, description, created_at
		FROM advances
		WHERE workspace_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get advances: %w", err)
	}
	defer rows.Close()

	advances := []models.Advance{}
	for rows.Next() {
		var a models.Advance
		err := rows.Scan(&a.ID, &a.WorkspaceID, &a.AccountID, &a.DriverID,
			&a.Amount, &a.Date, &a.Description, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, a)
	}
	return advances, rows.Err()
}

// CreateAdvance creates a new advance record
func (r *LedgerRepository) CreateAdvance(ctx context.Context, a *models.Advance) error {
	query := `
		INSERT INTO advances (id, workspace_id, account_id, driver_id, amount, date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.WorkspaceID, a.AccountID, a.DriverID,
		a.Amount, a.Date, a.Description, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert advance: %w", err)
	}
	return nil
}

// DeleteAdvance deletes an advance of a workspace. It reports false when nothing matched.
func (r *LedgerRepository) DeleteAdvance(ctx context.Context, workspaceID, id string) (bool, error) {
	return r.deleteRow(ctx, `DELETE FROM advances WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
}

// ListDeductions retrieves the deductions of a workspace dated within [from, to]
func (r *LedgerRepository) ListDeductions(ctx context.Context, workspaceID string, from, to time.Time) ([]models.Deduction, error) {
	query := `
		SELECT id, workspace_id, account_id, driver_id, amount, date, reason, created_at
		FROM deductions
		WHERE workspace_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get deductions: %w", err)
	}
	defer rows.Close()

	deductions := []models.Deduction{}
	for rows.Next() {
		var d models.Deduction
		err := rows.Scan(&d.ID, &d.WorkspaceID, &d.AccountID, &d.DriverID,
			&d.Amount, &d.Date, &d.Reason, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		deductions = append(deductions, d)
	}
	return deductions, rows.Err()
}

// CreateDeduction creates a new deduction record
func (r *LedgerRepository) CreateDeduction(ctx context.Context, d *models.Deduction) error {
	query := `
		INSERT INTO deductions (id, workspace_id, account_id, driver_id, amount, date, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.WorkspaceID, d.AccountID, d.DriverID,
		d.Amount, d.Date, d.Reason, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert deduction: %w", err)
	}
	return nil
}

// DeleteDeduction deletes a deduction of a workspace
func (r *LedgerRepository) DeleteDeduction(ctx context.Context, workspaceID, id string) (bool, error) {
	return r.deleteRow(ctx, `DELETE FROM deductions WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
}

func (r *LedgerRepository) deleteRow(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
