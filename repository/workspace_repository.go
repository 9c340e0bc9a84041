package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// WorkspaceRepository handles accounts, workspaces and workspace settings
type WorkspaceRepository struct {
	DB *sql.DB
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db *sql.DB) *WorkspaceRepository {
	return &WorkspaceRepository{DB: db}
}

// GetAccount retrieves an account by id
func (r *WorkspaceRepository) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	var a models.Account
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, owner, email, plan, status, is_locked, created_at FROM accounts WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Name, &a.Owner, &a.Email, &a.Plan, &a.Status, &a.IsLocked, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Account")
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}

// SetAccountLocked sets or clears the lock flag of an account
func (r *WorkspaceRepository) SetAccountLocked(ctx context.Context, id string, locked bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE accounts SET is_locked = $1 WHERE id = $2`, locked, id)
	if err != nil {
		return fmt.Errorf("failed to update account lock: %w", err)
	}
	return expectAffected(res, "Account")
}

// ListWorkspaces retrieves the workspaces of an account, oldest first
func (r *WorkspaceRepository) ListWorkspaces(ctx context.Context, accountID string) ([]models.Workspace, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, account_id, name, address, phone, created_at
		 FROM workspaces WHERE account_id = $1 ORDER BY created_at ASC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspaces: %w", err)
	}
	defer rows.Close()

	workspaces := []models.Workspace{}
	for rows.Next() {
		var w models.Workspace
		if err := rows.Scan(&w.ID, &w.AccountID, &w.Name, &w.Address, &w.Phone, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		workspaces = append(workspaces, w)
	}
	return workspaces, rows.Err()
}

// GetWorkspace retrieves a workspace by id
func (r *WorkspaceRepository) GetWorkspace(ctx context.Context, id string) (*models.Workspace, error) {
	var w models.Workspace
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, account_id, name, address, phone, created_at FROM workspaces WHERE id = $1`,
		id,
	).Scan(&w.ID, &w.AccountID, &w.Name, &w.Address, &w.Phone, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Workspace")
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return &w, nil
}

// CreateWorkspace stores a workspace together with its initial settings
func (r *WorkspaceRepository) CreateWorkspace(ctx context.Context, w *models.Workspace, settings models.Settings) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO workspaces (id, account_id, name, address, phone, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.AccountID, w.Name, w.Address, w.Phone, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert workspace: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settings (workspace_id, calc_type, currency, payment_types) VALUES ($1, $2, $3, $4)`,
		w.ID, settings.CalcType, settings.Currency, pq.Array(settings.PaymentTypes),
	)
	if err != nil {
		return fmt.Errorf("failed to insert settings: %w", err)
	}

	return tx.Commit()
}

// UpdateWorkspace updates name, address and phone of a workspace
func (r *WorkspaceRepository) UpdateWorkspace(ctx context.Context, w *models.Workspace) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE workspaces SET name = $1, address = $2, phone = $3 WHERE account_id = $4 AND id = $5`,
		w.Name, w.Address, w.Phone, w.AccountID, w.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update workspace: %w", err)
	}
	return expectAffected(res, "Workspace")
}

// DeleteWorkspace removes a workspace of an account
func (r *WorkspaceRepository) DeleteWorkspace(ctx context.Context, accountID, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM workspaces WHERE account_id = $1 AND id = $2`, accountID, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete workspace: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// GetSettings retrieves the settings of a workspace, falling back to defaults
func (r *WorkspaceRepository) GetSettings(ctx context.Context, workspaceID string) (*models.Settings, error) {
	s := models.Settings{WorkspaceID: workspaceID}
	var paymentTypes pq.StringArray
	err := r.DB.QueryRowContext(ctx,
		`SELECT calc_type, currency, payment_types FROM settings WHERE workspace_id = $1`,
		workspaceID,
	).Scan(&s.CalcType, &s.Currency, &paymentTypes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			defaults := models.DefaultSettings(workspaceID)
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	s.PaymentTypes = []string(paymentTypes)
	if s.PaymentTypes == nil {
		s.PaymentTypes = []string{}
	}
	return &s, nil
}

// SaveSettings upserts the settings of a workspace
func (r *WorkspaceRepository) SaveSettings(ctx context.Context, s *models.Settings) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO settings (workspace_id, calc_type, currency, payment_types) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (workspace_id) DO UPDATE SET
		   calc_type = EXCLUDED.calc_type,
		   currency = EXCLUDED.currency,
		   payment_types = EXCLUDED.payment_types`,
		s.WorkspaceID, s.CalcType, s.Currency, pq.Array(s.PaymentTypes),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// DashboardStats aggregates the dashboard figures of a workspace in one query
func (r *WorkspaceRepository) DashboardStats(ctx context.Context, accountID, workspaceID string) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := r.DB.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM drivers WHERE workspace_id = $1 AND status = 'active'),
		   (SELECT COALESCE(SUM(amount), 0) FROM advances WHERE workspace_id = $1),
		   (SELECT COUNT(*) FROM trips WHERE workspace_id = $1),
		   (SELECT COUNT(*) FROM trips WHERE workspace_id = $1 AND status = 'pending'),
		   (SELECT COUNT(*) FROM managers WHERE account_id = $2)`,
		workspaceID, accountID,
	).Scan(&stats.ActiveDrivers, &stats.TotalAdvances, &stats.TotalTrips, &stats.PendingTrips, &stats.TeamCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return &stats, nil
}
