package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

const managerColumns = `id, account_id, workspace_id, name, email,
	can_manage_drivers, can_manage_advances, can_manage_deductions, can_manage_trips, can_close_payroll, created_at`

// ManagerRepository handles database operations for workspace managers
type ManagerRepository struct {
	DB *sql.DB
}

// NewManagerRepository creates a new ManagerRepository
func NewManagerRepository(db *sql.DB) *ManagerRepository {
	return &ManagerRepository{DB: db}
}

func scanManager(row rowScanner) (*models.Manager, error) {
	var m models.Manager
	err := row.Scan(&m.ID, &m.AccountID, &m.WorkspaceID, &m.Name, &m.Email,
		&m.CanManageDrivers, &m.CanManageAdvances, &m.CanManageDeductions, &m.CanManageTrips, &m.CanClosePayroll,
		&m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListManagers retrieves the managers of an account
func (r *ManagerRepository) ListManagers(ctx context.Context, accountID string) ([]models.Manager, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+managerColumns+` FROM managers WHERE account_id = $1 ORDER BY name ASC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get managers: %w", err)
	}
	defer rows.Close()

	managers := []models.Manager{}
	for rows.Next() {
		m, err := scanManager(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manager: %w", err)
		}
		managers = append(managers, *m)
	}
	return managers, rows.Err()
}

// GetManager retrieves a manager of an account by id
func (r *ManagerRepository) GetManager(ctx context.Context, accountID, id string) (*models.Manager, error) {
	m, err := scanManager(r.DB.QueryRowContext(ctx,
		`SELECT `+managerColumns+` FROM managers WHERE account_id = $1 AND id = $2`,
		accountID, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Manager")
		}
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}
	return m, nil
}

// SaveManager inserts a manager or updates the row with the same id
func (r *ManagerRepository) SaveManager(ctx context.Context, m *models.Manager) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO managers (`+managerColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
		   workspace_id = EXCLUDED.workspace_id,
		   name = EXCLUDED.name,
		   email = EXCLUDED.email,
		   can_manage_drivers = EXCLUDED.can_manage_drivers,
		   can_manage_advances = EXCLUDED.can_manage_advances,
		   can_manage_deductions = EXCLUDED.can_manage_deductions,
		   can_manage_trips = EXCLUDED.can_manage_trips,
		   can_close_payroll = EXCLUDED.can_close_payroll
		 WHERE managers.account_id = EXCLUDED.account_id`,
		m.ID, m.AccountID, m.WorkspaceID, m.Name, m.Email,
		m.CanManageDrivers, m.CanManageAdvances, m.CanManageDeductions, m.CanManageTrips, m.CanClosePayroll,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save manager: %w", err)
	}
	return nil
}

// DeleteManager removes a manager of an account
func (r *ManagerRepository) DeleteManager(ctx context.Context, accountID, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM managers WHERE account_id = $1 AND id = $2`, accountID, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete manager: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
