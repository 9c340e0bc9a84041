// repository/driver_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

const driverColumns = `id, workspace_id, account_id, name, phone, monthly_salary, joining_date, leaving_date, status, created_at`

// DriverRepository handles database operations for drivers
type DriverRepository struct {
	DB *sql.DB
}

// NewDriverRepository creates a new DriverRepository
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (*models.Driver, error) {
	var driver models.Driver
	var leaving sql.NullTime
	err := row.Scan(
		&driver.ID, &driver.WorkspaceID, &driver.AccountID, &driver.Name, &driver.Phone,
		&driver.MonthlySalary, &driver.JoiningDate, &leaving, &driver.Status, &driver.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	driver.LeavingDate = timePtr(leaving)
	return &driver, nil
}

// ListDrivers returns the roster of a workspace in joining order
func (r *DriverRepository) ListDrivers(ctx context.Context, workspaceID string, activeOnly bool) ([]models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE workspace_id = $1`
	if activeOnly {
		query += ` AND status = 'active'`
	}
	query += ` ORDER BY joining_date ASC, created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get drivers: %w", err)
	}
	defer rows.Close()

	drivers := []models.Driver{}
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, *driver)
	}
	return drivers, rows.Err()
}

// GetDriver retrieves a driver of a workspace by id
func (r *DriverRepository) GetDriver(ctx context.Context, workspaceID, id string) (*models.Driver, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)
	driver, err := scanDriver(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Driver")
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return driver, nil
}

// CreateDriver saves a new driver
func (r *DriverRepository) CreateDriver(ctx context.Context, driver *models.Driver) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO drivers (`+driverColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		driver.ID, driver.WorkspaceID, driver.AccountID, driver.Name, driver.Phone,
		driver.MonthlySalary, driver.JoiningDate, nullTime(driver.LeavingDate), driver.Status, driver.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert driver: %w", err)
	}
	return nil
}

// UpdateDriver updates the mutable fields of a driver. The workspace never changes.
func (r *DriverRepository) UpdateDriver(ctx context.Context, driver *models.Driver) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE drivers SET name = $1, phone = $2, monthly_salary = $3, joining_date = $4, leaving_date = $5
		 WHERE workspace_id = $6 AND id = $7`,
		driver.Name, driver.Phone, driver.MonthlySalary, driver.JoiningDate, nullTime(driver.LeavingDate),
		driver.WorkspaceID, driver.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}
	return expectAffected(res, "Driver")
}

// SetDriverStatus moves a driver between active and closed
func (r *DriverRepository) SetDriverStatus(ctx context.Context, workspaceID, id string, status models.DriverStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE drivers SET status = $1 WHERE workspace_id = $2 AND id = $3`,
		status, workspaceID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update driver status: %w", err)
	}
	return expectAffected(res, "Driver")
}

// expectAffected turns an update that matched no row into a not-found error
func expectAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return utils.NewNotFoundError(resource)
	}
	return nil
}
