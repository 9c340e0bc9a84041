// repository/trip_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// TripRepository handles database operations for trips and trip templates
type TripRepository struct {
	DB *sql.DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{DB: db}
}

// ListTrips retrieves the trips of a workspace dated within [from, to]
func (r *TripRepository) ListTrips(ctx context.Context, workspaceID string, from, to time.Time) ([]models.Trip, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, workspace_id, account_id, driver_id, route, date, allowance, status, created_at
		 FROM trips WHERE workspace_id = $1 AND date BETWEEN $2 AND $3
		 ORDER BY date ASC, created_at ASC`,
		workspaceID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get trips: %w", err)
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		var trip models.Trip
		if err := rows.Scan(&trip.ID, &trip.WorkspaceID, &trip.AccountID, &trip.DriverID, &trip.Route,
			&trip.Date, &trip.Allowance, &trip.Status, &trip.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

// GetTrip retrieves a trip of a workspace by id
func (r *TripRepository) GetTrip(ctx context.Context, workspaceID, id string) (*models.Trip, error) {
	var trip models.Trip
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, workspace_id, account_id, driver_id, route, date, allowance, status, created_at
		 FROM trips WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	).Scan(&trip.ID, &trip.WorkspaceID, &trip.AccountID, &trip.DriverID, &trip.Route,
		&trip.Date, &trip.Allowance, &trip.Status, &trip.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Trip")
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

// SaveTrip inserts a trip or updates the existing row with the same id
func (r *TripRepository) SaveTrip(ctx context.Context, trip *models.Trip) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO trips (id, workspace_id, account_id, driver_id, route, date, allowance, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		   driver_id = EXCLUDED.driver_id,
		   route = EXCLUDED.route,
		   date = EXCLUDED.date,
		   allowance = EXCLUDED.allowance,
		   status = EXCLUDED.status
		 WHERE trips.workspace_id = EXCLUDED.workspace_id`,
		trip.ID, trip.WorkspaceID, trip.AccountID, trip.DriverID, trip.Route,
		trip.Date, trip.Allowance, trip.Status, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save trip: %w", err)
	}
	return nil
}

// DeleteTrip removes a trip of a workspace
func (r *TripRepository) DeleteTrip(ctx context.Context, workspaceID, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM trips WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// ListTemplates retrieves the trip templates of a workspace
func (r *TripRepository) ListTemplates(ctx context.Context, workspaceID string) ([]models.TripTemplate, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, workspace_id, account_id, name, default_amount, created_at
		 FROM trip_templates WHERE workspace_id = $1 ORDER BY name ASC`,
		workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip templates: %w", err)
	}
	defer rows.Close()

	templates := []models.TripTemplate{}
	for rows.Next() {
		var t models.TripTemplate
		if err := rows.Scan(&t.ID, &t.WorkspaceID, &t.AccountID, &t.Name, &t.DefaultAmount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// CreateTemplate saves a new trip template
func (r *TripRepository) CreateTemplate(ctx context.Context, t *models.TripTemplate) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO trip_templates (id, workspace_id, account_id, name, default_amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.WorkspaceID, t.AccountID, t.Name, t.DefaultAmount, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip template: %w", err)
	}
	return nil
}

// DeleteTemplate removes a trip template of a workspace
func (r *TripRepository) DeleteTemplate(ctx context.Context, workspaceID, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM trip_templates WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete trip template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
