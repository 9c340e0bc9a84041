package services

import (
	"context"
	"time"

	"github.com/fadhlanhapp/fleetpay-backend/models"
)

// DriverStore is the persistence the roster services need
type DriverStore interface {
	ListDrivers(ctx context.Context, workspaceID string, activeOnly bool) ([]models.Driver, error)
	GetDriver(ctx context.Context, workspaceID, id string) (*models.Driver, error)
	CreateDriver(ctx context.Context, driver *models.Driver) error
	UpdateDriver(ctx context.Context, driver *models.Driver) error
	SetDriverStatus(ctx context.Context, workspaceID, id string, status models.DriverStatus) error
}

// LedgerStore persists advances and deductions
type LedgerStore interface {
	ListAdvances(ctx context.Context, workspaceID string, from, to time.Time) ([]models.Advance, error)
	CreateAdvance(ctx context.Context, a *models.Advance) error
	DeleteAdvance(ctx context.Context, workspaceID, id string) (bool, error)
	ListDeductions(ctx context.Context, workspaceID string, from, to time.Time) ([]models.Deduction, error)
	CreateDeduction(ctx context.Context, d *models.Deduction) error
	DeleteDeduction(ctx context.Context, workspaceID, id string) (bool, error)
}

// TripStore persists trips and trip templates
type TripStore interface {
	ListTrips(ctx context.Context, workspaceID string, from, to time.Time) ([]models.Trip, error)
	GetTrip(ctx context.Context, workspaceID, id string) (*models.Trip, error)
	SaveTrip(ctx context.Context, trip *models.Trip) error
	DeleteTrip(ctx context.Context, workspaceID, id string) (bool, error)
	ListTemplates(ctx context.Context, workspaceID string) ([]models.TripTemplate, error)
	CreateTemplate(ctx context.Context, t *models.TripTemplate) error
	DeleteTemplate(ctx context.Context, workspaceID, id string) (bool, error)
}

// PayrollStore reads payroll records and receives closed months
type PayrollStore interface {
	PayrollSink
	ListPayroll(ctx context.Context, workspaceID, month string) ([]models.PayrollRecord, error)
}

// WorkspaceStore persists accounts, workspaces and their settings
type WorkspaceStore interface {
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	SetAccountLocked(ctx context.Context, id string, locked bool) error
	ListWorkspaces(ctx context.Context, accountID string) ([]models.Workspace, error)
	GetWorkspace(ctx context.Context, id string) (*models.Workspace, error)
	CreateWorkspace(ctx context.Context, w *models.Workspace, settings models.Settings) error
	UpdateWorkspace(ctx context.Context, w *models.Workspace) error
	DeleteWorkspace(ctx context.Context, accountID, id string) (bool, error)
	GetSettings(ctx context.Context, workspaceID string) (*models.Settings, error)
	SaveSettings(ctx context.Context, s *models.Settings) error
	DashboardStats(ctx context.Context, accountID, workspaceID string) (*models.DashboardStats, error)
}

// ManagerStore persists workspace managers
type ManagerStore interface {
	ListManagers(ctx context.Context, accountID string) ([]models.Manager, error)
	GetManager(ctx context.Context, accountID, id string) (*models.Manager, error)
	SaveManager(ctx context.Context, m *models.Manager) error
	DeleteManager(ctx context.Context, accountID, id string) (bool, error)
}

// Stores bundles the persistence used by the services
type Stores struct {
	Drivers    DriverStore
	Ledger     LedgerStore
	Trips      TripStore
	Payroll    PayrollStore
	Workspaces WorkspaceStore
	Managers   ManagerStore
}
