// models/models.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalcType selects how a driver's base salary is derived for a month
type CalcType string

const (
	CalcProrated CalcType = "prorated"
	CalcMonthly  CalcType = "monthly"
)

// Valid reports whether c is a known calculation type
func (c CalcType) Valid() bool {
	return c == CalcProrated || c == CalcMonthly
}

// DriverStatus is the roster state of a driver. Closed drivers are soft deleted.
type DriverStatus string

const (
	DriverActive DriverStatus = "active"
	DriverClosed DriverStatus = "closed"
)

// TripStatus is the lifecycle state of a trip
type TripStatus string

const (
	TripPending   TripStatus = "pending"
	TripCompleted TripStatus = "completed"
)

// Valid reports whether s is a known trip status
func (s TripStatus) Valid() bool {
	return s == TripPending || s == TripCompleted
}

// Account is a billing tenant owning one or more workspaces
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Email     string    `json:"email"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	IsLocked  bool      `json:"isLocked"`
	CreatedAt time.Time `json:"createdAt"`
}

// Workspace is one operating hub under an account
type Workspace struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings holds the payroll configuration of a workspace
type Settings struct {
	WorkspaceID  string   `json:"workspaceId"`
	CalcType     CalcType `json:"calcType"`
	Currency     string   `json:"currency"`
	PaymentTypes []string `json:"paymentTypes"`
}

// DefaultSettings returns the settings a new workspace starts with
func DefaultSettings(workspaceID string) Settings {
	return Settings{
		WorkspaceID:  workspaceID,
		CalcType:     CalcProrated,
		Currency:     "USD",
		PaymentTypes: []string{"Cash", "Bank Transfer"},
	}
}

// Permissions are the capabilities a manager has been granted
type Permissions struct {
	CanManageDrivers    bool `json:"canManageDrivers"`
	CanManageAdvances   bool `json:"canManageAdvances"`
	CanManageDeductions bool `json:"canManageDeductions"`
	CanManageTrips      bool `json:"canManageTrips"`
	CanClosePayroll     bool `json:"canClosePayroll"`
}

// Manager is a staff member acting on one workspace with limited permissions
type Manager struct {
	ID          string `json:"id"`
	AccountID   string `json:"accountId"`
	WorkspaceID string `json:"workspaceId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Permissions
	CreatedAt time.Time `json:"createdAt"`
}

// Driver is one employed person on a workspace roster
type Driver struct {
	ID            string          `json:"id"`
	WorkspaceID   string          `json:"workspaceId"`
	AccountID     string          `json:"accountId"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	JoiningDate   time.Time       `json:"joiningDate"`
	LeavingDate   *time.Time      `json:"leavingDate,omitempty"`
	Status        DriverStatus    `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// IsActive reports whether the driver has not been soft deleted
func (d *Driver) IsActive() bool {
	return d.Status == DriverActive
}

// Advance is a cash sum paid to a driver ahead of payroll
type Advance struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspaceId"`
	AccountID   string          `json:"accountId"`
	DriverID    string          `json:"driverId"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Deduction is a penalty netted against a driver's pay
type Deduction struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspaceId"`
	AccountID   string          `json:"accountId"`
	DriverID    string          `json:"driverId"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Reason      string          `json:"reason"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Trip is a dated job assignment carrying an allowance
type Trip struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspaceId"`
	AccountID   string          `json:"accountId"`
	DriverID    string          `json:"driverId"`
	Route       string          `json:"route"`
	Date        time.Time       `json:"date"`
	Allowance   decimal.Decimal `json:"allowance"`
	Status      TripStatus      `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TripTemplate is a named route with a default allowance
type TripTemplate struct {
	ID            string          `json:"id"`
	WorkspaceID   string          `json:"workspaceId"`
	AccountID     string          `json:"accountId"`
	Name          string          `json:"name"`
	DefaultAmount decimal.Decimal `json:"defaultAmount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PayrollRecord is the frozen result of reconciling one driver for one month.
// (WorkspaceID, DriverID, Month) is unique.
type PayrollRecord struct {
	ID              string          `json:"id"`
	WorkspaceID     string          `json:"workspaceId"`
	AccountID       string          `json:"accountId"`
	DriverID        string          `json:"driverId"`
	Month           string          `json:"month"`
	BaseSalary      decimal.Decimal `json:"baseSalary"`
	DaysInMonth     int             `json:"daysInMonth"`
	ActiveDays      int             `json:"activeDays"`
	TotalAdvances   decimal.Decimal `json:"totalAdvances"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalAllowances decimal.Decimal `json:"totalAllowances"`
	FinalSalary     decimal.Decimal `json:"finalSalary"`
	IsProrated      bool            `json:"isProrated"`
	IsClosed        bool            `json:"isClosed"`
	PaymentType     string          `json:"paymentType"`
	ClosedAt        *time.Time      `json:"closedAt,omitempty"`
}

// DashboardStats summarises a workspace for the dashboard
type DashboardStats struct {
	ActiveDrivers int             `json:"activeDrivers"`
	TotalAdvances decimal.Decimal `json:"totalAdvances"`
	TotalTrips    int             `json:"totalTrips"`
	PendingTrips  int             `json:"pendingTrips"`
	TeamCount     int             `json:"teamCount"`
}
