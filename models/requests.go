package models

import "github.com/shopspring/decimal"

// DriverRequest creates or updates a driver
type DriverRequest struct {
	Name          string          `json:"name" binding:"required"`
	Phone         string          `json:"phone"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	JoiningDate   string          `json:"joiningDate" binding:"required"`
	LeavingDate   string          `json:"leavingDate"`
}

// AdvanceRequest records an advance against a driver
type AdvanceRequest struct {
	DriverID    string          `json:"driverId" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description"`
}

// DeductionRequest records a deduction against a driver
type DeductionRequest struct {
	DriverID string          `json:"driverId" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date" binding:"required"`
	Reason   string          `json:"reason"`
}

// TripRequest creates a trip, or updates it when ID is set
type TripRequest struct {
	ID        string          `json:"id"`
	DriverID  string          `json:"driverId" binding:"required"`
	Route     string          `json:"route" binding:"required"`
	Date      string          `json:"date" binding:"required"`
	Allowance decimal.Decimal `json:"allowance"`
	Status    TripStatus      `json:"status"`
}

// TripTemplateRequest creates a trip template
type TripTemplateRequest struct {
	Name          string          `json:"name" binding:"required"`
	DefaultAmount decimal.Decimal `json:"defaultAmount"`
}

// ClosePayrollRequest finalizes a month. PaymentTypes maps driver id to the
// payment method label chosen for that driver.
type ClosePayrollRequest struct {
	PaymentTypes map[string]string `json:"paymentTypes"`
}

// SettingsRequest updates workspace settings. Empty fields are left unchanged.
type SettingsRequest struct {
	CalcType     CalcType `json:"calcType"`
	Currency     string   `json:"currency"`
	PaymentTypes []string `json:"paymentTypes"`
}

// WorkspaceRequest creates or updates a workspace
type WorkspaceRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// ManagerRequest creates a manager, or updates it when ID is set
type ManagerRequest struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Permissions
}

// AccountLockRequest sets or clears the account lock flag
type AccountLockRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}
