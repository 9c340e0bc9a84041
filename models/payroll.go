package models

import "github.com/shopspring/decimal"

// DriverPayrollLine is the computed payroll of one driver for one month
type DriverPayrollLine struct {
	DriverID        string          `json:"driverId"`
	DriverName      string          `json:"driverName"`
	ActiveDays      int             `json:"activeDays"`
	DaysInMonth     int             `json:"daysInMonth"`
	BaseSalary      decimal.Decimal `json:"baseSalary"`
	TotalAdvances   decimal.Decimal `json:"totalAdvances"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalAllowances decimal.Decimal `json:"totalAllowances"`
	FinalSalary     decimal.Decimal `json:"finalSalary"`
	IsProrated      bool            `json:"isProrated"`
	IsClosed        bool            `json:"isClosed"`
	TripCount       int             `json:"tripCount"`
	PaymentType     string          `json:"paymentType"`
}

// PayrollTotals sums the lines of a payroll sheet
type PayrollTotals struct {
	BaseSalary      decimal.Decimal `json:"baseSalary"`
	TotalAdvances   decimal.Decimal `json:"totalAdvances"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalAllowances decimal.Decimal `json:"totalAllowances"`
	FinalSalary     decimal.Decimal `json:"finalSalary"`
}

// PayrollSheet is the payroll view of a workspace for one month
type PayrollSheet struct {
	WorkspaceID   string              `json:"workspaceId"`
	Month         string              `json:"month"`
	CalcType      CalcType            `json:"calcType"`
	Currency      string              `json:"currency"`
	Symbol        string              `json:"symbol"`
	IsMonthClosed bool                `json:"isMonthClosed"`
	Lines         []DriverPayrollLine `json:"lines"`
	Totals        PayrollTotals       `json:"totals"`
}

// MonthLedger is the set of ledger rows dated inside one month
type MonthLedger struct {
	Advances   []Advance   `json:"advances"`
	Deductions []Deduction `json:"deductions"`
	Trips      []Trip      `json:"trips"`
}
