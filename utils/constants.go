package utils

const (
	// Payment method label used when a workspace has none configured
	DefaultPaymentType = "Bank Transfer"

	// Date layout of ledger and roster dates
	DateLayout = "2006-01-02"

	// HTTP status messages
	ErrInvalidRequest     = "Invalid request"
	ErrInvalidMonth       = "Invalid month, expected YYYY-MM"
	ErrAccountLocked      = "Account is locked"
	ErrPermissionDenied   = "Permission denied"
	ErrMonthAlreadyClosed = "Payroll for this month is already closed"
	ErrNothingToClose     = "No payroll lines to close"

	// Decimal places kept on monetary values shown to users
	MoneyPlaces = 2
)
