package services

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// MonthInput is everything the engine needs to reconcile one workspace month.
// Collections are expected to be scoped to WorkspaceID already; rows of other
// workspaces are ignored.
type MonthInput struct {
	WorkspaceID  string
	Month        string
	CalcType     models.CalcType
	PaymentTypes []string
	Roster       []models.Driver
	Advances     []models.Advance
	Deductions   []models.Deduction
	Trips        []models.Trip
	Existing     []models.PayrollRecord
}

// CloseInput describes a month being finalized
type CloseInput struct {
	WorkspaceID string
	AccountID   string
	Month       string
	CalcType    models.CalcType
	// Selections maps driver id to the payment method chosen for that driver
	Selections map[string]string
	ClosedAt   time.Time
}

// PayrollSink receives the frozen rows of a closed month. All rows are
// persisted or none are.
type PayrollSink interface {
	SaveClosed(ctx context.Context, records []models.PayrollRecord) error
}

// PayrollEngine computes monthly driver payroll. It does no I/O.
type PayrollEngine struct{}

// NewPayrollEngine creates a new payroll engine
func NewPayrollEngine() *PayrollEngine {
	return &PayrollEngine{}
}

// ComputeMonth returns one payroll line per driver employed during the month,
// in roster order. An invalid month yields no lines and no error.
func (e *PayrollEngine) ComputeMonth(in MonthInput) ([]models.DriverPayrollLine, error) {
	if _, ok := models.ParseMonth(in.Month); !ok {
		return []models.DriverPayrollLine{}, nil
	}
	if err := e.ValidateRoster(in.WorkspaceID, in.Roster); err != nil {
		return nil, err
	}

	lines := []models.DriverPayrollLine{}
	for line := range e.Lines(in) {
		lines = append(lines, line)
	}
	return lines, nil
}

// ValidateRoster checks the employment dates of the workspace's drivers
func (e *PayrollEngine) ValidateRoster(workspaceID string, roster []models.Driver) error {
	for _, d := range roster {
		if d.WorkspaceID != workspaceID {
			continue
		}
		if d.JoiningDate.IsZero() {
			return utils.NewValidationError(fmt.Sprintf("driver %s has no joining date", d.Name))
		}
		if d.LeavingDate != nil && models.DateOnly(*d.LeavingDate).Before(models.DateOnly(d.JoiningDate)) {
			return utils.NewValidationError(fmt.Sprintf("driver %s leaves before joining", d.Name))
		}
	}
	return nil
}

// Lines lazily yields the payroll lines of the month. The sequence can be
// ranged over any number of times. Drivers failing ValidateRoster are skipped.
func (e *PayrollEngine) Lines(in MonthInput) iter.Seq[models.DriverPayrollLine] {
	month, ok := models.ParseMonth(in.Month)
	if !ok {
		return func(func(models.DriverPayrollLine) bool) {}
	}

	totals := indexLedger(in, month)
	records := make(map[string]models.PayrollRecord)
	for _, rec := range in.Existing {
		if rec.WorkspaceID == in.WorkspaceID && rec.Month == month.String() {
			records[rec.DriverID] = rec
		}
	}
	fallback := utils.DefaultPaymentType
	if len(in.PaymentTypes) > 0 && in.PaymentTypes[0] != "" {
		fallback = in.PaymentTypes[0]
	}

	return func(yield func(models.DriverPayrollLine) bool) {
		for _, driver := range in.Roster {
			if driver.WorkspaceID != in.WorkspaceID {
				continue
			}
			activeDays, employed := activeDaysIn(driver, month)
			if !employed {
				continue
			}

			t := totals[driver.ID]
			line := models.DriverPayrollLine{
				DriverID:        driver.ID,
				DriverName:      driver.Name,
				ActiveDays:      activeDays,
				DaysInMonth:     month.Days(),
				BaseSalary:      baseSalary(in.CalcType, driver.MonthlySalary, activeDays, month.Days()),
				TotalAdvances:   t.advances,
				TotalDeductions: t.deductions,
				TotalAllowances: t.allowances,
				IsProrated:      in.CalcType == models.CalcProrated,
				TripCount:       t.trips,
				PaymentType:     fallback,
			}
			line.FinalSalary = line.BaseSalary.Sub(line.TotalAdvances).Sub(line.TotalDeductions).Add(line.TotalAllowances)

			if rec, found := records[driver.ID]; found {
				line.IsClosed = rec.IsClosed
				if rec.PaymentType != "" {
					line.PaymentType = rec.PaymentType
				}
			}

			if !yield(line) {
				return
			}
		}
	}
}

// CloseMonth freezes the lines into closed payroll records and hands them to
// the sink in a single call. Sink errors are returned unchanged.
func (e *PayrollEngine) CloseMonth(ctx context.Context, sink PayrollSink, lines []models.DriverPayrollLine, in CloseInput) error {
	closedAt := in.ClosedAt
	if closedAt.IsZero() {
		closedAt = time.Now().UTC()
	}

	records := make([]models.PayrollRecord, 0, len(lines))
	for _, line := range lines {
		paymentType := line.PaymentType
		if selected := in.Selections[line.DriverID]; selected != "" {
			paymentType = selected
		}
		if paymentType == "" {
			paymentType = utils.DefaultPaymentType
		}
		records = append(records, models.PayrollRecord{
			ID:              utils.GenerateID(),
			WorkspaceID:     in.WorkspaceID,
			AccountID:       in.AccountID,
			DriverID:        line.DriverID,
			Month:           in.Month,
			BaseSalary:      line.BaseSalary,
			DaysInMonth:     line.DaysInMonth,
			ActiveDays:      line.ActiveDays,
			TotalAdvances:   line.TotalAdvances,
			TotalDeductions: line.TotalDeductions,
			TotalAllowances: line.TotalAllowances,
			FinalSalary:     line.FinalSalary,
			IsProrated:      in.CalcType == models.CalcProrated,
			IsClosed:        true,
			PaymentType:     paymentType,
			ClosedAt:        &closedAt,
		})
	}
	return sink.SaveClosed(ctx, records)
}

// IsMonthClosed reports whether there is at least one line and every line is closed
func (e *PayrollEngine) IsMonthClosed(lines []models.DriverPayrollLine) bool {
	return len(lines) > 0 && !slices.ContainsFunc(lines, func(l models.DriverPayrollLine) bool { return !l.IsClosed })
}

// Totals sums the monetary columns of the lines
func (e *PayrollEngine) Totals(lines []models.DriverPayrollLine) models.PayrollTotals {
	return models.PayrollTotals{
		BaseSalary:      utils.Sum(lines, func(l models.DriverPayrollLine) decimal.Decimal { return l.BaseSalary }),
		TotalAdvances:   utils.Sum(lines, func(l models.DriverPayrollLine) decimal.Decimal { return l.TotalAdvances }),
		TotalDeductions: utils.Sum(lines, func(l models.DriverPayrollLine) decimal.Decimal { return l.TotalDeductions }),
		TotalAllowances: utils.Sum(lines, func(l models.DriverPayrollLine) decimal.Decimal { return l.TotalAllowances }),
		FinalSalary:     utils.Sum(lines, func(l models.DriverPayrollLine) decimal.Decimal { return l.FinalSalary }),
	}
}

type driverTotals struct {
	advances   decimal.Decimal
	deductions decimal.Decimal
	allowances decimal.Decimal
	trips      int
}

// indexLedger sums the month's ledger rows per driver
func indexLedger(in MonthInput, month models.Month) map[string]driverTotals {
	totals := make(map[string]driverTotals)
	for _, a := range in.Advances {
		if a.WorkspaceID == in.WorkspaceID && month.Contains(a.Date) {
			t := totals[a.DriverID]
			t.advances = t.advances.Add(a.Amount)
			totals[a.DriverID] = t
		}
	}
	for _, d := range in.Deductions {
		if d.WorkspaceID == in.WorkspaceID && month.Contains(d.Date) {
			t := totals[d.DriverID]
			t.deductions = t.deductions.Add(d.Amount)
			totals[d.DriverID] = t
		}
	}
	for _, trip := range in.Trips {
		if trip.WorkspaceID == in.WorkspaceID && trip.Status == models.TripCompleted && month.Contains(trip.Date) {
			t := totals[trip.DriverID]
			t.allowances = t.allowances.Add(trip.Allowance)
			t.trips++
			totals[trip.DriverID] = t
		}
	}
	return totals
}

// activeDaysIn counts the days of the month the driver was employed, both ends
// inclusive. employed is false when the driver joined after the month or left
// before it, or has invalid dates.
func activeDaysIn(driver models.Driver, month models.Month) (days int, employed bool) {
	if driver.JoiningDate.IsZero() {
		return 0, false
	}
	joined := models.DateOnly(driver.JoiningDate)
	if joined.After(month.End()) {
		return 0, false
	}

	start, end := month.Start(), month.End()
	if joined.After(start) {
		start = joined
	}
	if driver.LeavingDate != nil {
		left := models.DateOnly(*driver.LeavingDate)
		if left.Before(month.Start()) || left.Before(joined) {
			return 0, false
		}
		if left.Before(end) {
			end = left
		}
	}

	days = int(end.Sub(start).Hours()/24) + 1
	return max(0, days), true
}

func baseSalary(calcType models.CalcType, monthly decimal.Decimal, activeDays, daysInMonth int) decimal.Decimal {
	if calcType == models.CalcProrated {
		return monthly.Mul(decimal.NewFromInt(int64(activeDays))).Div(decimal.NewFromInt(int64(daysInMonth)))
	}
	if activeDays > 0 {
		return monthly
	}
	return decimal.Zero
}
