package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

const (
	payrollSheetName = "Payroll"
	ledgerSheetName  = "Ledger"
)

// ExcelService handles Excel export functionality
type ExcelService struct{}

// NewExcelService creates a new Excel service
func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// BuildPayrollWorkbook renders a payroll sheet and the month's ledger.
// names maps driver id to display name for the ledger rows.
func (s *ExcelService) BuildPayrollWorkbook(workspaceName string, sheet *models.PayrollSheet, ledger models.MonthLedger, names map[string]string) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := s.createPayrollSheet(f, workspaceName, sheet); err != nil {
		return nil, fmt.Errorf("failed to create payroll sheet: %w", err)
	}
	if err := s.createLedgerSheet(f, ledger, names); err != nil {
		return nil, fmt.Errorf("failed to create ledger sheet: %w", err)
	}

	// Delete the default sheet
	f.DeleteSheet("Sheet1")

	return f, nil
}

func (s *ExcelService) headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
}

func writeHeaders(f *excelize.File, sheetName string, row int, headers []string, style int) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetName, cell, header)
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(headers), row)
	return f.SetCellStyle(sheetName, first, last, style)
}

func amount(d decimal.Decimal) float64 {
	return utils.Round(d).InexactFloat64()
}

// createPayrollSheet writes one row per driver line and a totals row.
// Negative payouts are highlighted so they can be recovered in a later cycle.
func (s *ExcelService) createPayrollSheet(f *excelize.File, workspaceName string, sheet *models.PayrollSheet) error {
	sheetName := payrollSheetName
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	status := "Open"
	if sheet.IsMonthClosed {
		status = "Closed"
	}
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s payroll %s", workspaceName, sheet.Month))
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Policy: %s, Currency: %s (%s), Status: %s",
		sheet.CalcType, sheet.Currency, sheet.Symbol, status))

	headerStyle, err := s.headerStyle(f)
	if err != nil {
		return err
	}
	headers := []string{
		"Driver", "Active Days", "Days In Month", "Base Salary", "Advances", "Deductions",
		"Allowances", "Trips", "Final Salary", "Payment Type", "Closed",
	}
	const headerRow = 4
	if err := writeHeaders(f, sheetName, headerRow, headers, headerStyle); err != nil {
		return err
	}

	deficitStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	row := headerRow + 1
	for _, line := range sheet.Lines {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), line.DriverName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), line.ActiveDays)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), line.DaysInMonth)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), amount(line.BaseSalary))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), amount(line.TotalAdvances))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), amount(line.TotalDeductions))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), amount(line.TotalAllowances))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), line.TripCount)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), amount(line.FinalSalary))
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), line.PaymentType)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), line.IsClosed)
		if line.FinalSalary.IsNegative() {
			cell := fmt.Sprintf("I%d", row)
			f.SetCellStyle(sheetName, cell, cell, deficitStyle)
		}
		row++
	}

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), amount(sheet.Totals.BaseSalary))
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), amount(sheet.Totals.TotalAdvances))
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), amount(sheet.Totals.TotalDeductions))
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), amount(sheet.Totals.TotalAllowances))
	f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), amount(sheet.Totals.FinalSalary))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("K%d", row), headerStyle)

	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "K", 14)
	return nil
}

// createLedgerSheet lists the month's advances, deductions and completed trips
func (s *ExcelService) createLedgerSheet(f *excelize.File, ledger models.MonthLedger, names map[string]string) error {
	sheetName := ledgerSheetName
	f.NewSheet(sheetName)

	headerStyle, err := s.headerStyle(f)
	if err != nil {
		return err
	}
	if err := writeHeaders(f, sheetName, 1, []string{"Type", "Date", "Driver", "Detail", "Amount"}, headerStyle); err != nil {
		return err
	}

	row := 2
	add := func(kind string, date string, driverID string, detail string, value decimal.Decimal) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), kind)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), date)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), driverName(names, driverID))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), detail)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), amount(value))
		row++
	}

	for _, a := range ledger.Advances {
		add("Advance", a.Date.Format(utils.DateLayout), a.DriverID, a.Description, a.Amount)
	}
	for _, d := range ledger.Deductions {
		add("Deduction", d.Date.Format(utils.DateLayout), d.DriverID, d.Reason, d.Amount)
	}
	for _, t := range ledger.Trips {
		if t.Status != models.TripCompleted {
			continue
		}
		add("Trip", t.Date.Format(utils.DateLayout), t.DriverID, t.Route, t.Allowance)
	}

	f.SetColWidth(sheetName, "A", "B", 12)
	f.SetColWidth(sheetName, "C", "D", 24)
	f.SetColWidth(sheetName, "E", "E", 12)
	return nil
}

func driverName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}
