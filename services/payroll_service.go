package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// PayrollService runs the payroll engine against a workspace's stored data
type PayrollService struct {
	engine *PayrollEngine
	gate   *Gate
	stores Stores
	excel  *ExcelService
	log    *zap.Logger
	now    func() time.Time
}

// NewPayrollService creates a new payroll service
func NewPayrollService(engine *PayrollEngine, gate *Gate, stores Stores, excel *ExcelService, log *zap.Logger) *PayrollService {
	return &PayrollService{
		engine: engine,
		gate:   gate,
		stores: stores,
		excel:  excel,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// monthData is the stored state a payroll month is computed from
type monthData struct {
	input    MonthInput
	settings *models.Settings
	ledger   models.MonthLedger
	names    map[string]string
}

func (s *PayrollService) load(ctx context.Context, workspaceID string, month models.Month) (*monthData, error) {
	settings, err := s.stores.Workspaces.GetSettings(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	roster, err := s.stores.Drivers.ListDrivers(ctx, workspaceID, false)
	if err != nil {
		return nil, err
	}
	advances, err := s.stores.Ledger.ListAdvances(ctx, workspaceID, month.Start(), month.End())
	if err != nil {
		return nil, err
	}
	deductions, err := s.stores.Ledger.ListDeductions(ctx, workspaceID, month.Start(), month.End())
	if err != nil {
		return nil, err
	}
	trips, err := s.stores.Trips.ListTrips(ctx, workspaceID, month.Start(), month.End())
	if err != nil {
		return nil, err
	}
	existing, err := s.stores.Payroll.ListPayroll(ctx, workspaceID, month.String())
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(roster))
	for _, d := range roster {
		names[d.ID] = d.Name
	}

	return &monthData{
		input: MonthInput{
			WorkspaceID:  workspaceID,
			Month:        month.String(),
			CalcType:     settings.CalcType,
			PaymentTypes: settings.PaymentTypes,
			Roster:       roster,
			Advances:     advances,
			Deductions:   deductions,
			Trips:        trips,
			Existing:     existing,
		},
		settings: settings,
		ledger:   models.MonthLedger{Advances: advances, Deductions: deductions, Trips: trips},
		names:    names,
	}, nil
}

func (s *PayrollService) sheet(data *monthData, lines []models.DriverPayrollLine) *models.PayrollSheet {
	return &models.PayrollSheet{
		WorkspaceID:   data.input.WorkspaceID,
		Month:         data.input.Month,
		CalcType:      data.settings.CalcType,
		Currency:      data.settings.Currency,
		Symbol:        utils.CurrencySymbol(data.settings.Currency),
		IsMonthClosed: s.engine.IsMonthClosed(lines),
		Lines:         lines,
		Totals:        s.engine.Totals(lines),
	}
}

// Preview computes the payroll sheet of a month. An invalid month yields an
// empty sheet. Locked accounts may still preview.
func (s *PayrollService) Preview(ctx context.Context, actor models.Actor, month string) (*models.PayrollSheet, error) {
	if err := s.gate.Check(actor, OpViewPayroll); err != nil {
		return nil, err
	}

	m, ok := models.ParseMonth(month)
	if !ok {
		return &models.PayrollSheet{
			WorkspaceID: actor.WorkspaceID,
			Month:       month,
			Lines:       []models.DriverPayrollLine{},
		}, nil
	}

	data, err := s.load(ctx, actor.WorkspaceID, m)
	if err != nil {
		return nil, err
	}
	lines, err := s.engine.ComputeMonth(data.input)
	if err != nil {
		return nil, err
	}
	return s.sheet(data, lines), nil
}

// Close freezes the month's payroll. selections maps driver id to the chosen
// payment method. Closing a month that already has closed lines is a conflict.
func (s *PayrollService) Close(ctx context.Context, actor models.Actor, month string, selections map[string]string) (*models.PayrollSheet, error) {
	if err := s.gate.Check(actor, OpClosePayroll); err != nil {
		s.log.Warn("payroll close rejected",
			zap.String("workspace_id", actor.WorkspaceID),
			zap.String("month", month),
			zap.Error(err))
		return nil, err
	}

	m, ok := models.ParseMonth(month)
	if !ok {
		return nil, utils.NewValidationError(utils.ErrInvalidMonth)
	}

	data, err := s.load(ctx, actor.WorkspaceID, m)
	if err != nil {
		return nil, err
	}
	lines, err := s.engine.ComputeMonth(data.input)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, utils.NewValidationError(utils.ErrNothingToClose)
	}
	for _, line := range lines {
		if line.IsClosed {
			return nil, utils.NewConflictError(utils.ErrMonthAlreadyClosed)
		}
	}

	err = s.engine.CloseMonth(ctx, s.stores.Payroll, lines, CloseInput{
		WorkspaceID: actor.WorkspaceID,
		AccountID:   actor.AccountID,
		Month:       m.String(),
		CalcType:    data.settings.CalcType,
		Selections:  selections,
		ClosedAt:    s.now(),
	})
	if err != nil {
		s.log.Error("payroll close failed",
			zap.String("workspace_id", actor.WorkspaceID),
			zap.String("month", m.String()),
			zap.Error(err))
		return nil, fmt.Errorf("close payroll %s: %w", m, err)
	}

	s.log.Info("payroll closed",
		zap.String("workspace_id", actor.WorkspaceID),
		zap.String("month", m.String()),
		zap.Int("drivers", len(lines)),
		zap.String("total", utils.Round(s.engine.Totals(lines).FinalSalary).String()))

	for i := range lines {
		lines[i].IsClosed = true
		if selected := selections[lines[i].DriverID]; selected != "" {
			lines[i].PaymentType = selected
		}
	}
	return s.sheet(data, lines), nil
}

// History lists the stored payroll records of a month
func (s *PayrollService) History(ctx context.Context, actor models.Actor, month string) ([]models.PayrollRecord, error) {
	if err := s.gate.Check(actor, OpViewPayroll); err != nil {
		return nil, err
	}
	m, ok := models.ParseMonth(month)
	if !ok {
		return nil, utils.NewValidationError(utils.ErrInvalidMonth)
	}
	return s.stores.Payroll.ListPayroll(ctx, actor.WorkspaceID, m.String())
}

// Export builds the payroll workbook of a month and its file name
func (s *PayrollService) Export(ctx context.Context, actor models.Actor, month string) (*excelize.File, string, error) {
	if err := s.gate.Check(actor, OpViewPayroll); err != nil {
		return nil, "", err
	}
	m, ok := models.ParseMonth(month)
	if !ok {
		return nil, "", utils.NewValidationError(utils.ErrInvalidMonth)
	}

	workspace, err := s.stores.Workspaces.GetWorkspace(ctx, actor.WorkspaceID)
	if err != nil {
		return nil, "", err
	}
	data, err := s.load(ctx, actor.WorkspaceID, m)
	if err != nil {
		return nil, "", err
	}
	lines, err := s.engine.ComputeMonth(data.input)
	if err != nil {
		return nil, "", err
	}

	f, err := s.excel.BuildPayrollWorkbook(workspace.Name, s.sheet(data, lines), data.ledger, data.names)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s_Payroll_%s.xlsx", utils.CleanFileName(workspace.Name), m)
	return f, filename, nil
}
