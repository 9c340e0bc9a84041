package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// LedgerService records advances and deductions against drivers
type LedgerService struct {
	gate    *Gate
	drivers DriverStore
	ledger  LedgerStore
	log     *zap.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(gate *Gate, drivers DriverStore, ledger LedgerStore, log *zap.Logger) *LedgerService {
	return &LedgerService{gate: gate, drivers: drivers, ledger: ledger, log: log}
}

func parseMonthParam(month string) (models.Month, error) {
	m, ok := models.ParseMonth(month)
	if !ok {
		return models.Month{}, utils.NewValidationError(utils.ErrInvalidMonth)
	}
	return m, nil
}

// ListAdvances returns the advances dated in the month
func (s *LedgerService) ListAdvances(ctx context.Context, actor models.Actor, month string) ([]models.Advance, error) {
	if err := s.gate.Check(actor, OpViewLedger); err != nil {
		return nil, err
	}
	m, err := parseMonthParam(month)
	if err != nil {
		return nil, err
	}
	return s.ledger.ListAdvances(ctx, actor.WorkspaceID, m.Start(), m.End())
}

// CreateAdvance records an advance paid to a driver of the workspace
func (s *LedgerService) CreateAdvance(ctx context.Context, actor models.Actor, req *models.AdvanceRequest) (*models.Advance, error) {
	if err := s.gate.Check(actor, OpWriteAdvance); err != nil {
		return nil, err
	}
	date, err := s.validateEntry(ctx, actor, req.DriverID, req.Amount, req.Date)
	if err != nil {
		return nil, err
	}

	advance := &models.Advance{
		ID:          utils.GenerateID(),
		WorkspaceID: actor.WorkspaceID,
		AccountID:   actor.AccountID,
		DriverID:    req.DriverID,
		Amount:      req.Amount,
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.ledger.CreateAdvance(ctx, advance); err != nil {
		return nil, err
	}
	s.log.Info("advance recorded",
		zap.String("workspace_id", actor.WorkspaceID),
		zap.String("driver_id", advance.DriverID),
		zap.String("amount", advance.Amount.String()))
	return advance, nil
}

// DeleteAdvance removes an advance
func (s *LedgerService) DeleteAdvance(ctx context.Context, actor models.Actor, id string) error {
	if err := s.gate.Check(actor, OpWriteAdvance); err != nil {
		return err
	}
	deleted, err := s.ledger.DeleteAdvance(ctx, actor.WorkspaceID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return utils.NewNotFoundError("Advance")
	}
	return nil
}

// ListDeductions returns the deductions dated in the month
func (s *LedgerService) ListDeductions(ctx context.Context, actor models.Actor, month string) ([]models.Deduction, error) {
	if err := s.gate.Check(actor, OpViewLedger); err != nil {
		return nil, err
	}
	m, err := parseMonthParam(month)
	if err != nil {
		return nil, err
	}
	return s.ledger.ListDeductions(ctx, actor.WorkspaceID, m.Start(), m.End())
}

// CreateDeduction records a deduction against a driver of the workspace
func (s *LedgerService) CreateDeduction(ctx context.Context, actor models.Actor, req *models.DeductionRequest) (*models.Deduction, error) {
	if err := s.gate.Check(actor, OpWriteDeduction); err != nil {
		return nil, err
	}
	date, err := s.validateEntry(ctx, actor, req.DriverID, req.Amount, req.Date)
	if err != nil {
		return nil, err
	}

	deduction := &models.Deduction{
		ID:          utils.GenerateID(),
		WorkspaceID: actor.WorkspaceID,
		AccountID:   actor.AccountID,
		DriverID:    req.DriverID,
		Amount:      req.Amount,
		Date:        date,
		Reason:      strings.TrimSpace(req.Reason),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.ledger.CreateDeduction(ctx, deduction); err != nil {
		return nil, err
	}
	s.log.Info("deduction recorded",
		zap.String("workspace_id", actor.WorkspaceID),
		zap.String("driver_id", deduction.DriverID),
		zap.String("amount", deduction.Amount.String()))
	return deduction, nil
}

// DeleteDeduction removes a deduction
func (s *LedgerService) DeleteDeduction(ctx context.Context, actor models.Actor, id string) error {
	if err := s.gate.Check(actor, OpWriteDeduction); err != nil {
		return err
	}
	deleted, err := s.ledger.DeleteDeduction(ctx, actor.WorkspaceID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return utils.NewNotFoundError("Deduction")
	}
	return nil
}

// validateEntry checks the shared fields of advances and deductions
func (s *LedgerService) validateEntry(ctx context.Context, actor models.Actor, driverID string, amount decimal.Decimal, date string) (time.Time, error) {
	if err := utils.ValidateNonNegative(amount, "amount"); err != nil {
		return time.Time{}, err
	}
	parsed, err := utils.ParseDate(date, "date")
	if err != nil {
		return time.Time{}, err
	}
	if _, err := s.drivers.GetDriver(ctx, actor.WorkspaceID, driverID); err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}
