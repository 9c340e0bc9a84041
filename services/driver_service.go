package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// DriverService manages the roster of a workspace
type DriverService struct {
	gate    *Gate
	drivers DriverStore
	log     *zap.Logger
}

// NewDriverService creates a new driver service
func NewDriverService(gate *Gate, drivers DriverStore, log *zap.Logger) *DriverService {
	return &DriverService{gate: gate, drivers: drivers, log: log}
}

// ListDrivers returns the roster, optionally without soft deleted drivers
func (s *DriverService) ListDrivers(ctx context.Context, actor models.Actor, activeOnly bool) ([]models.Driver, error) {
	if err := s.gate.Check(actor, OpViewDrivers); err != nil {
		return nil, err
	}
	return s.drivers.ListDrivers(ctx, actor.WorkspaceID, activeOnly)
}

// CreateDriver adds a driver to the actor's workspace
func (s *DriverService) CreateDriver(ctx context.Context, actor models.Actor, req *models.DriverRequest) (*models.Driver, error) {
	if err := s.gate.Check(actor, OpWriteDriver); err != nil {
		return nil, err
	}

	driver := &models.Driver{
		ID:          utils.GenerateID(),
		WorkspaceID: actor.WorkspaceID,
		AccountID:   actor.AccountID,
		Status:      models.DriverActive,
		CreatedAt:   time.Now().UTC(),
	}
	if err := applyDriverRequest(driver, req); err != nil {
		return nil, err
	}

	if err := s.drivers.CreateDriver(ctx, driver); err != nil {
		return nil, err
	}
	s.log.Info("driver created", zap.String("workspace_id", actor.WorkspaceID), zap.String("driver_id", driver.ID))
	return driver, nil
}

// UpdateDriver changes a driver's details. The workspace never changes.
func (s *DriverService) UpdateDriver(ctx context.Context, actor models.Actor, id string, req *models.DriverRequest) (*models.Driver, error) {
	if err := s.gate.Check(actor, OpWriteDriver); err != nil {
		return nil, err
	}

	driver, err := s.drivers.GetDriver(ctx, actor.WorkspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := applyDriverRequest(driver, req); err != nil {
		return nil, err
	}

	if err := s.drivers.UpdateDriver(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// CloseDriver soft deletes a driver. Their history stays in place.
func (s *DriverService) CloseDriver(ctx context.Context, actor models.Actor, id string) error {
	if err := s.gate.Check(actor, OpWriteDriver); err != nil {
		return err
	}
	if err := s.drivers.SetDriverStatus(ctx, actor.WorkspaceID, id, models.DriverClosed); err != nil {
		return err
	}
	s.log.Info("driver closed", zap.String("workspace_id", actor.WorkspaceID), zap.String("driver_id", id))
	return nil
}

func applyDriverRequest(driver *models.Driver, req *models.DriverRequest) error {
	if err := utils.ValidateRequired(req.Name, "name"); err != nil {
		return err
	}
	if err := utils.ValidateNonNegative(req.MonthlySalary, "monthly salary"); err != nil {
		return err
	}
	joining, err := utils.ParseDate(req.JoiningDate, "joining date")
	if err != nil {
		return err
	}
	leaving, err := utils.ParseOptionalDate(req.LeavingDate, "leaving date")
	if err != nil {
		return err
	}
	if leaving != nil && leaving.Before(joining) {
		return utils.NewValidationError("leaving date cannot be before joining date")
	}

	driver.Name = strings.TrimSpace(req.Name)
	driver.Phone = strings.TrimSpace(req.Phone)
	driver.MonthlySalary = req.MonthlySalary
	driver.JoiningDate = joining
	driver.LeavingDate = leaving
	return nil
}
