package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// TripService manages trips and trip templates
type TripService struct {
	gate    *Gate
	drivers DriverStore
	trips   TripStore
	log     *zap.Logger
}

// NewTripService creates a new trip service
func NewTripService(gate *Gate, drivers DriverStore, trips TripStore, log *zap.Logger) *TripService {
	return &TripService{gate: gate, drivers: drivers, trips: trips, log: log}
}

// ListTrips returns the trips dated in the month
func (s *TripService) ListTrips(ctx context.Context, actor models.Actor, month string) ([]models.Trip, error) {
	if err := s.gate.Check(actor, OpViewTrips); err != nil {
		return nil, err
	}
	m, err := parseMonthParam(month)
	if err != nil {
		return nil, err
	}
	return s.trips.ListTrips(ctx, actor.WorkspaceID, m.Start(), m.End())
}

// SaveTrip creates a trip, or updates it when req.ID names an existing trip
func (s *TripService) SaveTrip(ctx context.Context, actor models.Actor, req *models.TripRequest) (*models.Trip, error) {
	if err := s.gate.Check(actor, OpWriteTrip); err != nil {
		return nil, err
	}

	if err := utils.ValidateRequired(req.Route, "route"); err != nil {
		return nil, err
	}
	if err := utils.ValidateNonNegative(req.Allowance, "allowance"); err != nil {
		return nil, err
	}
	date, err := utils.ParseDate(req.Date, "date")
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.TripPending
	}
	if !status.Valid() {
		return nil, utils.NewValidationError("status must be pending or completed")
	}
	if _, err := s.drivers.GetDriver(ctx, actor.WorkspaceID, req.DriverID); err != nil {
		return nil, err
	}

	trip := &models.Trip{
		ID:          utils.GenerateID(),
		WorkspaceID: actor.WorkspaceID,
		AccountID:   actor.AccountID,
		CreatedAt:   time.Now().UTC(),
	}
	if req.ID != "" {
		existing, err := s.trips.GetTrip(ctx, actor.WorkspaceID, req.ID)
		if err != nil {
			return nil, err
		}
		trip = existing
	}
	trip.DriverID = req.DriverID
	trip.Route = strings.TrimSpace(req.Route)
	trip.Date = date
	trip.Allowance = req.Allowance
	trip.Status = status

	if err := s.trips.SaveTrip(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// CompleteTrip marks a pending trip completed so its allowance counts toward payroll
func (s *TripService) CompleteTrip(ctx context.Context, actor models.Actor, id string) (*models.Trip, error) {
	if err := s.gate.Check(actor, OpWriteTrip); err != nil {
		return nil, err
	}
	trip, err := s.trips.GetTrip(ctx, actor.WorkspaceID, id)
	if err != nil {
		return nil, err
	}
	if trip.Status == models.TripCompleted {
		return trip, nil
	}

	trip.Status = models.TripCompleted
	if err := s.trips.SaveTrip(ctx, trip); err != nil {
		return nil, err
	}
	s.log.Info("trip completed", zap.String("workspace_id", actor.WorkspaceID), zap.String("trip_id", id))
	return trip, nil
}

// DeleteTrip removes a trip
func (s *TripService) DeleteTrip(ctx context.Context, actor models.Actor, id string) error {
	if err := s.gate.Check(actor, OpWriteTrip); err != nil {
		return err
	}
	deleted, err := s.trips.DeleteTrip(ctx, actor.WorkspaceID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return utils.NewNotFoundError("Trip")
	}
	return nil
}

// ListTemplates returns the trip templates of the workspace
func (s *TripService) ListTemplates(ctx context.Context, actor models.Actor) ([]models.TripTemplate, error) {
	if err := s.gate.Check(actor, OpViewTrips); err != nil {
		return nil, err
	}
	return s.trips.ListTemplates(ctx, actor.WorkspaceID)
}

// CreateTemplate stores a named route with a default allowance
func (s *TripService) CreateTemplate(ctx context.Context, actor models.Actor, req *models.TripTemplateRequest) (*models.TripTemplate, error) {
	if err := s.gate.Check(actor, OpWriteTemplate); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := utils.ValidateNonNegative(req.DefaultAmount, "default amount"); err != nil {
		return nil, err
	}

	template := &models.TripTemplate{
		ID:            utils.GenerateID(),
		WorkspaceID:   actor.WorkspaceID,
		AccountID:     actor.AccountID,
		Name:          strings.TrimSpace(req.Name),
		DefaultAmount: req.DefaultAmount,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.trips.CreateTemplate(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// DeleteTemplate removes a trip template
func (s *TripService) DeleteTemplate(ctx context.Context, actor models.Actor, id string) error {
	if err := s.gate.Check(actor, OpWriteTemplate); err != nil {
		return err
	}
	deleted, err := s.trips.DeleteTemplate(ctx, actor.WorkspaceID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return utils.NewNotFoundError("Trip template")
	}
	return nil
}
