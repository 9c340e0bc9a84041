package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// WorkspaceService manages accounts, workspaces, settings and managers
type WorkspaceService struct {
	gate       *Gate
	workspaces WorkspaceStore
	managers   ManagerStore
	log        *zap.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(gate *Gate, workspaces WorkspaceStore, managers ManagerStore, log *zap.Logger) *WorkspaceService {
	return &WorkspaceService{gate: gate, workspaces: workspaces, managers: managers, log: log}
}

// ResolveActor builds the actor of a request from the identity asserted by
// the gateway. workspaceID may be empty for account level calls; managers
// always act on the workspace they are assigned to.
func (s *WorkspaceService) ResolveActor(ctx context.Context, accountID, workspaceID string, role models.Role, managerID string) (models.Actor, error) {
	if accountID == "" {
		return models.Actor{}, utils.NewUnauthorizedError("Missing account")
	}
	account, err := s.workspaces.GetAccount(ctx, accountID)
	if err != nil {
		if utils.IsNotFound(err) {
			return models.Actor{}, utils.NewUnauthorizedError("Unknown account")
		}
		return models.Actor{}, err
	}

	actor := models.Actor{
		AccountID:   account.ID,
		WorkspaceID: workspaceID,
		Role:        role,
		Locked:      account.IsLocked,
	}

	switch role {
	case models.RoleOwner:
	case models.RoleManager:
		manager, err := s.managers.GetManager(ctx, account.ID, managerID)
		if err != nil {
			if utils.IsNotFound(err) {
				return models.Actor{}, utils.NewUnauthorizedError("Unknown manager")
			}
			return models.Actor{}, err
		}
		if workspaceID != "" && workspaceID != manager.WorkspaceID {
			return models.Actor{}, utils.NewForbiddenError("Manager is not assigned to this workspace")
		}
		actor.WorkspaceID = manager.WorkspaceID
		actor.ManagerID = manager.ID
		actor.Permissions = manager.Permissions
	default:
		return models.Actor{}, utils.NewUnauthorizedError("Unknown role")
	}

	if actor.WorkspaceID != "" {
		workspace, err := s.workspaces.GetWorkspace(ctx, actor.WorkspaceID)
		if err != nil {
			return models.Actor{}, err
		}
		if workspace.AccountID != account.ID {
			return models.Actor{}, utils.NewNotFoundError("Workspace")
		}
	}
	return actor, nil
}

// GetAccount returns an account
func (s *WorkspaceService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.workspaces.GetAccount(ctx, id)
}

// SetLocked sets or clears the lock flag of an account. Locked accounts keep
// read access but every mutation is rejected.
func (s *WorkspaceService) SetLocked(ctx context.Context, accountID string, locked bool) (*models.Account, error) {
	if err := s.workspaces.SetAccountLocked(ctx, accountID, locked); err != nil {
		return nil, err
	}
	s.log.Info("account lock changed", zap.String("account_id", accountID), zap.Bool("locked", locked))
	return s.workspaces.GetAccount(ctx, accountID)
}

// ListWorkspaces returns the workspaces of the actor's account
func (s *WorkspaceService) ListWorkspaces(ctx context.Context, actor models.Actor) ([]models.Workspace, error) {
	workspaces, err := s.workspaces.ListWorkspaces(ctx, actor.AccountID)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleManager {
		for _, w := range workspaces {
			if w.ID == actor.WorkspaceID {
				return []models.Workspace{w}, nil
			}
		}
		return []models.Workspace{}, nil
	}
	return workspaces, nil
}

// CreateWorkspace adds a workspace with default settings
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, actor models.Actor, req *models.WorkspaceRequest) (*models.Workspace, error) {
	if err := s.gate.Check(actor, OpWriteWorkspace); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(req.Name, "name"); err != nil {
		return nil, err
	}

	workspace := &models.Workspace{
		ID:        utils.GenerateID(),
		AccountID: actor.AccountID,
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		Phone:     strings.TrimSpace(req.Phone),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.workspaces.CreateWorkspace(ctx, workspace, models.DefaultSettings(workspace.ID)); err != nil {
		return nil, err
	}
	s.log.Info("workspace created", zap.String("account_id", actor.AccountID), zap.String("workspace_id", workspace.ID))
	return workspace, nil
}

// UpdateWorkspace changes the name, address and phone of a workspace
func (s *WorkspaceService) UpdateWorkspace(ctx context.Context, actor models.Actor, id string, req *models.WorkspaceRequest) (*models.Workspace, error) {
	if err := s.gate.Check(actor, OpWriteWorkspace); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(req.Name, "name"); err != nil {
		return nil, err
	}

	workspace, err := s.ownedWorkspace(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	workspace.Name = strings.TrimSpace(req.Name)
	workspace.Address = strings.TrimSpace(req.Address)
	workspace.Phone = strings.TrimSpace(req.Phone)

	if err := s.workspaces.UpdateWorkspace(ctx, workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

// DeleteWorkspace removes a workspace and everything scoped to it
func (s *WorkspaceService) DeleteWorkspace(ctx context.Context, actor models.Actor, id string) error {
	if err := s.gate.Check(actor, OpWriteWorkspace); err != nil {
		return err
	}
	deleted, err := s.workspaces.DeleteWorkspace(ctx, actor.AccountID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return utils.NewNotFoundError("Workspace")
	}
	s.log.Info("workspace deleted", zap.String("account_id", actor.AccountID), zap.String("workspace_id", id))
	return nil
}

// GetSettings returns the settings of the actor's workspace
func (s *WorkspaceService) GetSettings(ctx context.Context, actor models.Actor) (*models.Settings, error) {
	if err := s.gate.Check(actor, OpViewSettings); err != nil {
		return nil, err
	}
	return s.workspaces.GetSettings(ctx, actor.WorkspaceID)
}

// UpdateSettings changes the fields set in req
func (s *WorkspaceService) UpdateSettings(ctx context.Context, actor models.Actor, req *models.SettingsRequest) (*models.Settings, error) {
	if err := s.gate.Check(actor, OpWriteSettings); err != nil {
		return nil, err
	}

	settings, err := s.workspaces.GetSettings(ctx, actor.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if req.CalcType != "" {
		if !req.CalcType.Valid() {
			return nil, utils.NewValidationError("calcType must be prorated or monthly")
		}
		settings.CalcType = req.CalcType
	}
	if currency := strings.ToUpper(strings.TrimSpace(req.Currency)); currency != "" {
		settings.Currency = currency
	}
	if req.PaymentTypes != nil {
		settings.PaymentTypes = utils.CleanLabels(req.PaymentTypes)
	}

	if err := s.workspaces.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Dashboard returns the summary figures of the actor's workspace
func (s *WorkspaceService) Dashboard(ctx context.Context, actor models.Actor) (*models.DashboardStats, error) {
	return s.workspaces.DashboardStats(ctx, actor.AccountID, actor.WorkspaceID)
}

// ListManagers returns the managers of the actor's account
func (s *WorkspaceService) ListManagers(ctx context.Context, actor models.Actor) ([]models.Manager, error) {
	return s.managers.ListManagers(ctx, actor.AccountID)
}

// SaveManager creates a manager, or updates it when req.ID is set
func (s *WorkspaceService) SaveManager(ctx context.Context, actor models.Actor, req *models.ManagerRequest) (*models.Manager, error) {
	if err := s.gate.Check(actor, OpWriteManager); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(req.Name, "name"); err != nil {
		return nil, err
	}
	if _, err := s.ownedWorkspace(ctx, actor, req.WorkspaceID); err != nil {
		return nil, err
	}

	manager := &models.Manager{
		ID:        utils.GenerateID(),
		AccountID: actor.AccountID,
		CreatedAt: time.Now().UTC(),
	}
	if req.ID != "" {
		existing, err := s.managers.GetManager(ctx, actor.AccountID, req.ID)
		if err != nil {
			return nil, err
		}
		manager = existing
	}
	manager.WorkspaceID = req.WorkspaceID
	manager.Name = strings.TrimSpace(req.Name)
	manager.Email = utils.NormalizeEmail(req.Email)
	manager.Permissions = req.Permissions

	if err := s.managers.SaveManager(ctx, manager); err != nil {
		return nil, err
	}
	s.log.Info("manager saved", zap.String("account_id", actor.AccountID), zap.String("manager_id", manager.ID))
	return manager, nil
}

// DeleteManager removes a manager
func (s *WorkspaceService) DeleteManager(ctx context.Context, actor models.Actor, id string) error {
	if err := s.gate.Check(actor, OpWriteManager); err != nil {
		return err
	}
	deleted, err := s.managers.DeleteManager(ctx, actor.AccountID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return utils.NewNotFoundError("Manager")
	}
	return nil
}

// ownedWorkspace loads a workspace and hides workspaces of other accounts
func (s *WorkspaceService) ownedWorkspace(ctx context.Context, actor models.Actor, id string) (*models.Workspace, error) {
	workspace, err := s.workspaces.GetWorkspace(ctx, id)
	if err != nil {
		return nil, err
	}
	if workspace.AccountID != actor.AccountID {
		return nil, utils.NewNotFoundError("Workspace")
	}
	return workspace, nil
}
