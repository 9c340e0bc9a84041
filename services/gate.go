package services

import (
	"fmt"

	"github.com/fadhlanhapp/fleetpay-backend/authz"
	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// Operation is an action on a workspace resource
type Operation struct {
	Resource string
	Action   string
}

// Mutating reports whether the operation changes stored data
func (op Operation) Mutating() bool {
	return op.Action != authz.ActionRead
}

func (op Operation) String() string {
	return op.Resource + ":" + op.Action
}

var (
	OpViewPayroll    = Operation{authz.ResourcePayroll, authz.ActionRead}
	OpClosePayroll   = Operation{authz.ResourcePayroll, authz.ActionClose}
	OpViewDrivers    = Operation{authz.ResourceDrivers, authz.ActionRead}
	OpWriteDriver    = Operation{authz.ResourceDrivers, authz.ActionWrite}
	OpViewLedger     = Operation{authz.ResourceAdvances, authz.ActionRead}
	OpWriteAdvance   = Operation{authz.ResourceAdvances, authz.ActionWrite}
	OpWriteDeduction = Operation{authz.ResourceDeductions, authz.ActionWrite}
	OpViewTrips      = Operation{authz.ResourceTrips, authz.ActionRead}
	OpWriteTrip      = Operation{authz.ResourceTrips, authz.ActionWrite}
	OpWriteTemplate  = Operation{authz.ResourceTemplates, authz.ActionWrite}
	OpViewSettings   = Operation{authz.ResourceSettings, authz.ActionRead}
	OpWriteSettings  = Operation{authz.ResourceSettings, authz.ActionWrite}
	OpWriteWorkspace = Operation{authz.ResourceWorkspaces, authz.ActionWrite}
	OpWriteManager   = Operation{authz.ResourceManagers, authz.ActionWrite}
)

// Gate rejects mutating operations for locked accounts and for actors
// lacking the capability. Read-only operations always pass.
type Gate struct {
	authorizer *authz.Authorizer
}

// NewGate creates a gate backed by the authorizer
func NewGate(authorizer *authz.Authorizer) *Gate {
	return &Gate{authorizer: authorizer}
}

// Check returns a forbidden AppError when actor may not perform op
func (g *Gate) Check(actor models.Actor, op Operation) error {
	if !op.Mutating() {
		return nil
	}
	if actor.Locked {
		return utils.NewForbiddenError(utils.ErrAccountLocked)
	}

	allowed, err := g.authorizer.Authorize(subjectsFor(actor), op.Resource, op.Action)
	if err != nil {
		return fmt.Errorf("authorize %s: %w", op, err)
	}
	if !allowed {
		return utils.NewForbiddenError(utils.ErrPermissionDenied)
	}
	return nil
}

// subjectsFor lists the authorization subjects an actor holds
func subjectsFor(actor models.Actor) []string {
	if actor.Role != models.RoleManager {
		return []string{authz.SubjectFromRole(string(actor.Role))}
	}

	p := actor.Permissions
	var subjects []string
	if p.CanManageDrivers {
		subjects = append(subjects, authz.CapabilityDrivers)
	}
	if p.CanManageAdvances {
		subjects = append(subjects, authz.CapabilityAdvances)
	}
	if p.CanManageDeductions {
		subjects = append(subjects, authz.CapabilityDeductions)
	}
	if p.CanManageTrips {
		subjects = append(subjects, authz.CapabilityTrips)
	}
	if p.CanClosePayroll {
		subjects = append(subjects, authz.CapabilityClosePayroll)
	}
	return subjects
}
