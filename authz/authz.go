// Package authz decides which roles may perform which actions on workspace resources.
package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Resources guarded by the authorizer
const (
	ResourceDrivers    = "drivers"
	ResourceAdvances   = "advances"
	ResourceDeductions = "deductions"
	ResourceTrips      = "trips"
	ResourceTemplates  = "templates"
	ResourcePayroll    = "payroll"
	ResourceSettings   = "settings"
	ResourceWorkspaces = "workspaces"
	ResourceManagers   = "managers"
)

// Actions on resources
const (
	ActionRead  = "read"
	ActionWrite = "write"
	ActionClose = "close"
)

// Subjects. Owners inherit every capability; managers are granted capabilities one by one.
const (
	SubjectOwner            = "role:owner"
	CapabilityDrivers       = "cap:drivers"
	CapabilityAdvances      = "cap:advances"
	CapabilityDeductions    = "cap:deductions"
	CapabilityTrips         = "cap:trips"
	CapabilityClosePayroll  = "cap:close-payroll"
	CapabilityAdministrator = "cap:administration"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var policies = [][]string{
	{CapabilityDrivers, ResourceDrivers, ActionWrite},
	{CapabilityAdvances, ResourceAdvances, ActionWrite},
	{CapabilityDeductions, ResourceDeductions, ActionWrite},
	{CapabilityTrips, ResourceTrips, ActionWrite},
	{CapabilityTrips, ResourceTemplates, ActionWrite},
	{CapabilityClosePayroll, ResourcePayroll, ActionClose},
	{CapabilityAdministrator, ResourceSettings, ActionWrite},
	{CapabilityAdministrator, ResourceWorkspaces, ActionWrite},
	{CapabilityAdministrator, ResourceManagers, ActionWrite},
}

var ownerGrants = [][]string{
	{SubjectOwner, CapabilityDrivers},
	{SubjectOwner, CapabilityAdvances},
	{SubjectOwner, CapabilityDeductions},
	{SubjectOwner, CapabilityTrips},
	{SubjectOwner, CapabilityClosePayroll},
	{SubjectOwner, CapabilityAdministrator},
}

// Authorizer wraps a casbin enforcer loaded with the static policy above
type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewAuthorizer builds the enforcer
func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz: load model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: create enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("authz: add policies: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicies(ownerGrants); err != nil {
		return nil, fmt.Errorf("authz: add grants: %w", err)
	}
	return &Authorizer{enforcer: enforcer}, nil
}

// Authorize reports whether any of the subjects may perform action on object
func (a *Authorizer) Authorize(subjects []string, object, action string) (bool, error) {
	for _, subject := range subjects {
		ok, err := a.enforcer.Enforce(subject, object, action)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// SubjectFromRole maps a role slug to its subject
func SubjectFromRole(role string) string {
	role = strings.TrimSpace(strings.ToLower(role))
	if role == "" {
		role = "anonymous"
	}
	return "role:" + role
}
