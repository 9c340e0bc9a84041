package models

// Role is the kind of user acting on a workspace
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
)

// Actor is the caller of an operation, resolved per request.
// Locked mirrors the owning account's lock flag at resolution time.
type Actor struct {
	AccountID   string      `json:"accountId"`
	WorkspaceID string      `json:"workspaceId"`
	Role        Role        `json:"role"`
	ManagerID   string      `json:"managerId,omitempty"`
	Permissions Permissions `json:"permissions"`
	Locked      bool        `json:"locked"`
}
