package models

import (
	"time"

	"github.com/temboplus/afloat-go/permissions"
)

// Role is a named bundle of permissions assigned to managed users.
type Role struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description *string   `json:"description,omitempty"`
	Access      []string  `json:"access"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Permissions resolves the role's access list against the catalog.
func (r Role) Permissions() permissions.Set {
	return permissions.FromAccessList(r.Access)
}

// ManagedUser is a team member as seen by an administrator.
type ManagedUser struct {
	ID            string     `json:"id" validate:"required"`
	Name          string     `json:"name" validate:"required"`
	Identity      string     `json:"identity" validate:"required"`
	RoleID        string     `json:"roleId" validate:"required"`
	IsActive      bool       `json:"isActive"`
	IsArchived    bool       `json:"isArchived"`
	ResetPassword bool       `json:"resetPassword"`
	Role          *Role      `json:"role,omitempty"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// EffectivePermissions is what the user may do: the embedded role's
// permissions, or nothing when the account is inactive, archived or has no
// role attached.
func (u ManagedUser) EffectivePermissions() permissions.Set {
	if !u.IsActive || u.IsArchived || u.Role == nil {
		return permissions.Set{}
	}
	return u.Role.Permissions()
}
