// Package cqrs holds the command and query values accepted by the
// repositories. Commands carry validate tags and are checked with the schema
// package before anything is sent.
package cqrs

import (
	"github.com/temboplus/afloat-go/contactinfo"
	"github.com/temboplus/afloat-go/models"
)

// ---------- Session commands ----------

type LoginCommand struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordCommand struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,nefield=CurrentPassword"`
}

// ---------- Contact commands ----------

// CreateContactCommand saves Info as a new contact. DisplayName defaults to
// the recipient's name.
type CreateContactCommand struct {
	Info        contactinfo.ContactInfo `json:"-"`
	DisplayName string                  `json:"displayName,omitempty"`
}

type UpdateContactCommand struct {
	ContactID   string                  `json:"-" validate:"required"`
	Info        contactinfo.ContactInfo `json:"-"`
	DisplayName string                  `json:"displayName,omitempty"`
}

type DeleteContactCommand struct {
	ContactID string `validate:"required"`
}

// ---------- Payout commands ----------

// CreatePayoutCommand pays Amount to the recipient described by Info.
type CreatePayoutCommand struct {
	Info   contactinfo.ContactInfo `json:"-"`
	Amount models.Amount           `json:"amount" validate:"gt=0"`
	Notes  string                  `json:"notes,omitempty" validate:"max=255"`
}

// DecidePayoutCommand approves or rejects a pending payout.
type DecidePayoutCommand struct {
	PayoutID string `json:"-" validate:"required"`
	Notes    string `json:"notes,omitempty" validate:"max=255"`
}

// ---------- User commands ----------

type CreateManagedUserCommand struct {
	Name     string `json:"name" validate:"required"`
	Identity string `json:"identity" validate:"required"`
	RoleID   string `json:"roleId" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}
