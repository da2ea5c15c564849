package models

import (
	"strings"

	"github.com/temboplus/afloat-go/schema"
)

// Profile holds the personal and contact details of a signed-in business.
type Profile struct {
	ID          string  `json:"id" validate:"required"`
	FirstName   string  `json:"firstName" validate:"required"`
	LastName    string  `json:"lastName" validate:"required"`
	MiddleName  *string `json:"middleName,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	AccountNo   string  `json:"accountNo" validate:"required"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	AutoApprove *bool   `json:"autoApprove,omitempty"`
}

// ParseProfile decodes and validates a profile payload.
func ParseProfile(raw []byte) (Profile, error) {
	var p Profile
	if err := schema.Decode(raw, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// ProfileFromJSON is ParseProfile that reports failure instead of an error.
func ProfileFromJSON(raw []byte) (Profile, bool) {
	p, err := ParseProfile(raw)
	return p, err == nil
}

// FullName prefers the display name, then joins the name parts.
func (p Profile) FullName() string {
	if p.DisplayName != nil && strings.TrimSpace(*p.DisplayName) != "" {
		return strings.TrimSpace(*p.DisplayName)
	}
	parts := []string{p.FirstName}
	if p.MiddleName != nil && strings.TrimSpace(*p.MiddleName) != "" {
		parts = append(parts, strings.TrimSpace(*p.MiddleName))
	}
	parts = append(parts, p.LastName)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// AutoApproves reports whether payouts created by this profile skip approval.
func (p Profile) AutoApproves() bool {
	return p.AutoApprove != nil && *p.AutoApprove
}
