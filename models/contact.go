package models

import (
	"time"

	"github.com/temboplus/afloat-go/contactinfo"
	"github.com/temboplus/afloat-go/schema"
)

// ContactType says whether a saved contact is a bank account or a wallet.
type ContactType string

const (
	ContactTypeBank   ContactType = "Bank"
	ContactTypeMobile ContactType = "Mobile"
)

// Contact is a saved payee. Channel is a SWIFT code for bank contacts and an
// operator code for mobile contacts.
type Contact struct {
	ID          string      `json:"id" validate:"required"`
	ProfileID   string      `json:"profileId" validate:"required"`
	DisplayName string      `json:"displayName" validate:"required"`
	AccountNo   string      `json:"accNo" validate:"required"`
	Channel     string      `json:"channel" validate:"required"`
	Type        ContactType `json:"type" validate:"required,oneof=Bank Mobile"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NewContact decodes and validates a contact payload.
func NewContact(raw []byte) (Contact, error) {
	var c Contact
	if err := schema.Decode(raw, &c); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// ContactFromJSON is NewContact that reports failure instead of an error.
func ContactFromJSON(raw []byte) (Contact, bool) {
	c, err := NewContact(raw)
	return c, err == nil
}

// Info derives the recipient details from the stored account number.
func (c Contact) Info() (contactinfo.ContactInfo, bool) {
	return contactinfo.Derive(contactinfo.Source{
		Identifier: c.AccountNo,
		Channel:    c.Channel,
		Bank:       c.Type == ContactTypeBank,
		Name:       c.DisplayName,
	})
}
