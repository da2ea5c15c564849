// Package contactinfo describes who a payout is paid to. A ContactInfo is
// either a mobile money wallet or a bank account; Kind says which variant is
// populated.
package contactinfo

import (
	"fmt"
	"strings"

	"github.com/temboplus/afloat-go/bank"
	"github.com/temboplus/afloat-go/phone"
	"github.com/temboplus/afloat-go/schema"
	"github.com/temboplus/afloat-go/telecom"
)

// Kind discriminates the ContactInfo variants.
type Kind string

const (
	KindMobile Kind = "Mobile"
	KindBank   Kind = "Bank"
)

// MobileContactInfo is a mobile money recipient.
type MobileContactInfo struct {
	Name        string
	PhoneNumber phone.Number
}

// BankContactInfo is a bank account recipient.
type BankContactInfo struct {
	AccName string
	Bank    bank.Bank
	AccNo   string
}

// ContactInfo is the sum of the two recipient variants. Exactly one of
// Mobile and Bank is set, matching Kind.
type ContactInfo struct {
	Kind   Kind
	Mobile *MobileContactInfo
	Bank   *BankContactInfo
}

// NewMobile builds a mobile variant. Fields are trimmed but not validated.
func NewMobile(name string, number phone.Number) ContactInfo {
	return ContactInfo{
		Kind:   KindMobile,
		Mobile: &MobileContactInfo{Name: strings.TrimSpace(name), PhoneNumber: number},
	}
}

// NewBank builds a bank variant. Fields are trimmed but not validated.
func NewBank(accName string, b bank.Bank, accNo string) ContactInfo {
	return ContactInfo{
		Kind: KindBank,
		Bank: &BankContactInfo{AccName: strings.TrimSpace(accName), Bank: b, AccNo: strings.TrimSpace(accNo)},
	}
}

type mobileShape struct {
	Name string `json:"name" validate:"required"`
}

type bankShape struct {
	AccName string `json:"accountName" validate:"required,accname"`
	AccNo   string `json:"accountNumber" validate:"required,accno"`
}

// Validate checks the mobile rules: a valid number and a non-empty name.
func (m MobileContactInfo) Validate() error {
	details := schema.Errors(mobileShape{Name: strings.TrimSpace(m.Name)})
	if !m.PhoneNumber.Valid() {
		details = append(details, schema.FieldError{Field: "phoneNumber", Message: "Invalid phone number", Type: "phone"})
	}
	if len(details) > 0 {
		return &schema.ValidationError{Message: "invalid mobile contact", Details: details}
	}
	return nil
}

// Validate checks the bank rules: a registered bank, a well-formed account
// name and a well-formed account number.
func (b BankContactInfo) Validate() error {
	details := schema.Errors(bankShape{AccName: b.AccName, AccNo: b.AccNo})
	if !b.Bank.Validate() {
		details = append(details, schema.FieldError{Field: "bank", Message: "Unknown bank", Type: "bank"})
	}
	if len(details) > 0 {
		return &schema.ValidationError{Message: "invalid bank contact", Details: details}
	}
	return nil
}

// Validate dispatches on Kind.
func (c ContactInfo) Validate() error {
	switch c.Kind {
	case KindMobile:
		if c.Mobile == nil {
			return fmt.Errorf("mobile contact info is empty")
		}
		return c.Mobile.Validate()
	case KindBank:
		if c.Bank == nil {
			return fmt.Errorf("bank contact info is empty")
		}
		return c.Bank.Validate()
	default:
		return fmt.Errorf("unknown contact kind %q", c.Kind)
	}
}

// DisplayName is the recipient's name.
func (c ContactInfo) DisplayName() string {
	switch c.Kind {
	case KindMobile:
		return c.Mobile.Name
	case KindBank:
		return c.Bank.AccName
	default:
		return ""
	}
}

// AccountLabel is a short human description of the destination account.
func (c ContactInfo) AccountLabel() string {
	switch c.Kind {
	case KindMobile:
		return c.Mobile.PhoneNumber.Format()
	case KindBank:
		return c.Bank.Bank.ShortName + " " + c.Bank.AccNo
	default:
		return ""
	}
}

// ContactChannel is the channel stored on a contact record: the operator
// code for mobile, the SWIFT code for bank.
func (c ContactInfo) ContactChannel() (string, error) {
	switch c.Kind {
	case KindMobile:
		op, ok := c.Mobile.PhoneNumber.Telecom()
		if !ok {
			return "", fmt.Errorf("no operator for %s", c.Mobile.PhoneNumber.Compact())
		}
		return op.ID, nil
	case KindBank:
		return c.Bank.Bank.SwiftCode, nil
	default:
		return "", fmt.Errorf("unknown contact kind %q", c.Kind)
	}
}

// AccountNumber is the identifier stored on a contact record.
func (c ContactInfo) AccountNumber() string {
	switch c.Kind {
	case KindMobile:
		return c.Mobile.PhoneNumber.MSISDN()
	case KindBank:
		return c.Bank.AccNo
	default:
		return ""
	}
}

// PayoutRouting returns the channel and msisdn a payout to c is sent with.
// Bank destinations are encoded as "SWIFTCODE:ACCOUNTNUMBER".
func (c ContactInfo) PayoutRouting() (channel, msisdn string, err error) {
	switch c.Kind {
	case KindMobile:
		op, ok := c.Mobile.PhoneNumber.Telecom()
		if !ok {
			return "", "", fmt.Errorf("no operator for %s", c.Mobile.PhoneNumber.Compact())
		}
		return telecom.PayoutChannel(op), c.Mobile.PhoneNumber.MSISDN(), nil
	case KindBank:
		return bank.PayoutChannel, c.Bank.Bank.SwiftCode + ":" + c.Bank.AccNo, nil
	default:
		return "", "", fmt.Errorf("unknown contact kind %q", c.Kind)
	}
}
