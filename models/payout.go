package models

import (
	"strings"
	"time"

	"github.com/temboplus/afloat-go/bank"
	"github.com/temboplus/afloat-go/contactinfo"
	"github.com/temboplus/afloat-go/narration"
	"github.com/temboplus/afloat-go/schema"
)

// TransactionStatus is the settlement state reported by the payment channel.
// It is also the type of the derived, externally visible payout status.
type TransactionStatus string

const (
	StatusCreated  TransactionStatus = "CREATED"
	StatusPending  TransactionStatus = "PENDING"
	StatusPaid     TransactionStatus = "PAID"
	StatusFailed   TransactionStatus = "FAILED"
	StatusRejected TransactionStatus = "REJECTED"
)

// ApprovalStatus is the maker-checker workflow state of a payout.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// Actor identifies who created or actioned a payout.
type Actor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Identity string `json:"identity"`
}

// Payout is a disbursement to a mobile wallet or bank account. Msisdn holds
// either a phone number or a "SWIFTCODE:ACCOUNTNUMBER" pair.
type Payout struct {
	ID                string            `json:"id" validate:"required"`
	ProfileID         string            `json:"profileId" validate:"required"`
	PayeeName         string            `json:"payeeName" validate:"required"`
	Channel           string            `json:"channel" validate:"required"`
	Msisdn            string            `json:"msisdn" validate:"required"`
	Amount            Amount            `json:"amount" validate:"gt=0"`
	Description       string            `json:"description"`
	Notes             *string           `json:"notes,omitempty"`
	TransactionStatus TransactionStatus `json:"status" validate:"required"`
	ApprovalStatus    ApprovalStatus    `json:"approvalStatus"`
	PartnerReference  *string           `json:"partnerReference,omitempty"`
	CreatedBy         *Actor            `json:"createdBy,omitempty"`
	ActionedBy        *Actor            `json:"actionedBy,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// NewPayout decodes and validates a payout payload.
func NewPayout(raw []byte) (Payout, error) {
	var p Payout
	if err := schema.Decode(raw, &p); err != nil {
		return Payout{}, err
	}
	return p, nil
}

// PayoutFromJSON is NewPayout that reports failure instead of an error.
func PayoutFromJSON(raw []byte) (Payout, bool) {
	p, err := NewPayout(raw)
	return p, err == nil
}

// Status derives the visible status. Approval dominates: a rejected payout
// is REJECTED and a pending one PENDING whatever the channel says. Once
// approved, the channel decides between FAILED and PAID. Unknown approval
// states pass the transaction status through.
func (p Payout) Status() TransactionStatus {
	return DeriveStatus(p.ApprovalStatus, p.TransactionStatus)
}

// DeriveStatus is the status rule behind Payout.Status.
func DeriveStatus(approval ApprovalStatus, tx TransactionStatus) TransactionStatus {
	switch approval {
	case ApprovalRejected:
		return StatusRejected
	case ApprovalApproved:
		if tx == StatusFailed {
			return StatusFailed
		}
		return StatusPaid
	case ApprovalPending:
		return StatusPending
	default:
		return tx
	}
}

// Info derives the recipient from msisdn and channel, falling back to the
// description when those do not resolve.
func (p Payout) Info() (contactinfo.ContactInfo, bool) {
	info, ok := contactinfo.Derive(contactinfo.Source{
		Identifier: p.Msisdn,
		Channel:    p.Channel,
		Bank:       strings.EqualFold(p.Channel, bank.PayoutChannel),
		Name:       p.PayeeName,
	})
	if ok {
		return info, true
	}
	return p.Narration().ContactDetails()
}

// Narration wraps the description for parsing and display.
func (p Payout) Narration() narration.Narration {
	return narration.New(p.Description)
}

// IsActionable reports whether an approver can still approve or reject.
func (p Payout) IsActionable() bool {
	return p.ApprovalStatus == ApprovalPending
}
