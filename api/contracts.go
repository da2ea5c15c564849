package api

import "github.com/temboplus/afloat-go/models"

// LoginResponse is the body of a successful Login.
type LoginResponse struct {
	Name          string         `json:"name,omitempty"`
	Profile       models.Profile `json:"profile"`
	Token         string         `json:"token" validate:"required"`
	Access        []string       `json:"access"`
	ResetPassword bool           `json:"resetPassword"`
}

// IdentityResponse is the body of Identity.
type IdentityResponse struct {
	Identity      string `json:"identity" validate:"required"`
	Name          string `json:"name,omitempty"`
	ResetPassword bool   `json:"resetPassword"`
}

// ContactRequest is the body of CreateContact and UpdateContact.
type ContactRequest struct {
	DisplayName string             `json:"displayName" validate:"required"`
	AccountNo   string             `json:"accNo" validate:"required"`
	Channel     string             `json:"channel" validate:"required"`
	Type        models.ContactType `json:"type" validate:"required,oneof=Bank Mobile"`
}

// PayoutRequest is the body of CreatePayout.
type PayoutRequest struct {
	PayeeName   string        `json:"payeeName" validate:"required"`
	Channel     string        `json:"channel" validate:"required"`
	Msisdn      string        `json:"msisdn" validate:"required"`
	Amount      models.Amount `json:"amount" validate:"gt=0"`
	Description string        `json:"description" validate:"required"`
	Notes       *string       `json:"notes,omitempty"`
}

// DecisionRequest is the body of ApprovePayout and RejectPayout.
type DecisionRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// PayoutPage is the body of ListPayouts.
type PayoutPage struct {
	Results []models.Payout `json:"results" validate:"dive"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

// MessageResponse is the body of endpoints that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}
