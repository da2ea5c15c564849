package models

import (
	"time"

	"github.com/temboplus/afloat-go/contactinfo"
	"github.com/temboplus/afloat-go/narration"
)

// Wallet is the disbursement account payouts are funded from.
type Wallet struct {
	ID           string    `json:"id" validate:"required"`
	ProfileID    string    `json:"profileId" validate:"required"`
	AccountNo    string    `json:"accountNo" validate:"required"`
	AccountName  string    `json:"accountName"`
	Channel      string    `json:"channel"`
	CountryCode  string    `json:"countryCode" validate:"required,len=2"`
	CurrencyCode string    `json:"currencyCode" validate:"required,len=3"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WalletBalance is a point-in-time available balance.
type WalletBalance struct {
	Available    Amount    `json:"availableBalance"`
	CurrencyCode string    `json:"currencyCode" validate:"required,len=3"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Entry directions on a statement.
const (
	Debit  = "debit"
	Credit = "credit"
)

// StatementEntry is one line of a wallet statement.
type StatementEntry struct {
	Reference      string    `json:"txnRef"`
	DebitOrCredit  string    `json:"debitOrCredit" validate:"required,oneof=debit credit"`
	Narration      string    `json:"narration"`
	TxnDate        time.Time `json:"txnDate"`
	ValueDate      time.Time `json:"valueDate"`
	AmountDebited  Amount    `json:"amountDebited"`
	AmountCredited Amount    `json:"amountCredited"`
	Balance        Amount    `json:"balance"`
}

// Net is the signed movement of the entry.
func (e StatementEntry) Net() Amount {
	return e.AmountCredited - e.AmountDebited
}

// ContactDetails recovers the recipient from the entry's narration.
func (e StatementEntry) ContactDetails() (contactinfo.ContactInfo, bool) {
	return narration.New(e.Narration).ContactDetails()
}
