package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temboplus/afloat-go/contactinfo"
)

func TestDeriveStatus(t *testing.T) {
	txStatuses := []TransactionStatus{StatusCreated, StatusPending, StatusPaid, StatusFailed, StatusRejected}

	tests := []struct {
		approval ApprovalStatus
		want     func(tx TransactionStatus) TransactionStatus
	}{
		{ApprovalRejected, func(TransactionStatus) TransactionStatus { return StatusRejected }},
		{ApprovalApproved, func(tx TransactionStatus) TransactionStatus {
			if tx == StatusFailed {
				return StatusFailed
			}
			return StatusPaid
		}},
		{ApprovalPending, func(TransactionStatus) TransactionStatus { return StatusPending }},
		{ApprovalStatus(""), func(tx TransactionStatus) TransactionStatus { return tx }},
		{ApprovalStatus("Escalated"), func(tx TransactionStatus) TransactionStatus { return tx }},
	}

	valid := map[TransactionStatus]bool{
		StatusRejected: true, StatusFailed: true, StatusPaid: true, StatusPending: true, StatusCreated: true,
	}

	for _, tt := range tests {
		for _, tx := range txStatuses {
			t.Run(fmt.Sprintf("%s/%s", tt.approval, tx), func(t *testing.T) {
				p := Payout{ApprovalStatus: tt.approval, TransactionStatus: tx}
				got := p.Status()
				assert.Equal(t, tt.want(tx), got)
				assert.True(t, valid[got])
			})
		}
	}
}

func TestNewPayout(t *testing.T) {
	raw := []byte(`{
		"id": "pay-1",
		"profileId": "prf-1",
		"payeeName": "Jane Doe",
		"channel": "TZ-TIGO-B2C",
		"msisdn": "255754123456",
		"amount": "15,000.50",
		"description": "PAYOUT TO MOBILE +255754123456 JANE DOE",
		"status": "CREATED",
		"approvalStatus": "Pending",
		"createdAt": "2024-03-01T10:00:00Z",
		"updatedAt": "2024-03-01T10:00:00Z"
	}`)

	p, err := NewPayout(raw)
	require.NoError(t, err)
	assert.Equal(t, Amount(15000.50), p.Amount)
	assert.Equal(t, StatusPending, p.Status())
	assert.True(t, p.IsActionable())

	info, ok := p.Info()
	require.True(t, ok)
	assert.Equal(t, contactinfo.KindMobile, info.Kind)
	assert.Equal(t, "Jane Doe", info.Mobile.Name)
}

func TestNewPayoutRejectsBadShape(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing id", `{"profileId":"p","payeeName":"x","channel":"c","msisdn":"m","amount":1,"status":"CREATED"}`},
		{"zero amount", `{"id":"1","profileId":"p","payeeName":"x","channel":"c","msisdn":"m","amount":0,"status":"CREATED"}`},
		{"bad amount", `{"id":"1","profileId":"p","payeeName":"x","channel":"c","msisdn":"m","amount":"ten","status":"CREATED"}`},
		{"bad date", `{"id":"1","profileId":"p","payeeName":"x","channel":"c","msisdn":"m","amount":1,"status":"CREATED","createdAt":"yesterday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPayout([]byte(tt.raw))
			assert.Error(t, err)
			_, ok := PayoutFromJSON([]byte(tt.raw))
			assert.False(t, ok)
		})
	}
}

func TestPayoutInfoBankAndFallback(t *testing.T) {
	bankPayout := Payout{PayeeName: "Jane Smith", Channel: "TZ-BANK-B2C", Msisdn: "CORUTZTZ:1234567890"}
	info, ok := bankPayout.Info()
	require.True(t, ok)
	assert.Equal(t, contactinfo.KindBank, info.Kind)
	assert.Equal(t, "CRDB", info.Bank.Bank.ShortName)

	legacy := Payout{
		PayeeName:   "Jane Smith",
		Channel:     "TZ-BANK-B2C",
		Msisdn:      "garbage",
		Description: `TO_BANK => {"account_number":"1234567890","account_name":"JANE SMITH","swift_code":"NLCBTZTX"}`,
	}
	info, ok = legacy.Info()
	require.True(t, ok)
	assert.Equal(t, "NBC", info.Bank.Bank.ShortName)

	_, ok = Payout{Msisdn: "garbage", Channel: "UNKNOWN"}.Info()
	assert.False(t, ok)
}
