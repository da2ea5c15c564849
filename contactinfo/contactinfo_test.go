package contactinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temboplus/afloat-go/bank"
	"github.com/temboplus/afloat-go/phone"
	"github.com/temboplus/afloat-go/schema"
	"github.com/temboplus/afloat-go/telecom"
)

func mustPhone(t *testing.T, s string) phone.Number {
	t.Helper()
	n, ok := phone.From(s)
	require.True(t, ok, s)
	return n
}

func mustBank(t *testing.T, short string) bank.Bank {
	t.Helper()
	b, ok := bank.FromShortName(short)
	require.True(t, ok, short)
	return b
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		src      Source
		wantOK   bool
		wantKind Kind
		check    func(t *testing.T, c ContactInfo)
	}{
		{
			name:     "phone number wins",
			src:      Source{Identifier: "0754123456", Channel: "VODACOM", Name: "Jane Doe"},
			wantOK:   true,
			wantKind: KindMobile,
			check: func(t *testing.T, c ContactInfo) {
				assert.Equal(t, "+255754123456", c.Mobile.PhoneNumber.Compact())
				assert.Equal(t, "Jane Doe", c.Mobile.Name)
			},
		},
		{
			name:     "bank contact with swift channel",
			src:      Source{Identifier: "1234567890", Channel: "CORUTZTZ", Bank: true, Name: "Jane Smith"},
			wantOK:   true,
			wantKind: KindBank,
			check: func(t *testing.T, c ContactInfo) {
				assert.Equal(t, "CRDB", c.Bank.Bank.ShortName)
				assert.Equal(t, "1234567890", c.Bank.AccNo)
			},
		},
		{
			name:     "payout msisdn pair on bank channel",
			src:      Source{Identifier: "NMIBTZTZ:20110012345", Channel: bank.PayoutChannel, Name: "John Mushi"},
			wantOK:   true,
			wantKind: KindBank,
			check: func(t *testing.T, c ContactInfo) {
				assert.Equal(t, "NMB", c.Bank.Bank.ShortName)
				assert.Equal(t, "20110012345", c.Bank.AccNo)
			},
		},
		{
			name:     "pair whose account looks like a phone number",
			src:      Source{Identifier: "CORUTZTZ:754123456", Channel: bank.PayoutChannel, Name: "John Mushi"},
			wantOK:   true,
			wantKind: KindBank,
		},
		{
			name:   "unknown swift code",
			src:    Source{Identifier: "ZZZZTZTZ:1234567", Channel: bank.PayoutChannel},
			wantOK: false,
		},
		{
			name:   "not a phone and not a bank record",
			src:    Source{Identifier: "1234567890", Channel: "VODACOM"},
			wantOK: false,
		},
		{
			name:   "empty identifier",
			src:    Source{Identifier: "  ", Bank: true, Channel: "CORUTZTZ"},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Derive(tt.src)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantKind, c.Kind)
			if tt.check != nil {
				tt.check(t, c)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	crdb := mustBank(t, "CRDB")

	assert.NoError(t, NewMobile("Jane Doe", mustPhone(t, "0754123456")).Validate())
	assert.NoError(t, NewBank("Jane Smith", crdb, "1234567890").Validate())

	err := NewMobile("  ", mustPhone(t, "0754123456")).Validate()
	require.Error(t, err)
	assert.True(t, schema.IsValidationError(err))

	err = NewBank("Jane", bank.Bank{SwiftCode: "NOPE"}, "12 34").Validate()
	require.Error(t, err)
	ve := err.(*schema.ValidationError)
	types := []string{}
	for _, d := range ve.Details {
		types = append(types, d.Type)
	}
	assert.ElementsMatch(t, []string{"accname", "accno", "bank"}, types)

	assert.Error(t, ContactInfo{Kind: "Cash"}.Validate())
	assert.Error(t, ContactInfo{Kind: KindBank}.Validate())
}

func TestPayoutRouting(t *testing.T) {
	channel, msisdn, err := NewMobile("Jane Doe", mustPhone(t, "0754123456")).PayoutRouting()
	require.NoError(t, err)
	assert.Equal(t, telecom.PayoutChannel(telecom.Vodacom), channel)
	assert.Equal(t, "255754123456", msisdn)

	channel, msisdn, err = NewBank("Jane Smith", mustBank(t, "CRDB"), "1234567890").PayoutRouting()
	require.NoError(t, err)
	assert.Equal(t, bank.PayoutChannel, channel)
	assert.Equal(t, "CORUTZTZ:1234567890", msisdn)
}

func TestLabels(t *testing.T) {
	m := NewMobile("Jane Doe", mustPhone(t, "0712345678"))
	assert.Equal(t, "Jane Doe", m.DisplayName())
	assert.Equal(t, "+255 712 345 678", m.AccountLabel())
	ch, err := m.ContactChannel()
	require.NoError(t, err)
	assert.Equal(t, telecom.Tigo.ID, ch)
	assert.Equal(t, "255712345678", m.AccountNumber())

	b := NewBank(" Jane Smith ", mustBank(t, "NBC"), "0011223344")
	assert.Equal(t, "Jane Smith", b.DisplayName())
	assert.Equal(t, "NBC 0011223344", b.AccountLabel())
	ch, err = b.ContactChannel()
	require.NoError(t, err)
	assert.Equal(t, "NLCBTZTX", ch)
}
