package cqrs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/schema"
)

func TestQueryValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"empty contacts", ListContactsQuery{}.Values().Encode(), ""},
		{"bank contacts", ListContactsQuery{Type: models.ContactTypeBank}.Values().Encode(), "type=Bank"},
		{"payouts", ListPayoutsQuery{Approval: models.ApprovalPending, Page: 2, Limit: 20}.Values().Encode(), "approvalStatus=Pending&limit=20&page=2"},
		{
			"statement",
			StatementQuery{
				From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			}.Values().Encode(),
			"endDate=2024-01-31T00%3A00%3A00Z&startDate=2024-01-01T00%3A00%3A00Z",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestStatementQueryValidate(t *testing.T) {
	now := time.Now()
	assert.NoError(t, StatementQuery{}.Validate())
	assert.NoError(t, StatementQuery{From: now}.Validate())
	assert.NoError(t, StatementQuery{From: now, To: now}.Validate())

	err := StatementQuery{From: now, To: now.Add(-time.Hour)}.Validate()
	assert.True(t, schema.IsValidationError(err))
}

func TestCommandValidation(t *testing.T) {
	tests := []struct {
		name    string
		cmd     any
		wantErr bool
	}{
		{"login ok", LoginCommand{Identity: "a@b.com", Password: "x"}, false},
		{"login missing password", LoginCommand{Identity: "a@b.com"}, true},
		{"reset ok", ResetPasswordCommand{CurrentPassword: "oldpassword", NewPassword: "newpassword"}, false},
		{"reset same password", ResetPasswordCommand{CurrentPassword: "samepassword", NewPassword: "samepassword"}, true},
		{"reset short", ResetPasswordCommand{CurrentPassword: "old", NewPassword: "short"}, true},
		{"payout zero amount", CreatePayoutCommand{}, true},
		{"decide missing id", DecidePayoutCommand{}, true},
		{"list payouts bad approval", ListPayoutsQuery{Approval: "Maybe"}, true},
		{"list payouts too many", ListPayoutsQuery{Limit: 500}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate(tt.cmd)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
