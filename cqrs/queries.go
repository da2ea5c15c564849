package cqrs

import (
	"net/url"
	"strconv"
	"time"

	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/schema"
)

// ---------- Contact queries ----------

// ListContactsQuery filters saved contacts. A zero Type lists all.
type ListContactsQuery struct {
	Type models.ContactType `validate:"omitempty,oneof=Bank Mobile"`
}

func (q ListContactsQuery) Values() url.Values {
	v := url.Values{}
	if q.Type != "" {
		v.Set("type", string(q.Type))
	}
	return v
}

// ---------- Payout queries ----------

// ListPayoutsQuery pages through payouts, newest first.
type ListPayoutsQuery struct {
	Approval models.ApprovalStatus `validate:"omitempty,oneof=Pending Approved Rejected"`
	Page     int                   `validate:"gte=0"`
	Limit    int                   `validate:"gte=0,lte=100"`
}

func (q ListPayoutsQuery) Values() url.Values {
	v := url.Values{}
	if q.Approval != "" {
		v.Set("approvalStatus", string(q.Approval))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// ---------- Wallet queries ----------

// StatementQuery selects statement entries between From and To, inclusive.
// Zero bounds are open.
type StatementQuery struct {
	From time.Time
	To   time.Time
}

// Validate rejects a window that ends before it starts.
func (q StatementQuery) Validate() error {
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return &schema.ValidationError{
			Message: "invalid data",
			Details: []schema.FieldError{{Field: "endDate", Message: "endDate must not be before startDate", Type: "gtefield"}},
		}
	}
	return nil
}

func (q StatementQuery) Values() url.Values {
	v := url.Values{}
	if !q.From.IsZero() {
		v.Set("startDate", q.From.UTC().Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		v.Set("endDate", q.To.UTC().Format(time.RFC3339))
	}
	return v
}
