// Package events carries session and payout notifications, either within
// the process (Bus) or across processes over Redis Streams.
package events

import (
	"context"
	"time"
)

// Event types
const (
	SessionUserChanged = "session.user_changed"
	SessionLoggedIn    = "session.logged_in"
	SessionLoggedOut   = "session.logged_out"
	PasswordChanged    = "session.password_changed"

	PayoutCreated  = "payout.created"
	PayoutApproved = "payout.approved"
	PayoutRejected = "payout.rejected"
	PayoutSettled  = "payout.settled"
)

// Stream names
const (
	SessionEventsStream = "afloat.session.events"
	PayoutEventsStream  = "afloat.payout.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Publisher delivers an event to a stream.
type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// Handler consumes one event.
type Handler func(ctx context.Context, event Event) error

// Session events
type SessionEvent struct {
	Identity  string `json:"identity"`
	ProfileID string `json:"profileId"`
}

// Payout events
type PayoutEvent struct {
	PayoutID  string  `json:"payoutId"`
	ProfileID string  `json:"profileId"`
	Channel   string  `json:"channel"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Approval  string  `json:"approvalStatus"`
}
