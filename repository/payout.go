package repository

import (
	"context"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/cqrs"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/narration"
	"github.com/temboplus/afloat-go/permissions"
	"github.com/temboplus/afloat-go/schema"
	"github.com/temboplus/afloat-go/storage"
)

// PayoutRepository creates, lists and decides payouts. Settled payouts are
// kept in an optional view cache, keyed by profile; they no longer change.
type PayoutRepository struct {
	session Session
	cache   *storage.ViewCache[models.Payout]
}

// NewPayoutRepository creates the repository. cache may be nil.
func NewPayoutRepository(session Session, cache *storage.ViewCache[models.Payout]) *PayoutRepository {
	return &PayoutRepository{session: session, cache: cache}
}

func (r *PayoutRepository) List(ctx context.Context, q cqrs.ListPayoutsQuery) (api.PayoutPage, error) {
	if err := r.session.Require(ctx, permissions.PayoutView); err != nil {
		return api.PayoutPage{}, err
	}
	if err := schema.Validate(q); err != nil {
		return api.PayoutPage{}, err
	}
	page, err := api.Call[api.PayoutPage](ctx, r.session, api.Request{Endpoint: api.ListPayouts, Query: q.Values()})
	if err != nil {
		return api.PayoutPage{}, err
	}
	for i := range page.Results {
		r.remember(ctx, &page.Results[i])
	}
	return page, nil
}

func (r *PayoutRepository) Get(ctx context.Context, id string) (models.Payout, error) {
	if err := r.session.Require(ctx, permissions.PayoutView); err != nil {
		return models.Payout{}, err
	}
	if p, ok := r.cached(ctx, id); ok {
		return p, nil
	}
	p, err := api.Call[models.Payout](ctx, r.session, api.Request{Endpoint: api.GetPayout, Params: byID(id)})
	if err != nil {
		return models.Payout{}, err
	}
	r.remember(ctx, &p)
	return p, nil
}

// Create pays cmd.Amount to cmd.Info. The narration stored as the payout's
// description encodes the recipient so it can be recovered later.
func (r *PayoutRepository) Create(ctx context.Context, cmd cqrs.CreatePayoutCommand) (models.Payout, error) {
	if err := r.session.Require(ctx, permissions.PayoutCreate); err != nil {
		return models.Payout{}, err
	}
	if err := schema.Validate(cmd); err != nil {
		return models.Payout{}, err
	}
	if err := cmd.Info.Validate(); err != nil {
		return models.Payout{}, err
	}

	channel, msisdn, err := cmd.Info.PayoutRouting()
	if err != nil {
		return models.Payout{}, err
	}
	description, err := narration.Generate(cmd.Info)
	if err != nil {
		return models.Payout{}, err
	}

	body := api.PayoutRequest{
		PayeeName:   cmd.Info.DisplayName(),
		Channel:     channel,
		Msisdn:      msisdn,
		Amount:      cmd.Amount,
		Description: description,
	}
	if cmd.Notes != "" {
		body.Notes = &cmd.Notes
	}

	return api.Call[models.Payout](ctx, r.session, api.Request{Endpoint: api.CreatePayout, Body: body})
}

func (r *PayoutRepository) Approve(ctx context.Context, cmd cqrs.DecidePayoutCommand) (models.Payout, error) {
	return r.decide(ctx, api.ApprovePayout, cmd)
}

func (r *PayoutRepository) Reject(ctx context.Context, cmd cqrs.DecidePayoutCommand) (models.Payout, error) {
	return r.decide(ctx, api.RejectPayout, cmd)
}

func (r *PayoutRepository) decide(ctx context.Context, ep api.Endpoint, cmd cqrs.DecidePayoutCommand) (models.Payout, error) {
	if err := r.session.Require(ctx, permissions.PayoutApprove); err != nil {
		return models.Payout{}, err
	}
	if err := schema.Validate(cmd); err != nil {
		return models.Payout{}, err
	}

	var body api.DecisionRequest
	if cmd.Notes != "" {
		body.Notes = &cmd.Notes
	}
	p, err := api.Call[models.Payout](ctx, r.session, api.Request{Endpoint: ep, Params: byID(cmd.PayoutID), Body: body})
	if err != nil {
		return models.Payout{}, err
	}
	r.remember(ctx, &p)
	return p, nil
}

// cached returns a settled payout remembered for the signed-in profile.
func (r *PayoutRepository) cached(ctx context.Context, id string) (models.Payout, bool) {
	if r.cache == nil {
		return models.Payout{}, false
	}
	profileID, ok := r.profileID(ctx)
	if !ok {
		return models.Payout{}, false
	}
	p, ok := r.cache.Get(ctx, profileID+":"+id)
	if !ok || p.ProfileID != profileID {
		return models.Payout{}, false
	}
	return *p, true
}

func (r *PayoutRepository) remember(ctx context.Context, p *models.Payout) {
	if r.cache == nil || !settled(*p) {
		return
	}
	profileID, ok := r.profileID(ctx)
	if !ok || p.ProfileID != profileID {
		return
	}
	r.cache.Set(ctx, profileID+":"+p.ID, p)
}

func (r *PayoutRepository) profileID(ctx context.Context) (string, bool) {
	user, err := r.session.CurrentUser(ctx)
	if err != nil || user == nil {
		return "", false
	}
	return user.Profile().ID, true
}

// settled reports whether p has reached a state it cannot leave.
func settled(p models.Payout) bool {
	switch p.ApprovalStatus {
	case models.ApprovalRejected:
		return true
	case models.ApprovalApproved:
		return p.TransactionStatus == models.StatusPaid || p.TransactionStatus == models.StatusFailed
	default:
		return false
	}
}
