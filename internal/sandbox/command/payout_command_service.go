package command

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/bank"
	"github.com/temboplus/afloat-go/contactinfo"
	"github.com/temboplus/afloat-go/events"
	"github.com/temboplus/afloat-go/internal/sandbox/repository"
	"github.com/temboplus/afloat-go/internal/utils"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/telecom"
)

const (
	// MinimumPayout is the smallest amount the sandbox disburses.
	MinimumPayout models.Amount = 1000
	// MobileSettlementLimit is the largest mobile payout the simulated
	// operators accept; approved payouts above it settle as FAILED.
	MobileSettlementLimit models.Amount = 5_000_000
)

var (
	ErrInvalidDestination = errors.New("destination does not resolve to a mobile number or bank account")
	ErrUnknownChannel     = errors.New("unknown payout channel")
	ErrAmountTooLow       = fmt.Errorf("amount must be at least %s", MinimumPayout)
	ErrNotActionable      = errors.New("payout has already been actioned")
)

// PayoutCommandService creates and decides payouts, moving money in the
// profile's wallet and publishing payout events.
type PayoutCommandService struct {
	store     *repository.Store
	publisher events.Publisher
}

func NewPayoutCommandService(store *repository.Store, publisher events.Publisher) *PayoutCommandService {
	return &PayoutCommandService{store: store, publisher: publisher}
}

// CreatePayout records a pending payout after checking its destination and
// the available balance. Profiles that auto-approve skip the approval step.
func (s *PayoutCommandService) CreatePayout(ctx context.Context, profileID string, actor models.Actor, req api.PayoutRequest) (models.Payout, error) {
	if req.Amount < MinimumPayout {
		return models.Payout{}, ErrAmountTooLow
	}
	isBank := strings.EqualFold(req.Channel, bank.PayoutChannel)
	if _, ok := telecom.FromChannel(req.Channel); !ok && !isBank {
		return models.Payout{}, ErrUnknownChannel
	}
	if _, ok := contactinfo.Derive(contactinfo.Source{
		Identifier: req.Msisdn,
		Channel:    req.Channel,
		Bank:       isBank,
		Name:       req.PayeeName,
	}); !ok {
		return models.Payout{}, ErrInvalidDestination
	}

	balance, err := s.store.Balance(profileID)
	if err != nil {
		return models.Payout{}, err
	}
	if balance.Available < req.Amount {
		return models.Payout{}, repository.ErrInsufficientFunds
	}

	now := s.store.Now()
	reference := utils.GenerateReference("afl")
	payout := models.Payout{
		ID:                utils.GenerateID("pay"),
		ProfileID:         profileID,
		PayeeName:         req.PayeeName,
		Channel:           req.Channel,
		Msisdn:            req.Msisdn,
		Amount:            req.Amount,
		Description:       req.Description,
		Notes:             req.Notes,
		TransactionStatus: models.StatusCreated,
		ApprovalStatus:    models.ApprovalPending,
		PartnerReference:  &reference,
		CreatedBy:         &actor,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.CreatePayout(payout); err != nil {
		return models.Payout{}, err
	}
	s.publish(ctx, events.PayoutCreated, payout)

	profile, err := s.store.GetProfile(profileID)
	if err == nil && profile.AutoApproves() {
		return s.ApprovePayout(ctx, profileID, payout.ID, actor, nil)
	}
	return payout, nil
}

// ApprovePayout debits the wallet and hands the payout to settlement.
func (s *PayoutCommandService) ApprovePayout(ctx context.Context, profileID, id string, actor models.Actor, notes *string) (models.Payout, error) {
	payout, err := s.store.UpdatePayout(profileID, id, func(p *models.Payout, ledger *repository.Ledger) error {
		if !p.IsActionable() {
			return ErrNotActionable
		}
		if err := ledger.Debit(p.Amount, reference(p), p.Description); err != nil {
			return err
		}
		p.ApprovalStatus = models.ApprovalApproved
		p.TransactionStatus = models.StatusPending
		p.ActionedBy = &actor
		if notes != nil {
			p.Notes = notes
		}
		return nil
	})
	if err != nil {
		return models.Payout{}, err
	}
	s.publish(ctx, events.PayoutApproved, payout)
	return payout, nil
}

func (s *PayoutCommandService) RejectPayout(ctx context.Context, profileID, id string, actor models.Actor, notes *string) (models.Payout, error) {
	payout, err := s.store.UpdatePayout(profileID, id, func(p *models.Payout, _ *repository.Ledger) error {
		if !p.IsActionable() {
			return ErrNotActionable
		}
		p.ApprovalStatus = models.ApprovalRejected
		p.TransactionStatus = models.StatusRejected
		p.ActionedBy = &actor
		if notes != nil {
			p.Notes = notes
		}
		return nil
	})
	if err != nil {
		return models.Payout{}, err
	}
	s.publish(ctx, events.PayoutRejected, payout)
	return payout, nil
}

// Settle completes an approved payout. Mobile payouts above the operator
// limit fail and are refunded to the wallet; everything else is paid.
// Settling a payout that is not awaiting settlement is a no-op.
func (s *PayoutCommandService) Settle(ctx context.Context, id string) (models.Payout, error) {
	settled := false
	payout, err := s.store.UpdatePayout("", id, func(p *models.Payout, ledger *repository.Ledger) error {
		if p.ApprovalStatus != models.ApprovalApproved || p.TransactionStatus != models.StatusPending {
			return nil
		}
		settled = true
		if !strings.EqualFold(p.Channel, bank.PayoutChannel) && p.Amount > MobileSettlementLimit {
			p.TransactionStatus = models.StatusFailed
			ledger.Credit(p.Amount, reference(p), "REVERSAL "+p.Description)
			return nil
		}
		p.TransactionStatus = models.StatusPaid
		return nil
	})
	if err != nil {
		return models.Payout{}, err
	}
	if settled {
		s.publish(ctx, events.PayoutSettled, payout)
	}
	return payout, nil
}

// SettlementHandler settles payouts as their approval events arrive.
func (s *PayoutCommandService) SettlementHandler() events.Handler {
	return func(ctx context.Context, event events.Event) error {
		if event.Type != events.PayoutApproved {
			return nil
		}
		var data events.PayoutEvent
		if err := events.DecodeData(event, &data); err != nil {
			return err
		}
		if _, err := s.Settle(ctx, data.PayoutID); err != nil {
			return fmt.Errorf("failed to settle %s: %w", data.PayoutID, err)
		}
		return nil
	}
}

func (s *PayoutCommandService) publish(ctx context.Context, eventType string, p models.Payout) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.PayoutEventsStream, eventType, events.PayoutEvent{
		PayoutID:  p.ID,
		ProfileID: p.ProfileID,
		Channel:   p.Channel,
		Amount:    p.Amount.Float64(),
		Status:    string(p.Status()),
		Approval:  string(p.ApprovalStatus),
	}); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}

func reference(p *models.Payout) string {
	if p.PartnerReference != nil {
		return *p.PartnerReference
	}
	return p.ID
}
