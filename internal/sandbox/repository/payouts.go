package repository

import (
	"sort"

	"github.com/temboplus/afloat-go/models"
)

// PayoutFilter selects a page of payouts. Page is 1-based.
type PayoutFilter struct {
	Approval models.ApprovalStatus
	Page     int
	Limit    int
}

func (s *Store) CreatePayout(p models.Payout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.payouts[p.ID]; exists {
		return ErrConflict
	}
	s.payouts[p.ID] = p
	return nil
}

func (s *Store) GetPayout(profileID, id string) (models.Payout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payouts[id]
	if !ok || (profileID != "" && p.ProfileID != profileID) {
		return models.Payout{}, ErrNotFound
	}
	return p, nil
}

// ListPayouts returns one page, newest first, and the total matching.
func (s *Store) ListPayouts(profileID string, f PayoutFilter) ([]models.Payout, int) {
	s.mu.RLock()
	matched := make([]models.Payout, 0)
	for _, p := range s.payouts {
		if p.ProfileID != profileID {
			continue
		}
		if f.Approval != "" && p.ApprovalStatus != f.Approval {
			continue
		}
		matched = append(matched, p)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (f.Page - 1) * f.Limit
	if start >= total {
		return []models.Payout{}, total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total
}

// UpdatePayout runs fn on the payout and the profile's ledger under the
// store lock, saving the payout only when fn succeeds. A profileID of ""
// matches any owner.
func (s *Store) UpdatePayout(profileID, id string, fn func(p *models.Payout, ledger *Ledger) error) (models.Payout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payouts[id]
	if !ok || (profileID != "" && p.ProfileID != profileID) {
		return models.Payout{}, ErrNotFound
	}
	ledger, ok := s.wallets[p.ProfileID]
	if !ok {
		return models.Payout{}, ErrNotFound
	}

	snapshot := ledger.snapshot()
	if err := fn(&p, ledger); err != nil {
		ledger.restore(snapshot)
		return models.Payout{}, err
	}
	p.UpdatedAt = s.now()
	s.payouts[id] = p
	return p, nil
}
