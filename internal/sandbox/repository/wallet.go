package repository

import (
	"time"

	"github.com/temboplus/afloat-go/models"
)

// Ledger is a wallet with its running balance and statement.
type Ledger struct {
	Wallet  models.Wallet
	balance models.Amount
	entries []models.StatementEntry
	now     func() time.Time
}

type ledgerSnapshot struct {
	balance models.Amount
	entries int
}

func (l *Ledger) snapshot() ledgerSnapshot {
	return ledgerSnapshot{balance: l.balance, entries: len(l.entries)}
}

func (l *Ledger) restore(s ledgerSnapshot) {
	l.balance = s.balance
	l.entries = l.entries[:s.entries]
}

// Balance is the available balance.
func (l *Ledger) Balance() models.Amount {
	return l.balance
}

// Debit takes amount out of the wallet and records it under narration.
func (l *Ledger) Debit(amount models.Amount, reference, narration string) error {
	if amount > l.balance {
		return ErrInsufficientFunds
	}
	l.balance -= amount
	l.record(models.Debit, amount, reference, narration)
	return nil
}

// Credit puts amount into the wallet and records it under narration.
func (l *Ledger) Credit(amount models.Amount, reference, narration string) {
	l.balance += amount
	l.record(models.Credit, amount, reference, narration)
}

func (l *Ledger) record(direction string, amount models.Amount, reference, narration string) {
	now := l.now()
	entry := models.StatementEntry{
		Reference:     reference,
		DebitOrCredit: direction,
		Narration:     narration,
		TxnDate:       now,
		ValueDate:     now,
		Balance:       l.balance,
	}
	if direction == models.Debit {
		entry.AmountDebited = amount
	} else {
		entry.AmountCredited = amount
	}
	l.entries = append(l.entries, entry)
}

// CreateWallet opens the profile's wallet with an opening credit.
func (s *Store) CreateWallet(w models.Wallet, opening models.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.wallets[w.ProfileID]; exists {
		return ErrConflict
	}
	ledger := &Ledger{Wallet: w, now: s.Now}
	if opening > 0 {
		ledger.Credit(opening, "OPENING", "OPENING BALANCE")
	}
	s.wallets[w.ProfileID] = ledger
	return nil
}

func (s *Store) GetWallet(profileID string) (models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.wallets[profileID]
	if !ok {
		return models.Wallet{}, ErrNotFound
	}
	return l.Wallet, nil
}

func (s *Store) Balance(profileID string) (models.WalletBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.wallets[profileID]
	if !ok {
		return models.WalletBalance{}, ErrNotFound
	}
	updated := l.Wallet.UpdatedAt
	if n := len(l.entries); n > 0 {
		updated = l.entries[n-1].TxnDate
	}
	return models.WalletBalance{
		Available:    l.balance,
		CurrencyCode: l.Wallet.CurrencyCode,
		UpdatedAt:    updated,
	}, nil
}

// Statement returns the entries dated within [from, to], newest first. Zero
// bounds are open.
func (s *Store) Statement(profileID string, from, to time.Time) ([]models.StatementEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.wallets[profileID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]models.StatementEntry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if !from.IsZero() && e.TxnDate.Before(from) {
			continue
		}
		if !to.IsZero() && e.TxnDate.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
