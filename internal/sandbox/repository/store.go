// Package repository is the sandbox's in-memory state: accounts, profiles,
// roles, team members, contacts, payouts and wallet ledgers.
package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/temboplus/afloat-go/models"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Account is a login credential.
type Account struct {
	Identity      string
	PasswordHash  string
	ProfileID     string
	UserID        string
	ResetPassword bool
}

// Store holds every sandbox record behind one lock.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	accounts map[string]*Account
	profiles map[string]models.Profile
	roles    map[string]models.Role
	users    map[string]userRecord
	contacts map[string]models.Contact
	payouts  map[string]models.Payout
	wallets  map[string]*Ledger
}

type userRecord struct {
	profileID string
	user      models.ManagedUser
}

func NewStore() *Store {
	return &Store{
		now:      func() time.Time { return time.Now().UTC() },
		accounts: make(map[string]*Account),
		profiles: make(map[string]models.Profile),
		roles:    make(map[string]models.Role),
		users:    make(map[string]userRecord),
		contacts: make(map[string]models.Contact),
		payouts:  make(map[string]models.Payout),
		wallets:  make(map[string]*Ledger),
	}
}

// Now is the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// SetClock replaces the clock, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

func (s *Store) CreateProfile(p models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[p.ID]; exists {
		return ErrConflict
	}
	s.profiles[p.ID] = p
	return nil
}

func (s *Store) GetProfile(id string) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return models.Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *Store) CreateAccount(a Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[a.Identity]; exists {
		return ErrConflict
	}
	s.accounts[a.Identity] = &a
	return nil
}

func (s *Store) GetAccount(identity string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[identity]
	if !ok {
		return Account{}, ErrNotFound
	}
	return *a, nil
}

// UpdatePassword replaces the hash and clears the reset flag.
func (s *Store) UpdatePassword(identity, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[identity]
	if !ok {
		return ErrNotFound
	}
	a.PasswordHash = hash
	a.ResetPassword = false
	if rec, ok := s.users[a.UserID]; ok {
		rec.user.ResetPassword = false
		s.users[a.UserID] = rec
	}
	return nil
}

// TouchLogin records a successful login on the account's team member.
func (s *Store) TouchLogin(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[identity]
	if !ok {
		return
	}
	if rec, ok := s.users[a.UserID]; ok {
		now := s.now()
		rec.user.LastLoginAt = &now
		s.users[a.UserID] = rec
	}
}
