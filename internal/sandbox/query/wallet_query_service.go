package query

import (
	"time"

	"github.com/temboplus/afloat-go/internal/sandbox/repository"
	"github.com/temboplus/afloat-go/models"
)

type WalletQueryService struct {
	store *repository.Store
}

func NewWalletQueryService(store *repository.Store) *WalletQueryService {
	return &WalletQueryService{store: store}
}

func (s *WalletQueryService) GetWallet(profileID string) (models.Wallet, error) {
	return s.store.GetWallet(profileID)
}

func (s *WalletQueryService) GetBalance(profileID string) (models.WalletBalance, error) {
	return s.store.Balance(profileID)
}

func (s *WalletQueryService) GetStatement(profileID string, from, to time.Time) ([]models.StatementEntry, error) {
	return s.store.Statement(profileID, from, to)
}

type AdminQueryService struct {
	store *repository.Store
}

func NewAdminQueryService(store *repository.Store) *AdminQueryService {
	return &AdminQueryService{store: store}
}

func (s *AdminQueryService) ListRoles() []models.Role {
	return s.store.ListRoles()
}

func (s *AdminQueryService) GetRole(id string) (models.Role, error) {
	return s.store.GetRole(id)
}

func (s *AdminQueryService) ListUsers(profileID string) []models.ManagedUser {
	return s.store.ListUsers(profileID)
}

func (s *AdminQueryService) GetUser(profileID, id string) (models.ManagedUser, error) {
	return s.store.GetUser(profileID, id)
}
