package query

import (
	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/internal/sandbox/repository"
	"github.com/temboplus/afloat-go/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PayoutQueryService struct {
	store *repository.Store
}

func NewPayoutQueryService(store *repository.Store) *PayoutQueryService {
	return &PayoutQueryService{store: store}
}

func (s *PayoutQueryService) GetPayout(profileID, id string) (models.Payout, error) {
	return s.store.GetPayout(profileID, id)
}

// ListPayouts pages through the profile's payouts. Out-of-range paging
// values fall back to the first page of the default size.
func (s *PayoutQueryService) ListPayouts(profileID string, f repository.PayoutFilter) api.PayoutPage {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > maxPageSize {
		f.Limit = defaultPageSize
	}
	results, total := s.store.ListPayouts(profileID, f)
	return api.PayoutPage{Results: results, Total: total, Page: f.Page, Limit: f.Limit}
}

type ContactQueryService struct {
	store *repository.Store
}

func NewContactQueryService(store *repository.Store) *ContactQueryService {
	return &ContactQueryService{store: store}
}

func (s *ContactQueryService) GetContact(profileID, id string) (models.Contact, error) {
	return s.store.GetContact(profileID, id)
}

func (s *ContactQueryService) ListContacts(profileID string, contactType models.ContactType) []models.Contact {
	return s.store.ListContacts(profileID, contactType)
}
