package command

import (
	"strings"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/internal/sandbox/repository"
	"github.com/temboplus/afloat-go/internal/utils"
	"github.com/temboplus/afloat-go/models"
)

type ContactCommandService struct {
	store *repository.Store
}

func NewContactCommandService(store *repository.Store) *ContactCommandService {
	return &ContactCommandService{store: store}
}

// CreateContact saves a payee whose account number and channel resolve to a
// mobile number or bank account.
func (s *ContactCommandService) CreateContact(profileID string, req api.ContactRequest) (models.Contact, error) {
	now := s.store.Now()
	contact := models.Contact{
		ID:          utils.GenerateID("con"),
		ProfileID:   profileID,
		DisplayName: strings.TrimSpace(req.DisplayName),
		AccountNo:   strings.TrimSpace(req.AccountNo),
		Channel:     strings.ToUpper(strings.TrimSpace(req.Channel)),
		Type:        req.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, ok := contact.Info(); !ok {
		return models.Contact{}, ErrInvalidDestination
	}
	if err := s.store.CreateContact(contact); err != nil {
		return models.Contact{}, err
	}
	return contact, nil
}

func (s *ContactCommandService) UpdateContact(profileID, id string, req api.ContactRequest) (models.Contact, error) {
	contact, err := s.store.GetContact(profileID, id)
	if err != nil {
		return models.Contact{}, err
	}
	contact.DisplayName = strings.TrimSpace(req.DisplayName)
	contact.AccountNo = strings.TrimSpace(req.AccountNo)
	contact.Channel = strings.ToUpper(strings.TrimSpace(req.Channel))
	contact.Type = req.Type
	if _, ok := contact.Info(); !ok {
		return models.Contact{}, ErrInvalidDestination
	}
	contact.UpdatedAt = s.store.Now()
	if err := s.store.UpdateContact(contact); err != nil {
		return models.Contact{}, err
	}
	return contact, nil
}

func (s *ContactCommandService) DeleteContact(profileID, id string) error {
	return s.store.DeleteContact(profileID, id)
}
