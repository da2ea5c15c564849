package repository

import (
	"sort"

	"github.com/temboplus/afloat-go/models"
)

func (s *Store) CreateContact(c models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.contacts[c.ID]; exists {
		return ErrConflict
	}
	for _, existing := range s.contacts {
		if existing.ProfileID == c.ProfileID && existing.Channel == c.Channel && existing.AccountNo == c.AccountNo {
			return ErrConflict
		}
	}
	s.contacts[c.ID] = c
	return nil
}

func (s *Store) GetContact(profileID, id string) (models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contacts[id]
	if !ok || c.ProfileID != profileID {
		return models.Contact{}, ErrNotFound
	}
	return c, nil
}

// ListContacts returns the profile's contacts by display name. A zero
// contactType lists every type.
func (s *Store) ListContacts(profileID string, contactType models.ContactType) []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Contact, 0)
	for _, c := range s.contacts {
		if c.ProfileID != profileID {
			continue
		}
		if contactType != "" && c.Type != contactType {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}

func (s *Store) UpdateContact(c models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.contacts[c.ID]
	if !ok || existing.ProfileID != c.ProfileID {
		return ErrNotFound
	}
	s.contacts[c.ID] = c
	return nil
}

func (s *Store) DeleteContact(profileID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok || c.ProfileID != profileID {
		return ErrNotFound
	}
	delete(s.contacts, id)
	return nil
}
