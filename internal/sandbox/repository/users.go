package repository

import (
	"sort"

	"github.com/temboplus/afloat-go/models"
)

func (s *Store) CreateRole(r models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.roles[r.ID]; exists {
		return ErrConflict
	}
	s.roles[r.ID] = r
	return nil
}

func (s *Store) GetRole(id string) (models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.roles[id]
	if !ok {
		return models.Role{}, ErrNotFound
	}
	return r, nil
}

func (s *Store) ListRoles() []models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Role, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CreateUser stores a team member of profileID.
func (s *Store) CreateUser(profileID string, u models.ManagedUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.ID]; exists {
		return ErrConflict
	}
	for _, rec := range s.users {
		if rec.user.Identity == u.Identity {
			return ErrConflict
		}
	}
	s.users[u.ID] = userRecord{profileID: profileID, user: u}
	return nil
}

// GetUser returns the team member with its role attached.
func (s *Store) GetUser(profileID, id string) (models.ManagedUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok || rec.profileID != profileID {
		return models.ManagedUser{}, ErrNotFound
	}
	return s.withRole(rec.user), nil
}

func (s *Store) ListUsers(profileID string) []models.ManagedUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ManagedUser, 0)
	for _, rec := range s.users {
		if rec.profileID == profileID {
			out = append(out, s.withRole(rec.user))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// AccessFor is the access list of the account behind identity: the
// effective permissions of its team member.
func (s *Store) AccessFor(identity string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[identity]
	if !ok {
		return nil, ErrNotFound
	}
	rec, ok := s.users[a.UserID]
	if !ok {
		return []string{}, nil
	}
	return s.withRole(rec.user).EffectivePermissions().Strings(), nil
}

// MemberFor returns the team member behind identity.
func (s *Store) MemberFor(identity string) (models.ManagedUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[identity]
	if !ok {
		return models.ManagedUser{}, ErrNotFound
	}
	rec, ok := s.users[a.UserID]
	if !ok {
		return models.ManagedUser{}, ErrNotFound
	}
	return s.withRole(rec.user), nil
}

func (s *Store) withRole(u models.ManagedUser) models.ManagedUser {
	if r, ok := s.roles[u.RoleID]; ok {
		u.Role = &r
	}
	return u
}
