package command

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/temboplus/afloat-go/cqrs"
	"github.com/temboplus/afloat-go/events"
	"github.com/temboplus/afloat-go/internal/sandbox/repository"
	"github.com/temboplus/afloat-go/internal/utils"
	"github.com/temboplus/afloat-go/models"
)

var (
	ErrUnknownRole     = errors.New("role not found")
	ErrInvalidPassword = errors.New("current password is incorrect")
)

// UserCommandService manages team members and their credentials.
type UserCommandService struct {
	store     *repository.Store
	publisher events.Publisher
}

func NewUserCommandService(store *repository.Store, publisher events.Publisher) *UserCommandService {
	return &UserCommandService{store: store, publisher: publisher}
}

// CreateUser adds a team member to the profile with a login that must be
// reset on first use.
func (s *UserCommandService) CreateUser(profileID string, cmd cqrs.CreateManagedUserCommand) (models.ManagedUser, error) {
	role, err := s.store.GetRole(cmd.RoleID)
	if err != nil {
		return models.ManagedUser{}, ErrUnknownRole
	}
	hash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return models.ManagedUser{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.store.Now()
	user := models.ManagedUser{
		ID:            utils.GenerateID("usr"),
		Name:          strings.TrimSpace(cmd.Name),
		Identity:      strings.TrimSpace(cmd.Identity),
		RoleID:        role.ID,
		IsActive:      true,
		ResetPassword: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateUser(profileID, user); err != nil {
		return models.ManagedUser{}, err
	}
	if err := s.store.CreateAccount(repository.Account{
		Identity:      user.Identity,
		PasswordHash:  hash,
		ProfileID:     profileID,
		UserID:        user.ID,
		ResetPassword: true,
	}); err != nil {
		return models.ManagedUser{}, err
	}
	user.Role = &role
	return user, nil
}

// ChangePassword replaces the password of identity after checking the
// current one.
func (s *UserCommandService) ChangePassword(ctx context.Context, identity string, cmd cqrs.ResetPasswordCommand) error {
	account, err := s.store.GetAccount(identity)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(cmd.CurrentPassword, account.PasswordHash) {
		return ErrInvalidPassword
	}
	hash, err := utils.HashPassword(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.UpdatePassword(identity, hash); err != nil {
		return err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.SessionEventsStream, events.PasswordChanged, events.SessionEvent{
			Identity:  identity,
			ProfileID: account.ProfileID,
		}); err != nil {
			log.Printf("Failed to publish %s event: %v", events.PasswordChanged, err)
		}
	}
	return nil
}
