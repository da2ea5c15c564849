package query

import (
	"errors"
	"fmt"
	"time"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/cqrs"
	"github.com/temboplus/afloat-go/internal/sandbox/repository"
	"github.com/temboplus/afloat-go/internal/utils"
	"github.com/temboplus/afloat-go/middleware"
	"github.com/temboplus/afloat-go/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthQueryService handles login and the session lookups made with the
// issued token. There's no command side; logging in mutates nothing but the
// last-login stamp.
type AuthQueryService struct {
	store    *repository.Store
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthQueryService(store *repository.Store, secret []byte, tokenTTL time.Duration) *AuthQueryService {
	return &AuthQueryService{store: store, secret: secret, tokenTTL: tokenTTL}
}

func (s *AuthQueryService) Login(cmd cqrs.LoginCommand) (api.LoginResponse, error) {
	account, err := s.store.GetAccount(cmd.Identity)
	if err != nil {
		return api.LoginResponse{}, ErrInvalidCredentials
	}
	if !utils.CheckPassword(cmd.Password, account.PasswordHash) {
		return api.LoginResponse{}, ErrInvalidCredentials
	}
	member, err := s.store.MemberFor(cmd.Identity)
	if err != nil {
		return api.LoginResponse{}, ErrInvalidCredentials
	}
	if !member.IsActive || member.IsArchived {
		return api.LoginResponse{}, ErrInvalidCredentials
	}

	profile, err := s.store.GetProfile(account.ProfileID)
	if err != nil {
		return api.LoginResponse{}, fmt.Errorf("failed to load profile: %w", err)
	}
	access, err := s.store.AccessFor(cmd.Identity)
	if err != nil {
		return api.LoginResponse{}, err
	}
	token, err := middleware.IssueToken(s.secret, account.Identity, account.ProfileID, s.tokenTTL)
	if err != nil {
		return api.LoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}
	s.store.TouchLogin(cmd.Identity)

	return api.LoginResponse{
		Name:          member.Name,
		Profile:       profile,
		Token:         token,
		Access:        access,
		ResetPassword: account.ResetPassword,
	}, nil
}

func (s *AuthQueryService) AccessList(identity string) ([]string, error) {
	return s.store.AccessFor(identity)
}

func (s *AuthQueryService) Profile(profileID string) (models.Profile, error) {
	return s.store.GetProfile(profileID)
}

func (s *AuthQueryService) Identity(identity string) (api.IdentityResponse, error) {
	account, err := s.store.GetAccount(identity)
	if err != nil {
		return api.IdentityResponse{}, err
	}
	resp := api.IdentityResponse{Identity: account.Identity, ResetPassword: account.ResetPassword}
	if member, err := s.store.MemberFor(identity); err == nil {
		resp.Name = member.Name
	}
	return resp, nil
}
