package repository

import (
	"context"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/cqrs"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/permissions"
	"github.com/temboplus/afloat-go/schema"
)

type RoleRepository struct {
	session Session
}

func NewRoleRepository(session Session) *RoleRepository {
	return &RoleRepository{session: session}
}

func (r *RoleRepository) List(ctx context.Context) ([]models.Role, error) {
	if err := r.session.Require(ctx, permissions.RoleView); err != nil {
		return nil, err
	}
	return api.Call[[]models.Role](ctx, r.session, api.Request{Endpoint: api.ListRoles})
}

func (r *RoleRepository) Get(ctx context.Context, id string) (models.Role, error) {
	if err := r.session.Require(ctx, permissions.RoleView); err != nil {
		return models.Role{}, err
	}
	return api.Call[models.Role](ctx, r.session, api.Request{Endpoint: api.GetRole, Params: byID(id)})
}

// UserRepository manages the team members of a business.
type UserRepository struct {
	session Session
}

func NewUserRepository(session Session) *UserRepository {
	return &UserRepository{session: session}
}

func (r *UserRepository) List(ctx context.Context) ([]models.ManagedUser, error) {
	if err := r.session.Require(ctx, permissions.UserView); err != nil {
		return nil, err
	}
	return api.Call[[]models.ManagedUser](ctx, r.session, api.Request{Endpoint: api.ListUsers})
}

func (r *UserRepository) Get(ctx context.Context, id string) (models.ManagedUser, error) {
	if err := r.session.Require(ctx, permissions.UserView); err != nil {
		return models.ManagedUser{}, err
	}
	return api.Call[models.ManagedUser](ctx, r.session, api.Request{Endpoint: api.GetUser, Params: byID(id)})
}

func (r *UserRepository) Create(ctx context.Context, cmd cqrs.CreateManagedUserCommand) (models.ManagedUser, error) {
	if err := r.session.Require(ctx, permissions.UserCreate); err != nil {
		return models.ManagedUser{}, err
	}
	if err := schema.Validate(cmd); err != nil {
		return models.ManagedUser{}, err
	}
	return api.Call[models.ManagedUser](ctx, r.session, api.Request{Endpoint: api.CreateUser, Body: cmd})
}
