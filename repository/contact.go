package repository

import (
	"context"
	"fmt"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/contactinfo"
	"github.com/temboplus/afloat-go/cqrs"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/permissions"
	"github.com/temboplus/afloat-go/schema"
)

type ContactRepository struct {
	session Session
}

func NewContactRepository(session Session) *ContactRepository {
	return &ContactRepository{session: session}
}

func (r *ContactRepository) List(ctx context.Context, q cqrs.ListContactsQuery) ([]models.Contact, error) {
	if err := r.session.Require(ctx, permissions.ContactView); err != nil {
		return nil, err
	}
	if err := schema.Validate(q); err != nil {
		return nil, err
	}
	return api.Call[[]models.Contact](ctx, r.session, api.Request{Endpoint: api.ListContacts, Query: q.Values()})
}

func (r *ContactRepository) Get(ctx context.Context, id string) (models.Contact, error) {
	if err := r.session.Require(ctx, permissions.ContactView); err != nil {
		return models.Contact{}, err
	}
	return api.Call[models.Contact](ctx, r.session, api.Request{Endpoint: api.GetContact, Params: byID(id)})
}

func (r *ContactRepository) Create(ctx context.Context, cmd cqrs.CreateContactCommand) (models.Contact, error) {
	if err := r.session.Require(ctx, permissions.ContactCreate); err != nil {
		return models.Contact{}, err
	}
	body, err := contactRequest(cmd.Info, cmd.DisplayName)
	if err != nil {
		return models.Contact{}, err
	}
	return api.Call[models.Contact](ctx, r.session, api.Request{Endpoint: api.CreateContact, Body: body})
}

func (r *ContactRepository) Update(ctx context.Context, cmd cqrs.UpdateContactCommand) (models.Contact, error) {
	if err := r.session.Require(ctx, permissions.ContactUpdate); err != nil {
		return models.Contact{}, err
	}
	if err := schema.Validate(cmd); err != nil {
		return models.Contact{}, err
	}
	body, err := contactRequest(cmd.Info, cmd.DisplayName)
	if err != nil {
		return models.Contact{}, err
	}
	return api.Call[models.Contact](ctx, r.session, api.Request{Endpoint: api.UpdateContact, Params: byID(cmd.ContactID), Body: body})
}

func (r *ContactRepository) Delete(ctx context.Context, cmd cqrs.DeleteContactCommand) error {
	if err := r.session.Require(ctx, permissions.ContactDelete); err != nil {
		return err
	}
	if err := schema.Validate(cmd); err != nil {
		return err
	}
	return api.Exec(ctx, r.session, api.Request{Endpoint: api.DeleteContact, Params: byID(cmd.ContactID)})
}

// contactRequest flattens a validated ContactInfo into the stored shape.
func contactRequest(info contactinfo.ContactInfo, displayName string) (api.ContactRequest, error) {
	if err := info.Validate(); err != nil {
		return api.ContactRequest{}, err
	}
	channel, err := info.ContactChannel()
	if err != nil {
		return api.ContactRequest{}, err
	}

	var contactType models.ContactType
	switch info.Kind {
	case contactinfo.KindMobile:
		contactType = models.ContactTypeMobile
	case contactinfo.KindBank:
		contactType = models.ContactTypeBank
	default:
		return api.ContactRequest{}, fmt.Errorf("unknown contact kind %q", info.Kind)
	}

	if displayName == "" {
		displayName = info.DisplayName()
	}
	return api.ContactRequest{
		DisplayName: displayName,
		AccountNo:   info.AccountNumber(),
		Channel:     channel,
		Type:        contactType,
	}, nil
}
