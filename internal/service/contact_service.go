package service

import (
	"context"
	"fmt"

	"modernblog/internal/authz"
	"modernblog/internal/model"
	"modernblog/internal/repository"
)

// ContactInput carries a validated contact form submission.
type ContactInput struct {
	Type     model.ContactType
	Name     string
	Email    string
	Phone    *string
	Company  *string
	Position *string
	Message  string
}

// ContactService handles contact form submissions. Submissions are
// persisted unconditionally once validated; reading them back is
// admin only.
type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*model.Contact, error)
	List(ctx context.Context, externalID string) ([]model.Contact, error)
}

type contactService struct {
	contacts repository.ContactRepository
	authz    authz.Authorizer
}

// NewContactService creates a new contact service.
func NewContactService(contacts repository.ContactRepository, az authz.Authorizer) ContactService {
	return &contactService{
		contacts: contacts,
		authz:    az,
	}
}

func (s *contactService) Submit(ctx context.Context, in ContactInput) (*model.Contact, error) {
	contact := &model.Contact{
		Type:     in.Type,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Company:  in.Company,
		Position: in.Position,
		Message:  in.Message,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) List(ctx context.Context, externalID string) ([]model.Contact, error) {
	actor, err := s.authz.ResolveActor(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.contacts.List(ctx)
}
