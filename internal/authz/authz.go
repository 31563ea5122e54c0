// Package authz resolves external identities to local users and gates
// mutating operations. All role and ownership checks live here so
// handlers and services never compare role strings inline.
package authz

import (
	"context"

	"gorm.io/gorm"

	apperrors "modernblog/internal/errors"
	"modernblog/internal/model"
	"modernblog/internal/repository"
)

// Authorizer resolves request identities and answers capability questions.
type Authorizer interface {
	// ResolveActor maps an external identifier to the local user record.
	// An empty identifier fails with ErrUnauthenticated; a verified
	// identity with no local record fails with ErrUserNotFound.
	ResolveActor(ctx context.Context, externalID string) (*model.User, error)
	// CanMutatePost reports whether the actor may modify or delete the post.
	CanMutatePost(actor *model.User, post *model.Post) bool
	// RequireAdmin fails with ErrForbidden unless the actor holds ADMIN.
	RequireAdmin(actor *model.User) error
}

type authorizer struct {
	users repository.UserRepository
}

// New builds an Authorizer over the user repository.
func New(users repository.UserRepository) Authorizer {
	return &authorizer{users: users}
}

func (a *authorizer) ResolveActor(ctx context.Context, externalID string) (*model.User, error) {
	if externalID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	user, err := a.users.FindByExternalID(ctx, externalID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CanMutatePost allows the post's author and any admin.
func (a *authorizer) CanMutatePost(actor *model.User, post *model.Post) bool {
	if actor == nil || post == nil {
		return false
	}
	return actor.IsAdmin() || post.AuthorID == actor.ID
}

func (a *authorizer) RequireAdmin(actor *model.User) error {
	if actor == nil || !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}
