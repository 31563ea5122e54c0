package service

import (
	"context"
	"fmt"

	"modernblog/internal/authz"
	"modernblog/internal/identity"
	"modernblog/internal/model"
	"modernblog/internal/repository"
)

// IdentityDirectory lists user accounts held by the identity provider.
// Satisfied by identity.Client.
type IdentityDirectory interface {
	ListAccounts(ctx context.Context) ([]identity.Account, error)
}

// Profile bundles a user with their post count and authored posts.
type Profile struct {
	User      model.User
	PostCount int64
	Posts     []model.Post
}

// UserService handles user listing, profiles and provider sync.
type UserService interface {
	List(ctx context.Context, externalID string) ([]repository.UserWithPostCount, error)
	Profile(ctx context.Context, externalID string) (*Profile, error)
	UpdateProfile(ctx context.Context, externalID string, username, bio *string) (*Profile, error)
	SyncFromProvider(ctx context.Context) (int, error)
	SyncAs(ctx context.Context, externalID string) (int, error)
}

type userService struct {
	users     repository.UserRepository
	posts     repository.PostRepository
	directory IdentityDirectory
	authz     authz.Authorizer
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, posts repository.PostRepository, directory IdentityDirectory, az authz.Authorizer) UserService {
	return &userService{
		users:     users,
		posts:     posts,
		directory: directory,
		authz:     az,
	}
}

// List returns all users with post counts. Admin only.
func (s *userService) List(ctx context.Context, externalID string) ([]repository.UserWithPostCount, error) {
	actor, err := s.authz.ResolveActor(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.users.ListWithPostCounts(ctx)
}

// Profile returns the actor's own record, post count and posts.
func (s *userService) Profile(ctx context.Context, externalID string) (*Profile, error) {
	actor, err := s.authz.ResolveActor(ctx, externalID)
	if err != nil {
		return nil, err
	}

	count, err := s.users.CountPostsByAuthor(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	posts, err := s.posts.ListByAuthor(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return &Profile{User: *actor, PostCount: count, Posts: posts}, nil
}

// UpdateProfile sets the actor's username and bio.
func (s *userService) UpdateProfile(ctx context.Context, externalID string, username, bio *string) (*Profile, error) {
	actor, err := s.authz.ResolveActor(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if username != nil {
		actor.Username = username
	}
	if bio != nil {
		actor.Bio = bio
	}
	if err := s.users.Update(ctx, actor); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	count, err := s.users.CountPostsByAuthor(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	return &Profile{User: *actor, PostCount: count}, nil
}

// SyncAs runs SyncFromProvider on behalf of an admin actor.
func (s *userService) SyncAs(ctx context.Context, externalID string) (int, error) {
	actor, err := s.authz.ResolveActor(ctx, externalID)
	if err != nil {
		return 0, err
	}
	if err := s.authz.RequireAdmin(actor); err != nil {
		return 0, err
	}
	return s.SyncFromProvider(ctx)
}

// SyncFromProvider upserts a local user for every identity provider
// account, mapping provider metadata role "admin" to ADMIN. Role
// changes happen only through this path.
func (s *userService) SyncFromProvider(ctx context.Context) (int, error) {
	if s.directory == nil {
		return 0, fmt.Errorf("identity directory not configured")
	}

	accounts, err := s.directory.ListAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list provider accounts: %w", err)
	}

	count := 0
	for _, account := range accounts {
		role := model.RoleUser
		if account.IsAdmin() {
			role = model.RoleAdmin
		}
		user := &model.User{
			ExternalID: account.ID,
			Email:      account.Email,
			Role:       role,
		}
		if account.Username != "" {
			username := account.Username
			user.Username = &username
		}
		if err := s.users.UpsertByExternalID(ctx, user); err != nil {
			return count, fmt.Errorf("sync user %s: %w", account.ID, err)
		}
		count++
	}
	return count, nil
}
