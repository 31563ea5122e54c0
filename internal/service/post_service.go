package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"modernblog/internal/authz"
	"modernblog/internal/cache"
	apperrors "modernblog/internal/errors"
	"modernblog/internal/model"
	"modernblog/internal/repository"
	"modernblog/internal/slug"
)

const postCacheTTL = 5 * time.Minute

// PostInput carries the writable fields of a post.
type PostInput struct {
	Title         string
	Content       string
	Excerpt       *string
	FeaturedImage *string
	Status        model.PostStatus
	Featured      bool
	CategoryIDs   []uuid.UUID
}

// PostService handles post operations.
type PostService interface {
	List(ctx context.Context, filter repository.PostFilter) ([]model.Post, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Create(ctx context.Context, externalID string, in PostInput) (*model.Post, error)
	Update(ctx context.Context, externalID string, id uuid.UUID, in PostInput) (*model.Post, error)
	Delete(ctx context.Context, externalID string, id uuid.UUID) error
	Search(ctx context.Context, query, categorySlug string) ([]model.Post, error)
}

type postService struct {
	posts repository.PostRepository
	authz authz.Authorizer
	cache *cache.Client
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, az authz.Authorizer, cache *cache.Client) PostService {
	return &postService{
		posts: posts,
		authz: az,
		cache: cache,
	}
}

func (s *postService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("post:%s", id.String())
}

func (s *postService) List(ctx context.Context, filter repository.PostFilter) ([]model.Post, int64, error) {
	return s.posts.List(ctx, filter)
}

// Get retrieves a post by ID with caching.
func (s *postService) Get(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(post); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, postCacheTTL)
	}
	return post, nil
}

// Create persists a new post owned by the resolved actor. The slug is
// derived from the title.
func (s *postService) Create(ctx context.Context, externalID string, in PostInput) (*model.Post, error) {
	actor, err := s.authz.ResolveActor(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if in.Title == "" || in.Content == "" {
		return nil, apperrors.ErrMissingFields
	}

	status := in.Status
	if status == "" {
		status = model.PostStatusDraft
	}

	post := &model.Post{
		Title:         in.Title,
		Slug:          slug.Make(in.Title),
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		FeaturedImage: in.FeaturedImage,
		Status:        status,
		Featured:      in.Featured,
		AuthorID:      actor.ID,
	}
	if err := s.posts.Create(ctx, post, in.CategoryIDs); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.posts.FindByID(ctx, post.ID)
}

// Update modifies a post; only the author or an admin may do so.
func (s *postService) Update(ctx context.Context, externalID string, id uuid.UUID, in PostInput) (*model.Post, error) {
	actor, err := s.authz.ResolveActor(ctx, externalID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	if !s.authz.CanMutatePost(actor, post) {
		return nil, apperrors.ErrForbidden
	}

	if in.Title == "" || in.Content == "" {
		return nil, apperrors.ErrMissingFields
	}

	post.Title = in.Title
	post.Slug = slug.Make(in.Title)
	post.Content = in.Content
	post.Excerpt = in.Excerpt
	post.FeaturedImage = in.FeaturedImage
	if in.Status != "" {
		post.Status = in.Status
	}
	post.Featured = in.Featured

	if err := s.posts.Update(ctx, post, in.CategoryIDs); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	return s.posts.FindByID(ctx, id)
}

// Delete removes a post; only the author or an admin may do so.
func (s *postService) Delete(ctx context.Context, externalID string, id uuid.UUID) error {
	actor, err := s.authz.ResolveActor(ctx, externalID)
	if err != nil {
		return err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrPostNotFound
		}
		return err
	}

	if !s.authz.CanMutatePost(actor, post) {
		return apperrors.ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// Search filters published posts by a free-text query and an optional
// category slug. A query matching nothing yields an empty list.
func (s *postService) Search(ctx context.Context, query, categorySlug string) ([]model.Post, error) {
	if query == "" {
		return nil, apperrors.ErrQueryRequired
	}
	return s.posts.Search(ctx, query, categorySlug)
}
