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

const (
	categoryListCacheKey = "categories:list"
	categoryCacheTTL     = 5 * time.Minute
)

// CategoryService handles category operations. All mutations require
// the ADMIN role.
type CategoryService interface {
	List(ctx context.Context) ([]repository.CategoryWithPostCount, error)
	Get(ctx context.Context, id uuid.UUID) (*repository.CategoryWithPostCount, error)
	Create(ctx context.Context, externalID, name, slugValue string) (*model.Category, error)
	Update(ctx context.Context, externalID string, id uuid.UUID, name string) (*model.Category, error)
	Delete(ctx context.Context, externalID string, id uuid.UUID) error
}

type categoryService struct {
	categories repository.CategoryRepository
	authz      authz.Authorizer
	cache      *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository, az authz.Authorizer, cache *cache.Client) CategoryService {
	return &categoryService{
		categories: categories,
		authz:      az,
		cache:      cache,
	}
}

// List returns all categories with post counts, name ascending, cached.
func (s *categoryService) List(ctx context.Context) ([]repository.CategoryWithPostCount, error) {
	if data, _ := s.cache.Get(ctx, categoryListCacheKey); data != nil {
		var cached []repository.CategoryWithPostCount
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.categories.ListWithPostCounts(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(categories); err == nil {
		_ = s.cache.Set(ctx, categoryListCacheKey, payload, categoryCacheTTL)
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*repository.CategoryWithPostCount, error) {
	category, err := s.categories.FindByIDWithPostCount(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Create adds a category after checking that neither the name nor the
// slug is already taken.
func (s *categoryService) Create(ctx context.Context, externalID, name, slugValue string) (*model.Category, error) {
	actor, err := s.authz.ResolveActor(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	if name == "" || slugValue == "" {
		return nil, apperrors.ErrMissingFields
	}

	existing, err := s.categories.FindByNameOrSlug(ctx, name, slugValue)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrCategoryExists
	}

	category := &model.Category{Name: name, Slug: slugValue}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	_ = s.cache.Delete(ctx, categoryListCacheKey)
	return category, nil
}

// Update renames a category; the slug is re-derived from the name.
func (s *categoryService) Update(ctx context.Context, externalID string, id uuid.UUID, name string) (*model.Category, error) {
	actor, err := s.authz.ResolveActor(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, apperrors.ErrMissingFields
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}

	category.Name = name
	category.Slug = slug.Make(name)
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	_ = s.cache.Delete(ctx, categoryListCacheKey)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, externalID string, id uuid.UUID) error {
	actor, err := s.authz.ResolveActor(ctx, externalID)
	if err != nil {
		return err
	}
	if err := s.authz.RequireAdmin(actor); err != nil {
		return err
	}

	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCategoryNotFound
		}
		return err
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	_ = s.cache.Delete(ctx, categoryListCacheKey)
	return nil
}
