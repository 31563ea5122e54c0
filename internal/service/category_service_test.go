package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "modernblog/internal/errors"
	"modernblog/internal/model"
)

func TestCategoryService_Create(t *testing.T) {
	admin := &model.User{ID: uuid.New(), ExternalID: "ext_admin", Role: model.RoleAdmin}
	regular := &model.User{ID: uuid.New(), ExternalID: "ext_user", Role: model.RoleUser}

	tests := []struct {
		name          string
		externalID    string
		catName       string
		catSlug       string
		setupMocks    func(*MockAuthorizer, *MockCategoryRepository)
		expectedError error
	}{
		{
			name:       "admin creates category",
			externalID: "ext_admin",
			catName:    "Technology",
			catSlug:    "technology",
			setupMocks: func(az *MockAuthorizer, repo *MockCategoryRepository) {
				az.On("ResolveActor", mock.Anything, "ext_admin").Return(admin, nil)
				az.On("RequireAdmin", admin).Return(nil)
				repo.On("FindByNameOrSlug", mock.Anything, "Technology", "technology").
					Return(nil, gorm.ErrRecordNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)
			},
		},
		{
			name:       "duplicate name or slug rejected",
			externalID: "ext_admin",
			catName:    "Technology",
			catSlug:    "technology",
			setupMocks: func(az *MockAuthorizer, repo *MockCategoryRepository) {
				az.On("ResolveActor", mock.Anything, "ext_admin").Return(admin, nil)
				az.On("RequireAdmin", admin).Return(nil)
				repo.On("FindByNameOrSlug", mock.Anything, "Technology", "technology").
					Return(&model.Category{Name: "Technology", Slug: "technology"}, nil)
			},
			expectedError: apperrors.ErrCategoryExists,
		},
		{
			name:       "non-admin forbidden",
			externalID: "ext_user",
			catName:    "Technology",
			catSlug:    "technology",
			setupMocks: func(az *MockAuthorizer, repo *MockCategoryRepository) {
				az.On("ResolveActor", mock.Anything, "ext_user").Return(regular, nil)
				az.On("RequireAdmin", regular).Return(apperrors.ErrForbidden)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:       "missing fields rejected",
			externalID: "ext_admin",
			catName:    "Technology",
			catSlug:    "",
			setupMocks: func(az *MockAuthorizer, repo *MockCategoryRepository) {
				az.On("ResolveActor", mock.Anything, "ext_admin").Return(admin, nil)
				az.On("RequireAdmin", admin).Return(nil)
			},
			expectedError: apperrors.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			az := new(MockAuthorizer)
			repo := new(MockCategoryRepository)
			tt.setupMocks(az, repo)

			svc := NewCategoryService(repo, az, nil)
			category, err := svc.Create(context.Background(), tt.externalID, tt.catName, tt.catSlug)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, category)
				repo.AssertNotCalled(t, "Create")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.catName, category.Name)
				assert.Equal(t, tt.catSlug, category.Slug)
			}
			az.AssertExpectations(t)
			repo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Update(t *testing.T) {
	admin := &model.User{ID: uuid.New(), ExternalID: "ext_admin", Role: model.RoleAdmin}
	catID := uuid.New()

	az := new(MockAuthorizer)
	repo := new(MockCategoryRepository)
	az.On("ResolveActor", mock.Anything, "ext_admin").Return(admin, nil)
	az.On("RequireAdmin", admin).Return(nil)
	repo.On("FindByID", mock.Anything, catID).Return(&model.Category{ID: catID, Name: "Old", Slug: "old"}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)

	category, err := NewCategoryService(repo, az, nil).
		Update(context.Background(), "ext_admin", catID, "Web Development")

	assert.NoError(t, err)
	assert.Equal(t, "Web Development", category.Name)
	assert.Equal(t, "web-development", category.Slug)
	repo.AssertExpectations(t)
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	admin := &model.User{ID: uuid.New(), ExternalID: "ext_admin", Role: model.RoleAdmin}
	catID := uuid.New()

	az := new(MockAuthorizer)
	repo := new(MockCategoryRepository)
	az.On("ResolveActor", mock.Anything, "ext_admin").Return(admin, nil)
	az.On("RequireAdmin", admin).Return(nil)
	repo.On("FindByID", mock.Anything, catID).Return(nil, gorm.ErrRecordNotFound)

	err := NewCategoryService(repo, az, nil).Delete(context.Background(), "ext_admin", catID)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	repo.AssertNotCalled(t, "Delete")
}
