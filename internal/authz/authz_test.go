package authz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "modernblog/internal/errors"
	"modernblog/internal/model"
	"modernblog/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListWithPostCounts(ctx context.Context) ([]repository.UserWithPostCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserWithPostCount), args.Error(1)
}

func (m *MockUserRepository) CountPostsByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpsertByExternalID(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestResolveActor(t *testing.T) {
	known := &model.User{ID: uuid.New(), ExternalID: "ext_123", Role: model.RoleUser}

	tests := []struct {
		name          string
		externalID    string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:       "resolves known identity",
			externalID: "ext_123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByExternalID", mock.Anything, "ext_123").Return(known, nil)
			},
		},
		{
			name:          "empty identity is unauthenticated",
			externalID:    "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrUnauthenticated,
		},
		{
			name:       "unsynced identity is not found",
			externalID: "ext_unknown",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByExternalID", mock.Anything, "ext_unknown").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			actor, err := New(mockRepo).ResolveActor(context.Background(), tt.externalID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, actor)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, known, actor)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCanMutatePost(t *testing.T) {
	owner := &model.User{ID: uuid.New(), Role: model.RoleUser}
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	other := &model.User{ID: uuid.New(), Role: model.RoleUser}
	post := &model.Post{ID: uuid.New(), AuthorID: owner.ID}

	a := New(new(MockUserRepository))

	assert.True(t, a.CanMutatePost(owner, post))
	assert.True(t, a.CanMutatePost(admin, post))
	assert.False(t, a.CanMutatePost(other, post))
	assert.False(t, a.CanMutatePost(nil, post))
	assert.False(t, a.CanMutatePost(owner, nil))
}

func TestRequireAdmin(t *testing.T) {
	a := New(new(MockUserRepository))

	assert.NoError(t, a.RequireAdmin(&model.User{Role: model.RoleAdmin}))
	assert.ErrorIs(t, a.RequireAdmin(&model.User{Role: model.RoleUser}), apperrors.ErrForbidden)
	assert.ErrorIs(t, a.RequireAdmin(nil), apperrors.ErrForbidden)
}
