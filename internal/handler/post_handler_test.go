package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"modernblog/internal/model"
	"modernblog/internal/repository"
	"modernblog/internal/service"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) List(ctx context.Context, filter repository.PostFilter) ([]model.Post, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostService) Get(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) Create(ctx context.Context, externalID string, in service.PostInput) (*model.Post, error) {
	args := m.Called(ctx, externalID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, externalID string, id uuid.UUID, in service.PostInput) (*model.Post, error) {
	args := m.Called(ctx, externalID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, externalID string, id uuid.UUID) error {
	args := m.Called(ctx, externalID, id)
	return args.Error(0)
}

func (m *MockPostService) Search(ctx context.Context, query, categorySlug string) ([]model.Post, error) {
	args := m.Called(ctx, query, categorySlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func TestPostHandler_List_Pagination(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   repository.PostFilter
	}{
		{
			name:   "defaults when no params",
			target: "/api/posts",
			want:   repository.PostFilter{Take: defaultPageSize},
		},
		{
			name:   "explicit skip and take",
			target: "/api/posts?skip=5&take=2",
			want:   repository.PostFilter{Skip: 5, Take: 2},
		},
		{
			name:   "garbage take falls back to default",
			target: "/api/posts?take=banana&skip=-3",
			want:   repository.PostFilter{Take: defaultPageSize},
		},
		{
			name:   "status and featured filters pass through",
			target: "/api/posts?status=PUBLISHED&featured=true",
			want:   repository.PostFilter{Status: model.PostStatusPublished, Featured: true, Take: defaultPageSize},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPostService)
			svc.On("List", mock.Anything, tt.want).Return([]model.Post{}, int64(0), nil)

			c, rec := newTestContext(t, http.MethodGet, tt.target, "")

			err := NewPostHandler(svc).List(c)

			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestPostHandler_List_InvalidCategoryID(t *testing.T) {
	svc := new(MockPostService)
	c, _ := newTestContext(t, http.MethodGet, "/api/posts?categoryId=nope", "")

	err := NewPostHandler(svc).List(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
