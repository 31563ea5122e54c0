package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"modernblog/internal/model"
)

// UserWithPostCount is a user row joined with its post count.
type UserWithPostCount struct {
	model.User `gorm:"embedded"`
	PostCount  int64 `json:"postCount" gorm:"column:post_count"`
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
	ListWithPostCounts(ctx context.Context) ([]UserWithPostCount, error)
	CountPostsByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	UpsertByExternalID(ctx context.Context, user *model.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListWithPostCounts(ctx context.Context) ([]UserWithPostCount, error) {
	var rows []UserWithPostCount
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.*, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN posts ON posts.author_id = users.id").
		Group("users.id").
		Order("users.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userRepository) CountPostsByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// UpsertByExternalID creates the user if no record with its external id
// exists, otherwise refreshes email, username and role in place.
func (r *userRepository) UpsertByExternalID(ctx context.Context, user *model.User) error {
	var existing model.User
	err := r.db.WithContext(ctx).Where("external_id = ?", user.ExternalID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(user).Error
	}
	if err != nil {
		return err
	}

	existing.Email = user.Email
	if user.Username != nil {
		existing.Username = user.Username
	}
	existing.Role = user.Role
	return r.db.WithContext(ctx).Save(&existing).Error
}
