package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"modernblog/internal/model"
)

// CategoryWithPostCount is a category row joined with its post count.
type CategoryWithPostCount struct {
	model.Category `gorm:"embedded"`
	PostCount      int64 `json:"postCount" gorm:"column:post_count"`
}

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindByIDWithPostCount(ctx context.Context, id uuid.UUID) (*CategoryWithPostCount, error)
	FindByNameOrSlug(ctx context.Context, name, slug string) (*model.Category, error)
	ListWithPostCounts(ctx context.Context) ([]CategoryWithPostCount, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository builds a GORM-backed repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Posts").Delete(&model.Category{ID: id}).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByIDWithPostCount(ctx context.Context, id uuid.UUID) (*CategoryWithPostCount, error) {
	var row CategoryWithPostCount
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Select("categories.*, COUNT(pc.post_id) AS post_count").
		Joins("LEFT JOIN post_categories pc ON pc.category_id = categories.id").
		Where("categories.id = ?", id).
		Group("categories.id").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByNameOrSlug returns a category matching either the name or the
// slug, used for the pre-create uniqueness check.
func (r *categoryRepository) FindByNameOrSlug(ctx context.Context, name, slug string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("name = ? OR slug = ?", name, slug).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListWithPostCounts(ctx context.Context) ([]CategoryWithPostCount, error) {
	var rows []CategoryWithPostCount
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Select("categories.*, COUNT(pc.post_id) AS post_count").
		Joins("LEFT JOIN post_categories pc ON pc.category_id = categories.id").
		Group("categories.id").
		Order("categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
