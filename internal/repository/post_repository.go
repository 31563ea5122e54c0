package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"modernblog/internal/model"
)

// PostFilter narrows post listings. Zero values mean "no filter";
// Take of zero falls back to the caller's default.
type PostFilter struct {
	Status     model.PostStatus
	CategoryID uuid.UUID
	Featured   bool
	Skip       int
	Take       int
}

// PostRepository defines post persistence operations. Category
// attachment on create/update is a single compound call; atomicity is
// delegated to the store.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post, categoryIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	List(ctx context.Context, filter PostFilter) ([]model.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post, categoryIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query, categorySlug string) ([]model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func categoryRefs(ids []uuid.UUID) []model.Category {
	cats := make([]model.Category, 0, len(ids))
	for _, id := range ids {
		cats = append(cats, model.Category{ID: id})
	}
	return cats
}

func (r *postRepository) Create(ctx context.Context, post *model.Post, categoryIDs []uuid.UUID) error {
	post.Categories = categoryRefs(categoryIDs)
	// Omit category columns so only join rows are written for existing
	// categories, and never touch the author row.
	return r.db.WithContext(ctx).Omit("Categories.*", "Author").Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Categories").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]model.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{})
	if filter.Status != "" {
		q = q.Where("posts.status = ?", filter.Status)
	}
	if filter.CategoryID != uuid.Nil {
		q = q.Joins("JOIN post_categories pc ON pc.post_id = posts.id").
			Where("pc.category_id = ?", filter.CategoryID)
	}
	if filter.Featured {
		q = q.Where("posts.featured = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := q.
		Preload("Author").
		Preload("Categories").
		Order("posts.created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Take).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post, categoryIDs []uuid.UUID) error {
	// The post arrives with Author preloaded; omit both associations so
	// Save writes the posts row alone.
	if err := r.db.WithContext(ctx).Omit("Categories", "Author").Save(post).Error; err != nil {
		return err
	}
	// Replace detaches the previous categories and attaches the new
	// set in one association call.
	return r.db.WithContext(ctx).Model(post).
		Association("Categories").
		Replace(categoryRefs(categoryIDs))
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Categories").Delete(&model.Post{ID: id}).Error
}

func (r *postRepository) Search(ctx context.Context, query, categorySlug string) ([]model.Post, error) {
	like := "%" + strings.ToLower(query) + "%"
	q := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("posts.status = ?", model.PostStatusPublished).
		Where("(LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ? OR LOWER(posts.excerpt) LIKE ?)",
			like, like, like)
	if categorySlug != "" {
		q = q.Joins("JOIN post_categories pc ON pc.post_id = posts.id").
			Joins("JOIN categories ON categories.id = pc.category_id").
			Where("categories.slug = ?", categorySlug)
	}

	var posts []model.Post
	err := q.
		Preload("Author").
		Preload("Categories").
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
