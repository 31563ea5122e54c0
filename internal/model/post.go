package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStatus represents the lifecycle stage of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
	PostStatusArchived  PostStatus = "ARCHIVED"
)

// Post represents a blog post owned by exactly one user.
// Slug is derived from the title and is not unique.
type Post struct {
	ID            uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title         string     `json:"title" gorm:"size:255;not null"`
	Slug          string     `json:"slug" gorm:"size:255;not null;index"`
	Content       string     `json:"content" gorm:"type:longtext;not null"`
	Excerpt       *string    `json:"excerpt,omitempty" gorm:"type:text"`
	FeaturedImage *string    `json:"featuredImage,omitempty" gorm:"size:512"`
	Status        PostStatus `json:"status" gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Featured      bool       `json:"featured" gorm:"default:false;index"`
	AuthorID      uuid.UUID  `json:"authorId" gorm:"type:char(36);not null;index"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	// Relations
	Author     User       `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:post_categories"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
