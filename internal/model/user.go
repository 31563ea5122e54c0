package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the coarse permission tier stored per user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents a local user record mapped 1:1 to an identity
// provider account via ExternalID. Records are created by the sync
// job, never auto-provisioned inside write paths.
type User struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ExternalID string    `json:"externalId" gorm:"uniqueIndex;size:191;not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Username   *string   `json:"username,omitempty" gorm:"size:255"`
	Bio        *string   `json:"bio,omitempty" gorm:"type:text"`
	AvatarURL  *string   `json:"avatarUrl,omitempty" gorm:"size:512"`
	Role       Role      `json:"role" gorm:"type:varchar(20);not null;default:'USER';index"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Relations
	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
