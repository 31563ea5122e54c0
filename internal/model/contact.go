package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactType distinguishes individual from company submissions.
type ContactType string

const (
	ContactTypeIndividual ContactType = "individual"
	ContactTypeCompany    ContactType = "company"
)

// Contact is a free-standing contact form submission. Rows are
// written once by the public form and never mutated.
type Contact struct {
	ID        uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	Type      ContactType `json:"type" gorm:"type:varchar(20);not null"`
	Name      string      `json:"name" gorm:"size:255;not null"`
	Email     string      `json:"email" gorm:"size:255;not null"`
	Phone     *string     `json:"phone,omitempty" gorm:"size:64"`
	Company   *string     `json:"company,omitempty" gorm:"size:255"`
	Position  *string     `json:"position,omitempty" gorm:"size:255"`
	Message   string      `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time   `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
