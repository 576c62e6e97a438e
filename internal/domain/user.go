package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username        string     `gorm:"size:50;uniqueIndex;not null;column:username" json:"username"`
	Email           *string    `gorm:"uniqueIndex;column:email" json:"email"`
	PasswordHash    string     `gorm:"size:255;not null;column:password_hash" json:"-"`
	FirstName       *string    `gorm:"column:first_name" json:"firstName"`
	LastName        *string    `gorm:"column:last_name" json:"lastName"`
	ProfileImageURL *string    `gorm:"column:profile_image_url" json:"profileImageUrl"`
	Role            Role       `gorm:"not null;default:editor;column:role" json:"role"`
	IsActive        bool       `gorm:"not null;default:true;column:is_active" json:"isActive"`
	LastLoginAt     *time.Time `gorm:"column:last_login_at" json:"lastLoginAt"`
	CreatedAt       time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updatedAt"`

	// Populated on demand for editor responses; not a persisted column.
	Languages []Language `gorm:"-" json:"userLanguages,omitempty"`
}

func (User) TableName() string { return "users" }
