package domain

import (
	"time"

	"github.com/google/uuid"
)

type Language struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:10;uniqueIndex;not null;column:code" json:"code"`
	Name      string    `gorm:"size:100;not null;column:name" json:"name"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Language) TableName() string { return "languages" }

// UserLanguage assigns a working language to an editor.
type UserLanguage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"userId"`
	LanguageID uint      `gorm:"not null;index;column:language_id" json:"languageId"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
}

func (UserLanguage) TableName() string { return "user_languages" }
