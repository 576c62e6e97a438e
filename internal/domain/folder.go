package domain

import "time"

type Folder struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"not null;index;column:project_id" json:"projectId"`
	Name        string    `gorm:"size:200;not null;column:name" json:"name"`
	Description *string   `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (Folder) TableName() string { return "folders" }
