package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project is one uploaded batch: a single language, a single owner, and
// counters derived from its segments. The three segment counters and the
// duration are owned by the stats recompute and never hand-edited.
type Project struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:200;not null;column:name" json:"name"`
	OriginalFilename string    `gorm:"size:255;not null;column:original_filename" json:"originalFilename"`
	FilePath         string    `gorm:"not null;column:file_path" json:"filePath"`
	FileSize         *int64    `gorm:"column:file_size" json:"fileSize"`
	MimeType         *string   `gorm:"size:100;column:mime_type" json:"mimeType"`
	Duration         float64   `gorm:"not null;column:duration" json:"duration"`
	SampleRate       int       `gorm:"not null;column:sample_rate" json:"sampleRate"`
	Channels         int       `gorm:"not null;column:channels" json:"channels"`
	LanguageID       uint      `gorm:"not null;index;column:language_id" json:"languageId"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"userId"`

	Status              ProjectStatus `gorm:"not null;default:processing;column:status" json:"status"`
	TotalSegments       int           `gorm:"not null;default:0;column:total_segments" json:"totalSegments"`
	TranscribedSegments int           `gorm:"not null;default:0;column:transcribed_segments" json:"transcribedSegments"`
	TranslatedSegments  int           `gorm:"not null;default:0;column:translated_segments" json:"translatedSegments"`

	TranscriptionContext *string        `gorm:"column:transcription_context" json:"transcriptionContext"`
	DomainType           *string        `gorm:"size:50;column:domain_type" json:"domainType"`
	Metadata             datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Project) TableName() string { return "projects" }
